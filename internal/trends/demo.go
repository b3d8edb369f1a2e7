package trends

import (
	"fmt"
	"strings"
	"time"

	"github.com/openwallet/openwallet-cli/internal/model"
)

// demoSummary fills the summary with representative lifestyle-spending
// content when collection came back empty, so the caller never renders a
// blank report. Sources stay empty and raw_response carries a marker so the
// fallback is distinguishable from a genuine model answer.
func demoSummary(keywords []string, days int, modelName string, now time.Time) *model.TrendSummary {
	joinedKW := "소비 트렌드"
	if len(keywords) > 0 {
		joinedKW = strings.Join(keywords, ", ")
	}

	return &model.TrendSummary{
		PeriodStart: now.AddDate(0, 0, -days).Format(dateISO),
		PeriodEnd:   now.Format(dateISO),
		Keywords:    keywords,
		Bullets: []string{
			fmt.Sprintf("'%s' 키워드로 최근 %d일간 수집된 기사가 충분하지 않아, 대표적인 생활 소비 트렌드 예시를 대신 제공합니다.", joinedKW, days),
			"카페·소확행, 근거리 여행, 구독 다이어트처럼 일상에 밀접한 소비 패턴이 계속 관찰되고 있습니다.",
		},
		KeyStats: []string{
			"2030 직장인 기준, '하루 한 잔' 카페 루틴은 유지되면서 리필·구독·편의점 커피 등 단가를 낮추는 선택이 늘고 있습니다.",
			"장거리 해외 여행보다 근교 소도시·당일치기 중심의 짧고 잦은 여행 지출 패턴이 증가하는 추세입니다.",
			"OTT·클라우드·교육 서비스 등 구독형 상품을 주기적으로 정리하는 '구독 다이어트' 수요가 커지고 있습니다.",
		},
		Risks: []string{
			"사용하지 않는 구독이 누적될 경우, 인지하지 못한 고정비가 매달 지출을 압박할 수 있습니다.",
			"카페·외식, 여가·취미 지출이 소액이라도 자주 발생하면 예산 대비 체감보다 큰 지출로 이어질 수 있습니다.",
		},
		Opportunities: []string{
			"정기 결제 캘린더와 연동해 '해지 후보 구독'을 자동 추천하는 기능에 대한 니즈가 존재합니다.",
			"카페·식비 예산을 '하루 한 잔 루틴'에 맞춰 미리 쪼개서 보여주면, 체감 관리 난이도가 낮아질 수 있습니다.",
			"근거리 여행 패턴을 분석해 '교통비 + 경험 위주 소비' 조합에 맞는 예산 가이드를 제안할 수 있습니다.",
		},
		Sources:     []string{},
		Model:       modelName,
		RawResponse: map[string]any{"note": "no_articles_demo"},
	}
}
