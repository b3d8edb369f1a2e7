// Package report turns a set of transaction rows into a freeform Korean
// spending report written by the language model.
package report

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openwallet/openwallet-cli/internal/llm"
	"github.com/openwallet/openwallet-cli/internal/model"
)

// ErrNoData is returned when no transactions match the requested window.
var ErrNoData = eris.New("report: no transactions in range")

const (
	maxReportTokens   = 800
	reportTemperature = 0.7
	reportTopP        = 0.9
)

const systemPrompt = "당신은 개인 가계부 서비스 'OpenWallet'의 소비 분석 리포트 생성가입니다. " +
	"입력으로 주어지는 JSON 형식의 거래 내역을 이해하고, " +
	"특정한 데이터 형식이 읽고 좋은 텍스트(줄글)로 작성하십시오. " +
	"가능하면 항목별 합계, 카테고리별 통계, 소비 패턴 요약, " +
	"절약/개선 팁 등을 포함하고, 중요한 수치는 숫자로 명확하게 보여주세요."

const defaultQuestion = "이 소비 내역을 바탕으로 기간별/카테고리별 요약, " +
	"지출 패턴 분석, 절약을 위한 한두 가지 조언을 포함한 " +
	"리포트를 줄글 형식으로 작성하십시오."

// Generator produces spending reports from transaction rows.
type Generator struct {
	client llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Result pairs the generated text with the inputs it covered.
type Result struct {
	Report           string `json:"report"`
	UserID           string `json:"user_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	TransactionCount int    `json:"transaction_count"`
}

// Request describes one report run. An empty Question takes the default
// analysis prompt.
type Request struct {
	UserID    string
	StartDate string
	EndDate   string
	Question  string
}

// Generate renders the transactions as JSON, asks the model for a prose
// report and returns it verbatim. An empty transaction set is ErrNoData, not
// an empty report.
func (g *Generator) Generate(ctx context.Context, req Request, txs []model.Transaction) (*Result, error) {
	if len(txs) == 0 {
		return nil, ErrNoData
	}

	question := req.Question
	if question == "" {
		question = defaultQuestion
	}

	txJSON, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode transactions")
	}

	user := "요청사항: " + question + "\n\n" +
		"다음은 분석해야 할 거래 내역 데이터입니다:\n" +
		string(txJSON) + "\n\n" +
		"위 데이터를 바탕으로 분석 보고서를 작성하세요. " +
		"데이터 자체를 다시 보여주지 말고, 해석된 내용만 텍스트로 출력하세요."

	temp := reportTemperature
	topP := reportTopP
	out, err := g.client.Generate(ctx,
		[]llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
		llm.Options{MaxTokens: maxReportTokens, Temperature: &temp, TopP: &topP})
	if err != nil {
		return nil, eris.Wrap(err, "failed to generate spending report")
	}

	zap.L().Info("spending report generated",
		zap.String("user_id", req.UserID),
		zap.Int("transaction_count", len(txs)))

	return &Result{
		Report:           strings.TrimSpace(out),
		UserID:           req.UserID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TransactionCount: len(txs),
	}, nil
}
