package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// VisionOCR recognizes receipt text via the Google Cloud Vision REST API.
type VisionOCR struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewVisionOCR creates a VisionOCR gateway. If endpoint is empty, the public
// API endpoint is used.
func NewVisionOCR(apiKey, endpoint string) *VisionOCR {
	if endpoint == "" {
		endpoint = defaultVisionEndpoint
	}
	return &VisionOCR{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"` // base64
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []visionAnnotateResponse `json:"responses"`
}

type visionAnnotateResponse struct {
	FullTextAnnotation *visionFullText    `json:"fullTextAnnotation,omitempty"`
	TextAnnotations    []visionAnnotation `json:"textAnnotations,omitempty"`
	Error              *visionError       `json:"error,omitempty"`
}

type visionFullText struct {
	Text string `json:"text"`
}

type visionAnnotation struct {
	Description string `json:"description"`
}

type visionError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RecognizeText sends the image for document text detection and returns the
// full recognized text, falling back to the first text-annotation fragment
// when no full-text field is populated.
func (v *VisionOCR) RecognizeText(ctx context.Context, image []byte) (string, error) {
	reqBody := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", eris.Wrap(err, "ocr: marshal vision request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"?key="+v.apiKey, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "ocr: create vision request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ocr: vision API call")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "ocr: read vision response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("ocr: vision API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(respBody, &visionResp); err != nil {
		return "", eris.Wrap(err, "ocr: unmarshal vision response")
	}

	if len(visionResp.Responses) == 0 {
		return "", eris.New("ocr: empty vision response")
	}

	r := visionResp.Responses[0]
	if r.Error != nil {
		return "", eris.Errorf("ocr: vision service error %d: %s", r.Error.Code, r.Error.Message)
	}

	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		return r.FullTextAnnotation.Text, nil
	}
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}

	return "", nil
}
