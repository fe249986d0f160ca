package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vibejudge/vibejudge/analysis"
)

// --- Sentiment (/classify) ---

type sentimentReq struct {
	Text string `json:"text"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type sentimentResp struct {
	Scores []labelScore `json:"scores"`
}

// SentimentClient calls a 3-class (negative/neutral/positive) text
// classification service. It satisfies analysis.Classifier.
type SentimentClient struct {
	http *HTTP
	url  string
}

func NewSentimentClient(h *HTTP, url string) *SentimentClient {
	return &SentimentClient{http: h, url: url}
}

var _ analysis.Classifier = (*SentimentClient)(nil)

func (s *SentimentClient) Classify(ctx context.Context, text string) (analysis.Polarity, error) {
	payload, _ := json.Marshal(sentimentReq{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/classify", bytes.NewReader(payload))
	if err != nil {
		return analysis.Polarity{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.c.Do(req)
	if err != nil {
		return analysis.Polarity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return analysis.Polarity{}, fmt.Errorf("sentiment %s: %s", resp.Status, string(body))
	}

	var out sentimentResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return analysis.Polarity{}, fmt.Errorf("sentiment decode: %w", err)
	}

	var pol analysis.Polarity
	for _, ls := range out.Scores {
		switch strings.ToLower(ls.Label) {
		case "negative":
			pol.Negative = ls.Score
		case "neutral":
			pol.Neutral = ls.Score
		case "positive":
			pol.Positive = ls.Score
		}
	}
	if pol.Negative+pol.Neutral+pol.Positive == 0 {
		return analysis.Polarity{}, fmt.Errorf("sentiment: response carried no known labels")
	}
	return pol, nil
}
