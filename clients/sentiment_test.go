package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSentimentClient_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" {
			t.Errorf("path = %q, want /classify", r.URL.Path)
		}
		var req sentimentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Text == "" {
			t.Error("empty text in request")
		}
		json.NewEncoder(w).Encode(sentimentResp{Scores: []labelScore{
			{Label: "negative", Score: 0.1},
			{Label: "neutral", Score: 0.2},
			{Label: "positive", Score: 0.7},
		}})
	}))
	defer srv.Close()

	c := NewSentimentClient(NewHTTP(), srv.URL)
	pol, err := c.Classify(context.Background(), "What a lovely day.")
	if err != nil {
		t.Fatal(err)
	}
	if pol.Negative != 0.1 || pol.Neutral != 0.2 || pol.Positive != 0.7 {
		t.Errorf("polarity = %+v, want 0.1/0.2/0.7", pol)
	}
}

func TestSentimentClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewSentimentClient(NewHTTP(), srv.URL)
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("expected an error on 503")
	}
}

func TestSentimentClient_UnknownLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sentimentResp{Scores: []labelScore{
			{Label: "joy", Score: 0.9},
		}})
	}))
	defer srv.Close()

	c := NewSentimentClient(NewHTTP(), srv.URL)
	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Error("expected an error when no known labels are returned")
	}
}
