package analysis

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// stubClassifier returns canned polarities keyed by sentence text, or an
// error for sentences listed in fail.
type stubClassifier struct {
	byText   map[string]Polarity
	fail     map[string]bool
	fallback Polarity
	calls    []string
}

func (s *stubClassifier) Classify(_ context.Context, text string) (Polarity, error) {
	s.calls = append(s.calls, text)
	if s.fail[text] {
		return Polarity{}, errors.New("inference unavailable")
	}
	if p, ok := s.byText[text]; ok {
		return p, nil
	}
	return s.fallback, nil
}

func testLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sentencesFrom(texts ...string) []Sentence {
	out := make([]Sentence, len(texts))
	for i, t := range texts {
		out[i] = Sentence{Text: t, Index: i}
	}
	return out
}

func TestScorer_AveragesDistributionsNotScores(t *testing.T) {
	// aggregation must average the 3-way distributions, not the collapsed
	// signed scores
	stub := &stubClassifier{byText: map[string]Polarity{
		"Good.": {Negative: 0.1, Neutral: 0.2, Positive: 0.7},
		"Bad.":  {Negative: 0.6, Neutral: 0.3, Positive: 0.1},
	}}
	scorer := NewScorer(stub, 0, testLog())

	doc := scorer.Score(context.Background(), sentencesFrom("Good.", "Bad."))

	if doc.AnalyzedCount != 2 {
		t.Fatalf("analyzed = %d, want 2", doc.AnalyzedCount)
	}
	wantPos, wantNeu, wantNeg := 40.0, 25.0, 35.0
	if math.Abs(doc.PositivePct-wantPos) > 1e-9 ||
		math.Abs(doc.NeutralPct-wantNeu) > 1e-9 ||
		math.Abs(doc.NegativePct-wantNeg) > 1e-9 {
		t.Errorf("pcts = %.1f/%.1f/%.1f, want %.1f/%.1f/%.1f",
			doc.PositivePct, doc.NeutralPct, doc.NegativePct, wantPos, wantNeu, wantNeg)
	}
	sum := doc.PositivePct + doc.NeutralPct + doc.NegativePct
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
	wantScore := (wantPos - wantNeg) / 100
	if math.Abs(doc.OverallScore-wantScore) > 1e-9 {
		t.Errorf("overall = %v, want %v", doc.OverallScore, wantScore)
	}
	if doc.OverallScore < -1 || doc.OverallScore > 1 {
		t.Errorf("overall score %v out of [-1,1]", doc.OverallScore)
	}
}

func TestScorer_EmptyInput(t *testing.T) {
	scorer := NewScorer(&stubClassifier{}, 0, testLog())
	doc := scorer.Score(context.Background(), nil)
	if doc.PositivePct != 0 || doc.NeutralPct != 0 || doc.NegativePct != 0 || doc.OverallScore != 0 {
		t.Errorf("empty input must yield the zero aggregate, got %+v", doc)
	}
	if doc.AnalyzedCount != 0 {
		t.Errorf("analyzed = %d, want 0", doc.AnalyzedCount)
	}
}

func TestScorer_FailedSentenceIsExcluded(t *testing.T) {
	stub := &stubClassifier{
		byText: map[string]Polarity{
			"Fine.": {Negative: 0, Neutral: 0, Positive: 1},
		},
		fail: map[string]bool{"Broken.": true},
	}
	scorer := NewScorer(stub, 0, testLog())

	doc := scorer.Score(context.Background(), sentencesFrom("Fine.", "Broken."))

	if doc.AnalyzedCount != 1 {
		t.Fatalf("analyzed = %d, want 1 (failed sentence excluded)", doc.AnalyzedCount)
	}
	if doc.PositivePct != 100 {
		t.Errorf("positive = %v, want 100 from the surviving sentence", doc.PositivePct)
	}
}

func TestScorer_AllFailuresYieldNeutralDefault(t *testing.T) {
	stub := &stubClassifier{fail: map[string]bool{"A.": true, "B.": true}}
	scorer := NewScorer(stub, 0, testLog())

	doc := scorer.Score(context.Background(), sentencesFrom("A.", "B."))

	if doc.AnalyzedCount != 0 || doc.OverallScore != 0 || doc.PositivePct != 0 {
		t.Errorf("all-fail must yield the zero aggregate, got %+v", doc)
	}
}

func TestScorer_BoundsAnalyzedPrefix(t *testing.T) {
	stub := &stubClassifier{fallback: Polarity{Neutral: 1}}
	scorer := NewScorer(stub, 3, testLog())

	doc := scorer.Score(context.Background(), sentencesFrom("1.", "2.", "3.", "4.", "5."))

	if len(stub.calls) != 3 {
		t.Errorf("classifier called %d times, want 3 (prefix bound)", len(stub.calls))
	}
	if doc.AnalyzedCount != 3 {
		t.Errorf("analyzed = %d, want 3", doc.AnalyzedCount)
	}
}

func TestScorer_TruncatesOverlongSentences(t *testing.T) {
	stub := &stubClassifier{fallback: Polarity{Neutral: 1}}
	scorer := NewScorer(stub, 0, testLog())

	long := strings.Repeat("x", classifierMaxChars+500)
	scorer.Score(context.Background(), sentencesFrom(long))

	if len(stub.calls) != 1 {
		t.Fatalf("classifier called %d times, want 1", len(stub.calls))
	}
	if len(stub.calls[0]) != classifierMaxChars {
		t.Errorf("sent %d chars, want truncation to %d", len(stub.calls[0]), classifierMaxChars)
	}
}

func TestScoreFromPolarity_Labels(t *testing.T) {
	tests := []struct {
		pol  Polarity
		want string
	}{
		{Polarity{Negative: 0.7, Neutral: 0.2, Positive: 0.1}, "negative"},
		{Polarity{Negative: 0.1, Neutral: 0.2, Positive: 0.7}, "positive"},
		{Polarity{Negative: 0.2, Neutral: 0.6, Positive: 0.2}, "neutral"},
		{Polarity{Negative: 1.0 / 3, Neutral: 1.0 / 3, Positive: 1.0 / 3}, "neutral"},
	}
	for _, tt := range tests {
		got := scoreFromPolarity(Sentence{}, tt.pol)
		if got.Label != tt.want {
			t.Errorf("label for %+v = %q, want %q", tt.pol, got.Label, tt.want)
		}
	}
}
