package analysis

import (
	"math"
	"testing"
)

func TestAssemble_PopulatesEverythingOnEmptyInput(t *testing.T) {
	result := Assemble(0, DocumentSentiment{}, nil, nil, BiasResult{Level: "Low", Flags: []BiasFlag{}}, nil)

	s := result.Sentiment
	if s.Sentences == nil {
		t.Error("sentences must be an empty slice, not nil")
	}
	if s.Timeline == nil {
		t.Error("timeline must be an empty slice, not nil")
	}
	if s.OverallSentiment != "neutral" {
		t.Errorf("overall sentiment = %q, want neutral", s.OverallSentiment)
	}
	if s.PositiveRatio != 0 || s.NeutralRatio != 0 || s.NegativeRatio != 0 {
		t.Errorf("ratios = %v/%v/%v, want zeros", s.PositiveRatio, s.NeutralRatio, s.NegativeRatio)
	}
	if s.KeyMoments.MostPositive != nil || s.KeyMoments.MostNegative != nil {
		t.Error("key moments must be null on empty input")
	}

	if result.Tone.DominantTone != "calm" || result.Tone.Confidence != 0 {
		t.Errorf("tone = %+v, want calm / 0", result.Tone)
	}
	if result.Tone.ToneDistribution == nil {
		t.Error("tone distribution must be present")
	}
}

func TestAssemble_RatiosMatchPercentages(t *testing.T) {
	doc := DocumentSentiment{
		PositivePct:   62.5,
		NeutralPct:    25.0,
		NegativePct:   12.5,
		OverallScore:  0.5,
		Confidence:    0.71,
		AnalyzedCount: 4,
	}
	result := Assemble(4, doc, nil, []TimelineBin{}, BiasResult{}, nil)

	s := result.Sentiment
	if math.Abs(s.PositiveRatio-0.625) > 1e-9 {
		t.Errorf("positive ratio = %v, want 0.625", s.PositiveRatio)
	}
	if s.PositivePct != 62.5 || s.NeutralPct != 25.0 || s.NegativePct != 12.5 {
		t.Errorf("pcts = %v/%v/%v", s.PositivePct, s.NeutralPct, s.NegativePct)
	}
	if s.OverallSentiment != "positive" {
		t.Errorf("overall = %q, want positive", s.OverallSentiment)
	}
	if s.SentenceCount != 4 || s.AnalyzedCount != 4 {
		t.Errorf("counts = %d/%d, want 4/4", s.SentenceCount, s.AnalyzedCount)
	}
}

func TestAssemble_KeyMoments(t *testing.T) {
	doc := DocumentSentiment{
		AnalyzedCount: 3,
		Sentences: []SentenceScore{
			{Sentence: Sentence{Text: "Meh.", Start: 0}, Label: "neutral", Score: 0.0},
			{Sentence: Sentence{Text: "Wonderful!", Start: 65}, Label: "positive", Score: 0.9},
			{Sentence: Sentence{Text: "Awful.", Start: 10}, Label: "negative", Score: -0.8},
		},
	}
	result := Assemble(3, doc, nil, nil, BiasResult{}, nil)

	km := result.Sentiment.KeyMoments
	if km.MostPositive == nil || km.MostPositive.Text != "Wonderful!" {
		t.Errorf("most positive = %+v, want Wonderful!", km.MostPositive)
	}
	if km.MostPositive != nil && km.MostPositive.Timestamp != "01:05" {
		t.Errorf("most positive timestamp = %q, want 01:05", km.MostPositive.Timestamp)
	}
	if km.MostNegative == nil || km.MostNegative.Text != "Awful." {
		t.Errorf("most negative = %+v, want Awful.", km.MostNegative)
	}
	if len(result.Sentiment.Sentences) != 3 {
		t.Errorf("got %d records, want 3", len(result.Sentiment.Sentences))
	}
}

func TestAssemble_ToneDistributionRounded(t *testing.T) {
	tones := []SentenceTone{
		{Label: "excited", Confidence: 0.6, Distribution: map[string]float64{
			"calm": 10.123, "confident": 9.877, "persuasive": 20, "excited": 60, "anxious": 0, "aggressive": 0,
		}},
	}
	result := Assemble(1, DocumentSentiment{AnalyzedCount: 1}, tones, nil, BiasResult{}, nil)

	if result.Tone.DominantTone != "excited" {
		t.Errorf("dominant = %q, want excited", result.Tone.DominantTone)
	}
	if result.Tone.ToneDistribution["calm"] != 10.1 {
		t.Errorf("calm = %v, want rounded 10.1", result.Tone.ToneDistribution["calm"])
	}
	if result.Tone.DominantScore != 60 {
		t.Errorf("dominant score = %v, want 60", result.Tone.DominantScore)
	}
}
