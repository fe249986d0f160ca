package analysis

import "math"

// Assemble merges the stage outputs into the canonical result records.
// Every field downstream consumers read is populated even when the input was
// empty: a missing key is never the signal for "no data".
func Assemble(sentenceCount int, doc DocumentSentiment, tones []SentenceTone, bins []TimelineBin, bias BiasResult, tc *ToneClassifier) Result {
	if tc == nil {
		tc = NewToneClassifier()
	}
	if bins == nil {
		bins = []TimelineBin{}
	}

	sentiment := SentimentResult{
		PositivePct:      round1(doc.PositivePct),
		NeutralPct:       round1(doc.NeutralPct),
		NegativePct:      round1(doc.NegativePct),
		OverallScore:     round2(doc.OverallScore),
		OverallSentiment: overallLabel(doc),
		PositiveRatio:    round3(doc.PositivePct / 100),
		NeutralRatio:     round3(doc.NeutralPct / 100),
		NegativeRatio:    round3(doc.NegativePct / 100),
		Confidence:       round2(doc.Confidence),
		SentenceCount:    sentenceCount,
		AnalyzedCount:    doc.AnalyzedCount,
		Sentences:        sentenceRecords(doc.Sentences),
		Timeline:         bins,
		KeyMoments:       keyMoments(doc.Sentences),
	}

	dominant, confidence, dist := tc.AggregateTones(tones)
	for cat, v := range dist {
		dist[cat] = round1(v)
	}
	tone := ToneResult{
		DominantTone:     dominant,
		DominantScore:    round1(dist[dominant]),
		Confidence:       round2(confidence),
		ToneDistribution: dist,
		Timeline:         bins,
	}

	return Result{Sentiment: sentiment, Tone: tone, Bias: bias}
}

func sentenceRecords(scores []SentenceScore) []SentenceRecord {
	records := make([]SentenceRecord, len(scores))
	for i, s := range scores {
		records[i] = toRecord(s)
	}
	return records
}

func keyMoments(scores []SentenceScore) KeyMoments {
	if len(scores) == 0 {
		return KeyMoments{}
	}
	hi, lo := 0, 0
	for i, s := range scores {
		if s.Score > scores[hi].Score {
			hi = i
		}
		if s.Score < scores[lo].Score {
			lo = i
		}
	}
	pos := toRecord(scores[hi])
	neg := toRecord(scores[lo])
	return KeyMoments{MostPositive: &pos, MostNegative: &neg}
}

func toRecord(s SentenceScore) SentenceRecord {
	return SentenceRecord{
		Text:      s.Text,
		Label:     s.Label,
		Score:     round2(s.Score),
		Start:     s.Start,
		End:       s.End,
		Timestamp: FormatTimestamp(s.Start),
	}
}

func overallLabel(doc DocumentSentiment) string {
	if doc.AnalyzedCount == 0 {
		return "neutral"
	}
	switch {
	case doc.NeutralPct >= doc.PositivePct && doc.NeutralPct >= doc.NegativePct:
		return "neutral"
	case doc.PositivePct >= doc.NegativePct:
		return "positive"
	default:
		return "negative"
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
