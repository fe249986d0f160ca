package analysis

import "fmt"

// Transcript is what the transcription service hands the pipeline.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Duration float64   `json:"duration"`
	Language string    `json:"language"`
}

// Segment is one timestamped span of the transcript.
type Segment struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	AvgLogprob float64 `json:"avg_logprob"`
}

// Sentence is one unit of the segmented transcript. Start/End come from the
// containing transcript segment when one is found, otherwise from linear
// interpolation over the document; Aligned records which path produced them.
type Sentence struct {
	Text    string  `json:"text"`
	Index   int     `json:"index"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Aligned bool    `json:"aligned"`
}

// SentenceScore is the 3-way polarity of one sentence plus the collapsed
// signed score. Percentages are 0-100 and sum to 100.
type SentenceScore struct {
	Sentence
	Label       string  `json:"label"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	PositivePct float64 `json:"positive_pct"`
	Score       float64 `json:"score"` // -1..1
}

// SentenceTone is the 6-way tone distribution of one sentence.
type SentenceTone struct {
	Label        string             `json:"label"`
	Confidence   float64            `json:"confidence"` // 0..1
	Distribution map[string]float64 `json:"distribution"`
}

// TimelineBin is one fixed-width window over the audio time axis. Empty bins
// are emitted explicitly (avg 0, tone "neutral") so timeline arrays stay
// rectangular for charting.
type TimelineBin struct {
	TimeLabel     string  `json:"time_label"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	AvgSentiment  float64 `json:"avg_sentiment"`
	DominantTone  string  `json:"dominant_tone"`
	SentenceCount int     `json:"sentence_count"`
}

// SentenceRecord is the per-sentence row carried in the sentiment result.
type SentenceRecord struct {
	Text      string  `json:"text"`
	Label     string  `json:"label"`
	Score     float64 `json:"score"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Timestamp string  `json:"timestamp"`
}

// KeyMoments holds the single most positive and most negative sentences.
// Either may be null when no sentence was scored.
type KeyMoments struct {
	MostPositive *SentenceRecord `json:"most_positive"`
	MostNegative *SentenceRecord `json:"most_negative"`
}

// SentimentResult is the canonical sentiment artifact consumed by
// persistence, charting and reporting. Every field is always populated,
// including under empty input.
type SentimentResult struct {
	PositivePct      float64          `json:"positive_pct"`
	NeutralPct       float64          `json:"neutral_pct"`
	NegativePct      float64          `json:"negative_pct"`
	OverallScore     float64          `json:"overall_score"`
	OverallSentiment string           `json:"overall_sentiment"`
	PositiveRatio    float64          `json:"positive_ratio"`
	NeutralRatio     float64          `json:"neutral_ratio"`
	NegativeRatio    float64          `json:"negative_ratio"`
	Confidence       float64          `json:"confidence"`
	SentenceCount    int              `json:"sentence_count"`
	AnalyzedCount    int              `json:"analyzed_count"`
	Sentences        []SentenceRecord `json:"sentences"`
	Timeline         []TimelineBin    `json:"timeline"`
	KeyMoments       KeyMoments       `json:"key_moments"`
}

// ToneResult is the canonical tone artifact.
type ToneResult struct {
	DominantTone     string             `json:"dominant_tone"`
	DominantScore    float64            `json:"dominant_score"`
	Confidence       float64            `json:"confidence"`
	ToneDistribution map[string]float64 `json:"tone_distribution"`
	Timeline         []TimelineBin      `json:"timeline"`
}

// BiasFlag notes one matched lexicon phrase. Flags are per phrase, not per
// occurrence; Count carries the occurrence total.
type BiasFlag struct {
	Phrase           string  `json:"phrase"`
	Category         string  `json:"category"`
	Severity         string  `json:"severity"`
	Count            int     `json:"count"`
	Sentence         string  `json:"sentence"`
	Context          string  `json:"context"`
	Timestamp        string  `json:"timestamp"`
	TimestampSeconds float64 `json:"timestamp_seconds"`
}

// BiasResult is the canonical bias artifact.
type BiasResult struct {
	Score      int        `json:"score"`
	Level      string     `json:"level"`
	FlagsCount int        `json:"flags_count"`
	Flags      []BiasFlag `json:"flags"`
}

// Result bundles the three analysis artifacts for one run.
type Result struct {
	Sentiment SentimentResult `json:"sentiment"`
	Tone      ToneResult      `json:"tone"`
	Bias      BiasResult      `json:"bias"`
}

// FormatTimestamp renders seconds as mm:ss.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
