package analysis

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Polarity is the 3-class output of the sentiment classifier. Values are
// fractions in [0,1] summing to 1.
type Polarity struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
}

// Classifier is the external 3-class sentiment model. Implementations are
// stateless per call; the HTTP client in the clients package satisfies this.
type Classifier interface {
	Classify(ctx context.Context, text string) (Polarity, error)
}

const (
	// DefaultMaxSentences bounds how many sentences are classified per
	// document, for latency on long transcripts.
	DefaultMaxSentences = 50
	// classifierMaxChars approximates the model's 512-token input limit;
	// longer sentences are truncated, never rejected.
	classifierMaxChars = 2000
)

// Scorer classifies sentences and aggregates them into a document profile.
type Scorer struct {
	classifier   Classifier
	maxSentences int
	log          logrus.FieldLogger
}

// DocumentSentiment is the document-level aggregate: the arithmetic mean of
// each scored sentence's 3-way distribution. AnalyzedCount reports how many
// sentences of the prefix actually contributed.
type DocumentSentiment struct {
	PositivePct   float64
	NeutralPct    float64
	NegativePct   float64
	OverallScore  float64
	Confidence    float64
	AnalyzedCount int
	Sentences     []SentenceScore
}

func NewScorer(classifier Classifier, maxSentences int, log logrus.FieldLogger) *Scorer {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &Scorer{classifier: classifier, maxSentences: maxSentences, log: log}
}

// Score classifies up to maxSentences sentences and averages their 3-way
// distributions. A failed classification excludes that sentence from the
// aggregate but never aborts the document; if every sentence fails the
// zero/neutral aggregate is returned.
func (sc *Scorer) Score(ctx context.Context, sentences []Sentence) DocumentSentiment {
	if len(sentences) == 0 {
		return DocumentSentiment{}
	}

	limit := len(sentences)
	if limit > sc.maxSentences {
		limit = sc.maxSentences
	}

	var doc DocumentSentiment
	var sumNeg, sumNeu, sumPos, sumConf float64
	for _, sent := range sentences[:limit] {
		text := sent.Text
		if len(text) > classifierMaxChars {
			text = text[:classifierMaxChars]
		}
		pol, err := sc.classifier.Classify(ctx, text)
		if err != nil {
			sc.log.WithError(err).WithField("index", sent.Index).Warn("sentence classification failed, skipping")
			continue
		}
		score := scoreFromPolarity(sent, pol)
		doc.Sentences = append(doc.Sentences, score)
		sumNeg += pol.Negative
		sumNeu += pol.Neutral
		sumPos += pol.Positive
		sumConf += maxOf(pol.Negative, pol.Neutral, pol.Positive)
	}

	n := float64(len(doc.Sentences))
	if n == 0 {
		sc.log.Warn("all sentence classifications failed, returning neutral aggregate")
		return DocumentSentiment{}
	}

	doc.AnalyzedCount = len(doc.Sentences)
	doc.NegativePct = sumNeg / n * 100
	doc.NeutralPct = sumNeu / n * 100
	doc.PositivePct = sumPos / n * 100
	doc.OverallScore = (doc.PositivePct - doc.NegativePct) / 100
	doc.Confidence = sumConf / n
	return doc
}

func scoreFromPolarity(sent Sentence, pol Polarity) SentenceScore {
	s := SentenceScore{
		Sentence:    sent,
		NegativePct: pol.Negative * 100,
		NeutralPct:  pol.Neutral * 100,
		PositivePct: pol.Positive * 100,
		Score:       pol.Positive - pol.Negative,
	}
	switch {
	case pol.Neutral >= pol.Positive && pol.Neutral >= pol.Negative:
		s.Label = "neutral"
	case pol.Positive >= pol.Negative:
		s.Label = "positive"
	default:
		s.Label = "negative"
	}
	return s
}

func maxOf(vals ...float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
