package analysis

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Options tunes the analysis pipeline. Zero values fall back to defaults.
type Options struct {
	MaxSentences int
	TimelineBins int
	MinBinWidth  float64
}

// Analyzer is the dependency-injected analysis context: it holds the
// classifier handle and lexicon, constructed once by the host and passed into
// each run. Stages never mutate it, so a single instance serves the whole
// process.
type Analyzer struct {
	scorer  *Scorer
	tone    *ToneClassifier
	lexicon Lexicon
	opts    Options
	log     logrus.FieldLogger
}

// New builds an Analyzer. A missing classifier is the one hard failure: the
// pipeline cannot run without it, reported here at startup rather than per
// request.
func New(classifier Classifier, lexicon Lexicon, opts Options, log logrus.FieldLogger) (*Analyzer, error) {
	if classifier == nil {
		return nil, errors.New("analysis: sentiment classifier is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if len(lexicon.Categories) == 0 {
		lexicon = DefaultLexicon()
	}
	return &Analyzer{
		scorer:  NewScorer(classifier, opts.MaxSentences, log),
		tone:    NewToneClassifier(),
		lexicon: lexicon,
		opts:    opts,
		log:     log,
	}, nil
}

// Analyze runs the full multi-signal pipeline over one transcript. Upstream
// data problems degrade to the documented zero/neutral defaults; only the
// context being cancelled mid-run surfaces as an error.
func (a *Analyzer) Analyze(ctx context.Context, tr *Transcript) (*Result, error) {
	if tr == nil {
		tr = &Transcript{}
	}

	sentences := SplitSentences(tr.Text)
	sentences = AlignSentences(sentences, tr.Segments, tr.Duration, tr.Text)
	a.log.WithFields(logrus.Fields{"sentences": len(sentences), "duration": tr.Duration}).Debug("transcript segmented")

	doc := a.scorer.Score(ctx, sentences)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tones := make([]SentenceTone, len(doc.Sentences))
	scored := make([]ScoredSentence, len(doc.Sentences))
	for i, s := range doc.Sentences {
		pol := Polarity{
			Negative: s.NegativePct / 100,
			Neutral:  s.NeutralPct / 100,
			Positive: s.PositivePct / 100,
		}
		tones[i] = a.tone.ClassifySentence(s.Text, pol)
		scored[i] = ScoredSentence{Sentence: s.Sentence, Score: s.Score, Tone: tones[i]}
	}

	bins := BuildTimeline(scored, tr.Duration, a.opts.TimelineBins, a.opts.MinBinWidth)
	bias := MatchBias(a.lexicon, tr.Text, tr.Segments, tr.Duration)

	result := Assemble(len(sentences), doc, tones, bins, bias, a.tone)
	return &result, nil
}
