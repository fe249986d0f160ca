package analysis

import "strings"

// Tone categories, ordered least to most charged. Ties in dominant-tone
// selection resolve toward the later (more charged) category so selection
// stays deterministic.
var ToneCategories = []string{"calm", "confident", "persuasive", "excited", "anxious", "aggressive"}

var toneKeywords = map[string][]string{
	"calm": {
		"relax", "peaceful", "gently", "quiet", "steady", "take a breath",
		"no rush", "calm", "settle", "at ease",
	},
	"confident": {
		"certainly", "definitely", "clearly", "without a doubt", "i know",
		"obviously", "of course", "i'm sure", "no question", "guarantee",
	},
	"persuasive": {
		"you should", "you must", "you need to", "believe me", "trust me",
		"the truth is", "imagine", "think about it", "consider", "the fact is",
	},
	"excited": {
		"amazing", "incredible", "awesome", "unbelievable", "wow", "fantastic",
		"can't wait", "love this", "thrilled", "huge",
	},
	"anxious": {
		"worried", "afraid", "scared", "nervous", "anxious", "uncertain",
		"what if", "i fear", "concerning", "troubling",
	},
	"aggressive": {
		"stupid", "idiot", "shut up", "disgusting", "hate", "pathetic",
		"traitor", "ridiculous", "garbage", "sick of",
	},
}

var intensifiers = []string{
	"very", "really", "extremely", "absolutely", "totally", "completely",
	"incredibly", "utterly",
}

// ToneClassifier maps lexical features of a sentence, plus its already
// computed sentiment polarity, onto the fixed tone set.
type ToneClassifier struct{}

func NewToneClassifier() *ToneClassifier { return &ToneClassifier{} }

// ClassifySentence scores each tone category from keyword hits, exclamation
// and question density, intensifier count and the sentiment polarity, then
// normalizes the scores into a percentage distribution.
func (tc *ToneClassifier) ClassifySentence(text string, pol Polarity) SentenceTone {
	lower := strings.ToLower(text)
	exclaims := float64(strings.Count(text, "!"))
	questions := float64(strings.Count(text, "?"))
	intense := 0.0
	for _, w := range intensifiers {
		intense += float64(countWordish(lower, w))
	}

	hits := func(cat string) float64 {
		n := 0.0
		for _, kw := range toneKeywords[cat] {
			n += float64(strings.Count(lower, kw))
		}
		return n
	}

	scores := map[string]float64{
		"calm":       1.0 + 2*hits("calm") - 0.5*exclaims - 0.5*intense,
		"confident":  2*hits("confident") + 0.5*intense + pol.Positive,
		"persuasive": 2*hits("persuasive") + 0.5*questions,
		"excited":    2*hits("excited") + 1.5*exclaims + 2*pol.Positive,
		"anxious":    2*hits("anxious") + 1.5*pol.Negative,
		"aggressive": 2*hits("aggressive") + exclaims + 2*pol.Negative,
	}
	for k, v := range scores {
		if v < 0 {
			scores[k] = 0
		}
	}

	return distribute(scores)
}

// distribute normalizes raw category scores into percentages summing to 100
// and picks the dominant tone under the charged-wins-ties order.
func distribute(scores map[string]float64) SentenceTone {
	total := 0.0
	for _, cat := range ToneCategories {
		total += scores[cat]
	}
	dist := make(map[string]float64, len(ToneCategories))
	if total <= 0 {
		for _, cat := range ToneCategories {
			dist[cat] = 0
		}
		dist["calm"] = 100
		return SentenceTone{Label: "calm", Confidence: 0, Distribution: dist}
	}
	for _, cat := range ToneCategories {
		dist[cat] = scores[cat] / total * 100
	}
	label, share := DominantTone(dist)
	return SentenceTone{Label: label, Confidence: share / 100, Distribution: dist}
}

// DominantTone returns the argmax of a tone distribution; equal shares
// resolve to the more charged category.
func DominantTone(dist map[string]float64) (string, float64) {
	label := "calm"
	best := dist["calm"]
	for _, cat := range ToneCategories {
		if dist[cat] >= best {
			label, best = cat, dist[cat]
		}
	}
	return label, best
}

// AggregateTones averages per-sentence distributions into a document-level
// tone profile. Zero sentences yields the declared calm/zero default, never
// an absent profile.
func (tc *ToneClassifier) AggregateTones(tones []SentenceTone) (string, float64, map[string]float64) {
	dist := make(map[string]float64, len(ToneCategories))
	if len(tones) == 0 {
		for _, cat := range ToneCategories {
			dist[cat] = 0
		}
		dist["calm"] = 100
		return "calm", 0, dist
	}
	for _, t := range tones {
		for _, cat := range ToneCategories {
			dist[cat] += t.Distribution[cat]
		}
	}
	n := float64(len(tones))
	for _, cat := range ToneCategories {
		dist[cat] /= n
	}
	label, share := DominantTone(dist)
	return label, share / 100, dist
}

// countWordish counts occurrences of w in s that stand on their own word
// boundaries; intensifiers like "so" would otherwise fire inside "also".
func countWordish(s, w string) int {
	count := 0
	for idx := 0; ; {
		i := strings.Index(s[idx:], w)
		if i < 0 {
			break
		}
		at := idx + i
		before := at == 0 || !isWordRune(s[at-1])
		afterIdx := at + len(w)
		after := afterIdx >= len(s) || !isWordRune(s[afterIdx])
		if before && after {
			count++
		}
		idx = at + len(w)
	}
	return count
}

func isWordRune(b byte) bool {
	return b == '\'' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
