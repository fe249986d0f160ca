package analysis

import "strings"

const (
	// biasPointsPerHit is the fixed score contribution of one phrase
	// occurrence.
	biasPointsPerHit = 10
	// biasScoreCap caps the final score.
	biasScoreCap = 100

	biasModerateFloor = 20
	biasHighFloor     = 50
)

// MatchBias scans the full raw text against the lexicon and accumulates a
// severity-tagged flag per matched phrase. Matching is case-insensitive
// SUBSTRING counting, not word-boundary tokenization: "maga" inside
// "magazine" counts. That is the documented contract, false positives
// included. No matches yields score 0 / level Low, never an error.
func MatchBias(lex Lexicon, text string, segments []Segment, duration float64) BiasResult {
	result := BiasResult{Level: "Low", Flags: []BiasFlag{}}
	if text == "" {
		return result
	}

	lower := strings.ToLower(text)
	raw := 0
	for _, name := range lex.categoryNames() {
		cat := lex.Categories[name]
		for _, phrase := range cat.Phrases {
			p := strings.ToLower(phrase)
			if p == "" {
				continue
			}
			count := strings.Count(lower, p)
			if count == 0 {
				continue
			}
			raw += count * biasPointsPerHit

			first := strings.Index(lower, p)
			ts := SegmentAt(first, text, segments, duration)
			result.Flags = append(result.Flags, BiasFlag{
				Phrase:           phrase,
				Category:         name,
				Severity:         cat.Severity,
				Count:            count,
				Sentence:         sentenceAround(text, first, len(p)),
				Context:          contextAround(text, first, len(p)),
				Timestamp:        FormatTimestamp(ts),
				TimestampSeconds: ts,
			})
		}
	}

	score := raw
	if score > biasScoreCap {
		score = biasScoreCap
	}
	result.Score = score
	result.FlagsCount = len(result.Flags)
	switch {
	case score >= biasHighFloor:
		result.Level = "High"
	case score >= biasModerateFloor:
		result.Level = "Moderate"
	default:
		result.Level = "Low"
	}
	return result
}

// sentenceAround extracts the sentence containing the span starting at pos.
func sentenceAround(text string, pos, length int) string {
	start := pos
	for start > 0 && !isTerminal(text[start-1]) {
		start--
	}
	end := pos + length
	for end < len(text) && !isTerminal(text[end]) {
		end++
	}
	if end < len(text) {
		end++ // include the terminator
	}
	return strings.TrimSpace(text[start:end])
}

// contextAround extracts a snippet of up to 60 characters on each side of the
// span, trimmed to whole words.
func contextAround(text string, pos, length int) string {
	const window = 60
	start := pos - window
	if start < 0 {
		start = 0
	}
	end := pos + length + window
	if end > len(text) {
		end = len(text)
	}
	snippet := text[start:end]
	if start > 0 {
		if i := strings.IndexByte(snippet, ' '); i >= 0 {
			snippet = snippet[i+1:]
		}
	}
	if end < len(text) {
		if i := strings.LastIndexByte(snippet, ' '); i >= 0 {
			snippet = snippet[:i]
		}
	}
	return strings.TrimSpace(snippet)
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}
