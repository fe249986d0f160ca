package analysis

import (
	"strings"
	"unicode"
)

// abbreviations that end with a period but do not terminate a sentence
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "st": {},
	"vs": {}, "etc": {}, "jr": {}, "sr": {}, "inc": {}, "ltd": {},
	"e.g": {}, "i.e": {}, "u.s": {}, "u.k": {}, "a.m": {}, "p.m": {},
}

// SplitSentences splits raw text into sentence units on terminal punctuation
// (. ! ?), skipping boundaries that follow a known abbreviation or sit inside
// a decimal number. Empty or whitespace-only text yields no sentences.
func SplitSentences(text string) []Sentence {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	runes := []rune(text)
	var sentences []Sentence
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if r == '.' && !isBoundary(runes, i) {
			continue
		}
		// swallow trailing punctuation runs and closing quotes
		end := i + 1
		for end < len(runes) && (runes[end] == '.' || runes[end] == '!' || runes[end] == '?' || runes[end] == '"' || runes[end] == '\'' || runes[end] == ')') {
			end++
		}
		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			sentences = append(sentences, Sentence{Text: piece, Index: len(sentences)})
		}
		i = end - 1
		start = end
	}
	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		sentences = append(sentences, Sentence{Text: tail, Index: len(sentences)})
	}
	return sentences
}

// isBoundary reports whether the period at runes[i] terminates a sentence.
func isBoundary(runes []rune, i int) bool {
	// decimal number: digit on both sides
	if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
		return false
	}
	// word immediately before the period
	j := i - 1
	for j >= 0 && (unicode.IsLetter(runes[j]) || runes[j] == '.') {
		j--
	}
	word := strings.ToLower(strings.TrimSuffix(string(runes[j+1:i]), "."))
	if _, ok := abbreviations[word]; ok {
		return false
	}
	// single capital initial, as in "John F. Kennedy"
	if len(word) == 1 && unicode.IsUpper(runes[i-1]) {
		return false
	}
	return true
}

// AlignSentences assigns start/end times to each sentence. A sentence whose
// text is found inside a transcript segment takes that segment's span;
// otherwise the time is interpolated linearly from the sentence's character
// offset over the total duration. The input slice is updated in place and
// returned.
func AlignSentences(sentences []Sentence, segments []Segment, duration float64, fullText string) []Sentence {
	if len(sentences) == 0 {
		return sentences
	}

	totalChars := len(fullText)
	offset := 0
	for i := range sentences {
		s := &sentences[i]
		if seg, ok := findSegment(s.Text, segments); ok {
			s.Start, s.End, s.Aligned = seg.Start, seg.End, true
		} else if duration > 0 && totalChars > 0 {
			pos := strings.Index(fullText[offset:], s.Text)
			charAt := offset
			if pos >= 0 {
				charAt = offset + pos
			}
			s.Start = duration * float64(charAt) / float64(totalChars)
			s.End = duration * float64(charAt+len(s.Text)) / float64(totalChars)
			if s.End > duration {
				s.End = duration
			}
		}
		if pos := strings.Index(fullText[offset:], s.Text); pos >= 0 {
			offset += pos + len(s.Text)
		}
	}
	return sentences
}

// findSegment locates the first segment whose text contains the sentence, or
// that the sentence contains (segments and sentences rarely share exact
// boundaries).
func findSegment(sentence string, segments []Segment) (Segment, bool) {
	needle := strings.ToLower(strings.TrimSpace(sentence))
	if needle == "" {
		return Segment{}, false
	}
	// long sentences are matched on their head to survive mid-sentence
	// segment breaks
	if len(needle) > 40 {
		needle = needle[:40]
	}
	for _, seg := range segments {
		hay := strings.ToLower(seg.Text)
		if strings.Contains(hay, needle) || strings.Contains(needle, strings.ToLower(strings.TrimSpace(seg.Text))) {
			return seg, true
		}
	}
	return Segment{}, false
}

// SegmentAt returns the timestamp of the segment covering the given character
// offset of the full text, walking segment texts cumulatively. Falls back to
// a proportional estimate, then to zero.
func SegmentAt(offset int, fullText string, segments []Segment, duration float64) float64 {
	if offset < 0 {
		return 0
	}
	consumed := 0
	prev := 0.0
	havePrev := false
	for _, seg := range segments {
		idx := strings.Index(fullText[consumed:], strings.TrimSpace(seg.Text))
		if idx < 0 {
			continue
		}
		segStart := consumed + idx
		segEnd := segStart + len(strings.TrimSpace(seg.Text))
		if offset >= segStart && offset < segEnd {
			return seg.Start
		}
		if offset < segStart {
			// offset fell in a gap; the nearest preceding segment wins
			if havePrev {
				return prev
			}
			return seg.Start
		}
		consumed = segEnd
		prev = seg.Start
		havePrev = true
	}
	if havePrev {
		return prev
	}
	if len(fullText) > 0 && duration > 0 {
		return duration * float64(offset) / float64(len(fullText))
	}
	return 0
}
