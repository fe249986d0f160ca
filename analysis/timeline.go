package analysis

// ScoredSentence joins a sentence's sentiment and tone for timeline binning.
type ScoredSentence struct {
	Sentence
	Score float64
	Tone  SentenceTone
}

const (
	// DefaultTimelineBins is the target bin count for a full-length episode.
	DefaultTimelineBins = 20
	// MinBinWidthSeconds floors the bin width; short audio gets fewer bins
	// rather than degenerate sub-second windows.
	MinBinWidthSeconds = 15.0
)

// BuildTimeline partitions [0, duration] into contiguous equal-width bins and
// aggregates sentence signals into each: mean signed sentiment, and the tone
// with the highest aggregate confidence among members (charged tones win
// ties). Empty bins carry avg_sentiment 0 and dominant_tone "neutral" so the
// timeline stays rectangular. Identical input always yields identical bins.
func BuildTimeline(sentences []ScoredSentence, duration float64, binCount int, minBinWidth float64) []TimelineBin {
	if duration <= 0 {
		return []TimelineBin{}
	}
	if binCount <= 0 {
		binCount = DefaultTimelineBins
	}
	if minBinWidth <= 0 {
		minBinWidth = MinBinWidthSeconds
	}
	if duration/float64(binCount) < minBinWidth {
		binCount = int(duration / minBinWidth)
		if binCount < 1 {
			binCount = 1
		}
	}
	width := duration / float64(binCount)

	type acc struct {
		sum   float64
		count int
		tones map[string]float64
	}
	accs := make([]acc, binCount)
	for i := range accs {
		accs[i].tones = make(map[string]float64)
	}

	for _, s := range sentences {
		idx := int(s.Start / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= binCount {
			idx = binCount - 1
		}
		accs[idx].sum += s.Score
		accs[idx].count++
		accs[idx].tones[s.Tone.Label] += s.Tone.Confidence
	}

	bins := make([]TimelineBin, binCount)
	for i := range bins {
		start := float64(i) * width
		end := start + width
		if i == binCount-1 {
			end = duration
		}
		bin := TimelineBin{
			TimeLabel:     FormatTimestamp(start),
			StartTime:     start,
			EndTime:       end,
			DominantTone:  "neutral",
			SentenceCount: accs[i].count,
		}
		if accs[i].count > 0 {
			bin.AvgSentiment = accs[i].sum / float64(accs[i].count)
			if label, best := DominantTone(accs[i].tones); best > 0 {
				bin.DominantTone = label
			} else {
				bin.DominantTone = "calm"
			}
		}
		bins[i] = bin
	}
	return bins
}
