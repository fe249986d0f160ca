package report

import (
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vibejudge/vibejudge/analysis"
)

// Meta names the episode the report describes.
type Meta struct {
	PodcastID string
	Filename  string
	Duration  float64
	Language  string
}

// GeneratePDF writes the full analysis report: header, sentiment summary,
// tone distribution, bias flags table, key moments, and the timeline chart
// if one was rendered.
func GeneratePDF(meta Meta, result *analysis.Result, chartPath, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("VibeJudge Analysis Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VibeJudge Analysis Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("File: %s", meta.Filename))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Duration: %s    Language: %s", analysis.FormatTimestamp(meta.Duration), meta.Language))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	writeSentimentSection(pdf, result.Sentiment)
	writeToneSection(pdf, result.Tone)
	writeBiasSection(pdf, result.Bias)
	writeKeyMoments(pdf, result.Sentiment.KeyMoments)

	if chartPath != "" {
		if _, err := os.Stat(chartPath); err == nil {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "B", 14)
			pdf.Cell(0, 8, "Sentiment Timeline")
			pdf.Ln(10)
			pdf.ImageOptions(chartPath, 10, pdf.GetY(), 190, 0, false,
				gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeSentimentSection(pdf *gofpdf.Fpdf, s analysis.SentimentResult) {
	sectionHeader(pdf, "Sentiment")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Overall: %s (score %.2f)", s.OverallSentiment, s.OverallScore))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Positive %.1f%%   Neutral %.1f%%   Negative %.1f%%",
		s.PositivePct, s.NeutralPct, s.NegativePct))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Sentences analyzed: %d of %d", s.AnalyzedCount, s.SentenceCount))
	pdf.Ln(9)
}

func writeToneSection(pdf *gofpdf.Fpdf, t analysis.ToneResult) {
	sectionHeader(pdf, "Tone")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Dominant tone: %s (%.1f%%, confidence %.2f)",
		t.DominantTone, t.DominantScore, t.Confidence))
	pdf.Ln(5)
	for _, cat := range analysis.ToneCategories {
		pdf.Cell(0, 5, fmt.Sprintf("  %-12s %5.1f%%", cat, t.ToneDistribution[cat]))
		pdf.Ln(4)
	}
	pdf.Ln(5)
}

func writeBiasSection(pdf *gofpdf.Fpdf, b analysis.BiasResult) {
	sectionHeader(pdf, "Bias")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Score: %d/100 (%s), %d flagged phrases", b.Score, b.Level, b.FlagsCount))
	pdf.Ln(7)

	if len(b.Flags) == 0 {
		pdf.Cell(0, 6, "No flagged phrases.")
		pdf.Ln(9)
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 6, "Phrase", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 6, "Category", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 6, "Severity", "1", 0, "", false, 0, "")
	pdf.CellFormat(18, 6, "Count", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 6, "Time", "1", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, f := range b.Flags {
		pdf.CellFormat(45, 6, f.Phrase, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, f.Category, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 6, f.Severity, "1", 0, "", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", f.Count), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 6, f.Timestamp, "1", 1, "", false, 0, "")
	}
	pdf.Ln(5)
}

func writeKeyMoments(pdf *gofpdf.Fpdf, km analysis.KeyMoments) {
	sectionHeader(pdf, "Key Moments")
	pdf.SetFont("Helvetica", "", 10)
	if km.MostPositive == nil && km.MostNegative == nil {
		pdf.Cell(0, 6, "No scored sentences.")
		pdf.Ln(9)
		return
	}
	if km.MostPositive != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Most positive [%s, %.2f]: %s",
			km.MostPositive.Timestamp, km.MostPositive.Score, km.MostPositive.Text), "", "", false)
		pdf.Ln(2)
	}
	if km.MostNegative != nil {
		pdf.MultiCell(0, 5, fmt.Sprintf("Most negative [%s, %.2f]: %s",
			km.MostNegative.Timestamp, km.MostNegative.Score, km.MostNegative.Text), "", "", false)
	}
	pdf.Ln(5)
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}
