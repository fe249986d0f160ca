package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vibejudge/vibejudge/analysis"
	"github.com/vibejudge/vibejudge/clients"
	cfg "github.com/vibejudge/vibejudge/config"
	"github.com/vibejudge/vibejudge/media"
	"github.com/vibejudge/vibejudge/report"
	"github.com/vibejudge/vibejudge/store"
)

// Pipeline runs the fixed analysis sequence for one uploaded episode:
// validate, preprocess, transcribe, analyze, persist, render. It is
// synchronous and single-flight; the caller serializes runs.
type Pipeline struct {
	cfg      *cfg.Root
	asr      clients.Transcriber
	analyzer *analysis.Analyzer
	store    *store.Store
	log      logrus.FieldLogger
}

// RunOutput names the artifacts one run produced.
type RunOutput struct {
	PodcastID      string
	AnalysisID     int64
	Result         *analysis.Result
	TranscriptPath string
	ResultPath     string
	ChartPath      string
	ReportPath     string
	ProcessingTime float64
}

func NewPipeline(c *cfg.Root, asr clients.Transcriber, analyzer *analysis.Analyzer, st *store.Store, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, asr: asr, analyzer: analyzer, store: st, log: log}
}

// Run processes one audio file end to end. Analysis-stage problems degrade to
// neutral defaults inside the analyzer; errors returned here are the
// pipeline-boundary failures (bad file, transcription down, store down).
func (p *Pipeline) Run(ctx context.Context, audioPath string) (*RunOutput, error) {
	started := time.Now()

	if err := media.ValidateFile(audioPath, p.cfg.Upload.AllowedFormats, p.cfg.Upload.MaxSizeMB); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	duration := media.Duration(ctx, audioPath)
	if max := p.cfg.Upload.MaxDurationSec; max > 0 && duration > max {
		return nil, fmt.Errorf("validate: audio is %.0fs, max %.0fs", duration, max)
	}

	podcastID := uuid.NewString()
	log := p.log.WithField("podcast_id", podcastID)

	if err := p.registerPodcast(ctx, podcastID, audioPath, duration); err != nil {
		return nil, err
	}

	out, err := p.process(ctx, log, podcastID, audioPath, started)
	elapsed := time.Since(started).Seconds()
	if err != nil {
		p.setStatus(ctx, log, podcastID, "failed", err.Error(), "")
		return nil, err
	}
	out.ProcessingTime = elapsed
	p.setStatus(ctx, log, podcastID, "completed", "", out.TranscriptPath)

	log.WithFields(logrus.Fields{
		"elapsed":    fmt.Sprintf("%.1fs", elapsed),
		"sentences":  out.Result.Sentiment.SentenceCount,
		"bias_score": out.Result.Bias.Score,
		"tone":       out.Result.Tone.DominantTone,
	}).Info("analysis complete")
	return out, nil
}

func (p *Pipeline) process(ctx context.Context, log logrus.FieldLogger, podcastID, audioPath string, started time.Time) (*RunOutput, error) {
	log.Info("preprocessing audio")
	processed, err := media.Preprocess(ctx, audioPath)
	if err != nil {
		// transcription may still cope with the original encoding
		log.WithError(err).Warn("preprocess failed, using original file")
	}

	log.Info("transcribing")
	transcript, err := p.asr.Transcribe(ctx, processed)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	log.WithFields(logrus.Fields{
		"segments": len(transcript.Segments),
		"language": transcript.Language,
		"duration": transcript.Duration,
	}).Info("transcription done")

	transcriptPath := filepath.Join(p.cfg.Paths.Transcripts, podcastID+"_transcript.json")
	if err := writeJSON(transcriptPath, transcript); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	log.Info("analyzing")
	result, err := p.analyzer.Analyze(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	resultPath := filepath.Join(p.cfg.Paths.Results, podcastID+"_result.json")
	if err := writeJSON(resultPath, result); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	out := &RunOutput{
		PodcastID:      podcastID,
		Result:         result,
		TranscriptPath: transcriptPath,
		ResultPath:     resultPath,
	}

	if p.store != nil {
		analysisID, err := p.store.InsertAnalysis(ctx, store.AnalysisRecord{
			PodcastID:      podcastID,
			Sentiment:      result.Sentiment,
			Tone:           result.Tone,
			Bias:           result.Bias,
			ProcessingTime: time.Since(started).Seconds(),
			ResultJSONPath: resultPath,
		})
		if err != nil {
			return nil, err
		}
		out.AnalysisID = analysisID
		if err := p.store.InsertBiasFlags(ctx, analysisID, result.Bias.Flags); err != nil {
			return nil, err
		}
	}

	// timeline chart and PDF degrade independently: a render failure should
	// not fail a run the store already accepted
	chartPath := filepath.Join(p.cfg.Paths.Results, podcastID+"_timeline.png")
	if err := report.RenderTimelineChart(result.Sentiment.Timeline, chartPath); err != nil {
		log.WithError(err).Warn("chart render failed")
		chartPath = ""
	}
	out.ChartPath = chartPath

	reportPath := filepath.Join(p.cfg.Paths.Results, podcastID+"_report.pdf")
	meta := report.Meta{
		PodcastID: podcastID,
		Filename:  filepath.Base(audioPath),
		Duration:  transcript.Duration,
		Language:  transcript.Language,
	}
	if err := report.GeneratePDF(meta, result, chartPath, reportPath); err != nil {
		log.WithError(err).Warn("pdf generation failed")
		reportPath = ""
	}
	out.ReportPath = reportPath

	return out, nil
}

func (p *Pipeline) registerPodcast(ctx context.Context, id, audioPath string, duration float64) error {
	if p.store == nil {
		return nil
	}
	size := fileSize(audioPath)
	if err := p.store.InsertPodcast(ctx, store.Podcast{
		ID:               id,
		Filename:         filepath.Base(audioPath),
		OriginalFilename: filepath.Base(audioPath),
		FileSize:         size,
		FilePath:         audioPath,
		Duration:         duration,
	}); err != nil {
		return err
	}
	return p.store.UpdatePodcastStatus(ctx, id, "processing", "", "")
}

func (p *Pipeline) setStatus(ctx context.Context, log logrus.FieldLogger, id, status, errMsg, transcriptPath string) {
	if p.store == nil {
		return
	}
	if err := p.store.UpdatePodcastStatus(ctx, id, status, errMsg, transcriptPath); err != nil {
		log.WithError(err).Warn("status update failed")
	}
}
