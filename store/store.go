package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vibejudge/vibejudge/analysis"
)

//go:embed schema.sql
var schema string

// Store wraps the Postgres connection for podcast and analysis records.
type Store struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// Podcast is one uploaded episode.
type Podcast struct {
	ID               string
	Filename         string
	OriginalFilename string
	FileSize         int64
	FilePath         string
	Duration         float64
	UploadDate       time.Time
	Status           string
	ErrorMessage     string
	TranscriptPath   string
}

// AnalysisRecord is the flattened per-analysis row.
type AnalysisRecord struct {
	PodcastID      string
	Sentiment      analysis.SentimentResult
	Tone           analysis.ToneResult
	Bias           analysis.BiasResult
	ProcessingTime float64
	ResultJSONPath string
}

// Statistics summarizes the whole store.
type Statistics struct {
	TotalPodcasts     int
	TotalAnalyses     int
	AvgBiasScore      float64
	AvgSentimentScore float64
}

func Open(dsn string, log logrus.FieldLogger) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("storage dsn is not configured")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the tables if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	s.log.Info("database schema ensured")
	return nil
}

func (s *Store) InsertPodcast(ctx context.Context, p Podcast) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO podcasts (id, filename, original_filename, file_size, file_path, duration, upload_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Filename, p.OriginalFilename, p.FileSize, p.FilePath, p.Duration, time.Now(), "uploaded")
	if err != nil {
		return fmt.Errorf("insert podcast: %w", err)
	}
	return nil
}

func (s *Store) UpdatePodcastStatus(ctx context.Context, id, status, errorMessage, transcriptPath string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE podcasts SET status = $2, error_message = NULLIF($3, ''), transcript_path = NULLIF($4, '')
		WHERE id = $1`,
		id, status, errorMessage, transcriptPath)
	if err != nil {
		return fmt.Errorf("update podcast status: %w", err)
	}
	return nil
}

// InsertAnalysis writes the flattened analysis row and returns its id.
func (s *Store) InsertAnalysis(ctx context.Context, rec AnalysisRecord) (int64, error) {
	dist := rec.Tone.ToneDistribution
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO analyses (
			podcast_id,
			sentiment_positive_pct, sentiment_neutral_pct, sentiment_negative_pct, sentiment_score,
			dominant_tone,
			tone_calm_pct, tone_aggressive_pct, tone_persuasive_pct,
			tone_anxious_pct, tone_confident_pct, tone_excited_pct,
			bias_score, bias_level, bias_flags_count,
			processing_time, result_json_path
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id`,
		rec.PodcastID,
		rec.Sentiment.PositivePct, rec.Sentiment.NeutralPct, rec.Sentiment.NegativePct, rec.Sentiment.OverallScore,
		rec.Tone.DominantTone,
		dist["calm"], dist["aggressive"], dist["persuasive"],
		dist["anxious"], dist["confident"], dist["excited"],
		rec.Bias.Score, rec.Bias.Level, rec.Bias.FlagsCount,
		rec.ProcessingTime, rec.ResultJSONPath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

func (s *Store) InsertBiasFlags(ctx context.Context, analysisID int64, flags []analysis.BiasFlag) error {
	if len(flags) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin flags tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bias_flags (analysis_id, phrase, category, severity, flag_count, sentence, context, "timestamp", timestamp_seconds)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)
	if err != nil {
		return fmt.Errorf("prepare flags insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range flags {
		if _, err := stmt.ExecContext(ctx, analysisID, f.Phrase, f.Category, f.Severity, f.Count,
			f.Sentence, f.Context, f.Timestamp, f.TimestampSeconds); err != nil {
			return fmt.Errorf("insert flag %q: %w", f.Phrase, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit flags: %w", err)
	}
	s.log.WithField("flags", len(flags)).Debug("bias flags persisted")
	return nil
}

func (s *Store) RecentPodcasts(ctx context.Context, limit int) ([]Podcast, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, original_filename, file_size, file_path,
		       COALESCE(duration, 0), upload_date, status,
		       COALESCE(error_message, ''), COALESCE(transcript_path, '')
		FROM podcasts ORDER BY upload_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query podcasts: %w", err)
	}
	defer rows.Close()

	var out []Podcast
	for rows.Next() {
		var p Podcast
		if err := rows.Scan(&p.ID, &p.Filename, &p.OriginalFilename, &p.FileSize, &p.FilePath,
			&p.Duration, &p.UploadDate, &p.Status, &p.ErrorMessage, &p.TranscriptPath); err != nil {
			return nil, fmt.Errorf("scan podcast: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	var st Statistics
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM podcasts),
			(SELECT COUNT(*) FROM analyses),
			COALESCE((SELECT AVG(bias_score) FROM analyses), 0),
			COALESCE((SELECT AVG(sentiment_score) FROM analyses), 0)`).
		Scan(&st.TotalPodcasts, &st.TotalAnalyses, &st.AvgBiasScore, &st.AvgSentimentScore)
	if err != nil {
		return st, fmt.Errorf("query statistics: %w", err)
	}
	return st, nil
}
