package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Service struct {
	URL string `mapstructure:"url"`
}

type Services struct {
	ASR       Service `mapstructure:"asr"`
	Sentiment Service `mapstructure:"sentiment"`
}

type Storage struct {
	DSN string `mapstructure:"dsn"`
}

type Paths struct {
	Uploads     string `mapstructure:"uploads"`
	Transcripts string `mapstructure:"transcripts"`
	Results     string `mapstructure:"results"`
}

type Upload struct {
	MaxSizeMB      int64    `mapstructure:"max_size_mb"`
	MaxDurationSec float64  `mapstructure:"max_duration_sec"`
	AllowedFormats []string `mapstructure:"allowed_formats"`
}

type Analysis struct {
	MaxSentences   int     `mapstructure:"max_sentences"`
	TimelineBins   int     `mapstructure:"timeline_bins"`
	MinBinWidthSec float64 `mapstructure:"min_bin_width_sec"`
	LexiconPath    string  `mapstructure:"lexicon_path"`
}

type Root struct {
	LogLevel string   `mapstructure:"log_level"`
	Services Services `mapstructure:"services"`
	Storage  Storage  `mapstructure:"storage"`
	Paths    Paths    `mapstructure:"paths"`
	Upload   Upload   `mapstructure:"upload"`
	Analysis Analysis `mapstructure:"analysis"`
}

// Load reads config.yaml from the working directory or ./config, with
// VIBEJUDGE_* environment overrides. A missing file is fine; defaults cover
// everything except the service URLs and the DSN, which each command
// validates for itself.
func Load() (*Root, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("vibejudge")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("paths.uploads", "data/uploads")
	v.SetDefault("paths.transcripts", "data/transcripts")
	v.SetDefault("paths.results", "data/results")
	v.SetDefault("upload.max_size_mb", 100)
	v.SetDefault("upload.max_duration_sec", 3600)
	v.SetDefault("upload.allowed_formats", []string{"mp3", "wav", "m4a", "ogg", "flac"})
	v.SetDefault("analysis.max_sentences", 50)
	v.SetDefault("analysis.timeline_bins", 20)
	v.SetDefault("analysis.min_bin_width_sec", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
