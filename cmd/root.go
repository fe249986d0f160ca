package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/vibejudge/vibejudge/config"
)

var (
	conf *cfg.Root
	log  = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "vibejudge",
	Short: "Podcast content analysis: sentiment, tone and bias",
	Long: `VibeJudge transcribes a podcast episode through an external ASR service,
runs sentiment, tone and bias analysis over the transcript, persists the
results to Postgres and renders a timeline chart and a PDF report.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfg.Load()
		if err != nil {
			return err
		}
		conf = c
		if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
