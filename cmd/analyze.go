package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibejudge/vibejudge/analysis"
	"github.com/vibejudge/vibejudge/clients"
	"github.com/vibejudge/vibejudge/orchestrator"
	"github.com/vibejudge/vibejudge/store"
)

var skipStore bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Run the full analysis pipeline on one audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if conf.Services.ASR.URL == "" {
			return fmt.Errorf("services.asr.url is not configured")
		}
		if conf.Services.Sentiment.URL == "" {
			return fmt.Errorf("services.sentiment.url is not configured")
		}

		lexicon, err := analysis.LoadLexicon(conf.Analysis.LexiconPath)
		if err != nil {
			return err
		}

		h := clients.NewHTTP()
		classifier := clients.NewSentimentClient(h, conf.Services.Sentiment.URL)
		analyzer, err := analysis.New(classifier, lexicon, analysis.Options{
			MaxSentences: conf.Analysis.MaxSentences,
			TimelineBins: conf.Analysis.TimelineBins,
			MinBinWidth:  conf.Analysis.MinBinWidthSec,
		}, log)
		if err != nil {
			return err
		}

		var st *store.Store
		if !skipStore {
			st, err = store.Open(conf.Storage.DSN, log)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}
		}

		asr := clients.NewASRClient(h, conf.Services.ASR.URL)
		pipeline := orchestrator.NewPipeline(conf, asr, analyzer, st, log)
		out, err := pipeline.Run(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("podcast %s analyzed in %.1fs\n", out.PodcastID, out.ProcessingTime)
		fmt.Printf("  sentiment: %s (%.2f)\n", out.Result.Sentiment.OverallSentiment, out.Result.Sentiment.OverallScore)
		fmt.Printf("  tone:      %s\n", out.Result.Tone.DominantTone)
		fmt.Printf("  bias:      %d/100 (%s), %d flags\n", out.Result.Bias.Score, out.Result.Bias.Level, out.Result.Bias.FlagsCount)
		fmt.Printf("  results:   %s\n", out.ResultPath)
		if out.ReportPath != "" {
			fmt.Printf("  report:    %s\n", out.ReportPath)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&skipStore, "no-store", false, "skip database persistence")
	rootCmd.AddCommand(analyzeCmd)
}
