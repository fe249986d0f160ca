package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibejudge/vibejudge/store"
)

var recentLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics and recent podcasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, err := store.Open(conf.Storage.DSN, log)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Statistics(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("podcasts: %d   analyses: %d\n", stats.TotalPodcasts, stats.TotalAnalyses)
		fmt.Printf("avg bias score: %.2f   avg sentiment score: %.2f\n", stats.AvgBiasScore, stats.AvgSentimentScore)

		recent, err := st.RecentPodcasts(ctx, recentLimit)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println("\nrecent:")
			for _, p := range recent {
				fmt.Printf("  %s  %-30s  %-10s  %s\n",
					p.UploadDate.Format("2006-01-02 15:04"), p.OriginalFilename, p.Status, p.ID)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&recentLimit, "limit", 10, "number of recent podcasts to list")
	rootCmd.AddCommand(statsCmd)
}
