package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vibejudge/vibejudge/store"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(conf.Storage.DSN, log)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.EnsureSchema(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}
