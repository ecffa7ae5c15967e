package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openStoredDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs stored yet.")
			return nil
		}
		for _, r := range runs {
			ts := r.StartedAt.Format("2006-01-02 15:04:05")
			fmt.Printf("%d  %s  %s/%s  seeds=%d  max=%d  suggestions=%d\n",
				r.ID, ts, r.Lang, r.Region, r.SeedCount, r.MaxPerVariant, r.SuggestionCount)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: ~/.config/suggestscope/suggestscope.sqlite)")
	rootCmd.AddCommand(runsCmd)
}
