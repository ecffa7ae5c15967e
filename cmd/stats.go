package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print statistics about a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStoredDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err := resolveRunID(cmd, db)
		if err != nil {
			return err
		}

		stats, err := db.SeedStats(context.Background(), runID)
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No data in the database to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "SEED\tSUGGESTIONS\t")

		total := 0
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%d\t\n", s.Seed, s.Count)
			total += s.Count
		}

		fmt.Fprintln(w, " \t \t")
		fmt.Fprintf(w, "TOTAL\t%d\t\n", total)
		fmt.Fprintf(w, "AVG PER SEED\t%.1f\t\n", float64(total)/float64(len(stats)))

		w.Flush()

		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("run", "r", "latest", "Run to inspect: a run id or \"latest\"")
	statsCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: ~/.config/suggestscope/suggestscope.sqlite)")
	rootCmd.AddCommand(statsCmd)
}
