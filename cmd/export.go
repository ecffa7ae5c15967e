package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/movingtraffic/suggestscope/internal/utils"
	"github.com/movingtraffic/suggestscope/pkg/records"
	"github.com/movingtraffic/suggestscope/pkg/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored run as CSV",
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

		rs, err := db.GetRunRecords(context.Background(), runID)
		if err != nil {
			return err
		}
		if len(rs) == 0 {
			return fmt.Errorf("run %d has no stored suggestions", runID)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return records.WriteCSV(cmd.OutOrStdout(), rs)
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := records.WriteCSV(f, rs); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		utils.Log.Infof("Exported %d rows from run %d to %s", len(rs), runID, output)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("run", "r", "latest", "Run to export: a run id or \"latest\"")
	exportCmd.Flags().StringP("output", "o", "", "CSV output file (default: stdout)")
	exportCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: ~/.config/suggestscope/suggestscope.sqlite)")
	rootCmd.AddCommand(exportCmd)
}

// openStoredDB opens the run database, failing when it doesn't exist.
func openStoredDB(cmd *cobra.Command) (*storage.DB, error) {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("database not found: %s", absPath)
	}
	return storage.Open(absPath)
}

func resolveRunID(cmd *cobra.Command, db *storage.DB) (int64, error) {
	runFlag, _ := cmd.Flags().GetString("run")
	if runFlag == "" || runFlag == "latest" {
		return db.LatestRunID(context.Background())
	}
	id, err := strconv.ParseInt(runFlag, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run id %q", runFlag)
	}
	return id, nil
}
