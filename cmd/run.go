package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/movingtraffic/suggestscope/internal/utils"
	"github.com/movingtraffic/suggestscope/pkg/collector"
	"github.com/movingtraffic/suggestscope/pkg/records"
	"github.com/movingtraffic/suggestscope/pkg/storage"
	"github.com/movingtraffic/suggestscope/pkg/suggest"
	"github.com/movingtraffic/suggestscope/pkg/variants"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Expand seeds into variants and scrape suggestions for each one",
	Long: `Expands every seed into query variants (letters, wildcards, question
words at the enabled positions), queries the suggestion endpoint for each
variant sequentially with a politeness delay, and writes the deduplicated
results as CSV. Ctrl-C stops the run; partial results are still written.`,
	RunE: runRunCmd,
}

func init() {
	runCmd.Flags().StringP("seeds", "s", "", "Seed phrases, comma separated (e.g. \"hey google,ok google\")")
	runCmd.Flags().StringP("seeds-file", "f", "", "File with one seed per line, or - for stdin")
	runCmd.Flags().String("lang", "", "Language code (e.g. en, en-GB; default from config)")
	runCmd.Flags().String("region", "", "Region code (e.g. US, GB, CA; default from config)")
	runCmd.Flags().IntP("max", "m", 0, "Max queries per seed, 1-100 (default from config)")
	runCmd.Flags().Int("delay", -1, "Delay between requests in milliseconds (default from config)")

	runCmd.Flags().Bool("letters", true, "Letter (a-z) insertion variants")
	runCmd.Flags().Bool("wildcards", true, "Wildcard (*) variants")
	runCmd.Flags().Bool("questions", true, "Question word variants")
	runCmd.Flags().Bool("prefix", true, "Insert before the seed")
	runCmd.Flags().Bool("infix", false, "Insert inside multi-word seeds")
	runCmd.Flags().Bool("suffix", true, "Insert after the seed")

	runCmd.Flags().StringP("output", "o", "", "CSV output file (default: stdout)")
	runCmd.Flags().Bool("db", false, "Also save the run to the local database")
	runCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: ~/.config/suggestscope/suggestscope.sqlite)")

	rootCmd.AddCommand(runCmd)
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	seeds, err := gatherSeeds(cmd)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return errors.New("no seeds provided: use --seeds or --seeds-file")
	}

	lang := flagOrConfig(cmd, "lang", "suggest.lang")
	region := flagOrConfig(cmd, "region", "suggest.region")

	maxPerVariant, _ := cmd.Flags().GetInt("max")
	if !cmd.Flags().Changed("max") {
		maxPerVariant = viper.GetInt("run.max_per_variant")
	}
	// Clamp here so the collector and the stored run metadata agree on
	// the effective cap.
	maxPerVariant = collector.ClampMaxPerVariant(maxPerVariant)
	delayMs, _ := cmd.Flags().GetInt("delay")
	if !cmd.Flags().Changed("delay") {
		delayMs = viper.GetInt("suggest.delay_ms")
	}

	letters, _ := cmd.Flags().GetBool("letters")
	wildcards, _ := cmd.Flags().GetBool("wildcards")
	questions, _ := cmd.Flags().GetBool("questions")
	prefix, _ := cmd.Flags().GetBool("prefix")
	infix, _ := cmd.Flags().GetBool("infix")
	suffix, _ := cmd.Flags().GetBool("suffix")

	client := suggest.NewClient()
	client.BaseURL = viper.GetString("suggest.base_url")
	client.ClientID = viper.GetString("suggest.client")
	if proxy, _ := rootCmd.PersistentFlags().GetString("proxy"); proxy != "" {
		if err := client.SetProxy(proxy); err != nil {
			return err
		}
	}

	cfg := collector.Config{
		Lang:          lang,
		Region:        region,
		MaxPerVariant: maxPerVariant,
		Delay:         time.Duration(delayMs) * time.Millisecond,
		Options: variants.Options{
			Letters:   letters,
			Wildcards: wildcards,
			Questions: questions,
			Prefix:    prefix,
			Infix:     infix,
			Suffix:    suffix,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := collector.Run(ctx, client, seeds, cfg, logProgress{})
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			utils.Log.Warnf("Run interrupted, writing the %d results collected so far", len(results))
		} else {
			return runErr
		}
	}

	if saveDB, _ := cmd.Flags().GetBool("db"); saveDB {
		if err := saveRun(cmd, lang, region, maxPerVariant, len(seeds), results); err != nil {
			return err
		}
	}

	return writeOutput(cmd, results)
}

// gatherSeeds merges --seeds and --seeds-file input into one ordered,
// trimmed list with blank entries dropped.
func gatherSeeds(cmd *cobra.Command) ([]string, error) {
	raw, _ := cmd.Flags().GetString("seeds")
	seeds := utils.SplitSeeds(raw)

	seedsFile, _ := cmd.Flags().GetString("seeds-file")
	if seedsFile != "" {
		var data []byte
		var err error
		if seedsFile == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(seedsFile)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read seeds file: %w", err)
		}
		seeds = append(seeds, utils.SplitSeeds(string(data))...)
	}

	return seeds, nil
}

func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func saveRun(cmd *cobra.Command, lang, region string, maxPerVariant, seedCount int, results records.ResultSet) error {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	absPath, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}

	lock, err := utils.NewDBLock(dbPath)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	db, err := storage.Open(absPath)
	if err != nil {
		return err
	}
	defer db.Close()

	meta := storage.RunMeta{Lang: lang, Region: region, MaxPerVariant: maxPerVariant, SeedCount: seedCount}
	runID, err := db.SaveRun(context.Background(), meta, results)
	if err != nil {
		return err
	}
	utils.Log.Infof("Saved run %d to %s", runID, absPath)
	return nil
}

func writeOutput(cmd *cobra.Command, results records.ResultSet) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return records.WriteCSV(cmd.OutOrStdout(), results)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := records.WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	utils.Log.Infof("Wrote %d results to %s", len(results), output)
	return nil
}

// logProgress reports collector progress through the logrus singleton.
type logProgress struct{}

func (logProgress) Fetching(seedIdx, seedTotal int, seed, variant string, variantIdx, variantCap int) {
	utils.Log.Infof("Seed %d/%d: '%s' | Variant: '%s' (%d/%d)", seedIdx, seedTotal, seed, variant, variantIdx, variantCap)
}

func (logProgress) FetchFailed(variant string, err error) {
	utils.Log.Warnf("Error fetching suggestions for '%s': %v", variant, err)
}

func (logProgress) Done(totalUnique int) {
	utils.Log.Infof("Complete! Found %d unique suggestions.", totalUnique)
}
