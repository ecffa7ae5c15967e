package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/movingtraffic/suggestscope/internal/utils"
	"github.com/movingtraffic/suggestscope/pkg/suggest"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 ___ _   _  __ _  __ _  ___  ___ ___ ___  _ __   ___
	/ __| | | |/ _' |/ _' |/ _ \/ __/ __/ _ \| '_ \ / _ \
	\__ \ |_| | (_| | (_| |  __/\__ \__ \ (_) | |_) |  __/
	|___/\__,_|\__, |\__, |\___||___/___/\___/| .__/ \___|
	           |___/ |___/                    |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "suggestscope",
	Short: "An autocomplete suggestion scraper for voice-style queries.",
	Long: LOGO + `suggestscope expands seed phrases into query variants (letters, wildcards,
question words) and collects the autocomplete suggestions each variant
elicits, right from your command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.suggestscope.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".suggestscope")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.suggestscope.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default values for all keys
	viper.SetDefault("suggest.base_url", suggest.DefaultBaseURL)
	viper.SetDefault("suggest.client", suggest.DefaultClientID)
	viper.SetDefault("suggest.lang", "en")
	viper.SetDefault("suggest.region", "US")
	viper.SetDefault("suggest.delay_ms", 100)
	viper.SetDefault("run.max_per_variant", 20)

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
