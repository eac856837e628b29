package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tacenda/wordveil/cmd/mask"
	"github.com/tacenda/wordveil/cmd/scan"
	"github.com/tacenda/wordveil/cmd/stream"
	"github.com/tacenda/wordveil/cmd/words"
	"github.com/tacenda/wordveil/internal/pkg/logger"
	"github.com/tacenda/wordveil/internal/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "wordveil",
	Short:   "wordveil screens text for sensitive words",
	Long:    fmt.Sprintf("wordveil %s - multi-pattern sensitive-word scanner and masker", version.GetVersion()),
	Version: version.GetFullVersion(),
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func addSubcommands() {
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(mask.MaskCmd)
	rootCmd.AddCommand(stream.StreamCmd)
	rootCmd.AddCommand(words.WordsCmd)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Initialize structured logging
	logger.Initialize()

	addSubcommands()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wordveil/config.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Priority order for config files:
		// 1. ~/.config/wordveil/config.yaml (preferred, with directory for other files)
		// 2. ~/.config/wordveil.yaml (XDG standard)
		// 3. ~/.wordveil.yaml (legacy)
		viper.AddConfigPath(home + "/.config/wordveil")
		viper.AddConfigPath(home + "/.config")
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")

		// Try "config" name first (in ~/.config/wordveil/config.yaml)
		viper.SetConfigName("config")
		if err := viper.ReadInConfig(); err != nil {
			// Fall back to "wordveil" name
			viper.SetConfigName("wordveil")
		}
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
