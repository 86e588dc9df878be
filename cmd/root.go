// Copyright © 2024 The Sonnet authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sonnet",
	Short: "Sonnet — lazy configuration-value runtime",
	Long: `Sonnet evaluates lazy configuration values and manifests them as JSON or
YAML documents.

Getting started:
  sonnet manifest config.json            Re-manifest a JSON document
  sonnet manifest -f yaml config.json    Manifest as block YAML
  sonnet manifest -f yaml-stream in.json Emit each array element as a YAML doc
  sonnet manifest -i 4 config.json       Pretty-print with a 4-space indent

Values are lazy: array elements and object fields are deferred until an
output format forces them, and a value is computed at most once.

More information:
  Source code:     https://github.com/sonnetlang/sonnet`,
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sonnet.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sonnet" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".sonnet")
	}

	viper.SetEnvPrefix("sonnet")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
