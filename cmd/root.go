/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var optVerbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "polysplit",
	Short: "Split complex polygons into simple constituents",
	Long: `polysplit subdivides polygons with too many ring vertices into
smaller polygons whose union reconstructs the original shape,
for fast point-in-polygon indexing downstream.

Features are newline-delimited GeoJSON, gzipped or not.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initViper)
	rootCmd.PersistentFlags().BoolVarP(&optVerbose, "verbose", "v", false,
		"Verbose mode (debug logging)")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initViper() {
	viper.SetEnvPrefix("POLYSPLIT")
	viper.AutomaticEnv()
}

// setDefaultSlog configures the default logger per the verbosity flag.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)
	log.SetOutput(os.Stderr)
}
