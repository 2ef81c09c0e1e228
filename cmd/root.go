package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"dumptool/internal/logging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	encoding   string
	output     string
	reportPath string
	verbose    bool
)

var log = logging.GetLogger()

var RootCmd = &cobra.Command{
	Use:   "dumptool",
	Short: "Read, analyze, split and restore large SQL dump files",
	Long: `dumptool streams SQL dump files of any size, optionally gzip-compressed,
and runs one of five modes over them: analyze, extract, validate, split, restore.
Statement boundaries are detected lexically, so semicolons inside string
literals or comments never break a statement apart.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(verbose)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.CompletionOptions.DisableDefaultCmd = true

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./dumptool.yaml)")
	RootCmd.PersistentFlags().StringVarP(&encoding, "encoding", "e", "utf-8", "dump file encoding")
	RootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file or directory")
	RootCmd.PersistentFlags().StringVarP(&reportPath, "report", "r", "", "save the full report to a JSON file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show detailed progress information")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, then the working directory.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("dumptool")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// printHeader writes the run banner every mode starts with.
func printHeader(file, mode, extra string) {
	cyan := color.New(color.FgCyan)
	cyan.Println("================================================================================")
	fmt.Println("🔍 SQL Dump Processor")
	cyan.Println("================================================================================")
	fmt.Printf("📁 File: %s\n", file)
	fmt.Printf("🎯 Mode: %s\n", mode)
	if extra != "" {
		fmt.Println(extra)
	}
	cyan.Println("================================================================================")
	fmt.Println()
}
