package cmd

import (
	"fmt"
	"time"

	"dumptool/internal/dump"
	"dumptool/internal/report"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Collect statement and table statistics from a dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		printHeader(path, "analyze", "")
		start := time.Now()

		src, err := dump.OpenSource(path, encoding)
		if err != nil {
			return err
		}
		defer src.Cleanup()

		info, err := src.Info()
		if err != nil {
			return err
		}
		fmt.Printf("📊 Analyzing file: %s\n", src.Path)
		fmt.Printf("💾 Size: %.2f MB\n", info.SizeMB)

		stats := report.NewStats()
		stats.FileInfo = info

		f, err := src.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		progress, stop := byteProgress("Analyzing: ", info.SizeBytes)
		err = dump.Analyze(f, stats, progress)
		stop()
		if err != nil {
			return err
		}

		return finishReport(stats, map[string]any{
			"mode":     "analyze",
			"file":     path,
			"encoding": encoding,
		}, start)
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}
