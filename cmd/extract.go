package cmd

import (
	"fmt"
	"os"
	"time"

	"dumptool/internal/dump"
	"dumptool/internal/report"

	"github.com/spf13/cobra"
)

var extractTable string

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract one table's INSERT data to CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractTable == "" {
			return fmt.Errorf("table name required for extract mode; use --table")
		}
		path := args[0]
		printHeader(path, "extract", "")
		start := time.Now()

		outPath := output
		if outPath == "" {
			outPath = extractTable + "_extracted.csv"
		}
		fmt.Printf("📥 Extracting data from table: %s\n", extractTable)
		fmt.Printf("💾 Output: %s\n", outPath)

		src, err := dump.OpenSource(path, encoding)
		if err != nil {
			return err
		}
		defer src.Cleanup()

		info, err := src.Info()
		if err != nil {
			return err
		}
		stats := report.NewStats()
		stats.FileInfo = info

		f, err := src.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output %s: %w", outPath, err)
		}
		defer out.Close()

		progress, stop := byteProgress("Extracting: ", info.SizeBytes)
		rows, err := dump.Extract(f, extractTable, out, progress)
		stop()
		if err != nil {
			return err
		}
		fmt.Printf("✅ Extracted %d rows from table '%s'\n", rows, extractTable)

		return finishReport(stats, map[string]any{
			"mode":     "extract",
			"file":     path,
			"table":    extractTable,
			"output":   outPath,
			"encoding": encoding,
		}, start)
	},
}

func init() {
	RootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractTable, "table", "t", "", "table to extract (required)")
}
