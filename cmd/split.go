package cmd

import (
	"fmt"
	"time"

	"dumptool/internal/dump"
	"dumptool/internal/report"

	"github.com/spf13/cobra"
)

var linesPerFile int

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a dump into fixed-size chunks of physical lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		printHeader(path, "split", "")
		start := time.Now()

		outDir := output
		if outDir == "" {
			outDir = "split_output"
		}
		fmt.Printf("✂️  Splitting file into %d lines per chunk...\n", linesPerFile)
		fmt.Printf("📁 Output directory: %s\n", outDir)

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

		progress, stop := byteProgress("Splitting: ", info.SizeBytes)
		parts, err := dump.Split(f, outDir, linesPerFile, progress)
		stop()
		if err != nil {
			return err
		}
		fmt.Printf("✅ Split complete! Created %d files in '%s'\n", parts, outDir)

		return finishReport(stats, map[string]any{
			"mode":           "split",
			"file":           path,
			"output":         outDir,
			"lines_per_file": linesPerFile,
			"encoding":       encoding,
		}, start)
	},
}

func init() {
	RootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&linesPerFile, "lines-per-file", "l", 100000, "lines per output file")
}
