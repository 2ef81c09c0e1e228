package cmd

import (
	"fmt"
	"time"

	"dumptool/internal/dump"
	"dumptool/internal/report"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Report tables referenced by INSERT but never declared",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		printHeader(path, "validate", "")
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
		stats := report.NewStats()
		stats.FileInfo = info

		f, err := src.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		fmt.Println("🔍 Validating SQL dump integrity...")
		progress, stop := byteProgress("Validating: ", info.SizeBytes)
		issues, err := dump.Validate(f, stats, progress)
		stop()
		if err != nil {
			return err
		}

		fmt.Printf("✅ Validation complete. Found %d issues.\n", len(issues))
		for _, issue := range issues {
			fmt.Printf("   ⚠️  %s\n", issue.Detail)
		}

		return finishReport(stats, map[string]any{
			"mode":     "validate",
			"file":     path,
			"encoding": encoding,
		}, start)
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
