package cmd

import (
	"time"

	"dumptool/internal/report"

	"github.com/gosuri/uiprogress"
)

// byteProgress sets up a byte-based progress bar over the source file and
// returns the per-line callback the drivers expect plus a stop function.
func byteProgress(label string, total int64) (func(n int), func()) {
	if total <= 0 {
		return nil, func() {}
	}
	uiprogress.Start()
	bar := uiprogress.AddBar(int(total)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return label
	})

	current := 0
	progress := func(n int) {
		current += n
		if current > int(total) {
			current = int(total)
		}
		bar.Set(current)
	}
	return progress, uiprogress.Stop
}

// finishReport prints the run summary and persists it when --report was
// given.
func finishReport(stats *report.Stats, options map[string]any, start time.Time) error {
	rep := report.New(stats, options, time.Since(start))
	rep.Print()
	if reportPath != "" {
		if err := rep.Save(reportPath); err != nil {
			return err
		}
		log.Infof("Full report saved to: %s", reportPath)
	}
	return nil
}
