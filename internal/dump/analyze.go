package dump

import (
	"io"

	"dumptool/internal/report"
	"dumptool/internal/scanner"
)

// Analyze drives the statement reader over the whole dump, tallying per-kind
// counters and per-table occurrences into stats. The source is never mutated.
func Analyze(r io.Reader, stats *report.Stats, progress func(n int)) error {
	sr := scanner.NewStatementReader(r)
	if progress != nil {
		sr.OnLine = func(raw string) { progress(len(raw)) }
	}

	for {
		text, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		stats.Count(scanner.Classify(text))
	}

	stats.LineCount = sr.Lines()
	return nil
}
