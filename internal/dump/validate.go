package dump

import (
	"fmt"
	"io"
	"sort"

	"dumptool/internal/report"
	"dumptool/internal/scanner"
)

// Issue is one referential problem found by Validate.
type Issue struct {
	Table  string
	Detail string
}

// Validate cross-references the tables declared by CREATE TABLE against the
// tables referenced by INSERT and reports every referenced-but-undeclared
// table. Declared-but-unreferenced tables are not flagged: the point is
// catching missing schema, not unused schema.
func Validate(r io.Reader, stats *report.Stats, progress func(n int)) ([]Issue, error) {
	created := make(map[string]bool)
	referenced := make(map[string]bool)

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
			return nil, err
		}
		stmt := scanner.Classify(text)
		stats.Count(stmt)

		switch stmt.Kind {
		case scanner.KindCreateTable:
			created[stmt.Table] = true
		case scanner.KindInsert:
			referenced[stmt.Table] = true
		}
	}
	stats.LineCount = sr.Lines()

	var missing []string
	for table := range referenced {
		if !created[table] {
			missing = append(missing, table)
		}
	}
	sort.Strings(missing)

	issues := make([]Issue, 0, len(missing))
	for _, table := range missing {
		issues = append(issues, Issue{
			Table:  table,
			Detail: fmt.Sprintf("Missing CREATE TABLE for: %s", table),
		})
	}
	return issues, nil
}
