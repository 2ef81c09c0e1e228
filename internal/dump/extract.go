package dump

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"dumptool/internal/scanner"
)

// insertPattern matches an INSERT for one specific table and captures the
// column list and the VALUES clause.
func insertPattern(table string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)^INSERT\s+(?:IGNORE\s+)?INTO\s+` +
		"[`\"]?" + regexp.QuoteMeta(table) + "[`\"]?" +
		`\s*\(([^)]+)\)\s*VALUES\s*(.*)$`)
}

// Extract writes one CSV row per value tuple of the target table's INSERT
// statements. The column list is taken once from the first matching
// statement; tuples whose arity does not match the column count are dropped
// silently. Values are plain text, one layer of quoting stripped and
// backslash escapes resolved.
func Extract(r io.Reader, table string, out io.Writer, progress func(n int)) (int64, error) {
	pattern := insertPattern(table)
	w := csv.NewWriter(out)

	var columns []string
	var rows int64

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
			return rows, err
		}

		stmt := scanner.Classify(text)
		if stmt.Kind != scanner.KindInsert || !strings.EqualFold(stmt.Table, table) {
			continue
		}
		m := pattern.FindStringSubmatch(strings.TrimSpace(text))
		if m == nil {
			// INSERT without an explicit column list; nothing to map.
			continue
		}

		if columns == nil {
			columns = splitColumns(m[1])
			log.Debugf("Columns for %s: %s", table, strings.Join(columns, ", "))
			if err := w.Write(columns); err != nil {
				return rows, fmt.Errorf("failed to write CSV header: %w", err)
			}
		}

		for _, tuple := range splitTuples(m[2]) {
			values := scanner.ParseValues(tuple)
			if len(values) != len(columns) {
				continue
			}
			if err := w.Write(values); err != nil {
				return rows, fmt.Errorf("failed to write CSV row: %w", err)
			}
			rows++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return rows, nil
}

func splitColumns(list string) []string {
	parts := strings.Split(list, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		columns = append(columns, strings.Trim(strings.TrimSpace(p), "`\""))
	}
	return columns
}

// splitTuples walks a VALUES clause and returns the content of each
// top-level parenthesized tuple, honoring quoted regions and escapes so
// commas and parens inside string literals do not end a tuple.
func splitTuples(values string) []string {
	var tuples []string
	var current strings.Builder
	depth := 0
	inQuotes := false
	var quote byte
	escape := false

	for i := 0; i < len(values); i++ {
		c := values[i]

		if inQuotes {
			current.WriteByte(c)
			if escape {
				escape = false
			} else if c == '\\' {
				escape = true
			} else if c == quote {
				inQuotes = false
			}
			continue
		}

		switch {
		case c == '\'' || c == '"':
			inQuotes = true
			quote = c
			current.WriteByte(c)
		case c == '(':
			if depth > 0 {
				current.WriteByte(c)
			}
			depth++
		case c == ')':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				tuples = append(tuples, current.String())
				current.Reset()
			} else if depth > 0 {
				current.WriteByte(c)
			}
		default:
			if depth > 0 {
				current.WriteByte(c)
			}
		}
	}
	return tuples
}
