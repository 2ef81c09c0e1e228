package scanner

import (
	"regexp"
	"strings"
)

// Fixed lexical patterns anchored at the statement start, tried in order.
// Anything no pattern matches is KindOther; there is no grammar fallback.
var classifiers = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{KindCreateTable, regexp.MustCompile("(?i)^CREATE\\s+TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?[`\"]?(\\w+)[`\"]?")},
	{KindInsert, regexp.MustCompile("(?i)^INSERT\\s+(?:IGNORE\\s+)?INTO\\s+[`\"]?(\\w+)[`\"]?")},
	{KindAlter, regexp.MustCompile("(?i)^ALTER\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?")},
	{KindDrop, regexp.MustCompile("(?i)^DROP\\s+TABLE\\s+(?:IF\\s+EXISTS\\s+)?[`\"]?(\\w+)[`\"]?")},
}

// Classify determines the statement kind and, for table-affecting kinds, the
// unquoted table identifier.
func Classify(text string) Statement {
	stmt := Statement{Text: text, Kind: KindOther}
	trimmed := strings.TrimSpace(text)

	for _, c := range classifiers {
		if m := c.re.FindStringSubmatch(trimmed); m != nil {
			stmt.Kind = c.kind
			stmt.Table = m[1]
			return stmt
		}
	}
	return stmt
}

// ParseValues splits one parenthesized value tuple (parens already removed)
// into its fields: commas inside quotes do not split, one layer of quoting is
// stripped, and backslash escapes are resolved. Every value comes back as
// text; no numeric typing is attempted.
func ParseValues(tuple string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false
	escape := false

	for i := 0; i < len(tuple); i++ {
		c := tuple[i]

		if escape {
			current.WriteByte(c)
			escape = false
			continue
		}
		if c == '\\' {
			escape = true
			continue
		}
		if c == '\'' || c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if c == ',' && !inQuotes {
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}

	if current.Len() > 0 {
		values = append(values, strings.TrimSpace(current.String()))
	}
	return values
}
