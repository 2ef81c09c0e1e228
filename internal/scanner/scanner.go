// Package scanner finds statement boundaries in SQL dump text. It is not a
// SQL parser: it tracks just enough lexical state (quotes, comments, escapes)
// to know when a semicolon really ends a statement, and to classify complete
// statements by their leading keywords.
package scanner

import "strings"

// ScanLine processes one physical line (line terminator already stripped)
// under the given state and returns the cleaned content, the offset within it
// of the last statement terminator seen outside any string or comment region
// (-1 when the line has none), and the state to carry into the next line.
// Comments are stripped from the output; quoted regions pass through
// verbatim. A semicolon inside a string or comment is never reported as a
// terminator, even when the string closes later on the same line.
func ScanLine(st ScanState, line string) (string, int, ScanState) {
	var out strings.Builder
	out.Grow(len(line))
	term := -1

	for i := 0; i < len(line); i++ {
		c := line[i]

		if st.EscapeNext {
			out.WriteByte(c)
			st.EscapeNext = false
			continue
		}

		if st.InString {
			out.WriteByte(c)
			if c == '\\' {
				st.EscapeNext = true
			} else if c == st.Delim {
				st.InString = false
				st.Delim = 0
			}
			continue
		}

		if st.InComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				st.InComment = false
				i++
			}
			continue
		}

		// -- truncates the rest of the physical line.
		if c == '-' && i+1 < len(line) && line[i+1] == '-' {
			break
		}

		if c == '/' && i+1 < len(line) && line[i+1] == '*' {
			st.InComment = true
			i++
			continue
		}

		if c == '\'' || c == '"' || c == '`' {
			st.InString = true
			st.Delim = c
			out.WriteByte(c)
			continue
		}

		if c == ';' {
			term = out.Len()
		}
		out.WriteByte(c)
	}

	return out.String(), term, st
}
