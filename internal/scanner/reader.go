package scanner

import (
	"bufio"
	"io"
	"strings"
)

// StatementReader assembles cleaned line fragments into complete statements.
// A statement completes when the scanner reports a terminator outside any
// string or comment region; the buffer through the last such terminator is
// emitted and the remainder (empty in well-formed dumps) seeds the next
// statement. Terminators inside quoted literals never complete a statement,
// even when the literal closes before the end of the line. At EOF any
// leftover buffer is emitted without a terminator so truncated dumps still
// yield their tail.
type StatementReader struct {
	// OnLine, when set, observes every raw physical line before scanning.
	// Used for byte-based progress reporting.
	OnLine func(raw string)

	br       *bufio.Reader
	state    ScanState
	buf      strings.Builder
	lastTerm int // buffer offset of the last unquoted terminator, -1 if none
	lines    int64
	eof      bool
}

func NewStatementReader(r io.Reader) *StatementReader {
	return &StatementReader{br: bufio.NewReader(r), lastTerm: -1}
}

// Lines returns the number of physical lines consumed so far.
func (sr *StatementReader) Lines() int64 {
	return sr.lines
}

// Next returns the next complete statement, or io.EOF when the input is
// exhausted. Blank and comment-only assemblies are skipped silently.
func (sr *StatementReader) Next() (string, error) {
	for !sr.eof {
		raw, err := sr.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if err == io.EOF {
			sr.eof = true
			if raw == "" {
				break
			}
		}
		sr.lines++
		if sr.OnLine != nil {
			sr.OnLine(raw)
		}

		line := strings.TrimRight(raw, "\r\n")
		cleaned, term, next := ScanLine(sr.state, line)
		sr.state = next
		if term >= 0 {
			sr.lastTerm = sr.buf.Len() + term
		}
		sr.buf.WriteString(cleaned)
		sr.buf.WriteByte(' ')

		if sr.lastTerm < 0 {
			continue
		}

		full := sr.buf.String()
		cut := sr.lastTerm
		sr.lastTerm = -1
		stmt := strings.TrimSpace(full[:cut+1])
		sr.buf.Reset()
		sr.buf.WriteString(strings.TrimLeft(full[cut+1:], " "))

		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		return stmt, nil
	}

	// Tail without a trailing terminator.
	if rest := strings.TrimSpace(sr.buf.String()); rest != "" && !strings.HasPrefix(rest, "--") {
		sr.buf.Reset()
		return rest, nil
	}
	return "", io.EOF
}
