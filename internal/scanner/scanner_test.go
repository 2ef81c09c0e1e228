package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanLine(t *testing.T) {
	assert := assert.New(t)
	testcases := []struct {
		name    string
		line    string
		cleaned string
		term    int
	}{
		{"plain", "SELECT 1;", "SELECT 1;", 8},
		{"no terminator", "SELECT 1", "SELECT 1", -1},
		{"line comment truncates", "CREATE TABLE t ( -- trailing note", "CREATE TABLE t ( ", -1},
		{"inline block comment", "SELECT /* note */ 1;", "SELECT  1;", 9},
		{"comment marker inside string", "INSERT INTO t VALUES ('a--b');", "INSERT INTO t VALUES ('a--b');", 29},
		{"comment marker inside backticks", "CREATE TABLE `weird--name` (", "CREATE TABLE `weird--name` (", -1},
		{"terminator inside string", "INSERT INTO t VALUES ('a;b');", "INSERT INTO t VALUES ('a;b');", 28},
		{"terminator only inside string", "VALUES ('a;b'),", "VALUES ('a;b'),", -1},
		{"escaped quote stays open-close balanced", `INSERT INTO t VALUES ('it\'s');`, `INSERT INTO t VALUES ('it\'s');`, 30},
	}
	for _, tc := range testcases {
		cleaned, term, state := ScanLine(ScanState{}, tc.line)
		assert.Equal(tc.cleaned, cleaned, tc.name)
		assert.Equal(tc.term, term, "%s: terminator offset", tc.name)
		assert.Equal(ScanState{}, state, "%s: state must return to default", tc.name)
	}
}

// A semicolon inside a quoted literal is never reported as a terminator, even
// when the literal closes before the end of the line.
func TestScanLineQuotedTerminatorStringClosedBeforeEOL(t *testing.T) {
	assert := assert.New(t)

	cleaned, term, state := ScanLine(ScanState{}, "INSERT INTO t VALUES ('a;b'),")
	assert.Equal("INSERT INTO t VALUES ('a;b'),", cleaned)
	assert.Equal(-1, term)
	assert.Equal(ScanState{}, state)

	// Both a quoted and a real terminator on one line: only the real one is
	// reported.
	cleaned, term, _ = ScanLine(ScanState{}, "INSERT INTO t VALUES ('a;b');")
	assert.Equal(len(cleaned)-1, term)
}

func TestScanLineStringSpansLines(t *testing.T) {
	assert := assert.New(t)

	cleaned, term, state := ScanLine(ScanState{}, "INSERT INTO t VALUES ('multi")
	assert.Equal("INSERT INTO t VALUES ('multi", cleaned)
	assert.Equal(-1, term)
	assert.True(state.InString)
	assert.Equal(byte('\''), state.Delim)

	cleaned, term, state = ScanLine(state, "line');")
	assert.Equal("line');", cleaned)
	assert.Equal(6, term)
	assert.Equal(ScanState{}, state)
}

func TestScanLineBlockCommentSpansLines(t *testing.T) {
	assert := assert.New(t)

	cleaned, term, state := ScanLine(ScanState{}, "SELECT 1 /* open; not a terminator")
	assert.Equal("SELECT 1 ", cleaned)
	assert.Equal(-1, term)
	assert.True(state.InComment)

	// Nothing inside the comment reaches the output, including the close
	// marker itself.
	cleaned, term, state = ScanLine(state, "still commented */ ;")
	assert.Equal(" ;", cleaned)
	assert.Equal(1, term)
	assert.Equal(ScanState{}, state)
}

// A quote character inside a block comment must not open a string region.
func TestScanLineQuoteInsideBlockComment(t *testing.T) {
	assert := assert.New(t)

	cleaned, _, state := ScanLine(ScanState{}, "/* it's a note */ SELECT 1;")
	assert.Equal(" SELECT 1;", cleaned)
	assert.False(state.InString)
	assert.False(state.InComment)

	_, _, state = ScanLine(ScanState{}, "/* don't close")
	assert.True(state.InComment)
	assert.False(state.InString)
}

func TestScanLineEscapeCarriesAcrossLines(t *testing.T) {
	assert := assert.New(t)

	_, _, state := ScanLine(ScanState{}, `INSERT INTO t VALUES ('tail\`)
	assert.True(state.InString)
	assert.True(state.EscapeNext)

	// The first character of the next line is consumed as the escaped
	// literal, so the quote does not close the string here.
	cleaned, _, state := ScanLine(state, `'x');`)
	assert.Equal(`'x');`, cleaned)
	assert.False(state.EscapeNext)
	assert.False(state.InString)
}

func TestScanLineStateExclusivity(t *testing.T) {
	// InString and InComment never both set, whatever the input.
	lines := []string{
		"/* '` \" */ 'open",
		"still in string /*",
		"closed' /* now comment",
		"*/ `tick",
	}
	state := ScanState{}
	for _, line := range lines {
		_, _, state = ScanLine(state, line)
		if state.InString && state.InComment {
			t.Fatalf("state claims both string and comment after %q", line)
		}
	}
}
