package scanner

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, sr *StatementReader) []string {
	t.Helper()
	var stmts []string
	for {
		stmt, err := sr.Next()
		if err == io.EOF {
			return stmts
		}
		require.NoError(t, err)
		stmts = append(stmts, stmt)
	}
}

func TestStatementReaderMultiLineStatement(t *testing.T) {
	input := "CREATE TABLE t (\n  id INT\n);\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{"CREATE TABLE t (   id INT );"}, stmts)
}

func TestStatementReaderTerminatorInsideString(t *testing.T) {
	input := "INSERT INTO logs VALUES ('a;b');\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "'a;b'")
}

// A multi-tuple INSERT whose first line holds a quoted semicolon in a literal
// that closes before the line ends must stay one statement; the quoted
// semicolon is never a cut point.
func TestStatementReaderQuotedTerminatorSplitTuple(t *testing.T) {
	input := "INSERT INTO t VALUES ('a;b'),\n('c');\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{"INSERT INTO t VALUES ('a;b'), ('c');"}, stmts)
}

func TestStatementReaderQuotedTerminatorBeforeRealOne(t *testing.T) {
	input := "INSERT INTO t VALUES ('a;b'), ('c;d');\nDROP TABLE t;\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"INSERT INTO t VALUES ('a;b'), ('c;d');",
		"DROP TABLE t;",
	}, stmts)
}

func TestStatementReaderStringSpansLines(t *testing.T) {
	input := "INSERT INTO notes VALUES ('first;\nsecond');\nDROP TABLE notes;\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "second');")
	assert.Equal(t, "DROP TABLE notes;", stmts[1])
}

func TestStatementReaderRemainderSeedsNextStatement(t *testing.T) {
	input := "DROP TABLE a; CREATE TABLE b (\n id INT);\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"DROP TABLE a;",
		"CREATE TABLE b (  id INT);",
	}, stmts)
}

func TestStatementReaderTailWithoutTerminator(t *testing.T) {
	input := "SET NAMES utf8;\nDROP TABLE old"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{"SET NAMES utf8;", "DROP TABLE old"}, stmts)
}

func TestStatementReaderSkipsCommentsAndBlanks(t *testing.T) {
	input := "-- dump header\n\n/* generated */\nSET NAMES utf8;\n-- footer\n"
	stmts := readAll(t, NewStatementReader(strings.NewReader(input)))

	assert.Equal(t, []string{"SET NAMES utf8;"}, stmts)
}

func TestStatementReaderCommentOnlyInput(t *testing.T) {
	input := "-- a\n-- b\n"
	sr := NewStatementReader(strings.NewReader(input))

	_, err := sr.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(2), sr.Lines())
}

func TestStatementReaderLineObserver(t *testing.T) {
	input := "CREATE TABLE t (\n  id INT\n);\nINSERT INTO t VALUES (1);\n"
	sr := NewStatementReader(strings.NewReader(input))

	var seen int
	sr.OnLine = func(raw string) { seen += len(raw) }
	readAll(t, sr)

	assert.Equal(t, len(input), seen, "observer must see every raw byte")
	assert.Equal(t, int64(4), sr.Lines())
}
