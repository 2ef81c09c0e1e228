package dump

import (
	"strings"
	"testing"

	"dumptool/internal/report"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCounts(t *testing.T) {
	faker := gofakeit.New(11)
	tables := []string{"users", "orders", "sessions"}
	text := buildDump(faker, tables, 4)

	stats := report.NewStats()
	err := Analyze(strings.NewReader(text), stats, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Statements.CreateTable)
	assert.Equal(t, int64(12), stats.Statements.Insert)
	assert.Equal(t, int64(0), stats.Statements.Alter)
	assert.Equal(t, int64(0), stats.Statements.Drop)
	assert.Equal(t, int64(1), stats.Statements.Other) // the SET statement
	assert.Equal(t, int64(16), stats.Statements.Total)

	assert.Len(t, stats.Tables, 3)
	for _, table := range tables {
		assert.Equal(t, int64(5), stats.Tables[table], "1 create + 4 inserts for %s", table)
	}
	assert.Equal(t, int64(strings.Count(text, "\n")), stats.LineCount)
}

func TestAnalyzeMixedStatements(t *testing.T) {
	text := strings.Join([]string{
		"DROP TABLE IF EXISTS users;",
		"CREATE TABLE users (id INT);",
		"ALTER TABLE users ADD COLUMN name VARCHAR(255);",
		"INSERT INTO users VALUES (1, 'a');",
		"UNLOCK TABLES;",
	}, "\n") + "\n"

	stats := report.NewStats()
	require.NoError(t, Analyze(strings.NewReader(text), stats, nil))

	assert.Equal(t, int64(1), stats.Statements.CreateTable)
	assert.Equal(t, int64(1), stats.Statements.Insert)
	assert.Equal(t, int64(1), stats.Statements.Alter)
	assert.Equal(t, int64(1), stats.Statements.Drop)
	assert.Equal(t, int64(1), stats.Statements.Other)
	assert.Equal(t, int64(5), stats.Statements.Total)
}

// A statement spread over several physical lines with a terminator inside a
// quoted value must count exactly once.
func TestAnalyzeMultiLineInsert(t *testing.T) {
	text := "INSERT INTO logs (id, body) VALUES\n" +
		"(1, 'line one;\n" +
		"line two');\n"

	stats := report.NewStats()
	require.NoError(t, Analyze(strings.NewReader(text), stats, nil))

	assert.Equal(t, int64(1), stats.Statements.Insert)
	assert.Equal(t, int64(1), stats.Statements.Total)
	assert.Equal(t, int64(3), stats.LineCount)
}

func TestAnalyzeProgressSeesAllBytes(t *testing.T) {
	faker := gofakeit.New(7)
	text := buildDump(faker, []string{"users"}, 2)

	stats := report.NewStats()
	var seen int
	err := Analyze(strings.NewReader(text), stats, func(n int) { seen += n })
	require.NoError(t, err)
	assert.Equal(t, len(text), seen)
}
