package dump

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// buildDump renders a synthetic mysqldump-style file with a CREATE TABLE and
// rowsPerTable single-row INSERTs for each table, preceded by a comment header
// and a SET statement.
func buildDump(faker *gofakeit.Faker, tables []string, rowsPerTable int) string {
	var b strings.Builder
	b.WriteString("-- synthetic dump\n")
	b.WriteString("SET NAMES utf8mb4;\n")
	for _, table := range tables {
		fmt.Fprintf(&b, "CREATE TABLE `%s` (\n", table)
		b.WriteString("  `id` int NOT NULL,\n")
		b.WriteString("  `name` varchar(255) DEFAULT NULL,\n")
		b.WriteString("  `email` varchar(255) DEFAULT NULL\n")
		b.WriteString(");\n")
	}
	for _, table := range tables {
		for i := 0; i < rowsPerTable; i++ {
			fmt.Fprintf(&b, "INSERT INTO `%s` (`id`, `name`, `email`) VALUES (%d, '%s', '%s');\n",
				table, i+1, quoteSQL(faker.Name()), quoteSQL(faker.Email()))
		}
	}
	return b.String()
}

func quoteSQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", `\'`)
}
