package stringutils

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE/ILIKE pattern metacharacters so user text
// matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// INClause builds the placeholder list and argument slice for a SQL IN (...)
// clause, numbering placeholders from $1.
func INClause[T any](list []T) (placeholders []string, args []any) {
	placeholders = make([]string, len(list))
	args = make([]any, len(list))
	for i, id := range list {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	return placeholders, args
}
