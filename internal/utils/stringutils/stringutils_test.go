package stringutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestINClause(t *testing.T) {
	placeholders, args := INClause([]int64{10, 20, 30})

	assert.Equal(t, []string{"$1", "$2", "$3"}, placeholders)
	assert.Equal(t, []any{int64(10), int64(20), int64(30)}, args)
}

func TestINClauseEmpty(t *testing.T) {
	placeholders, args := INClause([]int64{})

	assert.Empty(t, placeholders)
	assert.Empty(t, args)
}

func TestEscapeLike(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"percent", "100%", `100\%`},
		{"underscore", "a_b", `a\_b`},
		{"backslash", `a\b`, `a\\b`},
		{"all metacharacters", `\%_`, `\\\%\_`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeLike(tc.input))
		})
	}
}
