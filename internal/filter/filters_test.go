package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mdblog/internal/validator"
)

func TestValidateFilters(t *testing.T) {
	testCases := []struct {
		name   string
		limit  int64
		offset int64
		valid  bool
	}{
		{"defaults", 20, 0, true},
		{"max limit", 100, 0, true},
		{"limit too large", 101, 0, false},
		{"zero limit", 0, 0, false},
		{"negative limit", -1, 0, false},
		{"negative offset", 20, -1, false},
		{"max offset", 20, 10_000_000, true},
		{"offset too large", 20, 10_000_001, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(NewFilter(tc.limit, tc.offset), v)
			assert.Equal(t, tc.valid, v.IsValid())
		})
	}
}

func TestValidateFiltersErrorKeys(t *testing.T) {
	v := validator.New()
	ValidateFilters(NewFilter(0, -5), v)

	assert.Contains(t, v.Errors, "limit")
	assert.Contains(t, v.Errors, "offset")
}
