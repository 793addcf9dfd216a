package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidatorIsValid(t *testing.T) {
	v := New()
	assert.True(t, v.IsValid())
	assert.Empty(t, v.Errors)
}

func TestAddErrorKeepsFirstMessage(t *testing.T) {
	v := New()
	v.AddError("title", "first message")
	v.AddError("title", "second message")

	assert.False(t, v.IsValid())
	assert.Equal(t, "first message", v.Errors["title"])
}

func TestCheck(t *testing.T) {
	v := New()
	v.Check(true, "ok", "should not appear")
	v.Check(false, "bad", "must be provided")

	assert.Equal(t, map[string]string{"bad": "must be provided"}, v.Errors)
}

func TestCheckNotBlank(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		valid bool
	}{
		{"plain value", "hello", true},
		{"empty", "", false},
		{"whitespace only", "   \t", false},
		{"padded value", "  x  ", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			v.CheckNotBlank(tc.value, "field", "may not be blank")
			assert.Equal(t, tc.valid, v.IsValid())
		})
	}
}

func TestCheckEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{"plain address", "someone@example.com", true},
		{"subdomain", "a.b@mail.example.co.uk", true},
		{"missing at", "example.com", false},
		{"missing domain", "someone@", false},
		{"spaces", "some one@example.com", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			v.CheckEmail(tc.email, "invalid email")
			assert.Equal(t, tc.valid, v.IsValid())
		})
	}
}

func TestIsUnique(t *testing.T) {
	v := New()
	assert.True(t, v.IsUnique([]string{"a", "b", "c"}))
	assert.False(t, v.IsUnique([]string{"a", "b", "a"}))
	assert.True(t, v.IsUnique(nil))
}
