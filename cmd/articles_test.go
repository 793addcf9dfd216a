package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeArticleInput(t *testing.T, body string) articleInput {
	t.Helper()

	app := &application{}
	r := httptest.NewRequest(http.MethodPost, "/api/article", strings.NewReader(body))
	w := httptest.NewRecorder()

	var input articleInput
	require.NoError(t, app.readJSONIgnoreUnknown(w, r, &input))
	return input
}

func TestArticleInputIgnoresReadOnlyFields(t *testing.T) {
	body := `{
		"id": 42,
		"url": "/api/article/42/",
		"title": "a title",
		"body": "some text",
		"author": {"id": 99, "username": "impostor"},
		"created": "2025-01-01T00:00:00Z",
		"updated": "2025-01-01T00:00:00Z",
		"category": {"id": 1, "title": "nested"}
	}`

	input := decodeArticleInput(t, body)

	assert.Equal(t, "a title", input.Title)
	assert.Equal(t, "some text", input.Body)
	assert.False(t, input.CategoryID.Present)
	assert.Nil(t, input.Tags)
}

func TestArticleInputOptionalReferences(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		present bool
		value   *int64
	}{
		{
			name:    "omitted keeps the link",
			body:    `{"title": "t", "body": "b"}`,
			present: false,
			value:   nil,
		},
		{
			name:    "explicit null clears the link",
			body:    `{"title": "t", "body": "b", "category_id": null}`,
			present: true,
			value:   nil,
		},
		{
			name:    "identifier sets the link",
			body:    `{"title": "t", "body": "b", "category_id": 3}`,
			present: true,
			value:   func() *int64 { v := int64(3); return &v }(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := decodeArticleInput(t, tc.body)
			assert.Equal(t, tc.present, input.CategoryID.Present)
			assert.Equal(t, tc.value, input.CategoryID.Value)
		})
	}
}

func TestReadJSONStillRejectsUnknownFields(t *testing.T) {
	app := &application{}
	r := httptest.NewRequest(http.MethodPost, "/api/tag", strings.NewReader(`{"text": "go", "bogus": 1}`))
	w := httptest.NewRecorder()

	var dst struct {
		Text string `json:"text"`
	}
	err := app.readJSON(w, r, &dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestOptionalIDRejectsNonNumeric(t *testing.T) {
	var o optionalID
	err := json.Unmarshal([]byte(`"three"`), &o)
	assert.Error(t, err)
}
