package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mdblog/internal/auth"
)

func newTestApplication() *application {
	return &application{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		auth:   auth.New("test-secret", time.Minute, time.Hour),
	}
}

func TestCreateCommentWithoutAuthenticationReturns401(t *testing.T) {
	app := newTestApplication()

	r := httptest.NewRequest(http.MethodPost, "/api/comment", strings.NewReader(`{"content": "x", "article_id": 1}`))
	w := httptest.NewRecorder()

	app.createComment(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
