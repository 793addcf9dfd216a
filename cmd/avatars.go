package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mdblog/internal/core"
	"mdblog/internal/utils/functional"
	"mdblog/internal/validator"
	"mdblog/models"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (app *application) listAvatars(w http.ResponseWriter, r *http.Request) {
	avatars, err := app.core.ListAvatars(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	results := functional.Map(avatars, newAvatarView)
	if err := app.writeJSON(w, http.StatusOK, results, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createAvatar(w http.ResponseWriter, r *http.Request) {
	storedPath, ok := app.storeUploadedImage(w, r)
	if !ok {
		return
	}

	avatar, err := app.core.CreateAvatar(r.Context(), storedPath)
	if err != nil {
		app.removeStoredFile(storedPath)
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, newAvatarView(avatar), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	avatar, err := app.core.GetAvatarByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, newAvatarView(avatar), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	existing, err := app.core.GetAvatarByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	storedPath, ok := app.storeUploadedImage(w, r)
	if !ok {
		return
	}

	avatar, err := app.core.UpdateAvatar(r.Context(), &models.Avatar{ID: id, Content: storedPath})
	if err != nil {
		app.removeStoredFile(storedPath)
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	app.removeStoredFile(existing.Content)

	if err := app.writeJSON(w, http.StatusOK, newAvatarView(avatar), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	avatar, err := app.core.GetAvatarByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.core.DeleteAvatar(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	app.removeStoredFile(avatar.Content)

	w.WriteHeader(http.StatusNoContent)
}

// storeUploadedImage reads the multipart "content" file and writes it
// under <media root>/avatar/<date>/<uuid><ext>. The returned path is
// relative to the media root.
func (app *application) storeUploadedImage(w http.ResponseWriter, r *http.Request) (string, bool) {
	const maxUploadBytes = 10 << 20 // 10 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "Request must be multipart/form-data with a 'content' file field.",
			ErrorStack:   err,
		})
		return "", false
	}

	file, header, err := r.FormFile("content")
	if err != nil {
		v := validator.New()
		v.AddError("content", "No file was submitted.")
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors, ErrorStack: err})
		return "", false
	}
	defer func() {
		if err := file.Close(); err != nil {
			app.logger.Error("Error closing uploaded file", "error", err)
		}
	}()

	extension := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[extension] {
		v := validator.New()
		v.AddError("content", fmt.Sprintf("Upload a valid image. File extension %q is not allowed.", extension))
		app.badRequestResponse(w, r, &AppError{ErrorDetails: v.Errors})
		return "", false
	}

	relativeDir := filepath.Join("avatar", time.Now().UTC().Format("20060102"))
	if err := os.MkdirAll(filepath.Join(app.config.MediaRoot, relativeDir), 0o755); err != nil {
		app.internalErrorResponse(w, r, err)
		return "", false
	}

	relativePath := filepath.Join(relativeDir, uuid.NewString()+extension)
	destination, err := os.Create(filepath.Join(app.config.MediaRoot, relativePath))
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return "", false
	}
	defer func() {
		if err := destination.Close(); err != nil {
			app.logger.Error("Error closing stored file", "error", err)
		}
	}()

	if _, err := io.Copy(destination, file); err != nil {
		app.removeStoredFile(relativePath)
		app.internalErrorResponse(w, r, err)
		return "", false
	}

	return filepath.ToSlash(relativePath), true
}

// removeStoredFile deletes a stored media file, best effort.
func (app *application) removeStoredFile(relativePath string) {
	if relativePath == "" {
		return
	}
	if err := os.Remove(filepath.Join(app.config.MediaRoot, filepath.FromSlash(relativePath))); err != nil && !errors.Is(err, os.ErrNotExist) {
		app.logger.Error("Error removing stored file", "path", relativePath, "error", err)
	}
}
