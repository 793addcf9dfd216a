// Package permissions holds the write-access policies. Every policy is a
// pure function of the request method, the requester and the target
// object; the distinction between a missing requester (401) and a
// rejected one (403) is made by the callers.
package permissions

import (
	"net/http"

	"mdblog/models"
)

// IsSafeMethod reports whether the verb is read-only (never mutates state).
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly allows safe methods for anyone and writes only for
// superusers. Applied to articles, categories, tags and avatars.
func AdminOrReadOnly(method string, requester *models.User) bool {
	if IsSafeMethod(method) {
		return true
	}
	return requester != nil && requester.IsSuperuser
}

// OwnerOrReadOnlyCollection is the collection-level half of the owner
// policy: writes only require an authenticated requester.
func OwnerOrReadOnlyCollection(method string, requester *models.User) bool {
	if IsSafeMethod(method) {
		return true
	}
	return requester != nil
}

// OwnerOrReadOnly allows object writes only for the recorded author.
func OwnerOrReadOnly(method string, requester *models.User, authorID int64) bool {
	if IsSafeMethod(method) {
		return true
	}
	return requester != nil && requester.ID == authorID
}

// SelfOrReadOnly allows object writes only when the target user is the
// requester.
func SelfOrReadOnly(method string, requester *models.User, target *models.User) bool {
	if IsSafeMethod(method) {
		return true
	}
	return requester != nil && target != nil && requester.ID == target.ID
}
