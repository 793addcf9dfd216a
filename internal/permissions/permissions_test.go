package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"mdblog/models"
)

var (
	admin   = &models.User{ID: 1, Username: "admin", IsSuperuser: true}
	regular = &models.User{ID: 2, Username: "someone"}
	other   = &models.User{ID: 3, Username: "other"}
)

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod(http.MethodGet))
	assert.True(t, IsSafeMethod(http.MethodHead))
	assert.True(t, IsSafeMethod(http.MethodOptions))
	assert.False(t, IsSafeMethod(http.MethodPost))
	assert.False(t, IsSafeMethod(http.MethodPut))
	assert.False(t, IsSafeMethod(http.MethodPatch))
	assert.False(t, IsSafeMethod(http.MethodDelete))
}

func TestAdminOrReadOnly(t *testing.T) {
	testCases := []struct {
		name      string
		method    string
		requester *models.User
		want      bool
	}{
		{"read without user", http.MethodGet, nil, true},
		{"read as regular", http.MethodGet, regular, true},
		{"write without user", http.MethodPost, nil, false},
		{"write as regular", http.MethodPost, regular, false},
		{"write as admin", http.MethodPost, admin, true},
		{"delete as admin", http.MethodDelete, admin, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AdminOrReadOnly(tc.method, tc.requester))
		})
	}
}

func TestOwnerOrReadOnlyCollection(t *testing.T) {
	assert.True(t, OwnerOrReadOnlyCollection(http.MethodGet, nil))
	assert.False(t, OwnerOrReadOnlyCollection(http.MethodPost, nil))
	assert.True(t, OwnerOrReadOnlyCollection(http.MethodPost, regular))
}

func TestOwnerOrReadOnly(t *testing.T) {
	testCases := []struct {
		name      string
		method    string
		requester *models.User
		authorID  int64
		want      bool
	}{
		{"read without user", http.MethodGet, nil, regular.ID, true},
		{"write without user", http.MethodPut, nil, regular.ID, false},
		{"write as owner", http.MethodPut, regular, regular.ID, true},
		{"write as other user", http.MethodPut, other, regular.ID, false},
		{"admin is not owner", http.MethodDelete, admin, regular.ID, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OwnerOrReadOnly(tc.method, tc.requester, tc.authorID))
		})
	}
}

func TestSelfOrReadOnly(t *testing.T) {
	testCases := []struct {
		name      string
		method    string
		requester *models.User
		target    *models.User
		want      bool
	}{
		{"read without user", http.MethodGet, nil, regular, true},
		{"write without user", http.MethodPut, nil, regular, false},
		{"write on self", http.MethodPut, regular, regular, true},
		{"write on other", http.MethodPut, other, regular, false},
		{"write without target", http.MethodPut, regular, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelfOrReadOnly(tc.method, tc.requester, tc.target))
		})
	}
}
