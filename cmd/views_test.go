package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdblog/models"
)

var (
	testCreated = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	testAuthor  = &models.User{ID: 1, Username: "author", DateJoined: testCreated}
)

func TestResourceURLs(t *testing.T) {
	assert.Equal(t, "/api/article/7/", articleURL(7))
	assert.Equal(t, "/api/category/3/", categoryURL(3))
	assert.Equal(t, "/api/tag/9/", tagURL(9))
	assert.Equal(t, "/api/avatar/2/", avatarURL(2))
	assert.Equal(t, "/api/user/someone/", userURL("someone"))
}

func TestArticleListViewShape(t *testing.T) {
	article := &models.Article{ID: 7, Title: "A Title", Body: "secret body", Created: testCreated, AuthorID: 1}
	tags := []models.Tag{{ID: 1, Text: "go"}, {ID: 2, Text: "sql"}}
	category := &models.Category{ID: 3, Title: "Tech", Created: testCreated}

	view := newArticleListView(article, testAuthor, tags, category)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "/api/article/7/", decoded["url"])
	assert.Equal(t, []any{"go", "sql"}, decoded["tags"])
	assert.NotContains(t, decoded, "body")
	assert.NotContains(t, decoded, "body_html")

	author, ok := decoded["author"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "author", author["username"])
	assert.NotContains(t, author, "email")
	assert.NotContains(t, author, "is_superuser")
}

func TestArticleListViewWithoutCategory(t *testing.T) {
	article := &models.Article{ID: 7, Title: "A Title", AuthorID: 1}

	view := newArticleListView(article, testAuthor, nil, nil)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Nil(t, decoded["category"])
	assert.Equal(t, []any{}, decoded["tags"])
}

func TestArticleDetailViewShape(t *testing.T) {
	avatarID := int64(2)
	article := &models.Article{
		ID:       7,
		Title:    "A Title",
		Body:     "# Heading",
		Created:  testCreated,
		Updated:  testCreated,
		AuthorID: 1,
		AvatarID: &avatarID,
	}
	avatar := &models.Avatar{ID: 2, Content: "avatar/20250314/pic.png"}

	view := newArticleDetailView(article, testAuthor, nil, nil, avatar, nil, "<h1>Heading</h1>", `<div class="toc"></div>`)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "# Heading", decoded["body"])
	assert.Equal(t, "<h1>Heading</h1>", decoded["body_html"])
	assert.Equal(t, `<div class="toc"></div>`, decoded["toc"])
	assert.NotContains(t, decoded, "toc_html")
	assert.Equal(t, []any{}, decoded["comments"])

	avatarView, ok := decoded["avatar"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/media/avatar/20250314/pic.png", avatarView["content"])
	assert.Equal(t, "/api/avatar/2/", avatarView["url"])
}

func TestCategoryDetailViewEmbedsArticles(t *testing.T) {
	category := &models.Category{ID: 3, Title: "Tech", Created: testCreated}
	articles := []*models.Article{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}

	view := newCategoryDetailView(category, articles)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "/api/category/3/", decoded["url"])
	embedded, ok := decoded["articles"].([]any)
	require.True(t, ok)
	require.Len(t, embedded, 2)

	first, ok := embedded[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/api/article/1/", first["url"])
	assert.Equal(t, "First", first["title"])
	assert.Len(t, first, 2)
}

func TestCommentViewShape(t *testing.T) {
	parentID := int64(4)
	comment := &models.Comment{
		ID:        9,
		Content:   "nice post",
		Created:   testCreated,
		AuthorID:  1,
		ArticleID: 7,
		ParentID:  &parentID,
	}

	view := newCommentView(comment, testAuthor)

	payload, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "/api/article/7/", decoded["article"])
	assert.Equal(t, float64(4), decoded["parent_id"])
	assert.Equal(t, "nice post", decoded["content"])
}

func TestUserViews(t *testing.T) {
	lastLogin := testCreated
	user := &models.User{
		ID:          5,
		Username:    "someone",
		FirstName:   "Some",
		LastName:    "One",
		Email:       "someone@example.com",
		Password:    []byte("hash"),
		IsSuperuser: true,
		LastLogin:   &lastLogin,
		DateJoined:  testCreated,
	}

	registerPayload, err := json.Marshal(newUserRegisterView(user))
	require.NoError(t, err)

	var register map[string]any
	require.NoError(t, json.Unmarshal(registerPayload, &register))
	assert.Equal(t, "/api/user/someone/", register["url"])
	assert.Equal(t, true, register["is_superuser"])
	assert.NotContains(t, register, "password")
	assert.NotContains(t, register, "email")

	detailPayload, err := json.Marshal(newUserDetailView(user))
	require.NoError(t, err)

	var detail map[string]any
	require.NoError(t, json.Unmarshal(detailPayload, &detail))
	assert.Equal(t, "someone@example.com", detail["email"])
	assert.Equal(t, "Some", detail["first_name"])
	assert.NotContains(t, detail, "password")
	assert.NotContains(t, detail, "is_superuser")
}
