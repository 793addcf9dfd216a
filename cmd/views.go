package main

import (
	"fmt"
	"time"

	"mdblog/models"
)

// Response shaping for every endpoint lives here so the wire contract is
// explicit. Handlers never marshal models directly.

func articleURL(id int64) string {
	return fmt.Sprintf("/api/article/%d/", id)
}

func categoryURL(id int64) string {
	return fmt.Sprintf("/api/category/%d/", id)
}

func tagURL(id int64) string {
	return fmt.Sprintf("/api/tag/%d/", id)
}

func avatarURL(id int64) string {
	return fmt.Sprintf("/api/avatar/%d/", id)
}

func userURL(username string) string {
	return fmt.Sprintf("/api/user/%s/", username)
}

// userDescView is the author blob nested inside articles and comments.
type userDescView struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
}

func newUserDescView(user *models.User) *userDescView {
	if user == nil {
		return nil
	}
	return &userDescView{
		ID:         user.ID,
		Username:   user.Username,
		LastLogin:  user.LastLogin,
		DateJoined: user.DateJoined,
	}
}

type userRegisterView struct {
	URL         string `json:"url"`
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
}

func newUserRegisterView(user *models.User) *userRegisterView {
	return &userRegisterView{
		URL:         userURL(user.Username),
		ID:          user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
	}
}

type userDetailView struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	LastLogin  *time.Time `json:"last_login"`
	DateJoined time.Time  `json:"date_joined"`
}

func newUserDetailView(user *models.User) *userDetailView {
	return &userDetailView{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		LastLogin:  user.LastLogin,
		DateJoined: user.DateJoined,
	}
}

type categoryView struct {
	ID      int64     `json:"id"`
	URL     string    `json:"url"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

func newCategoryView(category *models.Category) *categoryView {
	if category == nil {
		return nil
	}
	return &categoryView{
		ID:      category.ID,
		URL:     categoryURL(category.ID),
		Title:   category.Title,
		Created: category.Created,
	}
}

// categoryArticleView is the short article reference embedded in a
// category detail response.
type categoryArticleView struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type categoryDetailView struct {
	categoryView
	Articles []*categoryArticleView `json:"articles"`
}

func newCategoryDetailView(category *models.Category, articles []*models.Article) *categoryDetailView {
	view := &categoryDetailView{
		categoryView: *newCategoryView(category),
		Articles:     make([]*categoryArticleView, 0, len(articles)),
	}
	for _, article := range articles {
		view.Articles = append(view.Articles, &categoryArticleView{
			URL:   articleURL(article.ID),
			Title: article.Title,
		})
	}
	return view
}

type tagView struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

func newTagView(tag *models.Tag) *tagView {
	return &tagView{ID: tag.ID, Text: tag.Text}
}

type avatarView struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

func newAvatarView(avatar *models.Avatar) *avatarView {
	if avatar == nil {
		return nil
	}
	return &avatarView{
		ID:      avatar.ID,
		URL:     avatarURL(avatar.ID),
		Content: "/media/" + avatar.Content,
	}
}

type articleListView struct {
	ID       int64         `json:"id"`
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Created  time.Time     `json:"created"`
	Author   *userDescView `json:"author"`
	Tags     []string      `json:"tags"`
	Category *categoryView `json:"category"`
}

func newArticleListView(article *models.Article, author *models.User, tags []models.Tag, category *models.Category) *articleListView {
	tagTexts := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagTexts = append(tagTexts, tag.Text)
	}

	return &articleListView{
		ID:       article.ID,
		URL:      articleURL(article.ID),
		Title:    article.Title,
		Created:  article.Created,
		Author:   newUserDescView(author),
		Tags:     tagTexts,
		Category: newCategoryView(category),
	}
}

type articleDetailView struct {
	articleListView
	Body     string         `json:"body"`
	BodyHTML string         `json:"body_html"`
	TOC      string         `json:"toc"`
	Updated  time.Time      `json:"updated"`
	Avatar   *avatarView    `json:"avatar"`
	Comments []*commentView `json:"comments"`
}

func newArticleDetailView(
	article *models.Article,
	author *models.User,
	tags []models.Tag,
	category *models.Category,
	avatar *models.Avatar,
	comments []*commentView,
	bodyHTML, tocHTML string,
) *articleDetailView {
	if comments == nil {
		comments = []*commentView{}
	}
	return &articleDetailView{
		articleListView: *newArticleListView(article, author, tags, category),
		Body:            article.Body,
		BodyHTML:        bodyHTML,
		TOC:             tocHTML,
		Updated:         article.Updated,
		Avatar:          newAvatarView(avatar),
		Comments:        comments,
	}
}

type commentView struct {
	ID       int64         `json:"id"`
	Content  string        `json:"content"`
	Created  time.Time     `json:"created"`
	Author   *userDescView `json:"author"`
	Article  string        `json:"article"`
	ParentID *int64        `json:"parent_id"`
}

func newCommentView(comment *models.Comment, author *models.User) *commentView {
	return &commentView{
		ID:       comment.ID,
		Content:  comment.Content,
		Created:  comment.Created,
		Author:   newUserDescView(author),
		Article:  articleURL(comment.ArticleID),
		ParentID: comment.ParentID,
	}
}
