package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	// Articles: reads open to anyone, writes admin only
	router.HandlerFunc(http.MethodGet, "/api/article", app.listArticles)
	router.HandlerFunc(http.MethodPost, "/api/article", app.requireAdmin(app.createArticle))
	router.HandlerFunc(http.MethodGet, "/api/article/:id", app.getArticle)
	router.HandlerFunc(http.MethodPut, "/api/article/:id", app.requireAdmin(app.updateArticle))
	router.HandlerFunc(http.MethodPatch, "/api/article/:id", app.requireAdmin(app.updateArticle))
	router.HandlerFunc(http.MethodDelete, "/api/article/:id", app.requireAdmin(app.deleteArticle))

	// Categories
	router.HandlerFunc(http.MethodGet, "/api/category", app.listCategories)
	router.HandlerFunc(http.MethodPost, "/api/category", app.requireAdmin(app.createCategory))
	router.HandlerFunc(http.MethodGet, "/api/category/:id", app.getCategory)
	router.HandlerFunc(http.MethodPut, "/api/category/:id", app.requireAdmin(app.updateCategory))
	router.HandlerFunc(http.MethodDelete, "/api/category/:id", app.requireAdmin(app.deleteCategory))

	// Tags
	router.HandlerFunc(http.MethodGet, "/api/tag", app.listTags)
	router.HandlerFunc(http.MethodPost, "/api/tag", app.requireAdmin(app.createTag))
	router.HandlerFunc(http.MethodGet, "/api/tag/:id", app.getTag)
	router.HandlerFunc(http.MethodPut, "/api/tag/:id", app.requireAdmin(app.updateTag))
	router.HandlerFunc(http.MethodDelete, "/api/tag/:id", app.requireAdmin(app.deleteTag))

	// Avatars
	router.HandlerFunc(http.MethodGet, "/api/avatar", app.listAvatars)
	router.HandlerFunc(http.MethodPost, "/api/avatar", app.requireAdmin(app.createAvatar))
	router.HandlerFunc(http.MethodGet, "/api/avatar/:id", app.getAvatar)
	router.HandlerFunc(http.MethodPut, "/api/avatar/:id", app.requireAdmin(app.updateAvatar))
	router.HandlerFunc(http.MethodDelete, "/api/avatar/:id", app.requireAdmin(app.deleteAvatar))

	// Comments: reads open, collection and object writes checked against
	// the owner policy inside the handlers
	router.HandlerFunc(http.MethodGet, "/api/comment", app.listComments)
	router.HandlerFunc(http.MethodPost, "/api/comment", app.createComment)
	router.HandlerFunc(http.MethodGet, "/api/comment/:id", app.getComment)
	router.HandlerFunc(http.MethodPut, "/api/comment/:id", app.requireAuthenticatedUser(app.updateComment))
	router.HandlerFunc(http.MethodDelete, "/api/comment/:id", app.requireAuthenticatedUser(app.deleteComment))

	// Users: registration open to anyone, object writes self-only.
	// A static /api/user/sorted route would conflict with the :username
	// wildcard, so getUser dispatches the sorted collection action.
	router.HandlerFunc(http.MethodPost, "/api/user", app.registerUser)
	router.HandlerFunc(http.MethodGet, "/api/user", app.listUsers)
	router.HandlerFunc(http.MethodGet, "/api/user/:username", app.getUser)
	router.HandlerFunc(http.MethodPut, "/api/user/:username", app.requireAuthenticatedUser(app.updateUser))
	router.HandlerFunc(http.MethodDelete, "/api/user/:username", app.requireAuthenticatedUser(app.deleteUser))
	router.HandlerFunc(http.MethodGet, "/api/user/:username/info", app.getUserInfo)

	// Tokens
	router.HandlerFunc(http.MethodPost, "/api/token", app.createTokenPair)
	router.HandlerFunc(http.MethodPost, "/api/token/refresh", app.refreshToken)

	// Stored avatar images
	router.ServeFiles("/media/*filepath", http.Dir(app.config.MediaRoot))

	return app.recoverPanic(app.authenticate(router))
}
