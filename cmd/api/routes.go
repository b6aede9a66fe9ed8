// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic, rateLimit and authenticate middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → rateLimit → authenticate → router
//
// authenticate only resolves the caller's identity; route-level access rules
// are applied by the requireAuthenticated and requireAdmin wrappers so public
// endpoints (registration, login) stay reachable anonymously.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	// Registration and login are the only anonymous endpoints.
	router.HandlerFunc(http.MethodPost, "/v1/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tokens/authentication", app.createAuthenticationTokenHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/me", app.requireAuthenticated(app.showCurrentUserHandler))

	// Book CRUD routes
	router.HandlerFunc(http.MethodPost, "/v1/books", app.requireAuthenticated(app.createBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.requireAuthenticated(app.showBookHandler))
	router.HandlerFunc(http.MethodGet, "/v1/books", app.requireAuthenticated(app.listBooksHandler))
	router.HandlerFunc(http.MethodPut, "/v1/books/:id", app.requireAuthenticated(app.updateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", app.requireAuthenticated(app.deleteBookHandler))

	// Bulk import and streaming export. These live under their own prefixes
	// because httprouter does not allow a static segment (/v1/books/import)
	// alongside the /v1/books/:id wildcard.
	router.HandlerFunc(http.MethodPost, "/v1/import/books", app.requireAuthenticated(app.importBooksHandler))
	router.HandlerFunc(http.MethodGet, "/v1/export/books", app.requireAuthenticated(app.exportBooksHandler))

	// Author routes
	router.HandlerFunc(http.MethodPost, "/v1/authors", app.requireAuthenticated(app.createAuthorHandler))
	router.HandlerFunc(http.MethodGet, "/v1/authors/:id", app.requireAuthenticated(app.showAuthorHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/authors/:id", app.requireAuthenticated(app.updateAuthorHandler))

	// Genre lookup routes
	router.HandlerFunc(http.MethodGet, "/v1/genres", app.requireAuthenticated(app.listGenresHandler))
	router.HandlerFunc(http.MethodGet, "/v1/genres/:id", app.requireAuthenticated(app.showGenreHandler))

	// Admin routes: full management of authors, genres and books.
	router.HandlerFunc(http.MethodPost, "/v1/admin/authors", app.requireAdmin(app.adminCreateAuthorHandler))
	router.HandlerFunc(http.MethodPut, "/v1/admin/authors/:id", app.requireAdmin(app.adminUpdateAuthorHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/authors/:id", app.requireAdmin(app.adminDeleteAuthorHandler))
	router.HandlerFunc(http.MethodPost, "/v1/admin/genres", app.requireAdmin(app.adminCreateGenreHandler))
	router.HandlerFunc(http.MethodPut, "/v1/admin/genres/:id", app.requireAdmin(app.adminUpdateGenreHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/genres/:id", app.requireAdmin(app.adminDeleteGenreHandler))
	router.HandlerFunc(http.MethodPost, "/v1/admin/books", app.requireAdmin(app.adminCreateBookHandler))
	router.HandlerFunc(http.MethodPut, "/v1/admin/books/:id", app.requireAdmin(app.adminUpdateBookHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/admin/books/:id", app.requireAdmin(app.adminDeleteBookHandler))

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from rateLimit, authenticate and router alike.
	return app.recoverPanic(app.rateLimit(app.authenticate(router)))
}
