package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/auth"
	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

// Services bundles the application services the routes depend on.
type Services struct {
	Documents     service.DocumentService
	Categories    service.CategoryService
	Notifications service.NotificationService
	Users         service.UserService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// free of business logic; authorization gates that belong to the boundary
// (authentication, admin-only routes) live here as route middleware.
func RegisterRoutes(app *fiber.App, db *sql.DB, verifier auth.Verifier, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/login", Login(svcs.Users))

	authed := app.Group("", middleware.RequireAuth(verifier))

	docs := authed.Group("/documents")
	docs.Get("", ListDocuments(svcs.Documents))
	docs.Post("", UploadDocument(svcs.Documents))
	// Fixed segments before :id so "bulk" and "assigned" never match as IDs.
	docs.Delete("/bulk", BulkDeleteDocuments(svcs.Documents))
	docs.Get("/assigned", ListAssignedDocuments(svcs.Documents))
	docs.Get("/:id", GetDocument(svcs.Documents))
	docs.Delete("/:id", DeleteDocument(svcs.Documents))
	docs.Get("/:id/view", ViewDocument(svcs.Documents))
	docs.Get("/:id/download", DownloadDocument(svcs.Documents))
	docs.Put("/:id/replace", ReplaceDocument(svcs.Documents))
	docs.Get("/:id/history", DocumentHistory(svcs.Documents))
	docs.Get("/:id/history/:index/view", ViewHistoryEntry(svcs.Documents))
	docs.Get("/:id/history/:index/download", DownloadHistoryEntry(svcs.Documents))
	docs.Delete("/:id/history/:index", DeleteHistoryEntry(svcs.Documents))
	docs.Post("/:id/assign", middleware.RequireAdmin(), AssignDocument(svcs.Documents))

	cats := authed.Group("/categories")
	cats.Get("", ListCategories(svcs.Categories))
	cats.Post("", CreateCategory(svcs.Categories))
	cats.Delete("/:id", DeleteCategory(svcs.Categories))

	notifs := authed.Group("/notifications")
	notifs.Get("", ListNotifications(svcs.Notifications))
	notifs.Put("/:id/read", MarkNotificationRead(svcs.Notifications))
	notifs.Delete("/:id", DeleteNotification(svcs.Notifications))

	users := authed.Group("/users", middleware.RequireAdmin())
	users.Post("", CreateUser(svcs.Users))
	users.Get("", ListUsers(svcs.Users))
	users.Delete("/:id", DeleteUser(svcs.Users))
}
