package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/permission"
	"docvault/internal/service"
)

// parseDocumentID validates the :id route parameter.
func parseDocumentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// ListDocuments lists the actor's visible documents, narrowed by the optional
// category_id, file_type, search and user query parameters.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.ActorFromCtx(c)
		q := service.ListQuery{
			CategoryID:   c.Query("category_id"),
			FileType:     c.Query("file_type"),
			Search:       c.Query("search"),
			TargetUserID: c.Query("user"),
		}

		docs, err := svc.List(c.UserContext(), actor, q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": docs, "total": len(docs)})
	}
}

// UploadDocument accepts multipart/form-data with fields file and category_id.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		categoryID := c.FormValue("category_id")
		if categoryID == "" {
			return writeError(c, fiber.StatusBadRequest, "CATEGORY_REQUIRED", "category_id is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		actor := middleware.ActorFromCtx(c)
		doc, err := svc.Upload(c.UserContext(), actor, f, fh.Filename, ct, fh.Size, categoryID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns one document with its assignment list.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}
		doc, err := svc.Get(c.UserContext(), middleware.ActorFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// ViewDocument streams the current content inline, gated by view permission.
func ViewDocument(svc service.DocumentService) fiber.Handler {
	return streamDocument(svc, permission.ActionView, false)
}

// DownloadDocument streams the current content as an attachment, gated by
// download permission.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return streamDocument(svc, permission.ActionDownload, true)
}

func streamDocument(svc service.DocumentService, action permission.Action, attachment bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}

		rc, doc, err := svc.Open(c.UserContext(), middleware.ActorFromCtx(c), id, action)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		if attachment {
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		}
		return c.SendStream(rc)
	}
}

// ReplaceDocument swaps in new content, archiving the prior version.
func ReplaceDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Replace(c.UserContext(), middleware.ActorFromCtx(c), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes one document (admin or owner only).
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), middleware.ActorFromCtx(c), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// BulkDeleteDocuments removes a batch of documents by ID.
func BulkDeleteDocuments(svc service.DocumentService) fiber.Handler {
	type request struct {
		DocumentIDs []string `json:"document_ids"`
	}
	return func(c *fiber.Ctx) error {
		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		n, err := svc.BulkDelete(c.UserContext(), middleware.ActorFromCtx(c), req.DocumentIDs)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}

// ListAssignedDocuments lists documents assigned to the actor, or to the user
// query parameter for admins.
func ListAssignedDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.ListAssigned(c.UserContext(), middleware.ActorFromCtx(c), c.Query("user"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": out, "total": len(out)})
	}
}

// AssignDocument replaces a document's assignment set (admin only, enforced
// by route middleware).
func AssignDocument(svc service.DocumentService) fiber.Handler {
	type request struct {
		Assignments []service.AssignmentRequest `json:"assignments"`
	}
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}

		var req request
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "assignments must be a list")
		}

		assignments, err := svc.Assign(c.UserContext(), middleware.ActorFromCtx(c), id, req.Assignments)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"assigned_to": assignments})
	}
}

// DocumentHistory lists a document's archived versions, oldest first.
func DocumentHistory(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}
		entries, err := svc.History(c.UserContext(), middleware.ActorFromCtx(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": entries, "total": len(entries)})
	}
}

// ViewHistoryEntry streams one archived version inline.
func ViewHistoryEntry(svc service.DocumentService) fiber.Handler {
	return streamHistoryEntry(svc, false)
}

// DownloadHistoryEntry streams one archived version as an attachment.
func DownloadHistoryEntry(svc service.DocumentService) fiber.Handler {
	return streamHistoryEntry(svc, true)
}

func streamHistoryEntry(svc service.DocumentService, attachment bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid history index")
		}

		rc, entry, err := svc.OpenHistory(c.UserContext(), middleware.ActorFromCtx(c), id, index)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, entry.ContentType)
		if attachment {
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", entry.Filename))
		}
		return c.SendStream(rc)
	}
}

// DeleteHistoryEntry splices one archived version out of the history list.
func DeleteHistoryEntry(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseDocumentID(c)
		if !ok {
			return invalidID(c)
		}
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INDEX", "invalid history index")
		}

		if err := svc.DeleteHistoryEntry(c.UserContext(), middleware.ActorFromCtx(c), id, index); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
