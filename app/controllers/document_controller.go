package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/metrics/counter"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

type packRequest struct {
	Level   string `json:"level"`
	Subject string `json:"subject"`
	Year    int    `json:"year"`
}

// HandleListDocuments lists exam papers and corrections for a level. The
// file URL of premium documents is withheld from non-premium visitors.
func HandleListDocuments(c *fiber.Ctx) error {
	levelSlug := c.Query("level")
	if levelSlug == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Query parameter 'level' is required")
	}

	year, _ := strconv.Atoi(c.Query("year"))
	filter := repository.DocumentFilter{
		LevelSlug:   levelSlug,
		SubjectSlug: c.Query("subject"),
		Year:        year,
	}

	documents, err := repository.GetGlobalFactory().GetDocumentRepository().ListFiltered(filter)
	if err != nil {
		return internalError(c, "Failed to load documents")
	}

	userCtx := usercontext.GetUserContext(c)
	items := make([]fiber.Map, 0, len(documents))
	for _, d := range documents {
		items = append(items, documentJSON(&d, userCtx.IsPremium))
	}

	return c.JSON(fiber.Map{"documents": items})
}

// HandleGetDocument returns a single document and counts the view.
func HandleGetDocument(c *fiber.Ctx) error {
	documentID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid document id")
	}

	document, err := repository.GetGlobalFactory().GetDocumentRepository().GetByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return internalError(c, "Failed to load document")
	}

	_ = counter.AddDocumentView(document.ID)

	userCtx := usercontext.GetUserContext(c)
	return c.JSON(documentJSON(document, userCtx.IsPremium))
}

// HandleDownloadDocument hands out the file URL for one document. Premium
// documents require an active subscription regardless of the route taken.
func HandleDownloadDocument(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	documentID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid document id")
	}

	repo := repository.GetGlobalFactory().GetDocumentRepository()
	document, err := repo.GetByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return internalError(c, "Failed to load document")
	}

	if document.IsPremium && !userCtx.IsPremium {
		return errorJSON(c, fiber.StatusForbidden, "premium_required", "This document requires a premium subscription")
	}

	countDownload(repo, document.ID)

	return c.JSON(fiber.Map{
		"id":       document.ID,
		"title":    document.Title,
		"file_url": document.FileURL,
	})
}

// HandleDownloadPack builds a download manifest for a whole level, grouped
// by subject with papers ahead of their corrections. Premium documents are
// included only for premium members.
func HandleDownloadPack(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	var req packRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if req.Level == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Field 'level' is required")
	}

	repo := repository.GetGlobalFactory().GetDocumentRepository()
	documents, err := repo.ListFiltered(repository.DocumentFilter{
		LevelSlug:   req.Level,
		SubjectSlug: req.Subject,
		Year:        req.Year,
	})
	if err != nil {
		return internalError(c, "Failed to load documents")
	}

	files := make([]fiber.Map, 0, len(documents))
	for _, d := range documents {
		if d.IsPremium && !userCtx.IsPremium {
			continue
		}
		files = append(files, fiber.Map{
			"id":       d.ID,
			"title":    d.Title,
			"subject":  d.Subject.Name,
			"year":     d.Year,
			"type":     d.Type,
			"file_url": d.FileURL,
		})
		countDownload(repo, d.ID)
	}

	if len(files) == 0 {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "No documents match this selection")
	}

	return c.JSON(fiber.Map{
		"level": req.Level,
		"count": len(files),
		"files": files,
	})
}

// HandleListLevels lists the school levels in their display order.
func HandleListLevels(c *fiber.Ctx) error {
	levels, err := repository.GetGlobalFactory().GetLevelRepository().List()
	if err != nil {
		return internalError(c, "Failed to load levels")
	}
	return c.JSON(fiber.Map{"levels": levels})
}

// HandleListSubjects lists all subjects.
func HandleListSubjects(c *fiber.Ctx) error {
	subjects, err := repository.GetGlobalFactory().GetSubjectRepository().List()
	if err != nil {
		return internalError(c, "Failed to load subjects")
	}
	return c.JSON(fiber.Map{"subjects": subjects})
}

// countDownload batches download counts in Redis; if Redis is unavailable
// the count is written straight to the database instead.
func countDownload(repo repository.DocumentRepository, documentID uint) {
	if err := counter.AddDocumentDownload(documentID); err != nil {
		_ = repo.IncrementDownloadCount(documentID, 1)
	}
}

func documentJSON(d *models.Document, entitled bool) fiber.Map {
	item := fiber.Map{
		"id":             d.ID,
		"title":          d.Title,
		"level":          d.Level.Name,
		"subject":        d.Subject.Name,
		"year":           d.Year,
		"type":           d.Type,
		"is_premium":     d.IsPremium,
		"download_count": d.DownloadCount,
	}
	if !d.IsPremium || entitled {
		item["file_url"] = d.FileURL
	}
	return item
}
