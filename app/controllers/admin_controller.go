package controllers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/database"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/statistics"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/storage"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/upload"
)

type setPremiumRequest struct {
	IsPremium bool `json:"is_premium"`
}

// HandleAdminStats returns the cached platform aggregates.
func HandleAdminStats(c *fiber.Ctx) error {
	return c.JSON(statistics.GetStatistics())
}

// HandleAdminListUsers returns a paginated user listing.
func HandleAdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	const perPage = 50

	repo := repository.GetGlobalFactory().GetUserRepository()
	users, err := repo.List((page-1)*perPage, perPage)
	if err != nil {
		return internalError(c, "Failed to load users")
	}
	total, err := repo.Count()
	if err != nil {
		return internalError(c, "Failed to count users")
	}

	items := make([]fiber.Map, 0, len(users))
	for i := range users {
		items = append(items, userJSON(&users[i]))
	}

	return c.JSON(fiber.Map{
		"users": items,
		"page":  page,
		"total": total,
	})
}

// HandleAdminSetPremium forces the premium entitlement for a user on or off.
// Enabling writes a non-expiring admin grant into the subscription history.
func HandleAdminSetPremium(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid user id")
	}

	var req setPremiumRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return internalError(c, "Failed to load user")
	}

	svc := subscription.NewServiceFromDB(database.GetDB())
	if err := svc.AdminOverride(c.UserContext(), targetID, req.IsPremium); err != nil {
		fiberlog.Errorf("admin premium override failed for user %d: %v", targetID, err)
		return internalError(c, "Failed to update premium status")
	}

	// The change applies to the target's NEXT session resolution; if the
	// admin edited their own account the cached flag updates right away.
	if mustUserContext(c).UserID == targetID {
		refreshSessionPremium(c, req.IsPremium)
	}

	return c.JSON(fiber.Map{"user_id": targetID, "is_premium": req.IsPremium})
}

// HandleAdminDeleteUser removes an account. Admins cannot delete themselves.
func HandleAdminDeleteUser(c *fiber.Ctx) error {
	targetID, err := paramUint(c, "id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid user id")
	}

	if mustUserContext(c).UserID == targetID {
		return errorJSON(c, fiber.StatusForbidden, "self_delete_forbidden", "You cannot delete your own account")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if _, err := repo.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return internalError(c, "Failed to load user")
	}

	if err := repo.Delete(targetID); err != nil {
		return internalError(c, "Failed to delete user")
	}

	return c.JSON(fiber.Map{"deleted": true})
}

// uploadKindFor maps the optional `type` selector onto an upload kind and,
// for the document path, the catalog document type. An empty selector takes
// the document path as an exam paper.
func uploadKindFor(selector string) (kind string, docType string, err error) {
	switch selector {
	case upload.KindImage:
		return upload.KindImage, "", nil
	case "", upload.KindDocument, models.DocumentTypeSubject:
		return upload.KindDocument, models.DocumentTypeSubject, nil
	case models.DocumentTypeCorrection:
		return upload.KindDocument, models.DocumentTypeCorrection, nil
	default:
		return "", "", errors.New("type must be image, subject or correction")
	}
}

// HandleAdminUpload stores an uploaded file. With `type=image` the file is
// validated against the image caps (5MB, JPEG/PNG/WebP/GIF) and only stored;
// the default document path (10MB, PDF only) also records a catalog entry as
// an exam paper or correction.
func HandleAdminUpload(c *fiber.Ctx) error {
	cfg, err := storage.LoadConfig()
	if err != nil || !cfg.IsEnabled() {
		return errorJSON(c, fiber.StatusServiceUnavailable, "storage_unavailable", "File storage is not configured")
	}

	kind, docType, err := uploadKindFor(c.FormValue("type"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Field 'file' is required")
	}
	if err := upload.ValidateSize(kind, fileHeader.Size); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "file_too_large", err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to read upload")
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := file.Read(head)
	var contentType string
	if kind == upload.KindImage {
		contentType, err = upload.ValidateImageBySniff(fileHeader.Filename, head[:n])
	} else {
		contentType, err = upload.ValidateDocumentBySniff(fileHeader.Filename, head[:n])
	}
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "unsupported_file", err.Error())
	}
	if _, err := file.Seek(0, 0); err != nil {
		return internalError(c, "Failed to read upload")
	}

	if kind == upload.KindImage {
		return storeAdminImage(c, cfg, fileHeader.Filename, file, fileHeader.Size, contentType)
	}
	return storeAdminDocument(c, cfg, fileHeader.Filename, file, fileHeader.Size, contentType, docType)
}

// storeAdminImage uploads an illustration or cover image; nothing is written
// to the catalog.
func storeAdminImage(c *fiber.Ctx, cfg *storage.Config, filename string, file io.Reader, size int64, contentType string) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		fiberlog.Errorf("storage client init failed: %v", err)
		return errorJSON(c, fiber.StatusServiceUnavailable, "storage_unavailable", "File storage is not available")
	}

	now := time.Now()
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	objectKey := cfg.ObjectKey("images", uuid.NewString(), ext, now.Year(), int(now.Month()))
	result, err := client.Upload(c.UserContext(), objectKey, file, size, contentType)
	if err != nil {
		fiberlog.Errorf("image upload failed: %v", err)
		return internalError(c, "Failed to store file")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"file_url":   result.URL,
		"object_key": result.ObjectKey,
	})
}

// storeAdminDocument uploads an exam paper or correction and records it in
// the catalog.
func storeAdminDocument(c *fiber.Ctx, cfg *storage.Config, filename string, file io.Reader, size int64, contentType, docType string) error {
	repos := repository.GetGlobalFactory().GetRepositories()
	level, err := repos.Level.GetBySlug(c.FormValue("level"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", "Unknown level")
	}
	subject, err := repos.Subject.GetBySlug(c.FormValue("subject"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", "Unknown subject")
	}
	year, err := strconv.Atoi(c.FormValue("year"))
	if err != nil || year < 1990 || year > time.Now().Year()+1 {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", "Invalid year")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = fmt.Sprintf("%s %s %d", subject.Name, level.Name, year)
	}

	client, err := storage.NewClient(cfg)
	if err != nil {
		fiberlog.Errorf("storage client init failed: %v", err)
		return errorJSON(c, fiber.StatusServiceUnavailable, "storage_unavailable", "File storage is not available")
	}

	now := time.Now()
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	objectKey := cfg.ObjectKey("documents", uuid.NewString(), ext, now.Year(), int(now.Month()))
	result, err := client.Upload(c.UserContext(), objectKey, file, size, contentType)
	if err != nil {
		fiberlog.Errorf("document upload failed: %v", err)
		return internalError(c, "Failed to store file")
	}

	document := &models.Document{
		Title:     title,
		LevelID:   level.ID,
		SubjectID: subject.ID,
		Type:      docType,
		Year:      year,
		IsPremium: c.FormValue("is_premium") == "true" || docType == models.DocumentTypeCorrection,
		FileURL:   result.URL,
	}
	if err := repos.Document.Create(document); err != nil {
		return internalError(c, "Failed to save document")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         document.ID,
		"title":      document.Title,
		"file_url":   document.FileURL,
		"object_key": result.ObjectKey,
	})
}
