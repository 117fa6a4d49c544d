package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
)

type favoriteRequest struct {
	DocumentID uint `json:"document_id" form:"document_id"`
}

// HandleToggleFavorite flips the bookmark state for a document and returns
// the resulting state. The document id comes from the route param or, on the
// bare collection route, from the request body.
func HandleToggleFavorite(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	documentID, err := paramUint(c, "id")
	if err != nil {
		var req favoriteRequest
		if err := c.BodyParser(&req); err != nil || req.DocumentID == 0 {
			return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Field 'document_id' is required")
		}
		documentID = req.DocumentID
	}

	repos := repository.GetGlobalFactory().GetRepositories()
	favorited, err := toggleFavorite(repos.Document, repos.Favorite, userCtx.UserID, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Document not found")
		}
		return internalError(c, "Failed to toggle favorite")
	}
	return c.JSON(fiber.Map{"favorited": favorited})
}

// toggleFavorite flips the bookmark state for (user, document) and reports
// the resulting state.
func toggleFavorite(docs repository.DocumentRepository, favs repository.FavoriteRepository, userID, documentID uint) (bool, error) {
	if _, err := docs.GetByID(documentID); err != nil {
		return false, err
	}

	_, err := favs.Find(userID, documentID)
	switch {
	case err == nil:
		if err := favs.Delete(userID, documentID); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		favorite := &models.Favorite{UserID: userID, DocumentID: documentID}
		if err := favs.Create(favorite); err != nil {
			// A concurrent toggle may have inserted the row first; the unique
			// index makes that state equivalent to ours.
			if _, findErr := favs.Find(userID, documentID); findErr == nil {
				return true, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// HandleListFavorites returns the current user's bookmarked documents.
func HandleListFavorites(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	favorites, err := repository.GetGlobalFactory().GetFavoriteRepository().ListByUser(userCtx.UserID)
	if err != nil {
		return internalError(c, "Failed to load favorites")
	}

	items := make([]fiber.Map, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, fiber.Map{
			"document_id": f.DocumentID,
			"title":       f.Document.Title,
			"level":       f.Document.Level.Name,
			"subject":     f.Document.Subject.Name,
			"year":        f.Document.Year,
			"type":        f.Document.Type,
			"is_premium":  f.Document.IsPremium,
		})
	}

	return c.JSON(fiber.Map{"favorites": items})
}
