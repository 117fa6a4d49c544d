package repository

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"gorm.io/gorm"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository instance
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Find(userID, documentID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND document_id = ?", userID, documentID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Create(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *favoriteRepository) Delete(userID, documentID uint) error {
	return r.db.Where("user_id = ? AND document_id = ?", userID, documentID).
		Delete(&models.Favorite{}).Error
}

func (r *favoriteRepository) ListByUser(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).
		Preload("Document").Preload("Document.Level").Preload("Document.Subject").
		Order("created_at desc").
		Find(&favorites).Error
	return favorites, err
}
