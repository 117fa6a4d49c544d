package repository

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"gorm.io/gorm"
)

type levelRepository struct {
	db *gorm.DB
}

// NewLevelRepository creates a new level repository instance
func NewLevelRepository(db *gorm.DB) LevelRepository {
	return &levelRepository{db: db}
}

func (r *levelRepository) GetBySlug(slug string) (*models.Level, error) {
	var level models.Level
	err := r.db.Where("slug = ?", slug).First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *levelRepository) List() ([]models.Level, error) {
	var levels []models.Level
	err := r.db.Order("position asc").Find(&levels).Error
	return levels, err
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new subject repository instance
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) GetBySlug(slug string) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.Where("slug = ?", slug).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepository) List() ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.Order("name asc").Find(&subjects).Error
	return subjects, err
}
