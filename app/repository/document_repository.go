package repository

import (
	"sort"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository instance
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var document models.Document
	err := r.db.Preload("Level").Preload("Subject").First(&document, id).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) Update(document *models.Document) error {
	return r.db.Save(document).Error
}

func (r *documentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// ListFiltered returns documents for a level, optionally narrowed by subject
// and year, ordered for pack assembly: subject name ascending, newest year
// first, type breaking ties.
func (r *documentRepository) ListFiltered(filter DocumentFilter) ([]models.Document, error) {
	var documents []models.Document
	q := r.db.Model(&models.Document{}).
		Joins("JOIN levels ON levels.id = documents.level_id").
		Joins("JOIN subjects ON subjects.id = documents.subject_id").
		Where("levels.slug = ?", filter.LevelSlug)
	if filter.SubjectSlug != "" {
		q = q.Where("subjects.slug = ?", filter.SubjectSlug)
	}
	if filter.Year != 0 {
		q = q.Where("documents.year = ?", filter.Year)
	}
	if err := q.Preload("Level").Preload("Subject").Find(&documents).Error; err != nil {
		return nil, err
	}
	sortDocuments(documents)
	return documents, nil
}

// sortDocuments applies the listing order: subject name asc, year desc,
// type asc.
func sortDocuments(docs []models.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := &docs[i], &docs[j]
		if a.Subject.Name != b.Subject.Name {
			return a.Subject.Name < b.Subject.Name
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Type < b.Type
	})
}

func (r *documentRepository) IncrementDownloadCount(id uint, delta int64) error {
	return r.db.Model(&models.Document{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", delta)).Error
}
