package repository

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"gorm.io/gorm"
)

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository creates a new quiz repository instance
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) GetByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetActiveByIDWithQuestions loads a playable quiz with its questions in
// display order. Inactive quizzes are not found.
func (r *quizRepository) GetActiveByIDWithQuestions(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Where("is_active = ?", true).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position asc")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListByLevelAndSubject(levelID, subjectID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	q := r.db.Where("is_active = ?", true)
	if levelID != 0 {
		q = q.Where("level_id = ?", levelID)
	}
	if subjectID != 0 {
		q = q.Where("subject_id = ?", subjectID)
	}
	err := q.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}
