package repository

import (
	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// DocumentFilter narrows document listings; Level is required for packs.
type DocumentFilter struct {
	LevelSlug   string
	SubjectSlug string
	Year        int
}

// DocumentRepository defines the interface for document-related database operations
type DocumentRepository interface {
	Create(document *models.Document) error
	GetByID(id uint) (*models.Document, error)
	Update(document *models.Document) error
	Delete(id uint) error
	ListFiltered(filter DocumentFilter) ([]models.Document, error)
	IncrementDownloadCount(id uint, delta int64) error
}

// FavoriteRepository defines the interface for favorite-toggle operations
type FavoriteRepository interface {
	Find(userID, documentID uint) (*models.Favorite, error)
	Create(favorite *models.Favorite) error
	Delete(userID, documentID uint) error
	ListByUser(userID uint) ([]models.Favorite, error)
}

// QuizRepository defines the interface for quiz-related database operations
type QuizRepository interface {
	Create(quiz *models.Quiz) error
	GetByID(id uint) (*models.Quiz, error)
	GetActiveByIDWithQuestions(id uint) (*models.Quiz, error)
	ListByLevelAndSubject(levelID, subjectID uint) ([]models.Quiz, error)
}

// LevelRepository resolves school levels
type LevelRepository interface {
	GetBySlug(slug string) (*models.Level, error)
	List() ([]models.Level, error)
}

// SubjectRepository resolves school subjects
type SubjectRepository interface {
	GetBySlug(slug string) (*models.Subject, error)
	List() ([]models.Subject, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User     UserRepository
	Document DocumentRepository
	Favorite FavoriteRepository
	Quiz     QuizRepository
	Level    LevelRepository
	Subject  SubjectRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Document: NewDocumentRepository(db),
		Favorite: NewFavoriteRepository(db),
		Quiz:     NewQuizRepository(db),
		Level:    NewLevelRepository(db),
		Subject:  NewSubjectRepository(db),
	}
}
