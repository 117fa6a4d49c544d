package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory provides a thread-safe way to access repositories
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// GetRepositories returns the repositories, initializing them on first use
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetDocumentRepository returns the document repository
func (f *Factory) GetDocumentRepository() DocumentRepository {
	return f.GetRepositories().Document
}

// GetFavoriteRepository returns the favorite repository
func (f *Factory) GetFavoriteRepository() FavoriteRepository {
	return f.GetRepositories().Favorite
}

// GetQuizRepository returns the quiz repository
func (f *Factory) GetQuizRepository() QuizRepository {
	return f.GetRepositories().Quiz
}

// GetLevelRepository returns the level repository
func (f *Factory) GetLevelRepository() LevelRepository {
	return f.GetRepositories().Level
}

// GetSubjectRepository returns the subject repository
func (f *Factory) GetSubjectRepository() SubjectRepository {
	return f.GetRepositories().Subject
}

var (
	globalFactory *Factory
	factoryMutex  sync.RWMutex
)

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	globalFactory = NewFactory(db)
}

// GetGlobalFactory returns the global repository factory
func GetGlobalFactory() *Factory {
	factoryMutex.RLock()
	defer factoryMutex.RUnlock()
	if globalFactory == nil {
		panic("repository factory not initialized - call InitializeFactory first")
	}
	return globalFactory
}
