package subscription

import (
	"time"

	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

// Repository provides DB operations used by the subscription service. All
// mutations inside Transact run in one transaction so the single-active
// invariant holds under concurrent activations.
type Repository interface {
	Transact(fn func(Repository) error) error
	FindByPaymentRef(ref string) (*models.Subscription, error)
	ListByUser(userID uint) ([]models.Subscription, error)
	HasCurrentlyActive(userID uint, now time.Time) (bool, error)
	Create(sub *models.Subscription) error
	Save(sub *models.Subscription) error
	CancelActiveForUser(userID uint) error
	SetUserPremium(userID uint, premium bool) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transact(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) FindByPaymentRef(ref string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("payment_ref = ?", ref).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) ListByUser(userID uint) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *gormRepository) HasCurrentlyActive(userID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ? AND (end_at IS NULL OR end_at > ?)",
			userID, models.SubscriptionStatusActive, now).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *gormRepository) Save(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

func (r *gormRepository) CancelActiveForUser(userID uint) error {
	return r.db.Model(&models.Subscription{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Update("status", models.SubscriptionStatusCancelled).Error
}

func (r *gormRepository) SetUserPremium(userID uint, premium bool) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_premium", premium).Error
}
