package models

import "time"

const (
	PlanMonthly       = "monthly"
	PlanAnnual        = "annual"
	PlanAdminActivate = "admin_activate"
)

const (
	ProviderWave        = "wave"
	ProviderOrangeMoney = "orange_money"
)

const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription records one premium grant for a user. PaymentRef is the
// provider-issued transaction reference and is unique across all rows so a
// replayed payment event can never activate twice.
type Subscription struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Plan       string     `gorm:"type:varchar(32);not null" json:"plan"`
	Provider   string     `gorm:"type:varchar(32);default:''" json:"provider"`
	PaymentRef string     `gorm:"type:varchar(191);uniqueIndex:ux_subscriptions_payment_ref" json:"payment_ref"`
	Status     string     `gorm:"type:varchar(32);not null;default:'pending';index:idx_subscriptions_user_status,priority:2" json:"status"`
	StartAt    time.Time  `gorm:"type:timestamp;not null" json:"start_at"`
	EndAt      *time.Time `gorm:"type:timestamp;default:null" json:"end_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCurrentlyActive reports whether the subscription entitles the user right
// now: status must be active and, when an end date is set, it must not have
// passed. An admin grant has no end date and never expires.
func (s *Subscription) IsCurrentlyActive(now time.Time) bool {
	if s.Status != SubscriptionStatusActive {
		return false
	}
	if s.EndAt != nil && now.After(*s.EndAt) {
		return false
	}
	return true
}
