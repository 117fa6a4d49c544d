package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

var (
	ErrAlreadySubscribed     = errors.New("user already has an active subscription")
	ErrPaymentRefUsed        = errors.New("payment reference already consumed")
	ErrProviderNotConfigured = errors.New("payment provider is not configured")
	ErrUnknownPlan           = errors.New("unknown subscription plan")
)

// Service owns the subscription lifecycle: checkout initiation, activation,
// admin override and entitlement reads. Activation applies its three effects
// (cancel old, flip flag, write new row) inside a single transaction.
type Service struct {
	repo     Repository
	checkout CheckoutProvider
	now      func() time.Time
}

// NewService creates a subscription service. checkout may be nil; checkout
// initiation then fails with ErrProviderNotConfigured.
func NewService(repo Repository, checkout CheckoutProvider) *Service {
	return &Service{
		repo:     repo,
		checkout: checkout,
		now:      time.Now,
	}
}

// NewServiceFromDB creates a service without a checkout provider, enough for
// activation and entitlement reads.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), nil)
}

// IsEntitled reports whether the user currently holds a premium entitlement,
// derived from subscription rows. An ACTIVE row past its end date does not
// entitle.
func (s *Service) IsEntitled(userID uint) (bool, error) {
	if userID == 0 {
		return false, errors.New("user_id is required")
	}
	return s.repo.HasCurrentlyActive(userID, s.now())
}

// InitiateCheckout starts the external payment flow for a paid plan and
// records a PENDING subscription keyed by the provider session reference.
// The premium flag is untouched until activation.
func (s *Service) InitiateCheckout(ctx context.Context, userID uint, plan string) (*CheckoutResult, error) {
	plan = normalizePlan(plan)
	if !isPaidPlan(plan) {
		return nil, ErrUnknownPlan
	}
	if s.checkout == nil || !s.checkout.IsConfigured() {
		return nil, ErrProviderNotConfigured
	}

	active, err := s.repo.HasCurrentlyActive(userID, s.now())
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAlreadySubscribed
	}

	amount, _ := PlanPriceXOF(plan)
	reference := uuid.NewString()
	session, err := s.checkout.CreateSession(ctx, plan, amount, reference)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	duration, _ := PlanDuration(plan)
	now := s.now()
	endAt := now.Add(duration)
	sub := &models.Subscription{
		UserID:     userID,
		Plan:       plan,
		Provider:   s.checkout.Name(),
		PaymentRef: session.ID,
		Status:     models.SubscriptionStatusPending,
		StartAt:    now,
		EndAt:      &endAt,
	}
	if err := s.repo.Create(sub); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		CheckoutURL: session.CheckoutURL,
		SessionID:   session.ID,
	}, nil
}

// Activate applies a confirmed payment: the reference must not have been
// consumed before, every previously active subscription is cancelled, the new
// row becomes ACTIVE with end date now + plan duration, and the user's
// premium flag goes true. All of it inside one transaction.
func (s *Service) Activate(ctx context.Context, userID uint, plan, provider, paymentRef string) (*models.Subscription, error) {
	_ = ctx
	plan = normalizePlan(plan)
	if !isPaidPlan(plan) {
		return nil, ErrUnknownPlan
	}
	if paymentRef == "" {
		return nil, errors.New("payment reference is required")
	}

	var activated *models.Subscription
	err := s.repo.Transact(func(tx Repository) error {
		existing, err := tx.FindByPaymentRef(paymentRef)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil && existing.Status != models.SubscriptionStatusPending {
			return ErrPaymentRefUsed
		}
		if existing != nil && existing.UserID != userID {
			// A pending checkout belongs to the user who opened it; anyone
			// else presenting its reference is replaying a stolen token.
			return ErrPaymentRefUsed
		}

		if err := tx.CancelActiveForUser(userID); err != nil {
			return err
		}

		duration, _ := PlanDuration(plan)
		now := s.now()
		endAt := now.Add(duration)

		if existing != nil {
			// Promote the pending checkout row rather than inserting a twin.
			existing.Status = models.SubscriptionStatusActive
			existing.StartAt = now
			existing.EndAt = &endAt
			if err := tx.Save(existing); err != nil {
				return err
			}
			activated = existing
		} else {
			sub := &models.Subscription{
				UserID:     userID,
				Plan:       plan,
				Provider:   normalizeProvider(provider),
				PaymentRef: paymentRef,
				Status:     models.SubscriptionStatusActive,
				StartAt:    now,
				EndAt:      &endAt,
			}
			if err := tx.Create(sub); err != nil {
				return err
			}
			activated = sub
		}

		return tx.SetUserPremium(userID, true)
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

// ConfirmCheckout activates the pending subscription recorded at checkout
// initiation, looked up by the provider session reference. Used by the
// payment provider callback.
func (s *Service) ConfirmCheckout(ctx context.Context, paymentRef string) (*models.Subscription, error) {
	pending, err := s.repo.FindByPaymentRef(paymentRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	if pending.Status != models.SubscriptionStatusPending {
		return nil, ErrPaymentRefUsed
	}
	return s.Activate(ctx, pending.UserID, pending.Plan, pending.Provider, paymentRef)
}

// AdminOverride forces the premium entitlement for a user. Enabling cancels
// existing active rows and grants a non-expiring admin subscription;
// disabling cancels and only clears the flag.
func (s *Service) AdminOverride(ctx context.Context, userID uint, isPremium bool) error {
	_ = ctx
	if userID == 0 {
		return errors.New("user_id is required")
	}

	return s.repo.Transact(func(tx Repository) error {
		if err := tx.CancelActiveForUser(userID); err != nil {
			return err
		}
		if isPremium {
			sub := &models.Subscription{
				UserID:     userID,
				Plan:       models.PlanAdminActivate,
				PaymentRef: "admin_" + uuid.NewString(),
				Status:     models.SubscriptionStatusActive,
				StartAt:    s.now(),
			}
			if err := tx.Create(sub); err != nil {
				return err
			}
		}
		return tx.SetUserPremium(userID, isPremium)
	})
}
