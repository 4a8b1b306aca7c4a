package seller

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/monitoring"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplyInput is the business details a customer submits when applying for
// seller status.
type ApplyInput struct {
	BusinessName string `json:"businessName" validate:"required"`
	BusinessType string `json:"businessType" validate:"required"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone"`
	Description  string `json:"description"`
}

type Service interface {
	Apply(ctx context.Context, accountID primitive.ObjectID, input ApplyInput) (*models.SellerStatusSnapshot, error)
	GetStatus(ctx context.Context, accountID primitive.ObjectID) (*models.SellerStatusSnapshot, error)
}

type service struct {
	accounts domain.AccountRepository
	validate *validator.Validate
	cooldown time.Duration
}

func NewService(accounts domain.AccountRepository, cooldown time.Duration) Service {
	return &service{
		accounts: accounts,
		validate: validator.New(),
		cooldown: cooldown,
	}
}

// Apply gates a seller application on the account's current seller status:
// allowed from none, or from denied once the cooldown has elapsed. A pending
// re-submission is rejected, never merged.
func (s *service) Apply(ctx context.Context, accountID primitive.ObjectID, input ApplyInput) (*models.SellerStatusSnapshot, error) {
	if err := s.validate.Struct(input); err != nil {
		monitoring.TrackSellerApplication("invalid")
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch user.SellerStatus {
	case models.SellerStatusPending:
		monitoring.TrackSellerApplication("already_pending")
		return nil, domain.ErrAlreadyPending
	case models.SellerStatusApproved:
		monitoring.TrackSellerApplication("already_seller")
		return nil, domain.ErrAlreadySeller
	case models.SellerStatusDenied:
		if user.CanReapplyAt != nil && now.Before(*user.CanReapplyAt) {
			monitoring.TrackSellerApplication("too_soon")
			return nil, fmt.Errorf("reapplication available in %d days: %w",
				daysUntil(now, *user.CanReapplyAt), domain.ErrReapplyTooSoon)
		}
	}

	app := models.SellerApplication{
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Description:  input.Description,
		AppliedAt:    now,
	}
	app.RiskScore, app.RiskFlags = scoreApplication(user, &app, now)

	updated, err := s.accounts.BeginSellerApplication(ctx, accountID, app)
	if err != nil {
		return nil, err
	}

	monitoring.TrackSellerApplication("accepted")
	return snapshot(updated, time.Now()), nil
}

func (s *service) GetStatus(ctx context.Context, accountID primitive.ObjectID) (*models.SellerStatusSnapshot, error) {
	user, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return snapshot(user, time.Now()), nil
}

// snapshot computes the caller-facing view of the seller state machine.
func snapshot(user *models.User, now time.Time) *models.SellerStatusSnapshot {
	snap := &models.SellerStatusSnapshot{
		Status:       user.SellerStatus,
		AppliedAt:    user.SellerAppliedAt,
		ApprovedAt:   user.SellerApprovedAt,
		DeniedAt:     user.SellerDeniedAt,
		CanReapplyAt: user.CanReapplyAt,
	}
	if user.SellerApp != nil {
		snap.RiskScore = user.SellerApp.RiskScore
		snap.RiskFlagsInternal = user.SellerApp.RiskFlags
	}

	switch user.SellerStatus {
	case models.SellerStatusNone:
		snap.CanApply = true
	case models.SellerStatusDenied:
		if user.CanReapplyAt == nil || !now.Before(*user.CanReapplyAt) {
			snap.CanApply = true
		} else {
			snap.DaysUntilReapply = daysUntil(now, *user.CanReapplyAt)
		}
	}
	return snap
}

// daysUntil is the ceiling of the remaining cooldown in days.
func daysUntil(now, until time.Time) int {
	remaining := until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
