package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/monitoring"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitInput is the event proposal an approved seller submits for review.
type SubmitInput struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description" validate:"required"`
	Date           string  `json:"date" validate:"required"`
	Time           string  `json:"time" validate:"required"`
	Venue          string  `json:"venue" validate:"required"`
	TicketPrice    float64 `json:"ticketPrice"`
	ImageURL       string  `json:"imageUrl"`
	OrganizerEmail string  `json:"organizerEmail" validate:"required,email"`
}

type Service interface {
	Submit(ctx context.Context, sellerID primitive.ObjectID, input SubmitInput) (*models.EventSubmission, error)
	List(ctx context.Context, callerID primitive.ObjectID, filter models.SubmissionFilter) ([]models.EventSubmission, error)
}

type service struct {
	accounts    domain.AccountRepository
	submissions domain.SubmissionRepository
	validate    *validator.Validate
}

func NewService(accounts domain.AccountRepository, submissions domain.SubmissionRepository) Service {
	return &service{
		accounts:    accounts,
		submissions: submissions,
		validate:    validator.New(),
	}
}

// Submit accepts an event proposal from an approved seller. A bad ticket
// price is caught here, at submission time, not deferred to approval.
func (s *service) Submit(ctx context.Context, sellerID primitive.ObjectID, input SubmitInput) (*models.EventSubmission, error) {
	user, err := s.accounts.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleSeller || user.SellerStatus != models.SellerStatusApproved {
		monitoring.TrackEventSubmission("not_seller")
		return nil, domain.ErrNotApprovedSeller
	}

	if err := s.validate.Struct(input); err != nil {
		monitoring.TrackEventSubmission("invalid")
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if input.TicketPrice < 0 {
		monitoring.TrackEventSubmission("invalid")
		return nil, fmt.Errorf("%w: ticket price must be >= 0", domain.ErrValidation)
	}

	sub := &models.EventSubmission{
		SellerID:       sellerID,
		Title:          input.Title,
		Description:    input.Description,
		Date:           input.Date,
		Time:           input.Time,
		Venue:          input.Venue,
		TicketPrice:    input.TicketPrice,
		ImageURL:       input.ImageURL,
		OrganizerEmail: input.OrganizerEmail,
		Status:         models.SubmissionStatusPending,
		SubmittedAt:    time.Now(),
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	monitoring.TrackEventSubmission("accepted")
	return sub, nil
}

// List returns submissions newest first. Non-admin callers only see their
// own, whatever sellerId the request asked for.
func (s *service) List(ctx context.Context, callerID primitive.ObjectID, filter models.SubmissionFilter) ([]models.EventSubmission, error) {
	if !filter.IsAdminView {
		filter.SellerID = callerID
	}
	return s.submissions.List(ctx, filter)
}
