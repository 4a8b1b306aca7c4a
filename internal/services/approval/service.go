package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/monitoring"
	"github.com/stagepass/ticketing-backend/internal/services/notify"
	"github.com/stagepass/ticketing-backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DecisionApprove = "approve"
	DecisionDeny    = "deny"
	DecisionReject  = "reject"

	defaultRejectionFeedback = "Your event submission did not meet our listing guidelines."
)

// SubmissionDecisionResult reports the outcome of an event-submission
// decision; EventID and Slug are set only on approval.
type SubmissionDecisionResult struct {
	NewStatus models.SubmissionStatus `json:"newStatus"`
	EventID   primitive.ObjectID      `json:"eventId,omitempty"`
	Slug      string                  `json:"slug,omitempty"`
}

// Service is the sole authority for moving pending seller applications and
// event submissions to terminal states, and for materializing public events.
type Service interface {
	DecideSellerApplication(ctx context.Context, accountID primitive.ObjectID, decision, notes string) (*models.User, error)
	DecideEventSubmission(ctx context.Context, submissionID primitive.ObjectID, decision, feedback string) (*SubmissionDecisionResult, error)
}

type service struct {
	accounts    domain.AccountRepository
	submissions domain.SubmissionRepository
	notifier    notify.Notifier
	cooldown    time.Duration
}

func NewService(accounts domain.AccountRepository, submissions domain.SubmissionRepository, notifier notify.Notifier, cooldown time.Duration) Service {
	if notifier == nil {
		notifier = notify.NewLogNotifier()
	}
	return &service{
		accounts:    accounts,
		submissions: submissions,
		notifier:    notifier,
		cooldown:    cooldown,
	}
}

// DecideSellerApplication approves or denies a pending seller application.
// The repository write is a compare-and-set on sellerStatus=pending, so a
// second concurrent decision comes back ErrNotPending. The notification is
// best-effort and never rolls the transition back.
func (s *service) DecideSellerApplication(ctx context.Context, accountID primitive.ObjectID, decision, notes string) (*models.User, error) {
	now := time.Now()

	var user *models.User
	var err error
	var notifType notify.EventType

	switch decision {
	case DecisionApprove:
		user, err = s.accounts.ApproveSeller(ctx, accountID, notes, now)
		notifType = notify.SellerApproved
	case DecisionDeny:
		user, err = s.accounts.DenySeller(ctx, accountID, notes, now, now.Add(s.cooldown))
		notifType = notify.SellerDenied
	default:
		return nil, fmt.Errorf("%w: decision must be %q or %q", domain.ErrValidation, DecisionApprove, DecisionDeny)
	}
	if err != nil {
		return nil, err
	}

	monitoring.TrackSellerDecision(decision)
	s.notifier.Notify(ctx, notify.Notification{
		Type:         notifType,
		AccountEmail: contactEmail(user),
		Payload: map[string]any{
			"accountId": user.ID.Hex(),
			"notes":     notes,
		},
	})
	return user, nil
}

// DecideEventSubmission approves or rejects a pending event submission.
// Approval assigns the slug exactly once and publishes the event in the
// same transaction as the status flip, so a concurrent duplicate approval
// yields exactly one published event.
func (s *service) DecideEventSubmission(ctx context.Context, submissionID primitive.ObjectID, decision, feedback string) (*SubmissionDecisionResult, error) {
	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubmissionStatusPending {
		return nil, domain.ErrNotPending
	}

	now := time.Now()
	switch decision {
	case DecisionApprove:
		slug := utils.UniqueSlug(sub.Title)
		event := &models.Event{
			SellerID:           sub.SellerID,
			SourceSubmissionID: sub.ID,
			Title:              sub.Title,
			Description:        sub.Description,
			Date:               sub.Date,
			Time:               sub.Time,
			Venue:              sub.Venue,
			TicketPrice:        sub.TicketPrice,
			ImageURL:           sub.ImageURL,
			OrganizerEmail:     sub.OrganizerEmail,
			Slug:               slug,
			IsActive:           true,
		}

		if err := s.submissions.PublishApproved(ctx, sub.ID, slug, now, event); err != nil {
			return nil, err
		}

		monitoring.TrackSubmissionDecision(decision)
		monitoring.TrackEventPublished()
		s.notifier.Notify(ctx, notify.Notification{
			Type:         notify.EventApproved,
			AccountEmail: sub.OrganizerEmail,
			Payload: map[string]any{
				"submissionId": sub.ID.Hex(),
				"eventId":      event.ID.Hex(),
				"slug":         slug,
			},
		})
		return &SubmissionDecisionResult{
			NewStatus: models.SubmissionStatusApproved,
			EventID:   event.ID,
			Slug:      slug,
		}, nil

	case DecisionReject:
		if feedback == "" {
			feedback = defaultRejectionFeedback
		}
		rejected, err := s.submissions.Reject(ctx, sub.ID, feedback, now)
		if err != nil {
			return nil, err
		}

		monitoring.TrackSubmissionDecision(decision)
		s.notifier.Notify(ctx, notify.Notification{
			Type:         notify.EventRejected,
			AccountEmail: rejected.OrganizerEmail,
			Payload: map[string]any{
				"submissionId": rejected.ID.Hex(),
				"feedback":     feedback,
			},
		})
		return &SubmissionDecisionResult{NewStatus: models.SubmissionStatusRejected}, nil

	default:
		return nil, fmt.Errorf("%w: decision must be %q or %q", domain.ErrValidation, DecisionApprove, DecisionReject)
	}
}

func contactEmail(user *models.User) string {
	if user.SellerApp != nil && user.SellerApp.ContactEmail != "" {
		return user.SellerApp.ContactEmail
	}
	return user.Email
}
