package approval

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stagepass/ticketing-backend/internal/services/notify"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockAccountRepo struct {
	getByID       func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	approveSeller func(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error)
	denySeller    func(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAccountRepo) BeginSellerApplication(ctx context.Context, id primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
	return nil, nil
}

func (m *mockAccountRepo) ApproveSeller(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error) {
	return m.approveSeller(ctx, id, notes, now)
}

func (m *mockAccountRepo) DenySeller(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error) {
	return m.denySeller(ctx, id, notes, now, canReapplyAt)
}

func (m *mockAccountRepo) ListPendingApplications(ctx context.Context) ([]models.User, error) {
	return nil, nil
}

type mockSubmissionRepo struct {
	getByID         func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error)
	publishApproved func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error
	reject          func(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error)
}

func (m *mockSubmissionRepo) Create(ctx context.Context, sub *models.EventSubmission) error {
	return nil
}

func (m *mockSubmissionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
	return m.getByID(ctx, id)
}

func (m *mockSubmissionRepo) List(ctx context.Context, filter models.SubmissionFilter) ([]models.EventSubmission, error) {
	return nil, nil
}

func (m *mockSubmissionRepo) PublishApproved(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
	return m.publishApproved(ctx, id, slug, decidedAt, event)
}

func (m *mockSubmissionRepo) Reject(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error) {
	return m.reject(ctx, id, feedback, decidedAt)
}

// recordingNotifier captures notifications so tests can assert on them.
type recordingNotifier struct {
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) {
	r.sent = append(r.sent, n)
}

func pendingSubmission(id primitive.ObjectID) *models.EventSubmission {
	return &models.EventSubmission{
		ID:             id,
		SellerID:       primitive.NewObjectID(),
		Title:          "Spring Gala!!!",
		Description:    "Annual charity gala",
		Date:           "2026-05-15",
		Time:           "19:00",
		Venue:          "Grand Hall",
		TicketPrice:    75,
		ImageURL:       "https://cdn.example.com/gala.jpg",
		OrganizerEmail: "gala@stageleft.example.com",
		Status:         models.SubmissionStatusPending,
		SubmittedAt:    time.Now().Add(-time.Hour),
	}
}

func TestDecideSellerApplication_Approve(t *testing.T) {
	accountID := primitive.NewObjectID()
	notifier := &recordingNotifier{}

	accounts := &mockAccountRepo{
		approveSeller: func(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error) {
			assert.Equal(t, accountID, id)
			assert.Equal(t, "verified docs", notes)
			return &models.User{
				ID:               id,
				Email:            "user@example.com",
				Role:             models.RoleSeller,
				SellerStatus:     models.SellerStatusApproved,
				SellerApprovedAt: &now,
				SellerApp:        &models.SellerApplication{ContactEmail: "biz@example.com"},
			}, nil
		},
	}

	svc := NewService(accounts, &mockSubmissionRepo{}, notifier, 30*24*time.Hour)
	user, err := svc.DecideSellerApplication(context.Background(), accountID, DecisionApprove, "verified docs")

	assert.NoError(t, err)
	assert.Equal(t, models.RoleSeller, user.Role)
	assert.Equal(t, models.SellerStatusApproved, user.SellerStatus)
	assert.NotNil(t, user.SellerApprovedAt)

	if assert.Len(t, notifier.sent, 1) {
		assert.Equal(t, notify.SellerApproved, notifier.sent[0].Type)
		// The application's contact email wins over the account email.
		assert.Equal(t, "biz@example.com", notifier.sent[0].AccountEmail)
	}
}

func TestDecideSellerApplication_DenyOpensCooldown(t *testing.T) {
	accountID := primitive.NewObjectID()
	cooldown := 30 * 24 * time.Hour
	var gotNow, gotCanReapply time.Time

	accounts := &mockAccountRepo{
		denySeller: func(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error) {
			gotNow, gotCanReapply = now, canReapplyAt
			return &models.User{
				ID:             id,
				Email:          "user@example.com",
				Role:           models.RoleCustomer,
				SellerStatus:   models.SellerStatusDenied,
				SellerDeniedAt: &now,
				CanReapplyAt:   &canReapplyAt,
			}, nil
		},
	}
	notifier := &recordingNotifier{}

	svc := NewService(accounts, &mockSubmissionRepo{}, notifier, cooldown)
	user, err := svc.DecideSellerApplication(context.Background(), accountID, DecisionDeny, "incomplete info")

	assert.NoError(t, err)
	assert.Equal(t, models.SellerStatusDenied, user.SellerStatus)
	assert.Equal(t, models.RoleCustomer, user.Role, "denial never touches the role")
	assert.True(t, gotCanReapply.After(gotNow), "reapply window must open strictly after the denial")
	assert.Equal(t, cooldown, gotCanReapply.Sub(gotNow))

	if assert.Len(t, notifier.sent, 1) {
		assert.Equal(t, notify.SellerDenied, notifier.sent[0].Type)
		assert.Equal(t, "incomplete info", notifier.sent[0].Payload["notes"])
	}
}

func TestDecideSellerApplication_InvalidDecision(t *testing.T) {
	svc := NewService(&mockAccountRepo{}, &mockSubmissionRepo{}, nil, time.Hour)

	_, err := svc.DecideSellerApplication(context.Background(), primitive.NewObjectID(), "maybe", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDecideSellerApplication_NotPendingPassesThrough(t *testing.T) {
	accounts := &mockAccountRepo{
		approveSeller: func(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error) {
			return nil, domain.ErrNotPending
		},
	}
	notifier := &recordingNotifier{}

	svc := NewService(accounts, &mockSubmissionRepo{}, notifier, time.Hour)
	_, err := svc.DecideSellerApplication(context.Background(), primitive.NewObjectID(), DecisionApprove, "")

	assert.ErrorIs(t, err, domain.ErrNotPending)
	assert.Empty(t, notifier.sent, "no notification on a failed transition")
}

func TestDecideEventSubmission_ApprovePublishesEvent(t *testing.T) {
	subID := primitive.NewObjectID()
	src := pendingSubmission(subID)
	notifier := &recordingNotifier{}
	var published *models.Event
	var publishedSlug string

	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return src, nil
		},
		publishApproved: func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
			event.ID = primitive.NewObjectID()
			published, publishedSlug = event, slug
			return nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, notifier, time.Hour)
	res, err := svc.DecideEventSubmission(context.Background(), subID, DecisionApprove, "")

	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, res.NewStatus)
	assert.Equal(t, published.ID, res.EventID)
	assert.Equal(t, publishedSlug, res.Slug)

	assert.True(t, strings.HasPrefix(res.Slug, "spring-gala-"), "got %q", res.Slug)

	// The event mirrors the submission and goes live immediately.
	assert.Equal(t, src.SellerID, published.SellerID)
	assert.Equal(t, subID, published.SourceSubmissionID)
	assert.Equal(t, src.Title, published.Title)
	assert.Equal(t, src.Venue, published.Venue)
	assert.Equal(t, src.TicketPrice, published.TicketPrice)
	assert.Equal(t, src.ImageURL, published.ImageURL)
	assert.True(t, published.IsActive)

	if assert.Len(t, notifier.sent, 1) {
		assert.Equal(t, notify.EventApproved, notifier.sent[0].Type)
		assert.Equal(t, src.OrganizerEmail, notifier.sent[0].AccountEmail)
		assert.Equal(t, res.Slug, notifier.sent[0].Payload["slug"])
	}
}

func TestDecideEventSubmission_DistinctSlugsForSameTitle(t *testing.T) {
	var slugs []string
	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return pendingSubmission(id), nil
		},
		publishApproved: func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
			slugs = append(slugs, slug)
			return nil
		},
	}
	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)

	for i := 0; i < 2; i++ {
		_, err := svc.DecideEventSubmission(context.Background(), primitive.NewObjectID(), DecisionApprove, "")
		assert.NoError(t, err)
	}
	assert.Len(t, slugs, 2)
	assert.NotEqual(t, slugs[0], slugs[1])
}

func TestDecideEventSubmission_RejectKeepsFeedbackVerbatim(t *testing.T) {
	subID := primitive.NewObjectID()
	notifier := &recordingNotifier{}
	var gotFeedback string

	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return pendingSubmission(subID), nil
		},
		publishApproved: func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
			t.Fatal("rejection must not publish an event")
			return nil
		},
		reject: func(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error) {
			gotFeedback = feedback
			sub := pendingSubmission(subID)
			sub.Status = models.SubmissionStatusRejected
			sub.AdminFeedback = feedback
			sub.DecidedAt = &decidedAt
			return sub, nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, notifier, time.Hour)
	res, err := svc.DecideEventSubmission(context.Background(), subID, DecisionReject, "Venue is double-booked; pick a new date.")

	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, res.NewStatus)
	assert.True(t, res.EventID.IsZero())
	assert.Empty(t, res.Slug)
	assert.Equal(t, "Venue is double-booked; pick a new date.", gotFeedback)

	if assert.Len(t, notifier.sent, 1) {
		assert.Equal(t, notify.EventRejected, notifier.sent[0].Type)
		assert.Equal(t, gotFeedback, notifier.sent[0].Payload["feedback"])
	}
}

func TestDecideEventSubmission_RejectDefaultsFeedback(t *testing.T) {
	subID := primitive.NewObjectID()
	var gotFeedback string

	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return pendingSubmission(subID), nil
		},
		reject: func(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error) {
			gotFeedback = feedback
			sub := pendingSubmission(subID)
			sub.Status = models.SubmissionStatusRejected
			return sub, nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)
	_, err := svc.DecideEventSubmission(context.Background(), subID, DecisionReject, "")

	assert.NoError(t, err)
	assert.Equal(t, defaultRejectionFeedback, gotFeedback)
}

func TestDecideEventSubmission_AlreadyDecided(t *testing.T) {
	subID := primitive.NewObjectID()
	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			sub := pendingSubmission(subID)
			sub.Status = models.SubmissionStatusApproved
			return sub, nil
		},
		publishApproved: func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
			t.Fatal("decided submission must not be re-published")
			return nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)
	_, err := svc.DecideEventSubmission(context.Background(), subID, DecisionApprove, "")
	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestDecideEventSubmission_ConcurrentDuplicateApproval(t *testing.T) {
	// Both decisions read the submission while it was still pending; the
	// compare-and-set inside PublishApproved lets exactly one of them win.
	subID := primitive.NewObjectID()
	publishes := 0

	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return pendingSubmission(subID), nil
		},
		publishApproved: func(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error {
			publishes++
			if publishes > 1 {
				return domain.ErrNotPending
			}
			event.ID = primitive.NewObjectID()
			return nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)

	res, err := svc.DecideEventSubmission(context.Background(), subID, DecisionApprove, "")
	assert.NoError(t, err)
	assert.False(t, res.EventID.IsZero())

	_, err = svc.DecideEventSubmission(context.Background(), subID, DecisionApprove, "")
	assert.ErrorIs(t, err, domain.ErrNotPending)
	assert.Equal(t, 2, publishes, "second attempt reaches the store but loses the compare-and-set")
}

func TestDecideEventSubmission_InvalidDecision(t *testing.T) {
	subID := primitive.NewObjectID()
	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return pendingSubmission(subID), nil
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)
	_, err := svc.DecideEventSubmission(context.Background(), subID, "escalate", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDecideEventSubmission_NotFound(t *testing.T) {
	subs := &mockSubmissionRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(&mockAccountRepo{}, subs, nil, time.Hour)
	_, err := svc.DecideEventSubmission(context.Background(), primitive.NewObjectID(), DecisionApprove, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
