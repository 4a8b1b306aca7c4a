package domain

import (
	"context"
	"time"

	"github.com/stagepass/ticketing-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountRepository is the persistence port for user accounts and their
// seller-status state machine. Every status transition method is a
// compare-and-set: the update filter matches the expected current status,
// and a non-match surfaces as ErrAlreadyPending / ErrNotPending so that
// concurrent requests on the same account serialize cleanly.
type AccountRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// BeginSellerApplication flips sellerStatus to pending and records the
	// submitted application. The write applies only while the current status
	// is none or denied.
	BeginSellerApplication(ctx context.Context, id primitive.ObjectID, app models.SellerApplication) (*models.User, error)

	// ApproveSeller promotes a pending applicant: role=seller,
	// sellerStatus=approved, sellerApprovedAt=now.
	ApproveSeller(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error)

	// DenySeller denies a pending applicant and opens the reapply cooldown
	// window ending at canReapplyAt.
	DenySeller(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error)

	// ListPendingApplications returns accounts awaiting a seller decision,
	// oldest application first.
	ListPendingApplications(ctx context.Context) ([]models.User, error)
}

// SubmissionRepository is the persistence port for event submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.EventSubmission) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.EventSubmission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.EventSubmission, error)

	// PublishApproved marks a pending submission approved (slug, decidedAt)
	// and inserts the published event in one transaction, so a failed event
	// insert never strands an approved submission. The status write is a
	// compare-and-set on pending; a non-match returns ErrNotPending.
	PublishApproved(ctx context.Context, id primitive.ObjectID, slug string, decidedAt time.Time, event *models.Event) error

	// Reject marks a pending submission rejected with the admin feedback.
	Reject(ctx context.Context, id primitive.ObjectID, feedback string, decidedAt time.Time) (*models.EventSubmission, error)
}

// EventRepository is the read/write port for published events.
type EventRepository interface {
	ListActive(ctx context.Context, limit, skip int64) ([]models.Event, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
}

// OrderRepository persists ticket orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.TicketOrder) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TicketOrder, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.TicketOrder, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID string) error
	MarkRefunded(ctx context.Context, id primitive.ObjectID, refundID string) error
}
