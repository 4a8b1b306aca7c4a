package seller

import (
	"context"
	"testing"
	"time"

	"github.com/stagepass/ticketing-backend/internal/core/domain"
	"github.com/stagepass/ticketing-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockAccountRepo struct {
	getByID           func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	beginApplication  func(ctx context.Context, id primitive.ObjectID, app models.SellerApplication) (*models.User, error)
	approveSeller     func(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error)
	denySeller        func(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error)
	listPendingAppsFn func(ctx context.Context) ([]models.User, error)
}

func (m *mockAccountRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockAccountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAccountRepo) BeginSellerApplication(ctx context.Context, id primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
	return m.beginApplication(ctx, id, app)
}

func (m *mockAccountRepo) ApproveSeller(ctx context.Context, id primitive.ObjectID, notes string, now time.Time) (*models.User, error) {
	return m.approveSeller(ctx, id, notes, now)
}

func (m *mockAccountRepo) DenySeller(ctx context.Context, id primitive.ObjectID, notes string, now, canReapplyAt time.Time) (*models.User, error) {
	return m.denySeller(ctx, id, notes, now, canReapplyAt)
}

func (m *mockAccountRepo) ListPendingApplications(ctx context.Context) ([]models.User, error) {
	return m.listPendingAppsFn(ctx)
}

func validApplyInput() ApplyInput {
	return ApplyInput{
		BusinessName: "Stage Left Events",
		BusinessType: "event_organizer",
		ContactEmail: "booking@stageleft.example.com",
		ContactPhone: "+1-555-0101",
		Description:  "Regional live music promoter",
	}
}

func customerAccount(id primitive.ObjectID) *models.User {
	return &models.User{
		ID:           id,
		Email:        "user@example.com",
		Role:         models.RoleCustomer,
		SellerStatus: models.SellerStatusNone,
		CreatedAt:    time.Now().Add(-72 * time.Hour),
	}
}

func TestApply_FirstApplicationGoesPending(t *testing.T) {
	id := primitive.NewObjectID()
	var captured models.SellerApplication

	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
			assert.Equal(t, id, got)
			return customerAccount(id), nil
		},
		beginApplication: func(ctx context.Context, got primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
			captured = app
			user := customerAccount(id)
			user.SellerStatus = models.SellerStatusPending
			user.SellerApp = &app
			user.SellerAppliedAt = &app.AppliedAt
			return user, nil
		},
	}

	svc := NewService(repo, 30*24*time.Hour)
	snap, err := svc.Apply(context.Background(), id, validApplyInput())

	assert.NoError(t, err)
	assert.Equal(t, models.SellerStatusPending, snap.Status)
	assert.False(t, snap.CanApply)
	assert.Equal(t, "Stage Left Events", captured.BusinessName)
	assert.False(t, captured.AppliedAt.IsZero())
}

func TestApply_ValidationFailures(t *testing.T) {
	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			t.Fatal("repository should not be reached on invalid input")
			return nil, nil
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	tests := []struct {
		name   string
		mutate func(*ApplyInput)
	}{
		{"missing business name", func(in *ApplyInput) { in.BusinessName = "" }},
		{"missing business type", func(in *ApplyInput) { in.BusinessType = "" }},
		{"missing contact email", func(in *ApplyInput) { in.ContactEmail = "" }},
		{"malformed contact email", func(in *ApplyInput) { in.ContactEmail = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validApplyInput()
			tt.mutate(&input)
			_, err := svc.Apply(context.Background(), primitive.NewObjectID(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestApply_WhilePendingIsRejected(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
			user := customerAccount(id)
			user.SellerStatus = models.SellerStatusPending
			return user, nil
		},
		beginApplication: func(ctx context.Context, got primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
			t.Fatal("pending application must not be overwritten")
			return nil, nil
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	// A second submission is rejected even with different business details.
	input := validApplyInput()
	input.BusinessName = "Completely Different Name"
	_, err := svc.Apply(context.Background(), id, input)
	assert.ErrorIs(t, err, domain.ErrAlreadyPending)
}

func TestApply_ApprovedSellerCannotReapply(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
			user := customerAccount(id)
			user.Role = models.RoleSeller
			user.SellerStatus = models.SellerStatusApproved
			return user, nil
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	_, err := svc.Apply(context.Background(), id, validApplyInput())
	assert.ErrorIs(t, err, domain.ErrAlreadySeller)
}

func TestApply_DeniedWithinCooldown(t *testing.T) {
	id := primitive.NewObjectID()
	deniedAt := time.Now().Add(-24 * time.Hour)
	canReapply := time.Now().Add(47 * time.Hour)

	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
			user := customerAccount(id)
			user.SellerStatus = models.SellerStatusDenied
			user.SellerDeniedAt = &deniedAt
			user.CanReapplyAt = &canReapply
			return user, nil
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	_, err := svc.Apply(context.Background(), id, validApplyInput())
	assert.ErrorIs(t, err, domain.ErrReapplyTooSoon)
	// 47h remaining rounds up to 2 days.
	assert.Contains(t, err.Error(), "2 days")
}

func TestApply_DeniedAfterCooldownSucceeds(t *testing.T) {
	id := primitive.NewObjectID()
	deniedAt := time.Now().Add(-31 * 24 * time.Hour)
	canReapply := time.Now().Add(-time.Minute)

	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
			user := customerAccount(id)
			user.SellerStatus = models.SellerStatusDenied
			user.SellerDeniedAt = &deniedAt
			user.CanReapplyAt = &canReapply
			return user, nil
		},
		beginApplication: func(ctx context.Context, got primitive.ObjectID, app models.SellerApplication) (*models.User, error) {
			user := customerAccount(id)
			user.SellerStatus = models.SellerStatusPending
			user.SellerApp = &app
			user.SellerAppliedAt = &app.AppliedAt
			return user, nil
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	snap, err := svc.Apply(context.Background(), id, validApplyInput())
	assert.NoError(t, err)
	assert.Equal(t, models.SellerStatusPending, snap.Status)
}

func TestApply_AccountNotFound(t *testing.T) {
	repo := &mockAccountRepo{
		getByID: func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewService(repo, 30*24*time.Hour)

	_, err := svc.Apply(context.Background(), primitive.NewObjectID(), validApplyInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStatus(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("fresh account can apply", func(t *testing.T) {
		repo := &mockAccountRepo{
			getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
				return customerAccount(id), nil
			},
		}
		svc := NewService(repo, 30*24*time.Hour)

		snap, err := svc.GetStatus(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, models.SellerStatusNone, snap.Status)
		assert.True(t, snap.CanApply)
		assert.Zero(t, snap.DaysUntilReapply)
	})

	t.Run("denied inside cooldown reports days remaining", func(t *testing.T) {
		deniedAt := time.Now().Add(-time.Hour)
		canReapply := time.Now().Add(30 * time.Hour)
		repo := &mockAccountRepo{
			getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
				user := customerAccount(id)
				user.SellerStatus = models.SellerStatusDenied
				user.SellerDeniedAt = &deniedAt
				user.CanReapplyAt = &canReapply
				return user, nil
			},
		}
		svc := NewService(repo, 30*24*time.Hour)

		snap, err := svc.GetStatus(context.Background(), id)
		assert.NoError(t, err)
		assert.Equal(t, models.SellerStatusDenied, snap.Status)
		assert.False(t, snap.CanApply)
		// 30h remaining rounds up to 2 days.
		assert.Equal(t, 2, snap.DaysUntilReapply)
	})

	t.Run("denied with elapsed cooldown can apply", func(t *testing.T) {
		deniedAt := time.Now().Add(-40 * 24 * time.Hour)
		canReapply := time.Now().Add(-10 * 24 * time.Hour)
		repo := &mockAccountRepo{
			getByID: func(ctx context.Context, got primitive.ObjectID) (*models.User, error) {
				user := customerAccount(id)
				user.SellerStatus = models.SellerStatusDenied
				user.SellerDeniedAt = &deniedAt
				user.CanReapplyAt = &canReapply
				return user, nil
			},
		}
		svc := NewService(repo, 30*24*time.Hour)

		snap, err := svc.GetStatus(context.Background(), id)
		assert.NoError(t, err)
		assert.True(t, snap.CanApply)
		assert.Zero(t, snap.DaysUntilReapply)
	})
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysUntil(now, now))
	assert.Equal(t, 0, daysUntil(now, now.Add(-time.Hour)))
	assert.Equal(t, 1, daysUntil(now, now.Add(time.Minute)))
	assert.Equal(t, 1, daysUntil(now, now.Add(24*time.Hour)))
	assert.Equal(t, 2, daysUntil(now, now.Add(24*time.Hour+time.Second)))
	assert.Equal(t, 30, daysUntil(now, now.Add(30*24*time.Hour)))
}
