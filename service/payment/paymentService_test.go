package paymentsvc

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"digitallibrary/model"
	"digitallibrary/repository/billing"
)

type mockRepo struct {
	byIDFn       func(ctx context.Context, id string) (*model.User, error)
	setPremiumFn func(ctx context.Context, id string, premium bool) error
}

func (m *mockRepo) Create(context.Context, *model.User) error { panic("not used") }
func (m *mockRepo) ByID(ctx context.Context, id string) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *mockRepo) ByContact(context.Context, string) (*model.User, error) { panic("not used") }
func (m *mockRepo) SetPremium(ctx context.Context, id string, premium bool) error {
	return m.setPremiumFn(ctx, id, premium)
}
func (m *mockRepo) Delete(context.Context, string) error { panic("not used") }
func (m *mockRepo) UpsertChallenge(context.Context, string, string, time.Time) error {
	panic("not used")
}
func (m *mockRepo) ChallengeByContact(context.Context, string) (string, time.Time, error) {
	panic("not used")
}
func (m *mockRepo) DeleteChallenge(context.Context, string) error { panic("not used") }

func sessionRepo(u *model.User) (*mockRepo, *bool) {
	persisted := false
	return &mockRepo{
		byIDFn: func(_ context.Context, id string) (*model.User, error) {
			if u == nil || id != u.ID {
				return nil, sql.ErrNoRows
			}
			cp := *u
			return &cp, nil
		},
		setPremiumFn: func(_ context.Context, id string, premium bool) error {
			if u == nil || id != u.ID {
				return sql.ErrNoRows
			}
			u.IsPremium = premium
			persisted = true
			return nil
		},
	}, &persisted
}

func TestUpgrade_PremiumPlanSetsAndPersistsFlag(t *testing.T) {
	u := &model.User{ID: "s1", Email: "reader@example.com"}
	sr, persisted := sessionRepo(u)
	svc := New(sr, billing.NewStub(0, nil))

	got, err := svc.Upgrade(context.Background(), "s1", PlanPremium)
	require.NoError(t, err)
	require.True(t, got.IsPremium)
	require.True(t, *persisted)
	require.True(t, u.IsPremium)
}

func TestUpgrade_PremiumIsIdempotent(t *testing.T) {
	u := &model.User{ID: "s1", IsPremium: true}
	sr, persisted := sessionRepo(u)
	svc := New(sr, billing.NewStub(0, nil))

	got, err := svc.Upgrade(context.Background(), "s1", PlanPremium)
	require.NoError(t, err)
	require.True(t, got.IsPremium)
	// Already premium: no redundant write.
	require.False(t, *persisted)
}

func TestUpgrade_BookPlanDoesNotTouchPremium(t *testing.T) {
	u := &model.User{ID: "s1"}
	sr, persisted := sessionRepo(u)
	svc := New(sr, billing.NewStub(0, nil))

	got, err := svc.Upgrade(context.Background(), "s1", PlanBook)
	require.NoError(t, err)
	require.False(t, got.IsPremium)
	require.False(t, *persisted)
}

func TestUpgrade_UnknownPlan(t *testing.T) {
	sr, _ := sessionRepo(&model.User{ID: "s1"})
	svc := New(sr, billing.NewStub(0, nil))

	_, err := svc.Upgrade(context.Background(), "s1", "platinum")
	require.Equal(t, ErrUnknownPlan, Code(err))
}

func TestUpgrade_UnknownSession(t *testing.T) {
	sr, _ := sessionRepo(nil)
	svc := New(sr, billing.NewStub(0, nil))

	_, err := svc.Upgrade(context.Background(), "ghost", PlanPremium)
	require.Equal(t, ErrNotLoggedIn, Code(err))
}

func TestUpgrade_CancelledContext(t *testing.T) {
	sr, persisted := sessionRepo(&model.User{ID: "s1"})
	svc := New(sr, billing.NewStub(time.Second, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Upgrade(ctx, "s1", PlanPremium)
	require.Error(t, err)
	require.False(t, *persisted)
}
