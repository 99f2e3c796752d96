package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"volunteerhub/internal/config"
	"volunteerhub/internal/db"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

type fixture struct {
	db        *gorm.DB
	events    EventRepository
	locations EventLocationRepository
	tags      EventTagRepository
	regs      EventRegistrationRepository
	metrics   MetricRepository
	skills    SkillRepository
	users     UserRepository
	creds     CredentialRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "test.db")}
	gormDB, err := db.Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))

	return &fixture{
		db:        gormDB,
		events:    NewEventRepository(gormDB),
		locations: NewEventLocationRepository(gormDB),
		tags:      NewEventTagRepository(gormDB),
		regs:      NewEventRegistrationRepository(gormDB),
		metrics:   NewMetricRepository(gormDB),
		skills:    NewSkillRepository(gormDB),
		users:     NewUserRepository(gormDB),
		creds:     NewCredentialRepository(gormDB),
	}
}

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) location(t *testing.T, name string) *model.EventLocation {
	t.Helper()
	l := &model.EventLocation{Name: name}
	require.NoError(t, f.locations.Create(context.Background(), l))
	return l
}

func (f *fixture) event(t *testing.T, name string, status model.ApprovalStatus, organiser *model.User, location *model.EventLocation, at time.Time) *model.Event {
	t.Helper()
	e := &model.Event{
		Name:            name,
		Timestamp:       at,
		Duration:        2,
		Details:         name + " details",
		ApprovalStatus:  status,
		EventLocationID: location.ID,
		UserID:          organiser.ID,
	}
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}

func eventNames(events []model.Event) []string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	return names
}

func parseArgs(t *testing.T, body string) validation.EventFindManyArgs {
	t.Helper()
	var args validation.EventFindManyArgs
	require.NoError(t, json.Unmarshal([]byte(body), &args))
	require.NoError(t, validation.CheckFindMany(&args, validation.EventSortable))
	return args
}

func TestEventCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	location := f.location(t, "Harbour")

	t.Run("defaults to pending", func(t *testing.T) {
		e := f.event(t, "Cleanup", "", organiser, location, time.Now().UTC())
		got, err := f.events.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, model.ApprovalStatusPending, got.ApprovalStatus)
		require.NotNil(t, got.EventLocation)
		assert.Equal(t, "Harbour", got.EventLocation.Name)
	})

	t.Run("missing location", func(t *testing.T) {
		e := &model.Event{Name: "x", Timestamp: time.Now(), Details: "x", EventLocationID: 999, UserID: organiser.ID}
		err := f.events.Create(ctx, e)
		assert.True(t, apperrors.IsMissingRelation(err), "got %v", err)
	})

	t.Run("missing organiser", func(t *testing.T) {
		e := &model.Event{Name: "x", Timestamp: time.Now(), Details: "x", EventLocationID: location.ID, UserID: "3d0f1a8e-5c2b-4e7d-9a61-0f4b8c2d7e19"}
		err := f.events.Create(ctx, e)
		assert.True(t, apperrors.IsMissingRelation(err), "got %v", err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.events.FindByID(ctx, "3d0f1a8e-5c2b-4e7d-9a61-0f4b8c2d7e19")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestEventFindMany(t *testing.T) {
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	other := f.user(t, "other@example.org")
	harbour := f.location(t, "Harbour")
	park := f.location(t, "Park")
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	f.event(t, "Beach Cleanup", model.ApprovalStatusApproved, organiser, harbour, base)
	f.event(t, "Food Bank", model.ApprovalStatusPending, organiser, park, base.Add(24*time.Hour))
	f.event(t, "Tree Planting", model.ApprovalStatusApproved, other, park, base.Add(48*time.Hour))
	f.event(t, "River 100% Clean_up", model.ApprovalStatusCancelled, other, harbour, base.Add(72*time.Hour))

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "approved by timestamp",
			body: `{"where":{"approvalStatus":"APPROVED"},"orderBy":[{"field":"timestamp"}]}`,
			want: []string{"Beach Cleanup", "Tree Planting"},
		},
		{
			name: "pending",
			body: `{"where":{"approvalStatus":{"equals":"PENDING"}}}`,
			want: []string{"Food Bank"},
		},
		{
			name: "status set newest first",
			body: `{"where":{"approvalStatus":{"in":["PENDING","CANCELLED"]}},"orderBy":[{"field":"timestamp","sort":"desc"}]}`,
			want: []string{"River 100% Clean_up", "Food Bank"},
		},
		{
			name: "insensitive contains",
			body: `{"where":{"name":{"contains":"CLEAN","mode":"insensitive"}},"orderBy":[{"field":"name"}]}`,
			want: []string{"Beach Cleanup", "River 100% Clean_up"},
		},
		{
			name: "like wildcards are literal",
			body: `{"where":{"name":{"contains":"100%"}}}`,
			want: []string{"River 100% Clean_up"},
		},
		{
			name: "underscore is literal",
			body: `{"where":{"name":{"endsWith":"n_up"}}}`,
			want: []string{"River 100% Clean_up"},
		},
		{
			name: "or branches",
			body: `{"where":{"OR":[{"name":"Food Bank"},{"name":{"startsWith":"Tree"}}]},"orderBy":[{"field":"name"}]}`,
			want: []string{"Food Bank", "Tree Planting"},
		},
		{
			name: "not branch",
			body: `{"where":{"NOT":[{"approvalStatus":"APPROVED"}]},"orderBy":[{"field":"name"}]}`,
			want: []string{"Food Bank", "River 100% Clean_up"},
		},
		{
			name: "nested not predicate",
			body: `{"where":{"approvalStatus":{"not":{"in":["APPROVED","PENDING"]}}}}`,
			want: []string{"River 100% Clean_up"},
		},
		{
			name: "organiser and location",
			body: fmt.Sprintf(`{"where":{"AND":[{"userId":%q},{"eventLocationId":%d}]}}`, other.ID, park.ID),
			want: []string{"Tree Planting"},
		},
		{
			name: "page window",
			body: `{"orderBy":[{"field":"timestamp"}],"take":2,"skip":1}`,
			want: []string{"Food Bank", "Tree Planting"},
		},
		{
			name: "empty in matches nothing",
			body: `{"where":{"approvalStatus":{"in":[]}}}`,
			want: []string{},
		},
		{
			name: "duration range",
			body: `{"where":{"duration":{"gte":2,"lt":3}},"take":1,"orderBy":[{"field":"name","sort":"desc"}]}`,
			want: []string{"Tree Planting"},
		},
	}

	t.Run("list by status is unpaged", func(t *testing.T) {
		events, err := f.events.List(context.Background(), validation.EventsWithStatus(model.ApprovalStatusApproved))
		require.NoError(t, err)
		assert.Equal(t, []string{"Beach Cleanup", "Tree Planting"}, eventNames(events))

		all, err := f.events.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := f.events.FindMany(context.Background(), parseArgs(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, eventNames(events))
		})
	}
}

func TestEventUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	location := f.location(t, "Harbour")
	e := f.event(t, "Cleanup", model.ApprovalStatusCancelled, organiser, location, time.Now().UTC())

	updated, err := f.events.Update(ctx, e.ID, func(ev *model.Event) error {
		return validation.EventUpdateInput{
			Duration:       &validation.IntUpdate{Increment: intPtr(3)},
			ApprovalStatus: statusPtr(model.ApprovalStatusPending),
		}.Apply(ev)
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Duration)
	assert.Equal(t, model.ApprovalStatusPending, updated.ApprovalStatus)

	_, err = f.events.Update(ctx, e.ID, func(ev *model.Event) error {
		ev.EventLocationID = 999
		return nil
	})
	assert.True(t, apperrors.IsMissingRelation(err), "got %v", err)

	_, err = f.events.Update(ctx, "3d0f1a8e-5c2b-4e7d-9a61-0f4b8c2d7e19", func(*model.Event) error { return nil })
	assert.True(t, apperrors.IsNotFound(err))

	sentinel := errors.New("stop")
	_, err = f.events.Update(ctx, e.ID, func(*model.Event) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestEventUpdateMany(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	location := f.location(t, "Harbour")
	now := time.Now().UTC()
	f.event(t, "A", model.ApprovalStatusPending, organiser, location, now)
	f.event(t, "B", model.ApprovalStatusPending, organiser, location, now)
	f.event(t, "C", model.ApprovalStatusApproved, organiser, location, now)

	n, err := f.events.UpdateMany(ctx, validation.EventsWithStatus(model.ApprovalStatusPending), func(ev *model.Event) error {
		ev.ApprovalStatus = model.ApprovalStatusApproved
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	approved, err := f.events.FindMany(ctx, validation.EventFindManyArgs{Where: validation.EventsWithStatus(model.ApprovalStatusApproved)})
	require.NoError(t, err)
	assert.Len(t, approved, 3)
}

func TestEventDeleteReferentialActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	location := f.location(t, "Harbour")
	e := f.event(t, "Cleanup", model.ApprovalStatusApproved, organiser, location, time.Now().UTC())

	require.NoError(t, f.tags.Create(ctx, &model.EventTag{EventID: e.ID, Name: "outdoor"}))
	require.NoError(t, f.regs.Create(ctx, &model.EventRegistration{EventID: e.ID, Participant: organiser.ID}))
	metric := &model.Metric{Type: "hours", Value: decimal.NewFromInt(4), EventID: &e.ID}
	require.NoError(t, f.metrics.Create(ctx, metric))

	err := f.locations.Delete(ctx, location.ID)
	assert.True(t, apperrors.IsReferenced(err), "location with events: got %v", err)
	err = f.users.Delete(ctx, organiser.ID)
	assert.True(t, apperrors.IsReferenced(err), "organiser with events: got %v", err)

	require.NoError(t, f.events.Delete(ctx, e.ID))
	assert.True(t, apperrors.IsNotFound(f.events.Delete(ctx, e.ID)))

	tags, err := f.tags.FindByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
	roster, err := f.regs.FindByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)

	kept, err := f.metrics.FindByID(ctx, metric.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.EventID)
	assert.True(t, decimal.NewFromInt(4).Equal(kept.Value))

	require.NoError(t, f.locations.Delete(ctx, location.ID))
}

func TestConcurrentRegistrationCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	participant := f.user(t, "p@example.org")
	location := f.location(t, "Harbour")
	e := f.event(t, "Cleanup", model.ApprovalStatusApproved, organiser, location, time.Now().UTC())

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = f.regs.Create(ctx, &model.EventRegistration{EventID: e.ID, Participant: participant.ID})
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	}
	assert.Equal(t, 1, winners)

	roster, err := f.regs.FindByEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestCompositeKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	organiser := f.user(t, "org@example.org")
	participant := f.user(t, "p@example.org")
	location := f.location(t, "Harbour")
	e := f.event(t, "Cleanup", model.ApprovalStatusApproved, organiser, location, time.Now().UTC())

	t.Run("duplicate registration", func(t *testing.T) {
		require.NoError(t, f.regs.Create(ctx, &model.EventRegistration{EventID: e.ID, Participant: participant.ID}))
		err := f.regs.Create(ctx, &model.EventRegistration{EventID: e.ID, Participant: participant.ID})
		assert.True(t, apperrors.IsConflict(err), "got %v", err)

		roster, err := f.regs.FindByEvent(ctx, e.ID)
		require.NoError(t, err)
		assert.Len(t, roster, 1)

		mine, err := f.regs.FindByParticipant(ctx, participant.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.NotNil(t, mine[0].Event)
		assert.Equal(t, "Cleanup", mine[0].Event.Name)
	})

	t.Run("registration for unknown event", func(t *testing.T) {
		err := f.regs.Create(ctx, &model.EventRegistration{EventID: "3d0f1a8e-5c2b-4e7d-9a61-0f4b8c2d7e19", Participant: participant.ID})
		assert.True(t, apperrors.IsMissingRelation(err), "got %v", err)
	})

	t.Run("duplicate tag", func(t *testing.T) {
		require.NoError(t, f.tags.Create(ctx, &model.EventTag{EventID: e.ID, Name: "outdoor"}))
		err := f.tags.Create(ctx, &model.EventTag{EventID: e.ID, Name: "outdoor"})
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	})

	t.Run("create many is all or nothing", func(t *testing.T) {
		err := f.tags.CreateMany(ctx, []model.EventTag{{EventID: e.ID, Name: "family"}, {EventID: e.ID, Name: "outdoor"}})
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
		_, err = f.tags.FindByKey(ctx, e.ID, "family")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("delete by key", func(t *testing.T) {
		require.NoError(t, f.tags.Delete(ctx, e.ID, "outdoor"))
		assert.True(t, apperrors.IsNotFound(f.tags.Delete(ctx, e.ID, "outdoor")))
		require.NoError(t, f.regs.Delete(ctx, e.ID, participant.ID))
		assert.True(t, apperrors.IsNotFound(f.regs.Delete(ctx, e.ID, participant.ID)))
	})
}

func TestLocationAndMetricUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	lat := 51.5
	location := &model.EventLocation{Name: "Harbour", Latitude: &lat}
	require.NoError(t, f.locations.Create(ctx, location))

	updated, err := f.locations.Update(ctx, location.ID, func(l *model.EventLocation) error {
		validation.EventLocationUpdateInput{Latitude: validation.Null[float64]()}.Apply(l)
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Latitude)

	require.NoError(t, f.metrics.CreateMany(ctx, []model.Metric{
		{Type: "hours", Value: decimal.RequireFromString("12.5")},
		{Type: "meals", Value: decimal.NewFromInt(3)},
	}))

	var args validation.MetricFindManyArgs
	require.NoError(t, json.Unmarshal([]byte(`{"where":{"value":{"gt":"10"}}}`), &args))
	big, err := f.metrics.FindMany(ctx, args)
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, "hours", big[0].Type)

	doubled, err := f.metrics.Update(ctx, big[0].ID, func(m *model.Metric) error {
		return validation.MetricUpdateInput{Value: &validation.DecimalUpdate{Multiply: decimalPtr(decimal.NewFromInt(2))}}.Apply(m)
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(doubled.Value), doubled.Value.String())

	locations, err := f.locations.FindMany(ctx, validation.EventLocationFindManyArgs{
		Where: &validation.EventLocationWhereInput{Latitude: &validation.Filter[float64]{IsNull: boolPtr(true)}},
	})
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "vol@example.org")

	t.Run("duplicate email", func(t *testing.T) {
		err := f.users.Create(ctx, &model.User{Email: "vol@example.org"})
		assert.True(t, apperrors.IsConflict(err), "got %v", err)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := f.users.ExistsByEmail(ctx, "vol@example.org")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = f.users.ExistsByEmail(ctx, "nobody@example.org")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("push role", func(t *testing.T) {
		updated, err := f.users.Update(ctx, u.ID, func(user *model.User) error {
			validation.UserUpdateInput{Roles: &validation.StringListUpdate{Push: []string{"organiser"}}}.Apply(user)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, updated.HasRole("organiser"))

		reloaded, err := f.users.FindByEmail(ctx, "vol@example.org")
		require.NoError(t, err)
		assert.Equal(t, []string{"organiser"}, []string(reloaded.Roles))
	})

	t.Run("delete nulls skills and drops sessions", func(t *testing.T) {
		skill := &model.Skill{Name: "First aid", UserID: &u.ID}
		require.NoError(t, f.skills.Create(ctx, skill))
		session := &model.Session{SessionToken: "tok", UserID: u.ID, Expires: time.Now().Add(time.Hour)}
		require.NoError(t, f.creds.CreateSession(ctx, session))

		owned, err := f.skills.FindByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, owned, 1)

		require.NoError(t, f.users.Delete(ctx, u.ID))

		orphan, err := f.skills.FindByID(ctx, skill.ID)
		require.NoError(t, err)
		assert.Nil(t, orphan.UserID)
		_, err = f.creds.FindSession(ctx, "tok")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.user(t, "vol@example.org")

	require.NoError(t, f.creds.CreateAccount(ctx, &model.Account{UserID: u.ID, Type: "oauth", Provider: "github", ProviderAccountID: "42"}))
	err := f.creds.CreateAccount(ctx, &model.Account{UserID: u.ID, Type: "oauth", Provider: "github", ProviderAccountID: "42"})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)
	accounts, err := f.creds.FindAccountsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	now := time.Now().UTC()
	require.NoError(t, f.creds.CreateVerificationToken(ctx, &model.VerificationToken{Identifier: u.Email, Token: "digest", Expires: now.Add(time.Hour)}))
	require.NoError(t, f.creds.CreateVerificationToken(ctx, &model.VerificationToken{Identifier: u.Email, Token: "old", Expires: now.Add(-time.Hour)}))

	vt, err := f.creds.ConsumeVerificationToken(ctx, u.Email, "digest")
	require.NoError(t, err)
	assert.False(t, vt.Expired(now))
	_, err = f.creds.ConsumeVerificationToken(ctx, u.Email, "digest")
	assert.True(t, apperrors.IsNotFound(err))

	n, err := f.creds.DeleteExpiredVerificationTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, f.creds.CreateSession(ctx, &model.Session{SessionToken: "s1", UserID: u.ID, Expires: now.Add(time.Hour)}))
	require.NoError(t, f.creds.DeleteSession(ctx, "s1"))
	assert.True(t, apperrors.IsNotFound(f.creds.DeleteSession(ctx, "s1")))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", gorm.ErrRecordNotFound, apperrors.IsNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, apperrors.IsConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: event_tags.event_id, event_tags.name (2067)"), apperrors.IsConflict},
		{"mysql duplicate", errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'PRIMARY'"), apperrors.IsConflict},
		{"translated foreign key", gorm.ErrForeignKeyViolated, apperrors.IsMissingRelation},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), apperrors.IsMissingRelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(classify("event", tt.err)))
		})
	}

	assert.True(t, apperrors.IsReferenced(classifyDelete("user", gorm.ErrForeignKeyViolated)))
	assert.Nil(t, classify("event", nil))
	other := errors.New("disk full")
	assert.Equal(t, other, classify("event", other))
}

func intPtr(v int) *int                                     { return &v }
func boolPtr(v bool) *bool                                  { return &v }
func decimalPtr(v decimal.Decimal) *decimal.Decimal         { return &v }
func statusPtr(s model.ApprovalStatus) *model.ApprovalStatus { return &s }
