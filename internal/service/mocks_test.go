package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"volunteerhub/internal/auth"
	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindMany(ctx context.Context, a validation.EventFindManyArgs) ([]model.Event, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) List(ctx context.Context, where *validation.EventWhereInput) ([]model.Event, error) {
	args := m.Called(ctx, where)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

// Update applies fn to the event configured as the first return value.
func (m *MockEventRepository) Update(ctx context.Context, id string, fn func(*model.Event) error) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	event := args.Get(0).(*model.Event)
	if err := fn(event); err != nil {
		return nil, err
	}
	return event, args.Error(1)
}

func (m *MockEventRepository) UpdateMany(ctx context.Context, where *validation.EventWhereInput, fn func(*model.Event) error) (int64, error) {
	args := m.Called(ctx, where)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventLocationRepository is a mock implementation of EventLocationRepository.
type MockEventLocationRepository struct {
	mock.Mock
}

func (m *MockEventLocationRepository) Create(ctx context.Context, location *model.EventLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockEventLocationRepository) FindByID(ctx context.Context, id uint) (*model.EventLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventLocation), args.Error(1)
}

func (m *MockEventLocationRepository) FindMany(ctx context.Context, a validation.EventLocationFindManyArgs) ([]model.EventLocation, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventLocation), args.Error(1)
}

func (m *MockEventLocationRepository) Update(ctx context.Context, id uint, fn func(*model.EventLocation) error) (*model.EventLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	location := args.Get(0).(*model.EventLocation)
	if err := fn(location); err != nil {
		return nil, err
	}
	return location, args.Error(1)
}

func (m *MockEventLocationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventTagRepository is a mock implementation of EventTagRepository.
type MockEventTagRepository struct {
	mock.Mock
}

func (m *MockEventTagRepository) Create(ctx context.Context, tag *model.EventTag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockEventTagRepository) CreateMany(ctx context.Context, tags []model.EventTag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

func (m *MockEventTagRepository) FindByKey(ctx context.Context, eventID, name string) (*model.EventTag, error) {
	args := m.Called(ctx, eventID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventTag), args.Error(1)
}

func (m *MockEventTagRepository) FindByEvent(ctx context.Context, eventID string) ([]model.EventTag, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventTag), args.Error(1)
}

func (m *MockEventTagRepository) Delete(ctx context.Context, eventID, name string) error {
	args := m.Called(ctx, eventID, name)
	return args.Error(0)
}

// MockEventRegistrationRepository is a mock implementation of EventRegistrationRepository.
type MockEventRegistrationRepository struct {
	mock.Mock
}

func (m *MockEventRegistrationRepository) Create(ctx context.Context, registration *model.EventRegistration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockEventRegistrationRepository) FindByKey(ctx context.Context, eventID, participant string) (*model.EventRegistration, error) {
	args := m.Called(ctx, eventID, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRegistration), args.Error(1)
}

func (m *MockEventRegistrationRepository) FindByEvent(ctx context.Context, eventID string) ([]model.EventRegistration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventRegistration), args.Error(1)
}

func (m *MockEventRegistrationRepository) FindByParticipant(ctx context.Context, participant string) ([]model.EventRegistration, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventRegistration), args.Error(1)
}

func (m *MockEventRegistrationRepository) Delete(ctx context.Context, eventID, participant string) error {
	args := m.Called(ctx, eventID, participant)
	return args.Error(0)
}

// MockMetricRepository is a mock implementation of MetricRepository.
type MockMetricRepository struct {
	mock.Mock
}

func (m *MockMetricRepository) Create(ctx context.Context, metric *model.Metric) error {
	args := m.Called(ctx, metric)
	return args.Error(0)
}

func (m *MockMetricRepository) CreateMany(ctx context.Context, metrics []model.Metric) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockMetricRepository) FindByID(ctx context.Context, id uint) (*model.Metric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Metric), args.Error(1)
}

func (m *MockMetricRepository) FindMany(ctx context.Context, a validation.MetricFindManyArgs) ([]model.Metric, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Metric), args.Error(1)
}

func (m *MockMetricRepository) FindByEvent(ctx context.Context, eventID string) ([]model.Metric, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Metric), args.Error(1)
}

func (m *MockMetricRepository) Update(ctx context.Context, id uint, fn func(*model.Metric) error) (*model.Metric, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	metric := args.Get(0).(*model.Metric)
	if err := fn(metric); err != nil {
		return nil, err
	}
	return metric, args.Error(1)
}

func (m *MockMetricRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSkillRepository is a mock implementation of SkillRepository.
type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Skill), args.Error(1)
}

func (m *MockSkillRepository) FindByUser(ctx context.Context, userID string) ([]model.Skill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Skill), args.Error(1)
}

func (m *MockSkillRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, fn func(*model.User) error) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user := args.Get(0).(*model.User)
	if err := fn(user); err != nil {
		return nil, err
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCredentialRepository) FindAccountsByUser(ctx context.Context, userID string) ([]model.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockCredentialRepository) CreateSession(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockCredentialRepository) FindSession(ctx context.Context, sessionToken string) (*model.Session, error) {
	args := m.Called(ctx, sessionToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockCredentialRepository) DeleteSession(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)
	return args.Error(0)
}

func (m *MockCredentialRepository) CreateVerificationToken(ctx context.Context, token *model.VerificationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCredentialRepository) ConsumeVerificationToken(ctx context.Context, identifier, token string) (*model.VerificationToken, error) {
	args := m.Called(ctx, identifier, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationToken), args.Error(1)
}

func (m *MockCredentialRepository) DeleteExpiredVerificationTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, caller auth.Caller, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, caller, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (auth.Caller, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(auth.Caller), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockLinkSender records the secrets handed to it.
type MockLinkSender struct {
	mock.Mock
}

func (m *MockLinkSender) SendSignInLink(ctx context.Context, email, secret string, expires time.Time) error {
	args := m.Called(ctx, email, secret, expires)
	return args.Error(0)
}
