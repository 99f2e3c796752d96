package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/auth"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

const (
	callerID = "0b8f6f8e-4c1d-4a43-9a4e-5d2f1c7b9e01"
	otherID  = "7c1e2d3f-8a9b-4c5d-8e6f-a1b2c3d4e5f6"
	eventID  = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c1d"
)

func anonymous() context.Context {
	return context.Background()
}

func signedIn() context.Context {
	return auth.WithCaller(context.Background(), auth.Caller{ID: callerID, Email: "vol@example.org"})
}

func validEventInput() validation.EventCreateInput {
	return validation.EventCreateInput{
		Name:            "Cleanup",
		Timestamp:       time.Now().Add(24 * time.Hour),
		Duration:        intPtr(3),
		Details:         strPtr("Bring gloves"),
		EventLocationID: uintPtr(1),
		UserID:          callerID,
	}
}

func withStatus(status model.ApprovalStatus) interface{} {
	return mock.MatchedBy(func(w *validation.EventWhereInput) bool {
		return w != nil && w.ApprovalStatus != nil && w.ApprovalStatus.Equals != nil && *w.ApprovalStatus.Equals == status
	})
}

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		input     validation.EventCreateInput
		setupMock func(*MockEventRepository)
		check     func(*testing.T, *model.Event, error)
	}{
		{
			name:  "anonymous caller is rejected before validation",
			ctx:   anonymous(),
			input: validation.EventCreateInput{},
			check: func(t *testing.T, _ *model.Event, err error) {
				assert.True(t, apperrors.IsUnauthenticated(err))
			},
		},
		{
			name: "invalid input",
			ctx:  signedIn(),
			input: func() validation.EventCreateInput {
				in := validEventInput()
				in.UserID = "not-an-id"
				return in
			}(),
			check: func(t *testing.T, _ *model.Event, err error) {
				var verr *apperrors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "userId", verr.Issues[0].Field)
			},
		},
		{
			name:  "created",
			ctx:   signedIn(),
			input: validEventInput(),
			setupMock: func(m *MockEventRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
					return e.Name == "Cleanup" && e.EventLocationID == 1 && e.UserID == callerID
				})).Return(nil)
			},
			check: func(t *testing.T, e *model.Event, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, e.Duration)
			},
		},
		{
			name:  "missing location",
			ctx:   signedIn(),
			input: validEventInput(),
			setupMock: func(m *MockEventRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(apperrors.MissingRelation("event", nil))
			},
			check: func(t *testing.T, _ *model.Event, err error) {
				assert.True(t, apperrors.IsMissingRelation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockEventRepository)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}
			svc := NewEventService(repo)

			event, err := svc.Create(tt.ctx, tt.input)
			tt.check(t, event, err)
			repo.AssertExpectations(t)
			if tt.setupMock == nil {
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEventService_Listings(t *testing.T) {
	approved := []model.Event{{ID: eventID, Name: "Cleanup", ApprovalStatus: model.ApprovalStatusApproved}}

	t.Run("approved and pending are public", func(t *testing.T) {
		repo := new(MockEventRepository)
		repo.On("List", mock.Anything, withStatus(model.ApprovalStatusApproved)).Return(approved, nil)
		repo.On("List", mock.Anything, withStatus(model.ApprovalStatusPending)).Return([]model.Event{}, nil)
		svc := NewEventService(repo)

		got, err := svc.GetApproved(anonymous())
		require.NoError(t, err)
		assert.Equal(t, approved, got)

		got, err = svc.GetPending(anonymous())
		require.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertExpectations(t)
	})

	t.Run("cancelled and all need a caller", func(t *testing.T) {
		repo := new(MockEventRepository)
		svc := NewEventService(repo)

		_, err := svc.GetCancelled(anonymous())
		assert.True(t, apperrors.IsUnauthenticated(err))
		_, err = svc.GetAll(anonymous())
		assert.True(t, apperrors.IsUnauthenticated(err))
		_, err = svc.FindMany(anonymous(), validation.EventFindManyArgs{})
		assert.True(t, apperrors.IsUnauthenticated(err))
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("cancelled for a caller", func(t *testing.T) {
		repo := new(MockEventRepository)
		repo.On("List", mock.Anything, withStatus(model.ApprovalStatusCancelled)).Return([]model.Event{}, nil)
		repo.On("List", mock.Anything, (*validation.EventWhereInput)(nil)).Return(approved, nil)
		svc := NewEventService(repo)

		_, err := svc.GetCancelled(signedIn())
		require.NoError(t, err)
		all, err := svc.GetAll(signedIn())
		require.NoError(t, err)
		assert.Len(t, all, 1)
		repo.AssertExpectations(t)
	})

	t.Run("by organiser lists approved events only", func(t *testing.T) {
		repo := new(MockEventRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(w *validation.EventWhereInput) bool {
			return *w.ApprovalStatus.Equals == model.ApprovalStatusApproved && *w.UserID.Equals == otherID
		})).Return(approved, nil)
		svc := NewEventService(repo)

		got, err := svc.GetByOrganiser(anonymous(), otherID)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		_, err = svc.GetByOrganiser(anonymous(), "nope")
		assert.True(t, apperrors.IsValidation(err))
		repo.AssertExpectations(t)
	})

	t.Run("find many rejects a bad page", func(t *testing.T) {
		repo := new(MockEventRepository)
		svc := NewEventService(repo)
		_, err := svc.FindMany(signedIn(), validation.EventFindManyArgs{Take: intPtr(500)})
		assert.True(t, apperrors.IsValidation(err))
		repo.AssertNotCalled(t, "FindMany", mock.Anything, mock.Anything)
	})
}

func TestEventService_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.ApprovalStatus
		approve bool
		want    model.ApprovalStatus
		wantErr bool
	}{
		{name: "approve pending", from: model.ApprovalStatusPending, approve: true, want: model.ApprovalStatusApproved},
		{name: "cancel pending", from: model.ApprovalStatusPending, want: model.ApprovalStatusCancelled},
		{name: "cancel approved", from: model.ApprovalStatusApproved, want: model.ApprovalStatusCancelled},
		{name: "approve approved", from: model.ApprovalStatusApproved, approve: true, wantErr: true},
		{name: "approve cancelled", from: model.ApprovalStatusCancelled, approve: true, wantErr: true},
		{name: "cancel cancelled", from: model.ApprovalStatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockEventRepository)
			repo.On("Update", mock.Anything, eventID).Return(&model.Event{ID: eventID, ApprovalStatus: tt.from}, nil)
			svc := NewEventService(repo)

			var (
				event *model.Event
				err   error
			)
			if tt.approve {
				event, err = svc.Approve(signedIn(), eventID)
			} else {
				event, err = svc.Cancel(signedIn(), eventID)
			}

			if tt.wantErr {
				assert.True(t, apperrors.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.ApprovalStatus)
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		repo := new(MockEventRepository)
		_, err := NewEventService(repo).Approve(anonymous(), eventID)
		assert.True(t, apperrors.IsUnauthenticated(err))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestEventService_UpdateIsUnguarded(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("Update", mock.Anything, eventID).Return(&model.Event{ID: eventID, ApprovalStatus: model.ApprovalStatusCancelled, Duration: 2}, nil)
	svc := NewEventService(repo)

	status := model.ApprovalStatusApproved
	event, err := svc.Update(signedIn(), eventID, validation.EventUpdateInput{
		ApprovalStatus: &status,
		Duration:       &validation.IntUpdate{Multiply: intPtr(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalStatusApproved, event.ApprovalStatus)
	assert.Equal(t, 6, event.Duration)

	bad := model.ApprovalStatus("ARCHIVED")
	_, err = svc.Update(signedIn(), eventID, validation.EventUpdateInput{ApprovalStatus: &bad})
	assert.True(t, apperrors.IsValidation(err))
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestEventService_UpdateManyAndDelete(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("UpdateMany", mock.Anything, withStatus(model.ApprovalStatusPending)).Return(int64(2), nil)
	repo.On("Delete", mock.Anything, eventID).Return(apperrors.NotFound("event")).Once()
	svc := NewEventService(repo)

	status := model.ApprovalStatusApproved
	n, err := svc.UpdateMany(signedIn(), validation.EventUpdateManyArgs{
		Where: validation.EventsWithStatus(model.ApprovalStatusPending),
		Data:  validation.EventScalarUpdate{ApprovalStatus: &status},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.UpdateMany(anonymous(), validation.EventUpdateManyArgs{})
	assert.True(t, apperrors.IsUnauthenticated(err))

	assert.True(t, apperrors.IsNotFound(svc.Delete(signedIn(), eventID)))
	assert.True(t, apperrors.IsUnauthenticated(svc.Delete(anonymous(), eventID)))
	repo.AssertExpectations(t)
}

func TestEventService_GetOne(t *testing.T) {
	repo := new(MockEventRepository)
	repo.On("FindByID", mock.Anything, eventID).Return(&model.Event{ID: eventID}, nil)
	svc := NewEventService(repo)

	event, err := svc.GetOne(anonymous(), eventID)
	require.NoError(t, err)
	assert.Equal(t, eventID, event.ID)

	_, err = svc.GetOne(anonymous(), "42")
	assert.True(t, apperrors.IsValidation(err))
	repo.AssertNumberOfCalls(t, "FindByID", 1)
}

func intPtr(v int) *int       { return &v }
func uintPtr(v uint) *uint    { return &v }
func strPtr(s string) *string { return &s }
