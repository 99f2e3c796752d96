package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
)

const (
	resourceAccount           = "account"
	resourceSession           = "session"
	resourceVerificationToken = "verification token"
)

// CredentialRepository persists the records of the sign-in flow: linked
// provider accounts, sessions and one-time verification tokens.
type CredentialRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	FindAccountsByUser(ctx context.Context, userID string) ([]model.Account, error)

	CreateSession(ctx context.Context, session *model.Session) error
	FindSession(ctx context.Context, sessionToken string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionToken string) error

	CreateVerificationToken(ctx context.Context, token *model.VerificationToken) error
	// ConsumeVerificationToken deletes the token and returns it, so each
	// token can be redeemed once.
	ConsumeVerificationToken(ctx context.Context, identifier, token string) (*model.VerificationToken, error)
	DeleteExpiredVerificationTokens(ctx context.Context, now time.Time) (int64, error)
}

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	return classify(resourceAccount, r.db.WithContext(ctx).Omit(clause.Associations).Create(account).Error)
}

func (r *credentialRepository) FindAccountsByUser(ctx context.Context, userID string) ([]model.Account, error) {
	accounts := make([]model.Account, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("provider").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *credentialRepository) CreateSession(ctx context.Context, session *model.Session) error {
	return classify(resourceSession, r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error)
}

func (r *credentialRepository) FindSession(ctx context.Context, sessionToken string) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("session_token = ?", sessionToken).First(&session).Error; err != nil {
		return nil, classify(resourceSession, err)
	}
	return &session, nil
}

func (r *credentialRepository) DeleteSession(ctx context.Context, sessionToken string) error {
	res := r.db.WithContext(ctx).Where("session_token = ?", sessionToken).Delete(&model.Session{})
	if res.Error != nil {
		return classifyDelete(resourceSession, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceSession, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *credentialRepository) CreateVerificationToken(ctx context.Context, token *model.VerificationToken) error {
	return classify(resourceVerificationToken, r.db.WithContext(ctx).Create(token).Error)
}

func (r *credentialRepository) ConsumeVerificationToken(ctx context.Context, identifier, token string) (*model.VerificationToken, error) {
	var found model.VerificationToken
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("identifier = ? AND token = ?", identifier, token).
			Take(&found).Error; err != nil {
			return err
		}
		res := tx.Where("identifier = ? AND token = ?", identifier, token).Delete(&model.VerificationToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, classify(resourceVerificationToken, err)
	}
	return &found, nil
}

func (r *credentialRepository) DeleteExpiredVerificationTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires <= ?", now).Delete(&model.VerificationToken{})
	return res.RowsAffected, res.Error
}
