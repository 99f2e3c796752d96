package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account links a user to an external identity provider account.
type Account struct {
	ID                string  `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID            string  `json:"userId" gorm:"type:varchar(36);not null;index"`
	Type              string  `json:"type" gorm:"size:50;not null"`
	Provider          string  `json:"provider" gorm:"size:100;not null;uniqueIndex:idx_account_provider"`
	ProviderAccountID string  `json:"providerAccountId" gorm:"size:191;not null;uniqueIndex:idx_account_provider"`
	RefreshToken      *string `json:"-" gorm:"type:text"`
	AccessToken       *string `json:"-" gorm:"type:text"`
	ExpiresAt         *int    `json:"expiresAt,omitempty"`
	TokenType         *string `json:"tokenType,omitempty" gorm:"size:50"`
	Scope             *string `json:"scope,omitempty" gorm:"size:255"`
	IDToken           *string `json:"-" gorm:"type:text"`
	SessionState      *string `json:"-" gorm:"size:255"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an id.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Session is an active login session.
type Session struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SessionToken string    `json:"sessionToken" gorm:"size:191;not null;uniqueIndex"`
	UserID       string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	Expires      time.Time `json:"expires" gorm:"not null"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an id.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// VerificationToken is a one-time email sign-in token. Token holds a digest,
// never the secret that was mailed out.
type VerificationToken struct {
	Identifier string    `json:"identifier" gorm:"size:191;not null;uniqueIndex:idx_verification_identifier_token"`
	Token      string    `json:"-" gorm:"size:191;not null;uniqueIndex;uniqueIndex:idx_verification_identifier_token"`
	Expires    time.Time `json:"expires" gorm:"not null"`
}

// Expired reports whether the token is past its expiry at now.
func (v *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(v.Expires)
}
