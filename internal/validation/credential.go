package validation

import "volunteerhub/internal/model"

// EmailSignInInput starts an email sign-in.
type EmailSignInInput struct {
	Email string `json:"email" validate:"required,email,max=191"`
}

// EmailVerifyInput completes an email sign-in with the mailed secret.
type EmailVerifyInput struct {
	Email string `json:"email" validate:"required,email,max=191"`
	Token string `json:"token" validate:"required,min=16,max=256"`
}

// RefreshInput exchanges a refresh token for a new token pair.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AccountCreateInput links an external provider account to the caller.
type AccountCreateInput struct {
	Type              string  `json:"type" validate:"required,max=50"`
	Provider          string  `json:"provider" validate:"required,max=100"`
	ProviderAccountID string  `json:"providerAccountId" validate:"required,max=191"`
	RefreshToken      *string `json:"refreshToken,omitempty"`
	AccessToken       *string `json:"accessToken,omitempty"`
	ExpiresAt         *int    `json:"expiresAt,omitempty" validate:"omitempty,gte=0"`
	TokenType         *string `json:"tokenType,omitempty" validate:"omitempty,max=50"`
	Scope             *string `json:"scope,omitempty" validate:"omitempty,max=255"`
	IDToken           *string `json:"idToken,omitempty"`
	SessionState      *string `json:"sessionState,omitempty" validate:"omitempty,max=255"`
}

// Model builds the record to insert for userID.
func (in AccountCreateInput) Model(userID string) *model.Account {
	return &model.Account{
		UserID:            userID,
		Type:              in.Type,
		Provider:          in.Provider,
		ProviderAccountID: in.ProviderAccountID,
		RefreshToken:      in.RefreshToken,
		AccessToken:       in.AccessToken,
		ExpiresAt:         in.ExpiresAt,
		TokenType:         in.TokenType,
		Scope:             in.Scope,
		IDToken:           in.IDToken,
		SessionState:      in.SessionState,
	}
}
