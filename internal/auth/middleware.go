package auth

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "user"

// Identity resolves the bearer token, when one is sent, into a Caller on
// the request context. Missing, invalid and revoked tokens leave the
// request anonymous; protected operations reject it later.
func Identity(jwtService *JWTService, store TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             claimsContextKey,
		ContinueOnIgnoredError: true,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			if revoked, _ := store.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); revoked {
				return nil, ErrTokenRevoked
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				return
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithCaller(req.Context(), claims.Caller())))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// ClaimsFrom returns the access token claims resolved for the request.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok
}
