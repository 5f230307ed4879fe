package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"barvid/internal/api/handler/v1/response"
	"barvid/internal/pkg/jwthelper"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "barvid_session"

// ContextKeyUsername is where the authenticated username lives in the
// gin context after VerifySession has run.
const ContextKeyUsername = "username"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifySession gates a route group behind a valid session token, taken
// from the session cookie or a Bearer header. The username from the
// token is placed in the request context; no global session state.
func (a *Authenticator) VerifySession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := a.extractToken(ctx)
		if tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("not logged in")))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyUsername, claims.Username)
		ctx.Next()
	}
}

func (a *Authenticator) extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
