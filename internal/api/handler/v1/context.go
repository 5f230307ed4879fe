package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"barvid/internal/api/handler/v1/response"
	"barvid/internal/api/middleware"
)

// usernameFromContext reads the username the session middleware placed
// in the request context.
func usernameFromContext(ctx *gin.Context) (string, *response.Err) {
	username := ctx.GetString(middleware.ContextKeyUsername)
	if username == "" {
		return "", response.ErrUnauthorized(errors.New("not logged in"))
	}

	return username, nil
}
