package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
)

const bearerScheme = "Bearer"

var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrUnverifiable        = errors.New("credential could not be verified")
)

// TokenVerifier resolves a token to the identity it carries.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it. Why verification failed is not reported to the caller.
func Authenticate(header string, v TokenVerifier) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingCredential
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || !strings.EqualFold(scheme, bearerScheme) {
		return "", ErrMalformedCredential
	}
	id, err := v.Verify(token)
	if err != nil {
		return "", ErrUnverifiable
	}
	return id, nil
}

// JWTAuth guards protected routes. On success the identity is attached to the
// request context (see IdentityFrom); otherwise the request is rejected with
// 401 for a missing or malformed credential and 403 for one that fails
// verification.
func JWTAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := Authenticate(c.GetHeader("Authorization"), v)
		switch {
		case errors.Is(err, ErrMissingCredential):
			helpers.AuthRejections.WithLabelValues("missing").Inc()
			response.Abort(c, http.StatusUnauthorized, "no token provided", nil)
			return
		case errors.Is(err, ErrMalformedCredential):
			helpers.AuthRejections.WithLabelValues("malformed").Inc()
			response.Abort(c, http.StatusUnauthorized, "malformed token", nil)
			return
		case err != nil:
			helpers.AuthRejections.WithLabelValues("unverifiable").Inc()
			response.Abort(c, http.StatusForbidden, "failed to authenticate token", nil)
			return
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
