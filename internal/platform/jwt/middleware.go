package jwtmw

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the gin context key holding the authenticated user id.
const ContextUserID = "userID"

// DefaultHeader is the request header the client sends the token in.
const DefaultHeader = "x-auth-token"

// Machine-readable rejection reasons.
const (
	ReasonMissing = "token_missing"
	ReasonInvalid = "token_invalid"
	ReasonExpired = "token_expired"
)

// Verifier resolves a token to a user id.
type Verifier interface {
	Verify(token string) (string, error)
}

// RejectResponse is the body returned when the guard rejects a request.
type RejectResponse struct {
	Msg    string `json:"msg"`
	Reason string `json:"reason"`
}

// AuthRequired returns a gin middleware that admits only requests carrying a
// valid token. The token is read from header, or from "Authorization: Bearer"
// when header is absent. No database access happens here.
func AuthRequired(v Verifier, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultHeader
	}
	return func(c *gin.Context) {
		tokenStr := extractToken(c, header)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, RejectResponse{
				Msg:    "No token, authorization denied",
				Reason: ReasonMissing,
			})
			return
		}

		userID, err := v.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, RejectResponse{
					Msg:    "Token has expired",
					Reason: ReasonExpired,
				})
				return
			}
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, RejectResponse{
				Msg:    "Token is not valid",
				Reason: ReasonInvalid,
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the id the guard stored on the context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func extractToken(c *gin.Context, header string) string {
	if tok := strings.TrimSpace(c.GetHeader(header)); tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
