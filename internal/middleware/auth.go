package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"bitescout.app/bitescout/pkg/apperror"
	"bitescout.app/bitescout/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims binds the authenticated identity into the token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireAuth admits requests carrying a valid bearer token. A missing
// credential and an invalid or expired one are rejected distinctly.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			response.AbortError(c, apperror.ErrUnauthenticated)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			response.AbortError(c, fmt.Errorf("invalid or expired token: %w", apperror.ErrForbidden))
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			response.AbortError(c, fmt.Errorf("invalid token subject: %w", apperror.ErrForbidden))
			return
		}

		c.Set("user_id", uint(userID))
		c.Set("username", claims.Username)
		c.Next()
	}
}
