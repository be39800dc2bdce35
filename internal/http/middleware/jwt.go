package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/harborlight/carecal/internal/db"
	sessions "github.com/harborlight/carecal/internal/redis"
)

// sessions are kiosk-friendly: tokens live long and are killed server
// side on logout via the revocation list.
const tokenLifetime = 30 * 24 * time.Hour

// GenerateJWT signs a token embedding userID in the "sub" claim.
func GenerateJWT(userID int, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// parseToken verifies the JWT and returns the user ID and expiry.
func parseToken(tokenString, secret string) (int, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, time.Time{}, errors.New("invalid sub claim")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 0, time.Time{}, errors.New("invalid exp claim")
	}
	return int(sub), time.Unix(int64(exp), 0), nil
}

// JWTMiddleware checks "Authorization: Bearer <token>", verifies it,
// rejects revoked tokens, loads the user, and sets "currentUser" in
// context.
func JWTMiddleware(secret string, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		userID, expiry, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if sessions.TokenRevoked(c.Request.Context(), parts[1]) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		user, err := store.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("currentUser", user)
		c.Set("currentToken", parts[1])
		c.Set("tokenExpiry", expiry)
		c.Next()
	}
}

// TokenExpiry returns the verified token's expiry from context.
func TokenExpiry(c *gin.Context) (time.Time, bool) {
	v, exists := c.Get("tokenExpiry")
	if !exists {
		return time.Time{}, false
	}
	exp, ok := v.(time.Time)
	return exp, ok
}
