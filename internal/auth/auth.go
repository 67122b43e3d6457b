package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"mining-ops-api-server/internal/models"
)

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	UserID string      `json:"userId"` // internal id (ObjectID hex)
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// JwtSecret is set from config at startup (and by the test harness).
var JwtSecret = []byte("dev-only-secret")

var tokenTTL = 24 * time.Hour

// Configure applies the JWT settings from config. An unparsable expiration
// keeps the 24h default.
func Configure(secret, expiration string) {
	if secret != "" {
		JwtSecret = []byte(secret)
	}
	if d, err := time.ParseDuration(expiration); err == nil && d > 0 {
		tokenTTL = d
	}
}

func GenerateJWT(userID, email string, role models.Role) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}

// ParseJWT validates a token string and returns its claims.
func ParseJWT(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Principal is the resolved caller identity attached to each request after
// authentication. Handlers read it instead of touching the transport.
type Principal struct {
	ID       string // internal id (ObjectID hex)
	UserID   string // business id
	UserName string
	Email    string
	Role     models.Role
}
