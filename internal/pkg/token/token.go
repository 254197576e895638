package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/internal/pkg/env"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the operator identity carried by an API token.
type Claims struct {
	UserID  uint
	Name    string
	Role    string
	Expires time.Time
}

func (c Claims) IsAdmin() bool {
	return c.Role == models.ROLE_ADMIN
}

func secret() []byte {
	return []byte(env.GetEnv("JWT_SECRET", "change-me-in-production"))
}

func tokenTTL() time.Duration {
	if parsed, err := time.ParseDuration(env.GetEnv("JWT_EXPIRY", "")); err == nil && parsed > 0 {
		return parsed
	}
	return 24 * time.Hour
}

// Generate signs a token for the given operator.
func Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": float64(user.ID),
		"name":    user.Name,
		"role":    user.Role,
		"exp":     now.Add(tokenTTL()).Unix(),
		"iat":     now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret())
}

// Validate parses and verifies a token ("Bearer " prefix tolerated) and
// returns the operator claims.
func Validate(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tokenString), "Bearer "))

	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	name, ok := mapClaims["name"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:  uint(userID),
		Name:    name,
		Role:    role,
		Expires: time.Unix(int64(exp), 0),
	}, nil
}
