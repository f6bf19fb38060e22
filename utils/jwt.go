package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusevents/models"
)

var secretKey = func() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	return "supersecret"
}()

// TokenClaims is the session identity carried by every authenticated request.
type TokenClaims struct {
	UserID  int64
	Email   string
	Role    string
	ClubID  string
	IsAdmin bool
}

func GenerateToken(u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":  u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"clubId":  u.ClubID,
		"isAdmin": u.IsAdmin,
		"exp":     time.Now().Add(time.Hour * 2).Unix(),
	})

	return token.SignedString([]byte(secretKey))
}

func VerifyToken(token string) (TokenClaims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return TokenClaims{}, errors.New("could not parse token")
	}
	if !parsedToken.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}

	uid, ok := claims["userId"].(float64)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}

	out := TokenClaims{UserID: int64(uid)}
	out.Email, _ = claims["email"].(string)
	out.Role, _ = claims["role"].(string)
	out.ClubID, _ = claims["clubId"].(string)
	out.IsAdmin, _ = claims["isAdmin"].(bool)
	return out, nil
}
