package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

const otpLength = 6

// TokenClaims is what the API reads back out of a bearer token.
type TokenClaims struct {
	UserID    uint
	Role      string
	ExpiresAt time.Time
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken creates a signed JWT for a user
func GenerateToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = user.ID
	claims["role"] = user.Role
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ParseToken validates a JWT and returns its claims
func ParseToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}
	role, _ := claims["role"].(string)
	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		UserID:    uint(userID),
		Role:      role,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// GenerateOTP creates a 6-digit OTP using crypto/rand
func GenerateOTP() (string, error) {
	b := make([]byte, otpLength)
	for i := range b {
		r, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b[i] = byte('0' + r.Int64())
	}
	return string(b), nil
}
