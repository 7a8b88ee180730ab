package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"kindred_server/config"
	"kindred_server/models"
)

// TokenUser is the identity snapshot embedded in a token at issue time.
// Downstream logic that needs current profile data must re-fetch by id.
type TokenUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ScreenName string `json:"screenName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Location   string `json:"location"`
}

// Claims is the JWT payload carried by every bearer token
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies bearer tokens and hashes passwords
type AuthService struct {
	secret      []byte
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService from the process config
func NewAuthService(cfg config.Config) *AuthService {
	return &AuthService{
		secret:      []byte(cfg.JWTSecret),
		tokenExpiry: cfg.TokenExpiry,
	}
}

// HashPassword produces a salted bcrypt hash of the plaintext password
func (as *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. A wrong password returns false, never an error.
func (as *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token carrying a snapshot of the user's display fields
func (as *AuthService) IssueToken(user *models.User) (string, error) {
	return as.IssueTokenForUser(TokenUser{
		ID:         user.UserID,
		Username:   user.Username,
		ScreenName: user.ScreenName,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Location:   user.Location,
	})
}

// IssueTokenForUser signs a token for an existing identity snapshot. Refresh
// uses this to carry the original claims forward with a fresh expiry.
func (as *AuthService) IssueTokenForUser(tokenUser TokenUser) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: tokenUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   tokenUser.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of a bearer token and returns
// its claims. Only HS256 is accepted; tokens signed with any other algorithm
// are rejected outright.
func (as *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return as.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
