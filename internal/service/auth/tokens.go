package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	subjectAccess  = "access"
	subjectRefresh = "refresh"
)

// Claims carried by both token kinds; Subject distinguishes them.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Pair is the token set returned by a successful login.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenService issues and validates the HS256 access/refresh token pair.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a token service around the shared signing secret.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair returns a fresh access and refresh token for the user.
func (t *TokenService) IssuePair(userID, username string) (Pair, error) {
	access, err := t.issue(userID, username, subjectAccess, t.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := t.issue(userID, username, subjectRefresh, t.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// ValidateAccess parses an access token and returns its claims.
func (t *TokenService) ValidateAccess(tokenStr string) (*Claims, error) {
	return t.validate(tokenStr, subjectAccess)
}

// Refresh exchanges a valid refresh token for a new access token.
func (t *TokenService) Refresh(tokenStr string) (string, error) {
	claims, err := t.validate(tokenStr, subjectRefresh)
	if err != nil {
		return "", err
	}
	return t.issue(claims.UserID, claims.Username, subjectAccess, t.accessTTL)
}

func (t *TokenService) issue(userID, username, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenService) validate(tokenStr, subject string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject != subject {
		return nil, fmt.Errorf("invalid token type")
	}
	return claims, nil
}
