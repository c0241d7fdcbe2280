package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"resumatch/internal/server/models"
	"resumatch/internal/shared/passhash"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// a login failure does not leak which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements registration, password verification, JWT access
// token issuance and refresh token rotation.
type AuthService struct {
	repo      Repository
	jwtSecret []byte
}

func (a *AuthService) Register(ctx context.Context, email, username, password string) (models.User, error) {
	phc, err := passhash.Hash(password)
	if err != nil {
		return models.User{}, err
	}
	return a.repo.CreateUser(ctx, email, username, []byte(phc))
}

func (a *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, hash, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	ok, err := passhash.Verify(string(hash), password)
	if err != nil || !ok {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// IssueTokens mints the access/refresh pair for a user. The refresh token
// is an opaque uuid persisted server-side; the access token is a signed
// HS256 JWT with the user id as subject.
func (a *AuthService) IssueTokens(ctx context.Context, userID string) (models.TokenPair, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(accessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh := uuid.NewString()
	if err := a.repo.CreateRefreshToken(ctx, userID, refresh, time.Now().Add(refreshTokenTTL)); err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (a *AuthService) ParseToken(_ context.Context, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("invalid token subject")
	}
	return sub, nil
}

// Refresh rotates the refresh token and issues a fresh pair.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	userID, expiresAt, err := a.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return models.TokenPair{}, errors.New("invalid refresh token")
	}
	if time.Now().After(expiresAt) {
		_ = a.repo.DeleteRefreshToken(ctx, refreshToken)
		return models.TokenPair{}, errors.New("refresh token expired")
	}
	_ = a.repo.DeleteRefreshToken(ctx, refreshToken)
	return a.IssueTokens(ctx, userID)
}

func (a *AuthService) GetUser(ctx context.Context, id string) (models.User, error) {
	return a.repo.GetUserByID(ctx, id)
}
