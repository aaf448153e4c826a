package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobboard-api/internal/config"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims holds the JWT payload fields. TokenType distinguishes the
// short-lived access token from the long-lived refresh token; both are
// stateless and bound to the identity's stable id.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey: privKey,
		publicKey:  pubKey,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

// SignPair mints the access/refresh credential pair for a user.
func (p *Provider) SignPair(userID, role string) (access, refresh string, err error) {
	access, err = p.sign(userID, role, tokenTypeAccess, p.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = p.sign(userID, role, tokenTypeRefresh, p.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (p *Provider) sign(userID, role, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.privateKey)
}

// VerifyAccess validates an access token and returns its claims.
func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	return p.verify(tokenStr, tokenTypeRefresh)
}

// VerifyRefreshUser validates a refresh token and returns the user id it is
// bound to.
func (p *Provider) VerifyRefreshUser(tokenStr string) (string, error) {
	claims, err := p.VerifyRefresh(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (p *Provider) verify(tokenStr, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("expected %s token, got %s", wantType, claims.TokenType)
	}
	return claims, nil
}
