package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// signToken creates an HS256 JWT whose subject is the game ID.
func (s *Server) signToken(gameID string) (string, error) {
	now := s.opts.Now()
	claims := jwt.RegisteredClaims{
		Subject:  gameID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.opts.TokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.opts.TokenTTL))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.opts.Secret)
}

// parseToken verifies a token and returns its game ID.
func (s *Server) parseToken(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("token has no game")
	}
	return claims.Subject, nil
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
