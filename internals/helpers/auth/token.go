package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("token tidak valid")

// Toleransi jam antar server.
const clockSkew = 30 * time.Second

type Claims struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Channel   string `json:"channel"`
	StationID string `json:"station_id,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() (*Identity, error) {
	uid, err := uuid.Parse(c.UserID)
	if err != nil || uid == uuid.Nil {
		return nil, ErrInvalidToken
	}
	id := &Identity{UserID: uid, Name: c.Name, Role: c.Role, Channel: c.Channel}
	if c.StationID != "" {
		if sid, err := uuid.Parse(c.StationID); err == nil {
			id.StationID = &sid
		}
	}
	return id, nil
}

// IssueAccessToken menandatangani JWT HS256 untuk identity.
func IssueAccessToken(secret string, id *Identity, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret kosong")
	}
	exp := now.Add(ttl)
	claims := Claims{
		UserID:  id.UserID.String(),
		Name:    id.Name,
		Role:    id.Role,
		Channel: id.Channel,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	if id.StationID != nil {
		claims.StationID = id.StationID.String()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken memverifikasi tanda tangan dan masa berlaku (toleransi 30 detik).
func ParseAccessToken(secret, raw string, now time.Time) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil || now.After(claims.ExpiresAt.Add(clockSkew)) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return claims, nil
}

// HashToken: blacklist menyimpan HMAC token, bukan token mentah.
func HashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
