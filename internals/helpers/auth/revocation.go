package auth

import (
	"context"
	"time"
)

// Revocations menyimpan token yang sudah logout sampai masa berlakunya habis.
type Revocations interface {
	Revoke(ctx context.Context, rawToken string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, rawToken string) (bool, error)
}
