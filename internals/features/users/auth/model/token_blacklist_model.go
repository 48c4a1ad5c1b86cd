package model

import "time"

// TokenBlacklist menyimpan HMAC token yang sudah logout; baris boleh dihapus
// setelah ExpiredAt lewat.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"column:token;type:text;not null;uniqueIndex:uq_token_blacklist_token" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null;index:idx_token_blacklist_expired" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
