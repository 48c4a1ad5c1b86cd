package helper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	reSlugDrop   = regexp.MustCompile(`[^a-z0-9\s-]`)
	reSlugSpace  = regexp.MustCompile(`\s+`)
	reSlugHyphen = regexp.MustCompile(`-+`)
)

const (
	// Batas percobaan suffix berurutan sebelum pindah ke suffix acak.
	MaxSlugAttempts = 1000

	// Dipakai kalau judul tidak menyisakan satu karakter pun.
	DefaultSlugBase = "tanpa-judul"
)

// Slugify: lowercase, buang karakter di luar [a-z0-9\s-], spasi jadi "-",
// kompres "-", trim ujung. Tidak ada batas panjang; hasil bisa kosong.
// Semua spasi Unicode (NBSP, em space, \v) dihitung spasi; \s di RE2 hanya ASCII.
func Slugify(title string) string {
	s := strings.Map(foldSpace, strings.ToLower(title))
	s = reSlugDrop.ReplaceAllString(s, "")
	s = reSlugSpace.ReplaceAllString(s, "-")
	s = reSlugHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func foldSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return ' '
	}
	return r
}

// SlugTakenFunc melaporkan apakah kandidat slug sudah dipakai.
type SlugTakenFunc func(ctx context.Context, candidate string) (bool, error)

// ResolveUniqueSlug mencoba base, base-1, base-2, ... sampai ada yang kosong.
// Setelah MaxSlugAttempts percobaan, jatuh ke base-<hex acak>.
func ResolveUniqueSlug(ctx context.Context, base string, taken SlugTakenFunc) (string, error) {
	if base == "" {
		base = DefaultSlugBase
	}

	candidate := base
	for i := 0; i < MaxSlugAttempts; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		used, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
	}

	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return base + "-" + suffix, nil
}

// SlugTakenInTable memeriksa keberadaan slug pada table.column.
// excludeID != uuid.Nil mengecualikan baris itu sendiri (kasus update).
func SlugTakenInTable(db *gorm.DB, table, column string, excludeID uuid.UUID) SlugTakenFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		q := db.WithContext(ctx).Table(table).Where(column+" = ?", candidate)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
