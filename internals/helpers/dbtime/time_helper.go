package dbtime

import (
	"sync"
	"time"
)

// Zona default layanan (WIB).
const DefaultTimezone = "Asia/Jakarta"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location mengembalikan Asia/Jakarta; kalau tzdata tidak ada, fallback ke
// FixedZone +07:00 supaya hasil format tetap WIB.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			l = time.FixedZone("WIB", 7*60*60)
		}
		loc = l
	})
	return loc
}

// ToLocal mengonversi waktu (biasanya UTC dari DB) ke WIB.
// Kalau t.IsZero() dikembalikan apa adanya.
func ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

func ToLocalPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToLocal(*t)
	return &v
}

func Now() time.Time {
	return time.Now().In(Location())
}
