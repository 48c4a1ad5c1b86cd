package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"stamet_backend/internals/features/activity/logs/model"
	"stamet_backend/internals/helpers/logger"
)

// Entry satu kejadian yang dicatat.
type Entry struct {
	UserID    *uuid.UUID
	Action    model.Action
	Target    string
	Details   string
	IPAddress string
	Metadata  map[string]any
}

// Recorder tidak pernah mengembalikan error ke pemanggil.
type Recorder interface {
	Record(e Entry)
}

type Store interface {
	Save(ctx context.Context, row *model.ActivityLogModel) error
}

type GormStore struct {
	DB *gorm.DB
}

func (s GormStore) Save(ctx context.Context, row *model.ActivityLogModel) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

type Config struct {
	BufferSize   int
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{BufferSize: 512, WriteTimeout: 5 * time.Second}
}

// Logger menampung entry di channel berkapasitas tetap dan menulisnya
// satu per satu dari satu goroutine. Buffer penuh = entry dibuang.
type Logger struct {
	store   Store
	cfg     Config
	events  chan *model.ActivityLogModel
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	nowFunc func() time.Time
}

func NewLogger(store Store, cfg Config) *Logger {
	def := DefaultConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	l := &Logger{
		store:   store,
		cfg:     cfg,
		events:  make(chan *model.ActivityLogModel, cfg.BufferSize),
		stop:    make(chan struct{}),
		nowFunc: time.Now,
	}
	l.wg.Add(1)
	go l.asyncWriter()
	return l
}

func (l *Logger) Record(e Entry) {
	row := &model.ActivityLogModel{
		ID:        uuid.New(),
		UserID:    e.UserID,
		Action:    e.Action,
		Target:    e.Target,
		Details:   e.Details,
		CreatedAt: l.nowFunc(),
	}
	if e.IPAddress != "" {
		ip := e.IPAddress
		row.IPAddress = &ip
	}
	if len(e.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(e.Metadata)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		logger.Warn().Str("action", string(e.Action)).Str("target", e.Target).Msg("audit logger closed, dropping entry")
		return
	}
	select {
	case l.events <- row:
	default:
		logger.Warn().Str("action", string(e.Action)).Str("target", e.Target).Msg("audit buffer full, dropping entry")
	}
}

func (l *Logger) asyncWriter() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stop:
			for {
				select {
				case row := <-l.events:
					l.write(row)
				default:
					return
				}
			}
		case row := <-l.events:
			l.write(row)
		}
	}
}

func (l *Logger) write(row *model.ActivityLogModel) {
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.WriteTimeout)
	defer cancel()
	if err := l.store.Save(ctx, row); err != nil {
		logger.Error().Err(err).
			Str("action", string(row.Action)).
			Str("target", row.Target).
			Msg("gagal menyimpan activity log")
	}
}

// Close menghentikan writer setelah antrean habis. Aman dipanggil berkali-kali.
func (l *Logger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.stop)
	l.mu.Unlock()
	l.wg.Wait()
}

// Discard dipakai bila audit tidak dibutuhkan (seed, tool CLI).
type Discard struct{}

func (Discard) Record(Entry) {}
