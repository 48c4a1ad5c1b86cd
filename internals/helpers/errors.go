package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stamet_backend/internals/helpers/logger"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindUnverified   ErrorKind = "UNVERIFIED_ACCOUNT"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

const msgInternal = "Terjadi kesalahan pada server"

// AppError dibawa dari service ke controller; FromError yang merender.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string][]string
	Data    any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		if len(e.Fields) > 0 {
			return fiber.StatusUnprocessableEntity
		}
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden, KindUnverified:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewFieldErrors(fields map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Message: "Validasi gagal", Fields: fields}
}

func NewUnauthorized(msg string) *AppError {
	if msg == "" {
		msg = "Silakan login terlebih dahulu"
	}
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	if msg == "" {
		msg = "Akses ditolak"
	}
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	if msg == "" {
		msg = "Data tidak ditemukan"
	}
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflict(msg string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: msg, Err: err}
}

// NewUnverified membawa user_id supaya klien bisa lanjut ke halaman verifikasi.
func NewUnverified(userID uuid.UUID) *AppError {
	return &AppError{
		Kind:    KindUnverified,
		Message: "Akun belum diverifikasi. Silakan cek email Anda.",
		Data:    fiber.Map{"user_id": userID},
	}
}

func NewInternal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msgInternal, Err: err}
}

// IsKind true kalau err (atau bungkusannya) AppError dengan kind tsb.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}

// IsUniqueViolation: SQLSTATE 23505. constraint kosong = constraint apa pun.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	if constraint != "" {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}

// IsForeignKeyViolation: SQLSTATE 23503 (baris masih direferensikan / referensi tidak ada).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// FromError menulis response JSON untuk err apa pun.
// Detail error internal hanya masuk log, tidak ke klien.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if errors.As(err, &ae) {
		if ae.Kind == KindInternal || ae.Status() >= fiber.StatusInternalServerError {
			logInternal(c, ae.Err)
			return JsonError(c, fiber.StatusInternalServerError, msgInternal)
		}
		return writeAppError(c, ae)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			logInternal(c, fe)
			return JsonError(c, fe.Code, msgInternal)
		}
		return JsonError(c, fe.Code, fe.Message)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	}

	logInternal(c, err)
	return JsonError(c, fiber.StatusInternalServerError, msgInternal)
}

func writeAppError(c *fiber.Ctx, ae *AppError) error {
	status := ae.Status()
	if len(ae.Fields) > 0 {
		return JsonValidationError(c, ae.Fields)
	}
	return c.Status(status).JSON(ErrorResponse{
		Success:   false,
		Message:   ae.Message,
		ErrorCode: string(ae.Kind),
		Data:      ae.Data,
	})
}

func logInternal(c *fiber.Ctx, err error) {
	ev := logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path())
	if rid, ok := c.Locals("reqid").(string); ok && rid != "" {
		ev = ev.Str("request_id", rid)
	}
	ev.Msg("internal error")
}
