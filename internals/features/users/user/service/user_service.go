package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stamet_backend/internals/constants"
	activityModel "stamet_backend/internals/features/activity/logs/model"
	activity "stamet_backend/internals/features/activity/logs/service"
	"stamet_backend/internals/features/users/user/dto"
	"stamet_backend/internals/features/users/user/model"
	helper "stamet_backend/internals/helpers"
	authHelper "stamet_backend/internals/helpers/auth"
)

const auditTarget = "Pengguna"

/* ====================== LOOKUP ====================== */

func FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).Where("email = ?", dto.NormalizeEmail(email)).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// IdentityRefresher: role, nama, dan stasiun dibaca dari tabel users
// pada tiap request terautentikasi.
func IdentityRefresher(db *gorm.DB) authHelper.IdentityRefresher {
	return func(ctx context.Context, id *authHelper.Identity) (*authHelper.Identity, error) {
		var u model.UserModel
		err := db.WithContext(ctx).Select("id", "name", "role", "station_id").
			Where("id = ?", id.UserID).Take(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authHelper.ErrIdentityGone
		}
		if err != nil {
			return nil, err
		}
		return withCurrentProfile(id, &u), nil
	}
}

// withCurrentProfile menyalin id (channel tetap dari token) dengan data akun terkini.
func withCurrentProfile(id *authHelper.Identity, u *model.UserModel) *authHelper.Identity {
	out := *id
	out.Name = u.Name
	out.Role = u.Role
	out.StationID = u.StationID
	return &out
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

/* ====================== ADMIN ====================== */

type UserService struct {
	DB    *gorm.DB
	Audit activity.Recorder
	now   func() time.Time
}

func NewUserService(db *gorm.DB, audit activity.Recorder) *UserService {
	if audit == nil {
		audit = activity.Discard{}
	}
	return &UserService{DB: db, Audit: audit, now: time.Now}
}

type ListParams struct {
	Q      string
	Role   string
	Offset int
	Limit  int
}

func (s *UserService) List(ctx context.Context, p ListParams) ([]model.UserModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.UserModel{})
	if r := strings.ToUpper(strings.TrimSpace(p.Role)); r != "" {
		q = q.Where("role = ?", r)
	}
	if term := strings.TrimSpace(p.Q); term != "" {
		like := "%" + term + "%"
		q = q.Where("(name ILIKE ? OR email ILIKE ?)", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.UserModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	u, err := FindByID(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.NewNotFound("Pengguna tidak ditemukan")
		}
		return nil, helper.NewInternal(err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, actor *authHelper.Identity, req dto.CreateUserRequest, ip string) (*model.UserModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if req.StationID != nil && req.Role != constants.RoleDatin {
		return nil, helper.NewValidationError("station_id hanya untuk role DATIN")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, helper.NewInternal(err)
	}
	now := s.now()
	u := &model.UserModel{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsVerified:   true,
		StationID:    req.StationID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if helper.IsUniqueViolation(err, model.UniqueEmail) {
			return nil, helper.NewConflict("Email sudah terdaftar", err)
		}
		return nil, helper.NewInternal(err)
	}

	s.record(actor, activityModel.ActionCreate, u, ip, fmt.Sprintf("Membuat pengguna %s (%s)", u.Email, u.Role))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.UpdateUserRequest, ip string) (*model.UserModel, error) {
	if actor == nil {
		return nil, helper.NewUnauthorized("")
	}
	req.Normalize()
	if req.Name != nil && *req.Name == "" {
		return nil, helper.NewValidationError("Nama tidak boleh kosong")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if id == actor.UserID && req.Role != nil && *req.Role != actor.Role {
		return nil, helper.NewForbidden("Tidak dapat mengubah role akun sendiri")
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var changes []string
	if req.Name != nil && *req.Name != u.Name {
		u.Name = *req.Name
		changes = append(changes, "nama")
	}
	if req.Role != nil && *req.Role != u.Role {
		changes = append(changes, fmt.Sprintf("role %s -> %s", u.Role, *req.Role))
		u.Role = *req.Role
	}
	if req.IsVerified != nil && *req.IsVerified != u.IsVerified {
		u.IsVerified = *req.IsVerified
		changes = append(changes, fmt.Sprintf("verified=%t", u.IsVerified))
	}
	switch {
	case req.ClearStation:
		u.StationID = nil
		changes = append(changes, "stasiun dilepas")
	case req.StationID != nil:
		u.StationID = req.StationID
		changes = append(changes, "stasiun")
	}
	if u.StationID != nil && u.Role != constants.RoleDatin {
		return nil, helper.NewValidationError("station_id hanya untuk role DATIN")
	}
	u.UpdatedAt = s.now()

	res := s.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        u.Name,
		"role":        u.Role,
		"is_verified": u.IsVerified,
		"station_id":  u.StationID,
		"updated_at":  u.UpdatedAt,
	})
	if res.Error != nil {
		return nil, helper.NewInternal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, helper.NewNotFound("Pengguna tidak ditemukan")
	}

	details := fmt.Sprintf("Memperbarui pengguna %s", u.Email)
	if len(changes) > 0 {
		details += " (" + strings.Join(changes, ", ") + ")"
	}
	s.record(actor, activityModel.ActionUpdate, u, ip, details)
	return u, nil
}

func (s *UserService) ResetPassword(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, req dto.ResetPasswordRequest, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return err
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return helper.NewInternal(err)
	}
	if err := s.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": s.now()}).Error; err != nil {
		return helper.NewInternal(err)
	}
	s.record(actor, activityModel.ActionUpdate, u, ip, fmt.Sprintf("Mereset password %s", u.Email))
	return nil
}

// Delete; admin tidak bisa menghapus akunnya sendiri.
func (s *UserService) Delete(ctx context.Context, actor *authHelper.Identity, id uuid.UUID, ip string) error {
	if actor == nil {
		return helper.NewUnauthorized("")
	}
	if id == actor.UserID {
		return helper.NewForbidden("Tidak dapat menghapus akun sendiri")
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{}).Error; err != nil {
		return helper.NewInternal(err)
	}
	s.record(actor, activityModel.ActionDelete, u, ip, fmt.Sprintf("Menghapus pengguna %s (%s)", u.Email, u.Role))
	return nil
}

func (s *UserService) record(actor *authHelper.Identity, action activityModel.Action, u *model.UserModel, ip, details string) {
	s.Audit.Record(activity.Entry{
		UserID:    actor.UserIDPtr(),
		Action:    action,
		Target:    auditTarget,
		Details:   details,
		IPAddress: ip,
		Metadata:  map[string]any{"id": u.ID.String(), "role": u.Role},
	})
}
