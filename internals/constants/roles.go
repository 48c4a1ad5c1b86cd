package constants

import (
	"fmt"
	"slices"
)

const (
	RoleAdmin        = "ADMIN"
	RoleContent      = "CONTENT"
	RoleContentAdmin = "CONTENT_ADMIN"
	RoleDatin        = "DATIN"
	RolePelayanan    = "PELAYANAN"
	RoleUser         = "USER"
)

// Kanal login
const (
	ChannelInternal  = "internal"
	ChannelPelayanan = "pelayanan"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyContentCanAccess  = "Hanya admin atau tim konten yang boleh mengakses fitur %s."
	ErrOnlyDatinCanAccess    = "Hanya admin atau tim DATIN yang boleh mengakses fitur %s."
	ErrOnlyServiceCanAccess  = "Hanya admin atau petugas pelayanan yang boleh mengakses fitur %s."
	ErrOnlyApplicantCanAcces = "Hanya pemohon terverifikasi yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorContent(feature string) string {
	return fmt.Sprintf(ErrOnlyContentCanAccess, feature)
}

func RoleErrorDatin(feature string) string {
	return fmt.Sprintf(ErrOnlyDatinCanAccess, feature)
}

func RoleErrorService(feature string) string {
	return fmt.Sprintf(ErrOnlyServiceCanAccess, feature)
}

func RoleErrorApplicant(feature string) string {
	return fmt.Sprintf(ErrOnlyApplicantCanAcces, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleContent,
		RoleContentAdmin,
		RoleDatin,
		RolePelayanan,
		RoleUser,
	}

	// Role yang boleh login lewat kanal internal.
	StaffRoles = []string{
		RoleAdmin,
		RoleContent,
		RoleContentAdmin,
		RoleDatin,
		RolePelayanan,
	}

	ContentRoles = []string{
		RoleAdmin,
		RoleContent,
		RoleContentAdmin,
	}

	StationRoles = []string{
		RoleAdmin,
		RoleDatin,
	}

	ServiceRoles = []string{
		RoleAdmin,
		RolePelayanan,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	ApplicantOnly = []string{
		RoleUser,
	}
)

func IsValidRole(role string) bool {
	return slices.Contains(AllRoles, role)
}

// ChannelRoles: role yang diterima tiap kanal login. Kanal tak dikenal = nil.
func ChannelRoles(channel string) []string {
	switch channel {
	case ChannelInternal:
		return StaffRoles
	case ChannelPelayanan:
		return ApplicantOnly
	default:
		return nil
	}
}
