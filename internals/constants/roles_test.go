package constants

import (
	"slices"
	"testing"
)

func TestChannelRoles(t *testing.T) {
	tests := []struct {
		channel string
		role    string
		want    bool
	}{
		{ChannelInternal, RoleAdmin, true},
		{ChannelInternal, RoleContentAdmin, true},
		{ChannelInternal, RolePelayanan, true},
		{ChannelInternal, RoleUser, false},
		{ChannelPelayanan, RoleUser, true},
		{ChannelPelayanan, RoleAdmin, false},
		{"mobile", RoleAdmin, false},
	}
	for _, tt := range tests {
		if got := slices.Contains(ChannelRoles(tt.channel), tt.role); got != tt.want {
			t.Errorf("%s/%s: got %v want %v", tt.channel, tt.role, got, tt.want)
		}
	}
}

func TestDetectFileTypeFromExt(t *testing.T) {
	cases := map[string]FileKind{
		"foto.JPG":     FileImage,
		"peta.webp":    FileImage,
		"buletin.pdf":  FilePDF,
		"laporan.xlsx": FileDocument,
		"skrip.sh":     FileUnknown,
		"tanpa-ekst":   FileUnknown,
	}
	for name, want := range cases {
		if got := DetectFileTypeFromExt(name); got != want {
			t.Errorf("%s: got %v want %v", name, got, want)
		}
	}
}
