package model

import "testing"

func TestDeriveRating(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{100, "A (Sangat Baik)"},
		{88.31, "A (Sangat Baik)"},
		{88.30, "B (Baik)"},
		{76.61, "B (Baik)"},
		{76.60, "C (Kurang Baik)"},
		{65, "C (Kurang Baik)"},
		{64.99, "D (Tidak Baik)"},
		{0, "D (Tidak Baik)"},
	}
	for _, tc := range cases {
		if got := DeriveRating(tc.v); got != tc.want {
			t.Errorf("DeriveRating(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
