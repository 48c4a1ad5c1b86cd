package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(Config{})

	Info().Msg("tidak muncul")
	Warn().Str("slug", "gempa-bumi").Msg("muncul")

	out := buf.String()
	if strings.Contains(out, "tidak muncul") {
		t.Fatalf("info log emitted at warn level: %s", out)
	}
	if !strings.Contains(out, `"slug":"gempa-bumi"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestInitInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "bogus", Output: &buf})
	defer Init(Config{})

	Debug().Msg("debug")
	Info().Msg("info")

	out := buf.String()
	if strings.Contains(out, `"message":"debug"`) {
		t.Fatalf("debug emitted with fallback level: %s", out)
	}
	if !strings.Contains(out, `"message":"info"`) {
		t.Fatalf("info missing: %s", out)
	}
}
