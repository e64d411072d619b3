package config

import (
	"reflect"
	"testing"
	"time"

	kit "judolguard/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	clean := New().Prefix("CORE_").Prefix("CLEAN_")
	if got := clean.key("WORKERS"); got != "CORE_CLEAN_WORKERS" {
		t.Fatalf("key = %q", got)
	}
}

func TestStrings(t *testing.T) {
	c := New().Prefix("CORE_CLEAN_")
	t.Setenv("CORE_CLEAN_TEXT_COLUMN", "  komentar ")
	t.Setenv("CORE_CLEAN_BLANK", "   ")

	if got := c.MustString("TEXT_COLUMN"); got != "komentar" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	if got := c.MayString("BLANK", "text"); got != "text" {
		t.Fatalf("blank MayString = %q", got)
	}
}

func TestParsedFallbacks(t *testing.T) {
	c := New().Prefix("CORE_API_")
	t.Setenv("CORE_API_WORKERS", " 8 ")
	t.Setenv("CORE_API_THROTTLE", "lots")
	t.Setenv("CORE_API_SWAGGER", "false")
	t.Setenv("CORE_API_PROFILER", "maybe")
	t.Setenv("CORE_API_TIMEOUT", "150ms")
	t.Setenv("CORE_API_SLOW", "soon")

	if got := c.MayInt("WORKERS", 1); got != 8 {
		t.Fatalf("WORKERS = %d", got)
	}
	if got := c.MayInt("THROTTLE", 64); got != 64 {
		t.Fatalf("bad THROTTLE must fall back, got %d", got)
	}
	if got := c.MayInt("MAX_BATCH", 500); got != 500 {
		t.Fatalf("unset MAX_BATCH = %d", got)
	}
	if c.MayBool("SWAGGER", true) || c.MayBool("PROFILER", false) {
		t.Fatalf("bool parsing")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 150*time.Millisecond {
		t.Fatalf("TIMEOUT = %v", got)
	}
	if got := c.MayDuration("SLOW", time.Minute); got != time.Minute {
		t.Fatalf("bad SLOW must fall back, got %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CORE_API_")
	def := []string{"*"}
	if got := c.MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("unset = %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " https://a.example, ,https://b.example ,, ")
	if got := c.MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("split = %#v", got)
	}
	t.Setenv("CORE_API_CORS_ORIGINS", " , ,")
	if got := c.MayCSV("CORS_ORIGINS", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("all blank = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("CORE_CLEAN_")
	strategies := []string{"aggressive", "smart", "preserve"}

	if got := c.MayEnum("NUMBER_STRATEGY", "smart", strategies...); got != "smart" {
		t.Fatalf("default = %q", got)
	}
	if got := c.MayEnum("UNSET", "", strategies...); got != "" {
		t.Fatalf("empty default = %q", got)
	}
	t.Setenv("CORE_CLEAN_NUMBER_STRATEGY", "Preserve")
	if got := c.MayEnum("NUMBER_STRATEGY", "smart", strategies...); got != "Preserve" {
		t.Fatalf("case-insensitive = %q", got)
	}
	t.Setenv("CORE_CLEAN_NUMBER_STRATEGY", "wild")
	kit.MustPanic(t, func() { _ = c.MayEnum("NUMBER_STRATEGY", "smart", strategies...) })
}
