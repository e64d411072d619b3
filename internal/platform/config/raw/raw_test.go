package raw

import "testing"

func TestGetters(t *testing.T) {
	t.Setenv("LOG_LEVEL", " warn ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_COLOR", "nope")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_BAD_INT", "-3")
	t.Setenv("LOG_WORD_INT", "ten")

	env := New().Prefix("LOG_")
	if got := env.Get("LEVEL", "debug"); got != "warn" {
		t.Fatalf("Get = %q", got)
	}
	if got := env.Get("FORMAT", "console"); got != "console" {
		t.Fatalf("default Get = %q", got)
	}
	if !env.GetBool("CALLER", false) || env.GetBool("COLOR", true) || !env.GetBool("UNSET", true) {
		t.Fatalf("GetBool mismatch")
	}
	if env.GetInt("SAMPLE_EVERY", 0) != 10 || env.GetInt("BAD_INT", 1) != 1 || env.GetInt("WORD_INT", 2) != 2 {
		t.Fatalf("GetInt mismatch")
	}
	if got := New().Prefix("LOG_").Prefix("SAMPLE_").Get("EVERY", ""); got != "10" {
		t.Fatalf("nested prefix = %q", got)
	}
}
