// Package config reads settings from environment variables.
// Modules take a Conf scoped to their own prefix, e.g. CORE_CLEAN_
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"judolguard/internal/platform/logger"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed root
func New() Conf { return Conf{} }

// Prefix nests p under c's prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value and the full variable name
func (c Conf) lookup(k string) (string, string) {
	name := c.key(k)
	return strings.TrimSpace(os.Getenv(name)), name
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	v, name := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return v
}

// MayString returns def when key is unset or blank
func (c Conf) MayString(key, def string) string {
	if v, _ := c.lookup(key); v != "" {
		return v
	}
	return def
}

// parse reads key with fn, falling back to def when unset. A bad value is logged and ignored
func parse[T any](c Conf, key string, def T, fn func(string) (T, error)) T {
	s, name := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := fn(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("invalid value; using default")
		return def
	}
	return v
}

func (c Conf) MayInt(key string, def int) int { return parse(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return parse(c, key, def, strconv.ParseBool) }

// MayDuration takes time.ParseDuration syntax, e.g. 30s or 1m30s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parse(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma list and drops blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s, _ := c.lookup(key)
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns def when unset and panics on a value outside allowed (case-insensitive)
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
