// Package raw reads the environment without logging, for use by the logger itself
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

func New() Conf                     { return Conf{} }
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value or def when blank
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + key)); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true in any case. Unset gives def
func (c Conf) GetBool(key string, def bool) bool {
	switch v := strings.ToLower(c.Get(key, "")); v {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt returns a non-negative integer, def when unset or malformed
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.Get(key, ""))
	if err != nil || n < 0 {
		return def
	}
	return n
}
