package ch

import (
	"runtime"

	"judolguard/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo names this binary in system.query_log so report inserts can be traced to a build
func clientInfo(role string) clickhouse.ClientInfo {
	bi := version.Info()
	if role == "" {
		role = bi.Service
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		{Name: bi.Service, Version: bi.Version},
		{Name: "role", Version: role},
		{Name: "commit", Version: bi.Commit},
		{Name: "go", Version: runtime.Version()},
	}}
}
