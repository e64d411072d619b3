// Package modkit assembles API modules: shared deps, functional options and the
// Base every module embeds for routing
package modkit

import (
	phttp "judolguard/internal/platform/net/http"
)

// Module is what the API mounts. Ports is looked up by other modules through
// the module registry under Name
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
