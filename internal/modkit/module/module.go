// Package module is the contract every routed unit of the API implements,
// plus the bootstrap registry binaries use to hand ports between modules
package module

import phttp "judolguard/internal/platform/net/http"

// Module mounts its routes and exposes its ports
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}
