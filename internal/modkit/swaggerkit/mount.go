// Package swaggerkit serves the embedded OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "judolguard/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI lives; the document is served at DocsPath+"doc.json"
const DocsPath = "/api/docs/"

// Mount serves the UI and the document for an API rooted at basePath. Nothing is mounted unless enabled
func Mount(r phttp.Router, basePath string, enabled bool) {
	if !enabled {
		return
	}
	r.Get(DocsPath[:len(DocsPath)-1], func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DocsPath, http.StatusPermanentRedirect)
	})
	r.Get(DocsPath+"doc.json", serveDoc(basePath))
	r.Handle(DocsPath+"*", httpSwagger.Handler(
		httpSwagger.InstanceName("judolguard"),
		httpSwagger.URL(DocsPath+"doc.json"),
	))
}
