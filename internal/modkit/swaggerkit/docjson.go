package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	perr "judolguard/internal/platform/errors"
	pnet "judolguard/internal/platform/net"
)

//go:embed openapi.json
var openapiDoc []byte

// Mutator edits the parsed document before it is served
type Mutator func(doc map[string]any)

var (
	mu       sync.Mutex
	mutators []Mutator
)

// docSource returns the raw document; tests replace it
var docSource = func() []byte { return openapiDoc }

// Register queues m to run on every served document
func Register(m Mutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

// errorExamples are attached to every operation that does not declare the status itself.
// They are rendered through the same envelope the API writes
var errorExamples = []struct {
	status string
	desc   string
	err    error
}{
	{"400", "Bad Request", perr.WithField(perr.New(perr.ErrorCodeValidation, "text is required"), "text")},
	{"500", "Internal Server Error", perr.New(perr.ErrorCodePanic, "internal error")},
}

// Doc parses the embedded document, pins it to OpenAPI 3.0.3 under basePath,
// adds the shared error responses and applies registered mutators
func Doc(basePath string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(docSource(), &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "parse openapi document")
	}

	// http-swagger renders 3.0 only
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": basePath}}
	}

	child(child(doc, "components"), "schemas")["ErrorResponse"] = errorSchema()
	responses := make(map[string]any, len(errorExamples))
	for _, ex := range errorExamples {
		_, wire := pnet.Error(ex.err, "0b6d2f/req-000001")
		responses[ex.status] = map[string]any{
			"description": ex.desc,
			"content": map[string]any{"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": wire,
			}},
		}
	}
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(o, "responses")
			for status, r := range responses {
				if _, set := resps[status]; !set {
					resps[status] = r
				}
			}
		}
	}

	mu.Lock()
	ms := append([]Mutator(nil), mutators...)
	mu.Unlock()
	for _, m := range ms {
		m(doc)
	}
	return doc, nil
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

func errorSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status", "code", "error"},
	}
}

func serveDoc(basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := Doc(basePath)
		if err != nil {
			status, body := pnet.Error(err, pnet.RequestID(r.Context()))
			pnet.Write(w, status, body)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		pnet.Write(w, http.StatusOK, doc)
	}
}
