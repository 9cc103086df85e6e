// Package scalar serves a browsable reference for the prompt catalog API,
// rendered by Scalar from the service's OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/promptlib/pkg/module"
)

//go:embed index.html
var indexHTML string

var index = template.Must(template.New("index").Parse(indexHTML))

// NewModule mounts the reference page at basePath. specURL is where the
// page fetches the catalog's OpenAPI document, e.g. /api/openapi.json.
func NewModule(basePath, specURL string) *module.Module {
	var buf bytes.Buffer
	if err := index.Execute(&buf, struct{ SpecURL string }{specURL}); err != nil {
		panic(err)
	}
	body := buf.Bytes()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
	})
	return module.New(basePath, mux)
}
