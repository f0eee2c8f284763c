package http

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gofiber/fiber/v2"
)

// OpenAPIPath is where the API contract is read from, relative to the working directory.
var OpenAPIPath = "api/openapi.yaml"

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Title}} {{.Version}}</title></head>
<body>
<h1>{{.Title}} <small>{{.Version}}</small></h1>
<p>Contract: <a href="/docs/openapi.yaml">YAML</a> · <a href="/docs/openapi.json">JSON</a></p>
<table>
<thead><tr><th>Method</th><th>Path</th><th>Summary</th></tr></thead>
<tbody>
{{range .Operations}}<tr><td>{{.Method}}</td><td><code>{{.Path}}</code></td><td>{{.Summary}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>`))

type docsOperation struct {
	Method  string
	Path    string
	Summary string
}

type docsIndex struct {
	Title      string
	Version    string
	Operations []docsOperation
}

// loadContract parses and validates the OpenAPI document at path.
func loadContract(path string) (*openapi3.T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return doc, nil
}

func indexContract(doc *openapi3.T) docsIndex {
	idx := docsIndex{Title: doc.Info.Title, Version: doc.Info.Version}
	paths := doc.Paths.Map()
	for _, path := range slices.Sorted(maps.Keys(paths)) {
		ops := paths[path].Operations()
		for _, method := range slices.Sorted(maps.Keys(ops)) {
			idx.Operations = append(idx.Operations, docsOperation{
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: ops[method].Summary,
			})
		}
	}
	return idx
}

// SetupDocs serves an operation index at /docs and the contract as YAML and JSON.
func SetupDocs(app *fiber.App) {
	app.Get("/docs", func(c *fiber.Ctx) error {
		doc, err := loadContract(OpenAPIPath)
		if err != nil {
			return errNotFound(c, "api contract unavailable")
		}
		var buf bytes.Buffer
		if err := docsPage.Execute(&buf, indexContract(doc)); err != nil {
			return errInternal(c, err)
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		data, err := os.ReadFile(OpenAPIPath)
		if err != nil {
			return errNotFound(c, "openapi.yaml not found")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(data)
	})

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		doc, err := loadContract(OpenAPIPath)
		if err != nil {
			return errNotFound(c, "api contract unavailable")
		}
		return c.JSON(doc)
	})
}
