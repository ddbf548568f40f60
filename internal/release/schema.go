package release

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/git-pkgs/adoptium/internal/core"
)

const assetSchemaURL = "https://api.adoptium.net/schemas/release-asset.json"

// assetSchema covers the fields read from /v3/assets/release_name.
const assetSchema = `{
	"type": "object",
	"required": ["binaries"],
	"properties": {
		"binaries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["package"],
				"properties": {
					"package": {
						"type": "object",
						"required": ["name", "checksum", "link"],
						"properties": {
							"name": {"type": "string"},
							"checksum": {"type": "string"},
							"link": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`

const versionsSchemaURL = "https://api.adoptium.net/schemas/release-versions.json"

// versionsSchema covers /v3/info/release_versions. Only major is required;
// missing minor, security and build decode as zero.
const versionsSchema = `{
	"type": "object",
	"required": ["versions"],
	"properties": {
		"versions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["major"],
				"properties": {
					"major": {"type": "integer", "minimum": 0},
					"minor": {"type": "integer", "minimum": 0},
					"security": {"type": "integer", "minimum": 0},
					"build": {"type": "integer", "minimum": 0},
					"semver": {"type": "string"}
				}
			}
		}
	}
}`

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		sources := map[string]string{
			assetSchemaURL:    assetSchema,
			versionsSchemaURL: versionsSchema,
		}
		for url, src := range sources {
			doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
			if err != nil {
				schemasErr = err
				return
			}
			if err := c.AddResource(url, doc); err != nil {
				schemasErr = err
				return
			}
		}

		schemas = make(map[string]*jsonschema.Schema, len(sources))
		for url := range sources {
			sch, err := c.Compile(url)
			if err != nil {
				schemasErr = err
				return
			}
			schemas[url] = sch
		}
	})
	return schemas, schemasErr
}

// decode validates body against the named schema and unmarshals it into v.
// Any failure is reported as a *core.MalformedResponseError.
func decode(url, schemaURL string, body []byte, v any) error {
	all, err := compiledSchemas()
	if err != nil {
		return &core.MalformedResponseError{URL: url, Err: err}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &core.MalformedResponseError{URL: url, Err: err}
	}
	if err := all[schemaURL].Validate(inst); err != nil {
		return &core.MalformedResponseError{URL: url, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &core.MalformedResponseError{URL: url, Err: err}
	}
	return nil
}
