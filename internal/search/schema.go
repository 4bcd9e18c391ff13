package search

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// tavilyResponseSchema is the minimal shape Search relies on.
const tavilyResponseSchema = `{
	"type": "object",
	"required": ["results"],
	"properties": {
		"query": {"type": "string"},
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["url", "content"],
				"properties": {
					"title": {"type": "string"},
					"url": {"type": "string", "minLength": 1},
					"content": {"type": "string"},
					"score": {"type": "number"}
				}
			}
		}
	}
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(tavilyResponseSchema)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://tavily-response.json", doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile("schema://tavily-response.json")
})

// validateBody checks a raw Tavily response body against the schema.
func validateBody(body []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(doc)
}
