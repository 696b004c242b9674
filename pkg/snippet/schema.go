package snippet

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed snippets.schema.json
var fileSchemaJSON []byte

const fileSchemaURL = "schema://qcl/snippets.json"

var (
	fileSchemaOnce sync.Once
	fileSchema     *jsonschema.Schema
	fileSchemaErr  error
)

func compiledFileSchema() (*jsonschema.Schema, error) {
	fileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(fileSchemaURL, bytes.NewReader(fileSchemaJSON)); err != nil {
			fileSchemaErr = fmt.Errorf("failed to add snippet schema: %w", err)
			return
		}
		fileSchema, fileSchemaErr = compiler.Compile(fileSchemaURL)
	})
	return fileSchema, fileSchemaErr
}

// validateDocument checks a decoded YAML or TOML document against the
// snippet file schema. The document is normalized through JSON first so
// that numbers and maps have the shapes the validator expects.
func validateDocument(doc interface{}) error {
	schema, err := compiledFileSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document cannot be represented as JSON: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var normalized interface{}
	if err := decoder.Decode(&normalized); err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}

	return schema.Validate(normalized)
}
