package importer

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const recordSchemaPath = "schemas/university.json"

// compileRecordSchema compiles the schema every dataset record is checked against.
func compileRecordSchema() (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(recordSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read record schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(recordSchemaPath, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add record schema: %w", err)
	}
	schema, err := compiler.Compile(recordSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile record schema: %w", err)
	}
	return schema, nil
}
