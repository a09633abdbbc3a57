// Package validation checks external catalog descriptors and project
// configuration files against embedded JSON schemas.
package validation

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed *.json
var schemaFS embed.FS

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

// ValidationError collects the individual schema violations of one document.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// compiledSchema returns the compiled embedded schema, compiling it on
// first use.
func compiledSchema(schemaName string) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if schema, ok := schemaCache[schemaName]; ok {
		return schema, nil
	}

	schemaData, err := schemaFS.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}
	schema, err := jsonschema.CompileString(schemaName, string(schemaData))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	schemaCache[schemaName] = schema
	return schema, nil
}

// ValidateJSON validates parsed data against one of the embedded JSON
// schemas. schemaName is the schema filename, e.g. "service-descriptor.json".
func ValidateJSON(schemaName string, data interface{}) error {
	schema, err := compiledSchema(schemaName)
	if err != nil {
		return err
	}

	if err := schema.Validate(data); err != nil {
		var causes []string
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			for _, c := range validationErr.Causes {
				causes = append(causes, c.Message)
			}
			if len(causes) == 0 {
				causes = append(causes, validationErr.Message)
			}
		} else {
			causes = append(causes, err.Error())
		}
		return ValidationError{Errors: causes}
	}

	return nil
}

// ValidateYAML parses raw YAML content and validates it against one of the
// embedded JSON schemas.
func ValidateYAML(schemaName string, yamlContent []byte) error {
	var data interface{}
	if err := yaml.Unmarshal(yamlContent, &data); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return ValidateJSON(schemaName, data)
}

// ListAvailableSchemas returns the embedded schema filenames.
func ListAvailableSchemas() ([]string, error) {
	entries, err := schemaFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var schemas []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			schemas = append(schemas, entry.Name())
		}
	}

	return schemas, nil
}
