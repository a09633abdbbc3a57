package validation

import (
	"testing"
)

func TestValidateYAML_ValidProjectConfig(t *testing.T) {
	validYAML := `
properties:
  product: "My Product"
  team: "Engineering"
  version: 1.0
  active: true

exclude:
  - "node_modules"
  - "vendor"
  - "*.log"
  - "**/__tests__/**"

catalog_dir: "custom-catalog"
max_depth: 7
`

	err := ValidateYAML("stack-advisor-config.json", []byte(validYAML))
	if err != nil {
		t.Fatalf("Expected valid YAML to pass validation, got error: %v", err)
	}
}

func TestValidateYAML_InvalidProjectConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "invalid property name",
			yaml: `
properties:
  123_invalid: "value"
`,
		},
		{
			name: "absolute path in exclude",
			yaml: `
exclude:
  - "/absolute/path"
`,
		},
		{
			name: "max_depth out of range",
			yaml: `
max_depth: 0
`,
		},
		{
			name: "unknown top-level key",
			yaml: `
bogus_key: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateYAML("stack-advisor-config.json", []byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected validation to fail for %s", tt.name)
			}
		})
	}
}

func TestValidateJSON_ValidDescriptor(t *testing.T) {
	validDescriptor := map[string]interface{}{
		"name":        "postgresql",
		"type":        "database",
		"priority":    90,
		"description": "Relational database",
		"port":        5432,
		"requires":    []interface{}{},
		"patterns": []interface{}{
			map[string]interface{}{"kind": "dependency", "value": "pg"},
			map[string]interface{}{"kind": "file", "value": "docker-compose.yml"},
		},
	}

	err := ValidateJSON("service-descriptor.json", validDescriptor)
	if err != nil {
		t.Fatalf("Expected valid descriptor to pass validation, got error: %v", err)
	}
}

func TestValidateJSON_InvalidDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		descriptor map[string]interface{}
	}{
		{
			name: "missing required fields",
			descriptor: map[string]interface{}{
				"name": "postgresql",
			},
		},
		{
			name: "priority out of range",
			descriptor: map[string]interface{}{
				"name":     "postgresql",
				"type":     "database",
				"priority": 150,
			},
		},
		{
			name: "unknown pattern kind",
			descriptor: map[string]interface{}{
				"name":     "postgresql",
				"type":     "database",
				"priority": 90,
				"patterns": []interface{}{
					map[string]interface{}{"kind": "regex", "value": "pg.*"},
				},
			},
		},
		{
			name: "port out of range",
			descriptor: map[string]interface{}{
				"name":     "postgresql",
				"type":     "database",
				"priority": 90,
				"port":     70000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON("service-descriptor.json", tt.descriptor)
			if err == nil {
				t.Fatalf("Expected validation to fail for %s", tt.name)
			}
		})
	}
}

func TestListAvailableSchemas(t *testing.T) {
	schemas, err := ListAvailableSchemas()
	if err != nil {
		t.Fatalf("Failed to list schemas: %v", err)
	}

	expectedSchemas := []string{
		"service-descriptor.json",
		"stack-advisor-config.json",
	}

	for _, expected := range expectedSchemas {
		found := false
		for _, schema := range schemas {
			if schema == expected {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Expected to find schema '%s' in list: %v", expected, schemas)
		}
	}
}

func TestValidateJSON_SchemaNotFound(t *testing.T) {
	err := ValidateJSON("nonexistent-schema.json", map[string]interface{}{})
	if err == nil {
		t.Fatal("Expected error for nonexistent schema")
	}
	if !contains(err.Error(), "failed to load schema") {
		t.Fatalf("Expected schema loading error, got: %v", err)
	}
}

func contains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if i+len(substr) <= len(s) && s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
