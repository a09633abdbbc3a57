package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml", "JSON", "Yaml"} {
		assert.NoError(t, ValidateOutputFormat(format), format)
	}
	for _, format := range []string{"xml", "csv", ""} {
		err := ValidateOutputFormat(format)
		assert.Error(t, err, format)
		assert.Contains(t, err.Error(), "invalid format")
	}
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "json", NormalizeFormat("JSON"))
	assert.Equal(t, "yaml", NormalizeFormat("Yaml"))
	assert.Equal(t, "text", NormalizeFormat("text"))
	assert.Equal(t, "", NormalizeFormat(""))
}
