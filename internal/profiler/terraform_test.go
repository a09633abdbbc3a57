package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerraformProviders_ProviderBlocks(t *testing.T) {
	content := `
provider "aws" {
  region = "eu-west-1"
}

provider "aws" {
  alias  = "us"
  region = "us-east-1"
}
`
	assert.Equal(t, []string{"aws"}, terraformProviders("main.tf", []byte(content)))
}

func TestTerraformProviders_RequiredProviders(t *testing.T) {
	content := `
terraform {
  required_providers {
    google = {
      source  = "hashicorp/google"
      version = "~> 5.0"
    }
  }
}
`
	assert.Equal(t, []string{"google"}, terraformProviders("versions.tf", []byte(content)))
}

func TestTerraformProviders_InvalidHCL(t *testing.T) {
	assert.Nil(t, terraformProviders("broken.tf", []byte("provider {{{")))
}

func TestMarkerForTerraformProvider(t *testing.T) {
	assert.Equal(t, "gcp", markerForTerraformProvider("google"))
	assert.Equal(t, "azure", markerForTerraformProvider("azurerm"))
	assert.Equal(t, "cloudflare", markerForTerraformProvider("cloudflare"))
}
