package profiler

import (
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// terraformProviders parses a .tf file and returns the provider names
// it declares, from both provider blocks and the required_providers
// block. Parse failures return nil; Terraform files are infrastructure
// evidence, not a structural input.
func terraformProviders(fileName string, content []byte) []string {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, fileName)
	if diags.HasErrors() || file == nil {
		return nil
	}

	body, _ := file.Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "provider", LabelNames: []string{"name"}},
			{Type: "terraform"},
		},
	})
	if body == nil {
		return nil
	}

	seen := make(map[string]bool)
	var providers []string
	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		providers = append(providers, name)
	}

	for _, block := range body.Blocks.OfType("provider") {
		if len(block.Labels) > 0 {
			add(block.Labels[0])
		}
	}

	for _, block := range body.Blocks.OfType("terraform") {
		inner, _ := block.Body.Content(&hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{{Type: "required_providers"}},
		})
		if inner == nil {
			continue
		}
		for _, required := range inner.Blocks.OfType("required_providers") {
			attrs, _ := required.Body.JustAttributes()
			for name, attr := range attrs {
				// Prefer the source address ("hashicorp/aws" -> "aws")
				if val, valDiags := attr.Expr.Value(nil); !valDiags.HasErrors() &&
					val.Type().IsObjectType() && val.Type().HasAttribute("source") {
					if source := val.GetAttr("source"); source.Type() == cty.String && !source.IsNull() {
						add(path.Base(source.AsString()))
						continue
					}
				}
				add(name)
			}
		}
	}

	return providers
}
