package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/petrarca/stack-advisor/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Outputter is implemented by command results that can render themselves
// as JSON, YAML, or human-readable text.
type Outputter interface {
	// ToJSON returns the structure handed to the JSON/YAML marshaler.
	ToJSON() interface{}
	// ToText writes the human-readable rendering.
	ToText(w io.Writer)
}

// Output renders o in the given format to stdout.
func Output(o Outputter, format string) {
	OutputToFile(o, format, "")
}

// OutputToFile renders o in the given format, writing to outputFile when
// set and to stdout otherwise.
func OutputToFile(o Outputter, format string, outputFile string) {
	var data []byte

	switch util.NormalizeFormat(format) {
	case "json":
		encoded, err := json.MarshalIndent(o.ToJSON(), "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal JSON: %v", err)
		}
		data = encoded
	case "yaml":
		encoded, err := yaml.Marshal(o.ToJSON())
		if err != nil {
			log.Fatalf("Failed to marshal YAML: %v", err)
		}
		data = encoded
	default:
		if outputFile == "" {
			o.ToText(os.Stdout)
			return
		}
		var buf bytes.Buffer
		o.ToText(&buf)
		data = buf.Bytes()
	}

	if outputFile == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Results written to %s\n", outputFile)
}

// setupFormatFlag adds the --format flag with validation.
func setupFormatFlag(cmd *cobra.Command, formatPtr *string) {
	cmd.Flags().StringVarP(formatPtr, "format", "f", "json", "Output format: json, yaml, or text")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		*formatPtr = util.NormalizeFormat(*formatPtr)
		return util.ValidateOutputFormat(*formatPtr)
	}
}

// setupOutputFlags adds the --format and --output flags.
func setupOutputFlags(cmd *cobra.Command, formatPtr *string, outputPtr *string) {
	setupFormatFlag(cmd, formatPtr)
	cmd.Flags().StringVarP(outputPtr, "output", "o", "", "Output file path (default: stdout)")
}
