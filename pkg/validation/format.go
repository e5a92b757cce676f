// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/feasibility/pkg/constants"
)

// SupportedOutputFormats lists every output format the CLI can render.
var SupportedOutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatXLSX,
	constants.OutputFormatPDF,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range SupportedOutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(SupportedOutputFormats, ", "), format)
}

// RequiresOutputPath reports whether the format writes a binary file rather
// than printing to stdout.
func RequiresOutputPath(format string) bool {
	return format == constants.OutputFormatXLSX || format == constants.OutputFormatPDF
}
