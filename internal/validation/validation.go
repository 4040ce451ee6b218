// Package validation holds small input checks shared by the CLI and server
// entry points.
package validation

import (
	"fmt"
	"os"

	"fjacquet/xact-rollup/internal/models"
)

// IsValidPath checks if a given path exists and is a regular file or directory.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidReportFormat checks if the given report output format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case models.FormatJSON, models.FormatXML:
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'json', 'xml'", format)
	}
}

// IsValidFilePermissions checks if the given file mode is acceptable for
// sensitive files such as the environment file carrying the AI key.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0007 != 0 { // 'others' must not have any permissions
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0640", mode.String())
	}
	return nil
}
