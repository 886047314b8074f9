package tools

import (
	"os/exec"
	"strings"
)

// CheckDependencies verifies that all binaries are found in PATH. Commands
// with arguments are checked by their first word.
func CheckDependencies(binaries ...string) error {
	var missing []string

	for _, b := range binaries {
		fields := strings.Fields(b)
		if len(fields) == 0 {
			continue
		}

		if _, err := exec.LookPath(fields[0]); err != nil {
			missing = append(missing, fields[0])
		}
	}

	if len(missing) > 0 {
		return &MissingBinariesError{Binaries: missing}
	}

	return nil
}
