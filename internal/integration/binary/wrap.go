// Package binary locates the external tools sonoscope shells out to.
package binary

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/farcloser/primordium/fault"
)

// Require resolves binName in PATH. A missing tool is reported as fault.ErrMissingRequirements.
func Require(binName string) (string, error) {
	path, err := exec.LookPath(binName)
	if err != nil {
		slog.Debug("binary.Require", "binary", binName, "stage", "not found")

		return "", fmt.Errorf("%w: %s not found in PATH", fault.ErrMissingRequirements, binName)
	}

	return path, nil
}
