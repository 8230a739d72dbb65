package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runCommand invokes bin with args, returning the combined error and a
// trimmed stderr tail if it fails. All concrete engines in this package
// are thin wrappers around an external model-serving process; Parse's
// job is building the right argv and interpreting the output directory,
// never running inference itself.
func runCommand(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
