package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

// stdoutPath is the --out value that writes to standard output.
const stdoutPath = "-"

// resolveOut returns out, or name inside dir when out is empty.
func resolveOut(out, dir, name string) string {
	if out != "" {
		return out
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to create output directory").
				WithContext("path", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return werrors.Wrap(err, werrors.ErrFileWrite, werrors.CategoryIO, "failed to write output").
			WithContext("path", path)
	}
	return nil
}

// readInput reads path, or stdin for "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdoutPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrFileRead, werrors.CategoryIO, "failed to read input").
			WithContext("path", path)
	}
	return data, nil
}

// status prints a progress note. Notes go to stderr so that "--out -"
// leaves stdout clean.
func status(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
