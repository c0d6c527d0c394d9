// Package equation converts legacy equation-editor binary blobs to
// MathML. The conversion itself is an injected capability so hosts can
// swap in an external tool; the package ships a built-in converter for
// the MTEF subset the source documents use, plus the compound-file
// plumbing needed to dig the equation stream out of an embedded object
// part.
package equation

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Converter turns a legacy equation blob into a MathML fragment. A
// failed conversion returns an error and must leave no side effects
// visible to the caller; the surrounding extraction drops that one
// equation and continues.
type Converter interface {
	Convert(blob []byte) (string, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(blob []byte) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(blob []byte) (string, error) {
	return f(blob)
}

// Command returns a Converter that stages the blob to a temporary file
// and runs an external program on it, reading MathML from stdout. The
// placeholder "{}" in args is replaced with the temp file path; without
// a placeholder the path is appended. The temporary file is removed on
// every exit path.
func Command(name string, args ...string) Converter {
	return ConverterFunc(func(blob []byte) (string, error) {
		tmp, err := os.CreateTemp("", "equation-*.bin")
		if err != nil {
			return "", fmt.Errorf("staging equation blob: %w", err)
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.Write(blob); err != nil {
			tmp.Close()
			return "", fmt.Errorf("staging equation blob: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return "", fmt.Errorf("staging equation blob: %w", err)
		}

		argv := make([]string, 0, len(args)+1)
		replaced := false
		for _, a := range args {
			if a == "{}" {
				argv = append(argv, tmp.Name())
				replaced = true
				continue
			}
			argv = append(argv, a)
		}
		if !replaced {
			argv = append(argv, tmp.Name())
		}

		out, err := exec.Command(name, argv...).Output()
		if err != nil {
			return "", fmt.Errorf("running %s: %w", name, err)
		}
		mathml := strings.TrimSpace(string(out))
		if mathml == "" {
			return "", fmt.Errorf("%s produced no output", name)
		}
		return mathml, nil
	})
}
