// Package jobsource resolves a job description given inline or as a file.
package jobsource

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Source describes where a job description comes from.
type Source struct {
	// Name is used in error messages to give more context about the value.
	Name string
	// Value is an inline value provided via flags or prompts.
	Value string
	// File points to a file containing the value. When set it takes
	// precedence over Value. "-" reads standard input.
	File string
}

// Load returns the resolved value from the provided source. When File is set
// it takes precedence over Value. The returned value is always trimmed. An
// error is returned when neither File nor Value contain anything.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "job description"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := readFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	value := strings.TrimSpace(src.Value)
	if value == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not provided", name)
	}

	return value, nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
