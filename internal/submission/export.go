package submission

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write serializes all submissions in the requested format.
func (s *Store) Write(w io.Writer, format string) error {
	switch normalizeFormat(format) {
	case FormatJSON:
		return s.WriteJSON(w)
	case FormatYAML:
		return s.WriteYAML(w)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func (s *Store) WriteJSON(w io.Writer) error {
	records, err := s.Export()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	return nil
}

func (s *Store) WriteYAML(w io.Writer) error {
	records, err := s.Export()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	return enc.Close()
}

// DumpToTmpFile writes all submissions to a new file in the temp directory
// and returns its name.
func (s *Store) DumpToTmpFile(format string) (string, error) {
	format = normalizeFormat(format)
	if format != FormatJSON && format != FormatYAML {
		return "", fmt.Errorf("unsupported export format: %s", format)
	}

	file, err := os.CreateTemp("", "candidate_submissions_*."+format)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := s.Write(file, format); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return FormatJSON
	case "yml":
		return FormatYAML
	default:
		return format
	}
}
