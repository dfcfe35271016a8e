// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"

	"github.com/tomtom215/coursematch/internal/recommend"
	"github.com/tomtom215/coursematch/internal/validation"
)

// Supported catalog formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnsupportedFormat is returned for unknown formats and extensions.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// utf8BOM is stripped from the start of CSV files exported by spreadsheets.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ResolveFormat returns format when set, otherwise infers it from the
// extension of path.
func ResolveFormat(path, format string) (string, error) {
	if format = strings.ToLower(strings.TrimSpace(format)); format != "" {
		switch format {
		case FormatCSV, FormatJSON, FormatYAML:
			return format, nil
		case "yml":
			return FormatYAML, nil
		default:
			return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: cannot infer from %q", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path, format string) ([]recommend.Course, error) {
	resolved, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	courses, err := Parse(data, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return courses, nil
}

// Parse decodes data in the given format and validates every row.
func Parse(data []byte, format string) ([]recommend.Course, error) {
	var (
		records []courseRecord
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = parseCSV(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	case FormatJSON:
		records, err = parseJSON(data)
	case FormatYAML:
		records, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if verr := validation.ValidateStruct(catalogDocument{Courses: records}); verr != nil {
		return nil, verr
	}

	courses := make([]recommend.Course, len(records))
	for i := range records {
		courses[i] = records[i].course()
	}
	return courses, nil
}

func parseCSV(r io.Reader) ([]courseRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []courseRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if !hasIDColumn(header) {
		return nil, errors.New("CSV header has no id column")
	}

	records := []courseRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		m := make(map[string]any, len(row))
		for i, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				m[header[i]] = cell
			}
		}
		rec, err := recordFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func hasIDColumn(header []string) bool {
	for _, h := range header {
		if canonicalField(h) == "id" {
			return true
		}
	}
	return false
}

func parseJSON(data []byte) ([]courseRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch x := doc.(type) {
	case []any:
		return recordsFromList(x)
	case map[string]any:
		return recordsFromDocument(x)
	default:
		return nil, fmt.Errorf("JSON catalog must be an array or an object with courses, got %T", doc)
	}
}

func parseYAML(data []byte) ([]courseRecord, error) {
	doc, err := yaml.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return recordsFromDocument(doc)
}

func recordsFromDocument(doc map[string]any) ([]courseRecord, error) {
	raw, ok := doc["courses"]
	if !ok {
		return nil, errors.New(`catalog document has no "courses" key`)
	}
	if raw == nil {
		return []courseRecord{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf(`"courses" must be a list, got %T`, raw)
	}
	return recordsFromList(list)
}

func recordsFromList(list []any) ([]courseRecord, error) {
	records := make([]courseRecord, 0, len(list))
	for i, item := range list {
		m := toStringMap(item)
		if m == nil {
			return nil, fmt.Errorf("courses[%d]: expected an object, got %T", i, item)
		}
		rec, err := recordFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("courses[%d]: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
