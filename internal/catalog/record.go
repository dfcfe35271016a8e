// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursematch/internal/recommend"
)

// Canonical field names and the aliases that map onto them.
var fieldAliases = map[string]string{
	"id":                "id",
	"course_id":         "id",
	"lesson_title":      "lesson_title",
	"lessontitle":       "lesson_title",
	"title":             "lesson_title",
	"description":       "description",
	"short_description": "description",
	"shortdescription":  "description",
	"link":              "link",
	"course_url":        "link",
	"url":               "link",
	"tags":              "tags",
	"pattern_type":      "tags",
	"pattern_types":     "tags",
	"category":          "tags",
	"metadata":          "metadata",
}

// canonicalField maps a header or key to its canonical name, or "" when it
// is not a known course field.
func canonicalField(name string) string {
	return fieldAliases[strings.ToLower(strings.TrimSpace(name))]
}

// courseRecord is the validated intermediate form of one catalog row.
type courseRecord struct {
	ID          string         `json:"id" validate:"notblank,max=256"`
	LessonTitle string         `json:"lesson_title" validate:"max=1024"`
	Description string         `json:"description"`
	Link        string         `json:"link" validate:"omitempty,max=2048"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

// catalogDocument wraps records so validation errors read "courses[3].id".
type catalogDocument struct {
	Courses []courseRecord `json:"courses" validate:"dive"`
}

func (r courseRecord) course() recommend.Course {
	return recommend.Course{
		ID:          strings.TrimSpace(r.ID),
		LessonTitle: strings.TrimSpace(r.LessonTitle),
		Description: strings.TrimSpace(r.Description),
		Link:        strings.TrimSpace(r.Link),
		Tags:        r.Tags,
		Metadata:    r.Metadata,
	}
}

// recordFromMap converts one decoded JSON or YAML object.
func recordFromMap(m map[string]any) (courseRecord, error) {
	var rec courseRecord
	for _, key := range orderedKeys(m) {
		raw := m[key]
		switch canonicalField(key) {
		case "id":
			if rec.ID != "" {
				continue
			}
			s, err := scalarString(raw)
			if err != nil {
				return rec, fmt.Errorf("%s: %w", key, err)
			}
			rec.ID = s
		case "lesson_title":
			rec.LessonTitle = firstNonEmpty(rec.LessonTitle, stringValue(raw))
		case "description":
			rec.Description = firstNonEmpty(rec.Description, stringValue(raw))
		case "link":
			rec.Link = firstNonEmpty(rec.Link, stringValue(raw))
		case "tags":
			rec.Tags = appendTags(rec.Tags, raw)
		case "metadata":
			if meta := metadataValue(raw); meta != nil {
				rec.Metadata = mergeMetadata(rec.Metadata, meta)
			}
		default:
			rec.Metadata = mergeMetadata(rec.Metadata, map[string]any{key: raw})
		}
	}
	return rec, nil
}

// orderedKeys puts canonical names ahead of aliases, then sorts by name,
// so the same object always resolves to the same values.
func orderedKeys(m map[string]any) []string {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, func(a, b string) int {
		ca, cb := isCanonical(a), isCanonical(b)
		if ca != cb {
			if ca {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

func isCanonical(key string) bool {
	lower := strings.ToLower(strings.TrimSpace(key))
	return fieldAliases[lower] == lower
}

// scalarString renders an identifier that may arrive as a number.
func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(x), nil
	case json.Number:
		if _, err := x.Int64(); err != nil {
			return "", fmt.Errorf("non-integer id %s", x)
		}
		return x.String(), nil
	case float64:
		if x != float64(int64(x)) {
			return "", fmt.Errorf("non-integer id %v", x)
		}
		return strconv.FormatInt(int64(x), 10), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	default:
		return "", fmt.Errorf("unsupported id type %T", v)
	}
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstNonEmpty(current, next string) string {
	if current != "" {
		return current
	}
	return next
}

// appendTags accepts a delimited string or a list of strings.
func appendTags(tags []string, raw any) []string {
	switch x := raw.(type) {
	case string:
		return append(tags, splitTags(x)...)
	case []any:
		for _, item := range x {
			if s, ok := item.(string); ok {
				tags = append(tags, splitTags(s)...)
			}
		}
	case []string:
		for _, s := range x {
			tags = append(tags, splitTags(s)...)
		}
	}
	return tags
}

// splitTags splits a cell on ';', '|' or ',' and drops empty parts.
func splitTags(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toStringMap normalizes the map types produced by JSON and YAML decoders.
func toStringMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

// metadataValue accepts an object, or a JSON object encoded in a string as
// found in CSV cells.
func metadataValue(v any) map[string]any {
	if s, ok := v.(string); ok {
		var m map[string]any
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			return nil
		}
		return m
	}
	return toStringMap(v)
}

func mergeMetadata(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
	return dst
}
