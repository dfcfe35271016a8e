// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// weaknessNamespace seeds UUIDv5 identifiers for weaknesses submitted
// without an id.
var weaknessNamespace = uuid.MustParse("6f1c2a0e-4b7d-5e8a-9c3f-2d1b0a9e8f7c")

// Keys recognized in a weakness mapping, in lookup order.
var (
	textKeys        = []string{"weakness", "text"}
	patternTypeKeys = []string{"pattern_type", "patternType", "category"}
)

// DefaultImportance is assigned when a weakness does not carry one. Zero
// counts as not set, for maps and structs alike.
const DefaultImportance = 1.0

// NormalizeWeaknesses converts every raw weakness into a Weakness.
// It fails on the first invalid element; no partial result is returned.
//
// Derived IDs are unique within the call: a weakness whose content repeats
// an earlier one gets an ID salted with its position.
func NormalizeWeaknesses(raws []any) ([]Weakness, error) {
	out := make([]Weakness, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		w, derived, err := normalizeWeakness(raw)
		if err != nil {
			if ve, ok := AsValidation(err); ok {
				ve.Index = i
				ve.Field = indexedField(i, ve.Field)
				return nil, ve
			}
			return nil, err
		}
		if _, dup := seen[w.ID]; dup && derived {
			w.ID = deriveWeaknessID(w, strconv.Itoa(i))
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}
	return out, nil
}

// NormalizeWeakness resolves one raw weakness into the canonical Weakness.
//
// Accepted shapes are Weakness, *Weakness, map[string]any and
// map[string]string. Anything else fails with a *ValidationError.
func NormalizeWeakness(raw any) (Weakness, error) {
	w, _, err := normalizeWeakness(raw)
	return w, err
}

// normalizeWeakness also reports whether the ID was derived rather than
// supplied by the caller.
func normalizeWeakness(raw any) (Weakness, bool, error) {
	w, err := normalizeShape(raw)
	if err != nil {
		return Weakness{}, false, err
	}
	if w.ID != "" {
		return w, false, nil
	}
	w.ID = deriveWeaknessID(w, "")
	return w, true, nil
}

func normalizeShape(raw any) (Weakness, error) {
	switch v := raw.(type) {
	case Weakness:
		return normalizeStruct(v)
	case *Weakness:
		if v == nil {
			return Weakness{}, newValidationError("", "weakness must not be null")
		}
		return normalizeStruct(*v)
	case map[string]any:
		return normalizeMap(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return normalizeMap(m)
	case nil:
		return Weakness{}, newValidationError("", "weakness must not be null")
	default:
		return Weakness{}, newValidationError("", "unsupported weakness shape %T; expected an object with a 'weakness' or 'text' field", raw)
	}
}

func normalizeStruct(w Weakness) (Weakness, error) {
	w.Text = strings.TrimSpace(w.Text)
	if w.Text == "" {
		return Weakness{}, newValidationError("text", "weakness text is required")
	}
	w.Description = strings.TrimSpace(w.Description)
	w.PatternType = strings.TrimSpace(w.PatternType)
	if w.Importance == 0 {
		w.Importance = DefaultImportance
	}
	if math.IsNaN(w.Importance) || math.IsInf(w.Importance, 0) {
		return Weakness{}, newValidationError("importance", "importance must be a finite number")
	}
	w.ID = strings.TrimSpace(w.ID)
	return w, nil
}

func normalizeMap(m map[string]any) (Weakness, error) {
	var w Weakness

	text, err := firstString(m, textKeys)
	if err != nil {
		return Weakness{}, err
	}
	if text == "" {
		return Weakness{}, newValidationError("weakness", "each weakness must include a 'weakness' or 'text' field")
	}
	w.Text = text

	if w.Description, err = optionalString(m, "description"); err != nil {
		return Weakness{}, err
	}
	if w.PatternType, err = firstString(m, patternTypeKeys); err != nil {
		return Weakness{}, err
	}
	if w.ID, err = optionalID(m, "id"); err != nil {
		return Weakness{}, err
	}
	if w.Importance, err = optionalNumber(m, "importance", DefaultImportance); err != nil {
		return Weakness{}, err
	}
	if w.Importance == 0 {
		w.Importance = DefaultImportance
	}
	if w.Metadata, err = optionalObject(m, "metadata"); err != nil {
		return Weakness{}, err
	}
	return w, nil
}

// firstString returns the first non-empty string among keys.
// A present key holding a non-string value is a validation error.
func firstString(m map[string]any, keys []string) (string, error) {
	for _, key := range keys {
		s, err := optionalString(m, key)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
	}
	return "", nil
}

func optionalString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", newValidationError(key, "must be a string, got %s", typeName(raw))
	}
	return strings.TrimSpace(s), nil
}

func optionalID(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', 0, 64), nil
		}
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", newValidationError(key, "must be a string or integer, got %s", typeName(raw))
}

// numberLike is satisfied by json.Number from both encoding/json and
// goccy/go-json when decoders are configured with UseNumber.
type numberLike interface {
	Float64() (float64, error)
}

func optionalNumber(m map[string]any, key string, def float64) (float64, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return def, nil
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case numberLike:
		parsed, err := v.Float64()
		if err != nil {
			return 0, newValidationError(key, "must be a number")
		}
		f = parsed
	default:
		return 0, newValidationError(key, "must be a number, got %s", typeName(raw))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newValidationError(key, "must be a finite number")
	}
	return f, nil
}

func optionalObject(m map[string]any, key string) (map[string]any, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, newValidationError(key, "must be an object, got %s", typeName(raw))
	}
	return obj, nil
}

// deriveWeaknessID returns a stable UUIDv5 over the weakness content and an
// optional salt.
func deriveWeaknessID(w Weakness, salt string) string {
	key := w.Text + "\x00" + w.Description + "\x00" + w.PatternType
	if salt != "" {
		key += "\x00" + salt
	}
	return uuid.NewSHA1(weaknessNamespace, []byte(key)).String()
}

func indexedField(i int, field string) string {
	if field == "" {
		return fmt.Sprintf("weaknesses[%d]", i)
	}
	return fmt.Sprintf("weaknesses[%d].%s", i, field)
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, numberLike:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
