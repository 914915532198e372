package patch

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/danielokim/quotekit/internal/domain"
)

// Patch values arrive from JSON decoding of untrusted input (user edits or
// language-model output), so numbers may be float64, json.Number, or quoted
// strings. Coercion is strict about meaning: integer targets reject
// fractional values instead of silently truncating.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v any) (int64, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func asLineItem(v any) (domain.LineItem, bool) {
	var item domain.LineItem
	if !decodeInto(v, &item) {
		return item, false
	}
	return item, item.Label != ""
}

func asOptionLine(v any) (domain.OptionLine, bool) {
	var opt domain.OptionLine
	if !decodeInto(v, &opt) {
		return opt, false
	}
	return opt, opt.Description != ""
}

// decodeInto round-trips an untyped value through JSON into a typed struct,
// rejecting unknown fields.
func decodeInto(v any, out any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	data, err := json.Marshal(m)
	if err != nil {
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(out) == nil
}
