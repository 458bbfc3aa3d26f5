package common

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ScaleKind distinguishes a numeric map scale from a categorical one.
type ScaleKind int

const (
	ScaleNone ScaleKind = iota
	ScaleRatio
	ScaleCategory
)

// Well-known scale categories that have their own lane on the diagram.
const (
	ScaleText    = "Text"
	ScaleConcept = "Concept"
)

// Scale is either the denominator of a map scale (1:Ratio) or a category label
// such as "Text" or "Concept". The zero value means no scale.
type Scale struct {
	kind     ScaleKind
	ratio    int64
	category string
}

func RatioScale(denominator int64) Scale {
	return Scale{kind: ScaleRatio, ratio: denominator}
}

func CategoryScale(label string) Scale {
	label = strings.TrimSpace(label)
	if label == "" {
		return Scale{}
	}
	return Scale{kind: ScaleCategory, category: label}
}

// ParseScale classifies free text. Plain digits, digits with thousands
// separators and the "1:N" ratio form are numeric; anything else is a category.
func ParseScale(s string) Scale {
	s = strings.TrimSpace(s)
	if s == "" {
		return Scale{}
	}
	if n, ok := parseRatio(s); ok {
		return RatioScale(n)
	}
	return CategoryScale(s)
}

func parseRatio(s string) (int64, bool) {
	if num, den, found := strings.Cut(s, ":"); found {
		if strings.TrimSpace(num) != "1" {
			return 0, false
		}
		s = strings.TrimSpace(den)
	}
	digits := strings.NewReplacer(",", "", " ", "", "'", "", "\u00a0", "").Replace(s)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s Scale) Kind() ScaleKind {
	return s.kind
}

func (s Scale) IsZero() bool {
	return s.kind == ScaleNone
}

// Ratio returns the scale denominator when the scale is numeric.
func (s Scale) Ratio() (int64, bool) {
	return s.ratio, s.kind == ScaleRatio
}

// Category returns the label when the scale is categorical.
func (s Scale) Category() (string, bool) {
	return s.category, s.kind == ScaleCategory
}

func (s Scale) String() string {
	switch s.kind {
	case ScaleRatio:
		return strconv.FormatInt(s.ratio, 10)
	case ScaleCategory:
		return s.category
	default:
		return ""
	}
}

func (s Scale) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Scale) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Scale{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var n int64
		if numErr := json.Unmarshal(data, &n); numErr != nil {
			return ValidationError{Field: "scale", Message: "must be a string or an integer"}
		}
		*s = RatioScale(n)
		return nil
	}
	*s = ParseScale(raw)
	return nil
}
