package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DatePrecision tells which components of a PartialDate are known.
type DatePrecision int

const (
	PrecisionNone DatePrecision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

func (p DatePrecision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	default:
		return "none"
	}
}

// PartialDate is an issuance date known to year, year-month or full day precision.
// The zero value means "no date".
type PartialDate struct {
	year      int
	month     int
	day       int
	precision DatePrecision
}

const (
	minYear = 1000
	maxYear = 9999
)

// NewPartialDate builds a date from its components. A zero month means year
// precision, a zero day means month precision.
func NewPartialDate(year, month, day int) (PartialDate, error) {
	if year < minYear || year > maxYear {
		return PartialDate{}, fmt.Errorf("year %d out of range", year)
	}
	if month == 0 {
		if day != 0 {
			return PartialDate{}, fmt.Errorf("day given without month")
		}
		return PartialDate{year: year, precision: PrecisionYear}, nil
	}
	if month < 1 || month > 12 {
		return PartialDate{}, fmt.Errorf("month %d out of range", month)
	}
	if day == 0 {
		return PartialDate{year: year, month: month, precision: PrecisionMonth}, nil
	}
	if day < 1 || day > daysIn(year, month) {
		return PartialDate{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return PartialDate{year: year, month: month, day: day, precision: PrecisionDay}, nil
}

// ParsePartialDate parses "YYYY", "YYYY-MM" or "YYYY-MM-DD". Month and day may
// omit the leading zero.
func ParsePartialDate(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PartialDate{}, fmt.Errorf("empty date")
	}
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return PartialDate{}, fmt.Errorf("date %q must be yyyy, yyyy-mm or yyyy-mm-dd", s)
	}
	if len(parts[0]) != 4 {
		return PartialDate{}, fmt.Errorf("date %q must start with a four digit year", s)
	}

	comps := [3]int{}
	for i, p := range parts {
		if p == "" || (i > 0 && len(p) > 2) {
			return PartialDate{}, fmt.Errorf("date %q must be yyyy, yyyy-mm or yyyy-mm-dd", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return PartialDate{}, fmt.Errorf("date %q must be yyyy, yyyy-mm or yyyy-mm-dd", s)
		}
		if i > 0 && n == 0 {
			return PartialDate{}, fmt.Errorf("date %q has a zero month or day", s)
		}
		comps[i] = n
	}

	return NewPartialDate(comps[0], comps[1], comps[2])
}

// MustParsePartialDate is like ParsePartialDate but panics on malformed input.
func MustParsePartialDate(s string) PartialDate {
	d, err := ParsePartialDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (d PartialDate) IsZero() bool {
	return d.precision == PrecisionNone
}

func (d PartialDate) Precision() DatePrecision {
	return d.precision
}

func (d PartialDate) Year() int {
	return d.year
}

// Month returns the month and whether it is known.
func (d PartialDate) Month() (int, bool) {
	return d.month, d.precision >= PrecisionMonth
}

// Day returns the day of month and whether it is known.
func (d PartialDate) Day() (int, bool) {
	return d.day, d.precision == PrecisionDay
}

// Truncate drops every component finer than p.
func (d PartialDate) Truncate(p DatePrecision) PartialDate {
	switch {
	case p >= d.precision:
		return d
	case p == PrecisionNone:
		return PartialDate{}
	case p == PrecisionYear:
		return PartialDate{year: d.year, precision: p}
	default:
		return PartialDate{year: d.year, month: d.month, precision: p}
	}
}

// Compare orders two dates at the coarser of their precisions: 2022 and
// 2022-06 compare equal, 2022-05 sorts before 2022-06.
func (d PartialDate) Compare(o PartialDate) int {
	p := min(d.precision, o.precision)
	a, b := d.Truncate(p), o.Truncate(p)
	switch {
	case a.year != b.year:
		return cmpInt(a.year, b.year)
	case a.month != b.month:
		return cmpInt(a.month, b.month)
	default:
		return cmpInt(a.day, b.day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d PartialDate) String() string {
	switch d.precision {
	case PrecisionYear:
		return fmt.Sprintf("%04d", d.year)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.year, d.month)
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
	default:
		return ""
	}
}

func (d PartialDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *PartialDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = PartialDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ValidationError{Field: "issuanceDate", Message: "must be a string"}
	}
	if strings.TrimSpace(s) == "" {
		*d = PartialDate{}
		return nil
	}
	parsed, err := ParsePartialDate(s)
	if err != nil {
		return ValidationError{Field: "issuanceDate", Message: err.Error()}
	}
	*d = parsed
	return nil
}
