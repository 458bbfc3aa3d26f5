// Package layout places documents on the diagram. X follows the issuance date
// along a year axis whose column widths grow with the number of documents
// issued in each year; Y follows the scale of the document.
//
// Every function is pure. Positions depend on the whole document set, so
// callers compute a fresh Layout for every snapshot instead of caching
// positions per document.
package layout

import (
	"github.com/kiruna-explorer/backend/pkg/common"
)

// Params configures the year axis.
type Params struct {
	// OriginX is where the first supported year starts.
	OriginX float64
	// UndatedX is the x of documents without an issuance date.
	UndatedX float64
	// FirstYear and LastYear bound the supported years, both inclusive.
	FirstYear int
	LastYear  int
	// BaseYearWidth is the width of a year column without documents.
	BaseYearWidth float64
	// PerDocumentWidth is added to a year column for every document in it.
	PerDocumentWidth float64
}

func DefaultParams() Params {
	return Params{
		OriginX:          200,
		UndatedX:         200,
		FirstYear:        2004,
		LastYear:         2024,
		BaseYearWidth:    75,
		PerDocumentWidth: 50,
	}
}

func (p Params) supports(year int) bool {
	return year >= p.FirstYear && year <= p.LastYear
}

// Y bands. Categories sit above the numeric tiers, everything else below them.
const (
	YText    = 100
	YConcept = 150
	YTierA   = 250
	YTierB   = 300
	YTierC   = 400
	YTierD   = 500
	YTierE   = 600
	// YFloor is the bottom edge of the numeric tiers.
	YFloor = 650
	YOther = 700
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// YearColumn is one header cell of the year axis.
type YearColumn struct {
	Year      int     `json:"year"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	Documents int     `json:"documents"`
}

type Layout struct {
	Positions map[int64]Position `json:"positions"`
	Axis      []YearColumn       `json:"axis"`
}

// YearWidths counts the dated documents per supported year and turns the
// counts into column widths. Years without documents keep the base width.
func YearWidths(docs []common.Document, p Params) map[int]float64 {
	counts := yearCounts(docs, p)
	widths := make(map[int]float64, p.LastYear-p.FirstYear+1)
	for y := p.FirstYear; y <= p.LastYear; y++ {
		widths[y] = p.BaseYearWidth + p.PerDocumentWidth*float64(counts[y])
	}
	return widths
}

func yearCounts(docs []common.Document, p Params) map[int]int {
	counts := make(map[int]int)
	for _, d := range docs {
		if d.IssuanceDate.IsZero() {
			continue
		}
		if y := d.IssuanceDate.Year(); p.supports(y) {
			counts[y]++
		}
	}
	return counts
}

// XPosition maps an issuance date onto the year axis described by widths.
//
// The day offset divides the year width by 12*30 regardless of the real
// length of the month. Dates outside [FirstYear, LastYear] get no width, so
// all years before the range share one x and all years after it share
// another.
func XPosition(date common.PartialDate, widths map[int]float64, p Params) float64 {
	if date.IsZero() {
		return p.UndatedX
	}

	year := date.Year()
	x := p.OriginX
	for y := p.FirstYear; y < year && y <= p.LastYear; y++ {
		x += widths[y]
	}

	w := widths[year]
	if !p.supports(year) {
		w = 0
	}
	if month, ok := date.Month(); ok {
		x += float64(month-1) * w / 12
	}
	if day, ok := date.Day(); ok {
		x += float64(day-1) * w / 12 / 30
	}
	return x
}

// YPosition maps a scale onto its band.
func YPosition(scale common.Scale) float64 {
	if ratio, ok := scale.Ratio(); ok {
		switch {
		case ratio > 100000:
			return YTierA
		case ratio > 10000:
			return YTierB
		case ratio > 5000:
			return YTierC
		case ratio > 1000:
			return YTierD
		default:
			return YTierE
		}
	}
	if category, ok := scale.Category(); ok {
		switch category {
		case common.ScaleText:
			return YText
		case common.ScaleConcept:
			return YConcept
		}
	}
	return YOther
}

// Compute lays out a snapshot of documents.
func Compute(docs []common.Document, p Params) Layout {
	counts := yearCounts(docs, p)
	widths := YearWidths(docs, p)

	out := Layout{
		Positions: make(map[int64]Position, len(docs)),
		Axis:      make([]YearColumn, 0, p.LastYear-p.FirstYear+1),
	}

	x := p.OriginX
	for y := p.FirstYear; y <= p.LastYear; y++ {
		out.Axis = append(out.Axis, YearColumn{
			Year:      y,
			X:         x,
			Width:     widths[y],
			Documents: counts[y],
		})
		x += widths[y]
	}

	for _, d := range docs {
		out.Positions[d.ID] = Position{
			X: XPosition(d.IssuanceDate, widths, p),
			Y: YPosition(d.LayoutScale()),
		}
	}
	return out
}
