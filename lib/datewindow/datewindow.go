// Package datewindow walks an overall date range in bounded sub-windows,
// one window per request page. The vendor caps a single request's period at
// three months, so larger ranges have to be split and fetched in order.
package datewindow

import (
	"fmt"
	"time"

	"aktiva-backend/lib/meritdate"
)

// MaxIntervalDays is the longest period the vendor accepts per request.
const MaxIntervalDays = 90

// Params carries one window's request parameters. They get merged into the
// page's request body before signing.
type Params struct {
	PeriodStart string `json:"PeriodStart"`
	PeriodEnd   string `json:"PeriodEnd"`
	DateType    int    `json:"DateType"`
}

// Paginator is a sequential state machine over a date range. Window n+1
// starts on window n's end date, so consecutive windows share their boundary
// date: a record whose change date falls exactly on the boundary is returned
// by both windows instead of being skipped by both.
//
// A Paginator must only be advanced after its current page has been
// accepted. It is not safe for concurrent use; distinct resources get
// distinct paginators.
type Paginator struct {
	overallEnd   time.Time
	intervalDays int
	dateType     int

	start time.Time
	end   time.Time
	done  bool
}

// New builds a paginator whose first window begins at start.
func New(start, end time.Time, intervalDays, dateType int) (*Paginator, error) {
	return Resume(start, end, intervalDays, dateType, start)
}

// Resume behaves like New but begins the first window at resumeFrom instead
// of start, typically a date recovered from a stored incremental cursor.
func Resume(start, end time.Time, intervalDays, dateType int, resumeFrom time.Time) (*Paginator, error) {
	if intervalDays < 1 || intervalDays > MaxIntervalDays {
		return nil, fmt.Errorf(
			"window interval must be between 1 and %d days, got %d",
			MaxIntervalDays, intervalDays,
		)
	}

	p := &Paginator{
		overallEnd:   meritdate.Midnight(end),
		intervalDays: intervalDays,
		dateType:     dateType,
		start:        meritdate.Midnight(resumeFrom),
	}
	if !p.start.Before(p.overallEnd) {
		p.done = true
		return p, nil
	}
	p.end = minDate(p.start.AddDate(0, 0, p.stride()), p.overallEnd)
	return p, nil
}

// stride is the day count between a window's start and end. Shared boundaries
// make it one less than the interval; a one-day interval still has to move
// forward a day per window or the walk would never terminate.
func (p *Paginator) stride() int {
	if p.intervalDays <= 1 {
		return 1
	}
	return p.intervalDays - 1
}

// HasNext reports whether a window is available to fetch.
func (p *Paginator) HasNext() bool {
	return !p.done
}

// Window reports the current window bounds.
func (p *Paginator) Window() (start, end time.Time) {
	return p.start, p.end
}

// Params renders the current window as request parameters.
func (p *Paginator) Params() Params {
	return Params{
		PeriodStart: meritdate.FormatCompact(p.start),
		PeriodEnd:   meritdate.FormatCompact(p.end),
		DateType:    p.dateType,
	}
}

// Advance moves to the next window. Call it only once the current page has
// been fetched and stored; a failed page must leave the paginator on the
// same window so a retry re-requests it.
func (p *Paginator) Advance() {
	if p.done {
		return
	}
	next := p.end
	if !next.Before(p.overallEnd) {
		p.done = true
		return
	}
	p.start = next
	p.end = minDate(next.AddDate(0, 0, p.stride()), p.overallEnd)
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
