// Package resolve turns a raw query into a Moment.
//
// Queries are tried in a fixed order and the first interpretation that
// applies wins:
//
//	now          the current instant
//	y, yy, ...   local midnight minus one day per character
//	t, tt, ...   local midnight plus one day per character after the first
//	<number>     Unix seconds, or milliseconds when |n| >= 1e12
//	<anything>   a free-form date/time string, month before day
//
// The y/t markers count every character of the query, so "yesterday" is nine
// days back and "today" four days ahead. Anything that fails to parse is
// simply unresolved.
package resolve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/c2nes/alfred-time/internal/log"
	"github.com/c2nes/alfred-time/internal/zone"
)

// MillisThreshold is the magnitude at which a numeric query is read as
// milliseconds rather than seconds. Second timestamps stay below it until the
// year 33658, while millisecond timestamps pass it in September 2001.
const MillisThreshold = 1e12

// Epoch bounds of years 0001 through 9999.
const (
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

var errNotFinite = errors.New("timestamp is not finite")

type Options struct {
	// DayFirst reads ambiguous dates like 05/06/2002 as 5 June.
	DayFirst bool
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

type Resolver struct {
	zone zone.Zone
	opts Options
}

func New(z zone.Zone, opts Options) *Resolver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Resolver{zone: z, opts: opts}
}

// Zone returns the zone every resolved Moment is expressed in.
func (r *Resolver) Zone() zone.Zone {
	return r.zone
}

// Normalize strips surrounding whitespace and quote characters.
func Normalize(query string) string {
	return strings.TrimFunc(query, func(c rune) bool {
		return unicode.IsSpace(c) || c == '"' || c == '\''
	})
}

// Resolve interprets query. The second result is false when query is nil or
// cannot be interpreted; there is no partial result.
func (r *Resolver) Resolve(query *string) (Moment, bool) {
	if query == nil {
		log.Debug("no query")
		return Moment{}, false
	}
	q := Normalize(*query)
	t, err := r.resolve(q)
	if err != nil {
		log.Debug("query unresolved", "query", q, "err", err)
		return Moment{}, false
	}
	m := At(t, r.zone)
	log.Debug("query resolved", "query", q, "moment", m)
	return m, true
}

func (r *Resolver) resolve(q string) (time.Time, error) {
	now := r.opts.Now().In(r.zone.Location)

	switch {
	case q == "now":
		return now, nil
	case strings.HasPrefix(q, "y"):
		return midnight(now).AddDate(0, 0, -utf8.RuneCountInString(q)), nil
	case strings.HasPrefix(q, "t"):
		return midnight(now).AddDate(0, 0, utf8.RuneCountInString(q)-1), nil
	}

	// A query that reads as a number is a timestamp and never falls through
	// to free-form parsing, even when out of range.
	if ts, err := strconv.ParseFloat(q, 64); err == nil {
		return FromEpoch(ts)
	}
	return parseFreeform(now, q, r.opts.DayFirst)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FromEpoch converts a Unix timestamp in seconds, or in milliseconds when its
// magnitude reaches MillisThreshold, to a time. Sub-second precision is kept
// to the microsecond.
func FromEpoch(ts float64) (time.Time, error) {
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return time.Time{}, errNotFinite
	}
	if math.Abs(ts) >= MillisThreshold {
		ts /= 1000
	}
	if ts < minEpoch || ts >= maxEpoch+1 {
		return time.Time{}, fmt.Errorf("timestamp %v out of range", ts)
	}
	sec := math.Floor(ts)
	usec := math.Round((ts - sec) * 1e6)
	if usec >= 1e6 {
		sec++
		usec -= 1e6
	}
	return time.Unix(int64(sec), int64(usec)*int64(time.Microsecond)), nil
}
