package resolve

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/c2nes/alfred-time/internal/log"
)

// Parts produced from tokens. Rules narrow bare numbers into years and days
// based on their neighbours.
type part any

type year int
type month time.Month
type day int
type number int64
type weekday time.Weekday
type ordinalSuffix struct{}

type clockTime struct {
	hour int
	min  int
	sec  int
	nsec int
}

type meridiem int

const (
	am meridiem = iota
	pm
)

func isYear(p part) bool        { _, ok := p.(year); return ok }
func isMonth(p part) bool       { _, ok := p.(month); return ok }
func isDay(p part) bool         { _, ok := p.(day); return ok }
func isDayOrMonth(p part) bool  { return isDay(p) || isMonth(p) }
func isNumber(p part) bool      { _, ok := p.(number); return ok }
func isClock(p part) bool       { _, ok := p.(clockTime); return ok }
func isMeridiem(p part) bool    { _, ok := p.(meridiem); return ok }
func isWeekday(p part) bool     { _, ok := p.(weekday); return ok }
func isOrdinal(p part) bool     { _, ok := p.(ordinalSuffix); return ok }
func isZone(p part) bool        { _, ok := p.(*time.Location); return ok }
func couldBeYear(p part) bool   { n, ok := p.(number); return ok && 1900 <= n && n < 3000 }
func isDateOrClock(p part) bool { return isYear(p) || isMonth(p) || isDay(p) || isClock(p) || isWeekday(p) }

var (
	reClock     = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?(?:([+-])(\d{2}):?(\d{2}))?$`)
	reOffset    = regexp.MustCompile(`^([+-])(\d{2})(?::?(\d{2}))?$`)
	reNumber    = regexp.MustCompile(`^\d{1,9}$`)
	reShortYear = regexp.MustCompile(`^'(\d{2})$`)
)

type dateOrder int

const (
	orderYMD dateOrder = iota
	orderDMY
	orderYM
	// Two leading fields that could be either month or day.
	orderAmbiguous
)

var dateForms = []struct {
	re    *regexp.Regexp
	order dateOrder
}{
	{regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})$`), orderYMD},
	{regexp.MustCompile(`^((?:19|20)\d{2})([01]\d)([0-3]\d)$`), orderYMD},
	{regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2})$`), orderDMY},
	{regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4}|\d{2})$`), orderAmbiguous},
	{regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`), orderAmbiguous},
	{regexp.MustCompile(`^(\d{4})-(\d{1,2})$`), orderYM},
}

var literals = map[string]part{
	"am":  am,
	"a.m": am,
	"pm":  pm,
	"p.m": pm,

	"jan": month(time.January), "january": month(time.January),
	"feb": month(time.February), "february": month(time.February),
	"mar": month(time.March), "march": month(time.March),
	"apr": month(time.April), "april": month(time.April),
	"may": month(time.May),
	"jun": month(time.June), "june": month(time.June),
	"jul": month(time.July), "july": month(time.July),
	"aug": month(time.August), "august": month(time.August),
	"sep": month(time.September), "sept": month(time.September), "september": month(time.September),
	"oct": month(time.October), "october": month(time.October),
	"nov": month(time.November), "november": month(time.November),
	"dec": month(time.December), "december": month(time.December),

	"sun": weekday(time.Sunday), "sunday": weekday(time.Sunday),
	"mon": weekday(time.Monday), "monday": weekday(time.Monday),
	"tue": weekday(time.Tuesday), "tues": weekday(time.Tuesday), "tuesday": weekday(time.Tuesday),
	"wed": weekday(time.Wednesday), "wednesday": weekday(time.Wednesday),
	"thu": weekday(time.Thursday), "thur": weekday(time.Thursday), "thurs": weekday(time.Thursday), "thursday": weekday(time.Thursday),
	"fri": weekday(time.Friday), "friday": weekday(time.Friday),
	"sat": weekday(time.Saturday), "saturday": weekday(time.Saturday),

	"st": ordinalSuffix{},
	"nd": ordinalSuffix{},
	"rd": ordinalSuffix{},
	"th": ordinalSuffix{},

	"noon":     clockTime{hour: 12},
	"midnight": clockTime{},
}

// Filler words that carry no date information ("t" is the ISO date/time
// separator once the tokenizer has split it off).
var skip = map[string]bool{
	"t":   true,
	"on":  true,
	"at":  true,
	"of":  true,
	"the": true,
	"and": true,
}

var parseRules = []*rule{
	// "3 pm"
	newRule(
		match(isNumber, isMeridiem),
		func(ps []part) ([]part, error) {
			return []part{clockTime{hour: int(ps[0].(number))}, ps[1]}, nil
		},
	),
	newRule(
		match(isClock, isMeridiem),
		func(ps []part) ([]part, error) {
			ct := ps[0].(clockTime)
			if ct.hour == 0 || ct.hour > 12 {
				return nil, fmt.Errorf("hour %d invalid with am/pm", ct.hour)
			}
			switch {
			case ps[1] == pm && ct.hour < 12:
				ct.hour += 12
			case ps[1] == am && ct.hour == 12:
				ct.hour = 0
			}
			return []part{ct}, nil
		},
	),
	// "19th"
	newRule(
		match(isNumber, isOrdinal),
		func(ps []part) ([]part, error) {
			return []part{day(ps[0].(number))}, nil
		},
	),
	// Numbers next to a month or day are a day when they fit, else a year.
	newRule(
		match(isDayOrMonth, isNumber),
		func(ps []part) ([]part, error) {
			return []part{ps[0], dayOrYear(ps[1].(number))}, nil
		},
	),
	newRule(
		match(isNumber, isDayOrMonth),
		func(ps []part) ([]part, error) {
			return []part{dayOrYear(ps[0].(number)), ps[1]}, nil
		},
	),
	// "19 May 02" and "May 19 02" end with a two-digit year.
	newRule(
		match(isDay, isMonth, isDay),
		func(ps []part) ([]part, error) {
			return []part{ps[0], ps[1], shortYear(int(ps[2].(day)))}, nil
		},
	),
	newRule(
		match(isMonth, isDay, isDay),
		func(ps []part) ([]part, error) {
			return []part{ps[0], ps[1], shortYear(int(ps[2].(day)))}, nil
		},
	),
	newRule(
		match(couldBeYear),
		func(ps []part) ([]part, error) {
			return []part{year(ps[0].(number))}, nil
		},
	),
}

func dayOrYear(n number) part {
	if n <= 31 {
		return day(n)
	}
	return year(n)
}

// shortYear expands a two-digit year using the same 1969 pivot as the time
// package.
func shortYear(yy int) year {
	if yy < 69 {
		return year(2000 + yy)
	}
	return year(1900 + yy)
}

func atoi(s string) int {
	// Callers only pass regexp-validated digit runs short enough for int.
	n, _ := strconv.Atoi(s)
	return n
}

// tokenParts converts a single token into zero or more parts.
func tokenParts(tok string, dayFirst bool) ([]part, error) {
	lower := strings.ToLower(tok)

	if m := reClock.FindStringSubmatch(lower); m != nil {
		ct := clockTime{hour: atoi(m[1]), min: atoi(m[2])}
		if m[3] != "" {
			ct.sec = atoi(m[3])
		}
		if m[4] != "" {
			frac := m[4] + strings.Repeat("0", 9-len(m[4]))
			ct.nsec = atoi(frac)
		}
		ps := []part{ct}
		if m[5] != "" {
			ps = append(ps, fixedOffset(m[5][0], atoi(m[6]), atoi(m[7])))
		}
		return ps, nil
	}

	for _, form := range dateForms {
		m := form.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		return dateParts(form.order, m[1:], dayFirst), nil
	}

	if m := reShortYear.FindStringSubmatch(lower); m != nil {
		return []part{shortYear(atoi(m[1]))}, nil
	}
	if m := reOffset.FindStringSubmatch(lower); m != nil {
		mm := 0
		if m[3] != "" {
			mm = atoi(m[3])
		}
		return []part{fixedOffset(m[1][0], atoi(m[2]), mm)}, nil
	}
	if p, ok := literals[lower]; ok {
		return []part{p}, nil
	}
	if loc, ok := lookupZone(tok); ok {
		return []part{loc}, nil
	}
	if reNumber.MatchString(lower) {
		return []part{number(atoi(lower))}, nil
	}
	if skip[lower] {
		return nil, nil
	}
	return nil, fmt.Errorf("can not parse %q", tok)
}

func dateParts(order dateOrder, fields []string, dayFirst bool) []part {
	yearOf := func(s string) year {
		if len(s) == 2 {
			return shortYear(atoi(s))
		}
		return year(atoi(s))
	}
	if order != orderYMD && order != orderYM && len(fields) > 2 && len(fields[2]) == 2 {
		return shortDateParts(atoi(fields[0]), atoi(fields[1]), atoi(fields[2]), dayFirst)
	}
	switch order {
	case orderYMD:
		return []part{yearOf(fields[0]), month(atoi(fields[1])), day(atoi(fields[2]))}
	case orderDMY:
		return []part{day(atoi(fields[0])), month(atoi(fields[1])), yearOf(fields[2])}
	case orderYM:
		return []part{yearOf(fields[0]), month(atoi(fields[1]))}
	}

	a, b := atoi(fields[0]), atoi(fields[1])
	var ps []part
	switch {
	case a > 12:
		ps = []part{day(a), month(b)}
	case b > 12:
		ps = []part{month(a), day(b)}
	case dayFirst:
		ps = []part{day(a), month(b)}
	default:
		ps = []part{month(a), day(b)}
	}
	if len(fields) > 2 && fields[2] != "" {
		ps = append(ps, yearOf(fields[2]))
	}
	return ps
}

// shortDateParts orders three numeric fields that end in a two-digit year.
// The leading field is taken as the year whenever the other two fit as month
// and day, so 05/06/02 is 2005-06-02.
func shortDateParts(a, b, c int, dayFirst bool) []part {
	switch {
	case a > 31 || (b <= 12 && c <= 31):
		if dayFirst && c <= 12 {
			return []part{shortYear(a), day(b), month(c)}
		}
		return []part{shortYear(a), month(b), day(c)}
	case a > 12 || (dayFirst && b <= 12):
		return []part{day(a), month(b), shortYear(c)}
	}
	return []part{month(a), day(b), shortYear(c)}
}

var errNoDate = errors.New("string does not contain a date")

// parseFreeform interprets s as a date and/or time. Fields missing from s are
// taken from now's calendar date, with the time of day defaulting to
// midnight. The wall clock is always read in now's location; an offset or
// zone in s is accepted but does not shift it.
func parseFreeform(now time.Time, s string, dayFirst bool) (time.Time, error) {
	tokens := tokenize(s)
	log.Debug("freeform tokens", "tokens", tokens)

	var ps []part
	for _, tok := range tokens {
		tps, err := tokenParts(tok, dayFirst)
		if err != nil {
			return time.Time{}, err
		}
		ps = append(ps, tps...)
	}

	ps, err := applyRules(ps, parseRules...)
	if err != nil {
		return time.Time{}, err
	}

	count := func(f func(p part) bool) int {
		n := 0
		for _, p := range ps {
			if f(p) {
				n++
			}
		}
		return n
	}
	switch {
	case count(isDateOrClock) == 0:
		return time.Time{}, errNoDate
	case count(isNumber) > 0:
		return time.Time{}, errors.New("unexpected number")
	case count(isMeridiem) > 0:
		return time.Time{}, errors.New("am/pm without a time")
	case count(isClock) > 1:
		return time.Time{}, errors.New("multiple times specified")
	case count(isDay) > 1:
		return time.Time{}, errors.New("multiple days specified")
	case count(isMonth) > 1:
		return time.Time{}, errors.New("multiple months specified")
	case count(isYear) > 1:
		return time.Time{}, errors.New("multiple years specified")
	case count(isWeekday) > 1:
		return time.Time{}, errors.New("multiple days of the week specified")
	case count(isZone) > 1:
		return time.Time{}, errors.New("multiple timezones specified")
	}

	y, mo, d := now.Date()
	var ct clockTime
	daySet := false
	var wd *time.Weekday
	for _, p := range ps {
		switch v := p.(type) {
		case year:
			y = int(v)
		case month:
			mo = time.Month(v)
		case day:
			d = int(v)
			daySet = true
		case clockTime:
			ct = v
		case weekday:
			w := time.Weekday(v)
			wd = &w
		case *time.Location:
			log.Debug("ignoring explicit zone", "zone", v)
		}
	}

	if y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range", y)
	}
	if mo < time.January || mo > time.December {
		return time.Time{}, fmt.Errorf("month %d out of range", mo)
	}
	last := daysIn(y, mo)
	if !daySet && d > last {
		d = last
	}
	if d < 1 || d > last {
		return time.Time{}, fmt.Errorf("day %d out of range for %s %d", d, mo, y)
	}
	if ct.hour > 23 || ct.min > 59 || ct.sec > 59 {
		return time.Time{}, fmt.Errorf("time %02d:%02d:%02d out of range", ct.hour, ct.min, ct.sec)
	}

	t := time.Date(y, mo, d, ct.hour, ct.min, ct.sec, ct.nsec, now.Location())

	// A weekday only moves the date when no day of month was given.
	if wd != nil && !daySet {
		t = t.AddDate(0, 0, (int(*wd)-int(t.Weekday())+7)%7)
	}
	return t, nil
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
