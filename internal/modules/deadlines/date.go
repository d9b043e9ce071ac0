package deadlines

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	isoDateRE = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	brDateRE  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	clockRE   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// CalendarDate is a timezone-free year/month/day. The zero value is invalid.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts exactly "YYYY-MM-DD" or "DD/MM/YYYY" and builds the date
// from the matched components. Impossible dates such as 31/02/2025 are rejected.
func ParseDate(s string) (CalendarDate, bool) {
	var y, m, d string
	if g := isoDateRE.FindStringSubmatch(s); g != nil {
		y, m, d = g[1], g[2], g[3]
	} else if g := brDateRE.FindStringSubmatch(s); g != nil {
		d, m, y = g[1], g[2], g[3]
	} else {
		return CalendarDate{}, false
	}
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if month < 1 || month > 12 || day < 1 {
		return CalendarDate{}, false
	}
	cd := CalendarDate{Year: year, Month: time.Month(month), Day: day}
	if day > daysIn(cd.Year, cd.Month) {
		return CalendarDate{}, false
	}
	return cd, true
}

// Today is the calendar date of now as observed in loc.
func Today(now time.Time, loc *time.Location) CalendarDate {
	if loc != nil {
		now = now.In(loc)
	}
	y, m, d := now.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

func (d CalendarDate) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

// Compare returns -1, 0 or +1.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }

// At is the instant hour:minute:59 of d in loc.
func (d CalendarDate) At(hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 59, 0, loc)
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// ParseClock reads "HH:MM", falling back to 23:59 when empty or malformed.
func ParseClock(s string) (hour, minute int) {
	g := clockRE.FindStringSubmatch(s)
	if g == nil {
		return 23, 59
	}
	hour, _ = strconv.Atoi(g[1])
	minute, _ = strconv.Atoi(g[2])
	if hour > 23 || minute > 59 {
		return 23, 59
	}
	return hour, minute
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
