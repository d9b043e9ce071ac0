package deadlines

import (
	"sort"
	"time"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
)

// NotInformed is shown in place of a date when a category has no entries.
const NotInformed = "Não informada"

type parsedDeadline struct {
	d    types.Deadline
	date CalendarDate
	ok   bool
}

// sortedByDate orders ascending by parsed date; unparseable entries go last
// and ties keep their original position.
func sortedByDate(list []types.Deadline) []parsedDeadline {
	out := make([]parsedDeadline, 0, len(list))
	for _, d := range list {
		cd, ok := ParseDate(d.Date)
		out = append(out, parsedDeadline{d: d, date: cd, ok: ok})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return false
		}
		return a.date.Before(b.date)
	})
	return out
}

// SelectActive picks the deadline in force on today: the earliest entry dated
// today or later, else the latest entry overall. ok is false for an empty list.
func SelectActive(list []types.Deadline, today CalendarDate) (types.Deadline, bool) {
	if len(list) == 0 {
		return types.Deadline{}, false
	}
	sorted := sortedByDate(list)
	for _, p := range sorted {
		if p.ok && !p.date.Before(today) {
			return p.d, true
		}
	}
	return sorted[len(sorted)-1].d, true
}

// ActiveDate returns the stored literal of the active deadline, or NotInformed.
func ActiveDate(list []types.Deadline, today CalendarDate) string {
	d, ok := SelectActive(list, today)
	if !ok {
		return NotInformed
	}
	return d.Date
}

// SelectUpcoming is SelectActive measured against the closing instant of each
// deadline instead of its calendar date.
func SelectUpcoming(list []types.Deadline, now time.Time, loc *time.Location) (types.Deadline, bool) {
	if len(list) == 0 {
		return types.Deadline{}, false
	}
	sorted := sortedByDate(list)
	for _, p := range sorted {
		if !p.ok {
			continue
		}
		if instant, ok := Instant(p.d, loc); ok && instant.After(now) {
			return p.d, true
		}
	}
	return sorted[len(sorted)-1].d, true
}

// ResolvePaired implements the index-aligned policy: the first submission
// round (in stored order) whose deadline instant is still ahead of now, and the
// results entry at the same index. Either half falls back to SelectActive when
// there is no aligned entry.
func ResolvePaired(submission, results []types.Deadline, now time.Time, loc *time.Location) (sub types.Deadline, subOK bool, res types.Deadline, resOK bool) {
	today := Today(now, loc)
	idx := -1
	for i, d := range submission {
		if instant, ok := Instant(d, loc); ok && instant.After(now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		sub, subOK = SelectActive(submission, today)
		res, resOK = SelectActive(results, today)
		return
	}
	sub, subOK = submission[idx], true
	if idx < len(results) {
		return sub, subOK, results[idx], true
	}
	res, resOK = SelectActive(results, today)
	return
}

// Instant is the moment a deadline closes: its date at Time (default 23:59:59) in loc.
func Instant(d types.Deadline, loc *time.Location) (time.Time, bool) {
	cd, ok := ParseDate(d.Date)
	if !ok {
		return time.Time{}, false
	}
	h, m := ParseClock(d.Time)
	return cd.At(h, m, loc), true
}
