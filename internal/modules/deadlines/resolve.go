package deadlines

import (
	"fmt"
	"strings"
	"time"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
)

type Policy string

const (
	PolicyNearest Policy = "nearest"
	PolicyPaired  Policy = "paired"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyNearest:
		return PolicyNearest, nil
	case PolicyPaired:
		return PolicyPaired, nil
	default:
		return "", fmt.Errorf("unknown deadline policy %q (want nearest or paired)", s)
	}
}

// ResolvedDates holds the literal date strings the assistant should treat as
// current, one per category. Closed flags report whether that date already passed.
type ResolvedDates struct {
	Opening      string
	Submission   string
	Presentation string
	Results      string
	Publication  string

	SubmissionClosed   bool
	PresentationClosed bool
	ResultsClosed      bool
}

// Resolve applies policy to every category of dates. A nil dates yields the
// zero value and ok=false.
func Resolve(dates *types.EditalDates, policy Policy, now time.Time, loc *time.Location) (ResolvedDates, bool) {
	if dates == nil {
		return ResolvedDates{}, false
	}
	today := Today(now, loc)
	out := ResolvedDates{
		Opening:     orNotInformed(dates.OpeningDate),
		Publication: orNotInformed(dates.PublicationDate),
	}

	var (
		sub, pres, res       types.Deadline
		subOK, presOK, resOK bool
	)
	closed := closedOn(today)
	switch policy {
	case PolicyPaired:
		sub, subOK, res, resOK = ResolvePaired(dates.SubmissionDeadlines, dates.ResultsDeadlines, now, loc)
		pres, presOK = SelectUpcoming(dates.PresentationDeadlines, now, loc)
		closed = closedAt(now, loc)
	default:
		sub, subOK = SelectActive(dates.SubmissionDeadlines, today)
		res, resOK = SelectActive(dates.ResultsDeadlines, today)
		pres, presOK = SelectActive(dates.PresentationDeadlines, today)
	}

	out.Submission, out.SubmissionClosed = literal(sub, subOK, closed)
	out.Presentation, out.PresentationClosed = literal(pres, presOK, closed)
	out.Results, out.ResultsClosed = literal(res, resOK, closed)
	return out, true
}

// closedOn matches SelectActive: a deadline dated today is still open.
func closedOn(today CalendarDate) func(types.Deadline) bool {
	return func(d types.Deadline) bool {
		cd, ok := ParseDate(d.Date)
		return ok && cd.Before(today)
	}
}

// closedAt matches the instant comparison of the paired policy.
func closedAt(now time.Time, loc *time.Location) func(types.Deadline) bool {
	return func(d types.Deadline) bool {
		instant, ok := Instant(d, loc)
		return ok && !instant.After(now)
	}
}

func literal(d types.Deadline, ok bool, closed func(types.Deadline) bool) (string, bool) {
	if !ok {
		return NotInformed, false
	}
	return d.Date, closed(d)
}

func orNotInformed(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	return s
}
