// Package streak implements the punctual-streak and level-progression engine.
// Both halves are pure functions over in-memory data: the streak is always
// recomputed from the full submission history rather than incremented, so a
// lost update at the storage layer can never cause counter drift.
package streak

import (
	"strings"
	"time"
)

// Record is a single daily submission as returned by the datastore.
// EntryDate is the calendar day the record is about (YYYY-MM-DD, possibly
// carrying a trailing time portion from the DB driver). SubmittedAt is the
// timestamp of the actual save; empty means the record predates stamping.
type Record struct {
	EntryDate   string `json:"entry_date"`
	SubmittedAt string `json:"submitted_at"`
}

const dateLayout = "2006-01-02"

// submittedAtLayouts covers ISO-8601 and SQL timestamp shapes seen in the wild.
var submittedAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02 15:04:05",
	dateLayout,
}

// datePart strips any time portion, keeping the leading YYYY-MM-DD.
func datePart(value string) string {
	if i := strings.IndexAny(value, "T "); i >= 0 {
		return value[:i]
	}
	return value
}

// parseEntryDate parses a naive calendar date at UTC midnight.
func parseEntryDate(value string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, datePart(value), time.UTC)
	if err != nil {
		return time.Time{}, &MalformedDateError{Field: "entry_date", Value: value, Err: err}
	}
	return d, nil
}

// parseSubmittedAt parses a submission timestamp. Zone-qualified values keep
// their instant; naive values are taken as already-local wall time, so every
// layout goes through ParseInLocation (plain Parse reads naive values as UTC).
func parseSubmittedAt(value string) (time.Time, error) {
	for _, layout := range submittedAtLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &MalformedDateError{Field: "submitted_at", Value: value}
}

// localDate collapses an instant to its local calendar date at UTC midnight,
// suitable for whole-day arithmetic.
func localDate(t time.Time) time.Time {
	lt := t.In(time.Local)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns b - a in whole calendar days. Both arguments must be
// UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// IsPunctual reports whether a submission counts as on time: saved on the
// entry date itself or the following calendar day. The comparison uses the
// LOCAL calendar date of the submission instant, not the UTC date; a UTC
// timestamp of 23:30 may already be the next day for the user, and deciding
// on the UTC date penalizes evening submissions unfairly.
//
// A missing SubmittedAt is punctual: records created through paths that never
// stamped a save time get the benefit of the doubt, not a penalty.
func IsPunctual(entryDate, submittedAt string) (bool, error) {
	entry, err := parseEntryDate(entryDate)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(submittedAt) == "" {
		return true, nil
	}
	submitted, err := parseSubmittedAt(submittedAt)
	if err != nil {
		return false, err
	}
	diff := daysBetween(entry, localDate(submitted))
	return diff >= 0 && diff <= 1, nil
}

// CalculateStreak computes the current consecutive-day punctual streak from
// the full submission history, anchored at the caller's current local date.
func CalculateStreak(records []Record) (int, error) {
	return CalculateStreakAt(records, time.Now())
}

// CalculateStreakAt is CalculateStreak with an injected clock.
//
// The walk is over a set of punctual entry dates rather than a sorted
// gap-scan: late records never enter the set, so a day covered only by a late
// submission terminates the chain exactly like a day with no record at all.
// If duplicate records exist for one date (the storage layer upserts, so this
// should not happen), any punctual instance marks the date punctual.
func CalculateStreakAt(records []Record, now time.Time) (int, error) {
	punctual := make(map[time.Time]bool, len(records))
	for _, r := range records {
		ok, err := IsPunctual(r.EntryDate, r.SubmittedAt)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		d, err := parseEntryDate(r.EntryDate)
		if err != nil {
			return 0, err
		}
		punctual[d] = true
	}

	today := localDate(now)
	yesterday := today.AddDate(0, 0, -1)

	// The chain must be anchored at today or yesterday; a user who has not
	// submitted today has not broken the streak yet, anything older has.
	var cursor time.Time
	switch {
	case punctual[today]:
		cursor = today
	case punctual[yesterday]:
		cursor = yesterday
	default:
		return 0, nil
	}

	count := 1
	for {
		cursor = cursor.AddDate(0, 0, -1)
		if !punctual[cursor] {
			break
		}
		count++
	}
	return count, nil
}
