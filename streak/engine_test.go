package streak

import (
	"errors"
	"os"
	"testing"
	"time"
)

// fixed reference clock, set in TestMain once the zone is pinned
var testNow time.Time

// The whole suite runs in a fixed non-UTC zone so that local-date verdicts
// are deterministic and the UTC/local distinction is actually exercised.
func TestMain(m *testing.M) {
	time.Local = time.FixedZone("UTC-07:00", -7*3600)
	testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)
	os.Exit(m.Run())
}

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format("2006-01-02")
}

// stamp builds a naive timestamp (parsed as local wall time) on the given day.
func stamp(offset int) string {
	return day(offset) + " 10:00:00"
}

func TestIsPunctual_MissingTimestamp(t *testing.T) {
	ok, err := IsPunctual("2026-03-10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("record without submitted_at must be punctual")
	}
}

func TestIsPunctual_Boundaries(t *testing.T) {
	cases := []struct {
		name        string
		entryDate   string
		submittedAt string
		want        bool
	}{
		{"same day", "2026-03-10", "2026-03-10 22:00:00", true},
		{"next day", "2026-03-10", "2026-03-11 01:00:00", true},
		{"two days after", "2026-03-10", "2026-03-12 00:30:00", false},
		{"week late", "2026-03-10", "2026-03-17 09:00:00", false},
		{"submitted before entry date", "2026-03-10", "2026-03-09 23:59:59", false},
		{"date-only timestamp", "2026-03-10", "2026-03-11", true},
		{"entry date with time portion", "2026-03-10T00:00:00Z", "2026-03-10 08:00:00", true},
	}
	for _, tc := range cases {
		ok, err := IsPunctual(tc.entryDate, tc.submittedAt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if ok != tc.want {
			t.Fatalf("%s: got punctual=%v want %v", tc.name, ok, tc.want)
		}
	}
}

func TestIsPunctual_NaiveStampIsLocalWallTime(t *testing.T) {
	restore := time.Local
	time.Local = time.FixedZone("UTC-01:00", -3600)
	defer func() { time.Local = restore }()

	// 00:30 local on the 12th is two calendar days after the 10th, even
	// though the same instant is still the 11th in UTC.
	ok, err := IsPunctual("2026-03-10", "2026-03-12 00:30:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("naive stamp must be read as local wall time, not UTC")
	}

	ok, err = IsPunctual("2026-03-10", "2026-03-11 00:30:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("next local day just after midnight must be punctual")
	}
}

func TestIsPunctual_UsesLocalDateOfInstant(t *testing.T) {
	// Pin the local zone so the UTC-to-local conversion is deterministic.
	restore := time.Local
	time.Local = time.FixedZone("UTC+5:30", 5*3600+1800)
	defer func() { time.Local = restore }()

	// 23:30Z on the 11th is already 05:00 on the 12th locally, which is two
	// calendar days past the entry date: late.
	ok, err := IsPunctual("2026-02-10", "2026-02-11T23:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("submission two local days after entry date must be late")
	}

	// 20:00Z on the 11th is still the 11th locally: punctual.
	ok, err = IsPunctual("2026-02-10", "2026-02-11T20:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("submission one local day after entry date must be punctual")
	}
}

func TestIsPunctual_MalformedDates(t *testing.T) {
	var mde *MalformedDateError

	if _, err := IsPunctual("not-a-date", ""); !errors.As(err, &mde) {
		t.Fatalf("expected MalformedDateError for entry date, got %v", err)
	}
	if mde.Field != "entry_date" {
		t.Fatalf("expected entry_date field, got %q", mde.Field)
	}

	if _, err := IsPunctual("2026-03-10", "garbage"); !errors.As(err, &mde) {
		t.Fatalf("expected MalformedDateError for submitted_at, got %v", err)
	}
	if mde.Field != "submitted_at" {
		t.Fatalf("expected submitted_at field, got %q", mde.Field)
	}
}

func TestCalculateStreak_EmptyHistory(t *testing.T) {
	n, err := CalculateStreakAt(nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("empty history: got %d want 0", n)
	}
}

func TestCalculateStreak_SingleRecordToday(t *testing.T) {
	records := []Record{{EntryDate: day(0)}}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d want 1", n)
	}
}

func TestCalculateStreak_AnchoredAtYesterday(t *testing.T) {
	// No record for today yet: the chain survives, anchored at yesterday.
	records := []Record{
		{EntryDate: day(-1), SubmittedAt: stamp(-1)},
		{EntryDate: day(-2), SubmittedAt: stamp(-2)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d want 2", n)
	}
}

func TestCalculateStreak_NoAnchor(t *testing.T) {
	// A long unbroken chain that ends three days ago counts for nothing.
	records := []Record{
		{EntryDate: day(-3), SubmittedAt: stamp(-3)},
		{EntryDate: day(-4), SubmittedAt: stamp(-4)},
		{EntryDate: day(-5), SubmittedAt: stamp(-5)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d want 0", n)
	}
}

func TestCalculateStreak_GapTerminatesWalk(t *testing.T) {
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(0)},
		{EntryDate: day(-1), SubmittedAt: stamp(-1)},
		// day(-2) missing
		{EntryDate: day(-3), SubmittedAt: stamp(-3)},
		{EntryDate: day(-4), SubmittedAt: stamp(-4)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("got %d want 2", n)
	}
}

func TestCalculateStreak_LateDayBreaksChain(t *testing.T) {
	// day(-1) was filed four days late: a report exists but the day is not
	// punctual, so it must break the chain exactly like a missing day.
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(0)},
		{EntryDate: day(-1), SubmittedAt: stamp(3)},
		{EntryDate: day(-2), SubmittedAt: stamp(-2)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d want 1", n)
	}
}

func TestCalculateStreak_PrefersTodayAnchor(t *testing.T) {
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(0)},
		{EntryDate: day(-1), SubmittedAt: stamp(-1)},
		{EntryDate: day(-2), SubmittedAt: stamp(-2)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("got %d want 3", n)
	}
}

func TestCalculateStreak_DuplicateDateAnyPunctualCounts(t *testing.T) {
	// Should not happen under the storage upsert, but if two records share a
	// date, one punctual instance is enough.
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(5)}, // late duplicate
		{EntryDate: day(0), SubmittedAt: stamp(0)},
	}
	n, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d want 1", n)
	}
}

func TestCalculateStreak_MalformedRecordFailsLoudly(t *testing.T) {
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(0)},
		{EntryDate: "03/14/2026", SubmittedAt: stamp(-1)},
	}
	var mde *MalformedDateError
	if _, err := CalculateStreakAt(records, testNow); !errors.As(err, &mde) {
		t.Fatalf("expected MalformedDateError, got %v", err)
	}
}

func TestCalculateStreak_Idempotent(t *testing.T) {
	records := []Record{
		{EntryDate: day(0), SubmittedAt: stamp(0)},
		{EntryDate: day(-1), SubmittedAt: stamp(-1)},
	}
	a, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := CalculateStreakAt(records, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b || a < 0 {
		t.Fatalf("expected stable non-negative result, got %d then %d", a, b)
	}
}
