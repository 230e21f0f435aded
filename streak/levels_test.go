package streak

import (
	"math"
	"testing"
)

var testLadder = Ladder{
	{ID: 1, Title: "Seeker", MinStreak: 0},
	{ID: 2, Title: "Devotee", MinStreak: 7},
	{ID: 3, Title: "Sage", MinStreak: 30},
}

func TestCurrentLevelInfo_MidLadder(t *testing.T) {
	info := CurrentLevelInfo(3, testLadder)
	if info.CurrentLevel.ID != 1 {
		t.Fatalf("current level: got id %d want 1", info.CurrentLevel.ID)
	}
	if info.NextLevel == nil || info.NextLevel.ID != 2 {
		t.Fatalf("next level: got %+v want id 2", info.NextLevel)
	}
	if math.Abs(info.Progress-3.0/7.0*100) > 0.01 {
		t.Fatalf("progress: got %.2f want ~42.86", info.Progress)
	}
	if info.DaysRemaining != 4 {
		t.Fatalf("days remaining: got %d want 4", info.DaysRemaining)
	}
}

func TestCurrentLevelInfo_ExactThreshold(t *testing.T) {
	info := CurrentLevelInfo(7, testLadder)
	if info.CurrentLevel.ID != 2 {
		t.Fatalf("current level: got id %d want 2", info.CurrentLevel.ID)
	}
	if info.NextLevel == nil || info.NextLevel.ID != 3 {
		t.Fatalf("next level: got %+v want id 3", info.NextLevel)
	}
	if info.Progress != 0 {
		t.Fatalf("progress at threshold: got %.2f want 0", info.Progress)
	}
	if info.DaysRemaining != 23 {
		t.Fatalf("days remaining: got %d want 23", info.DaysRemaining)
	}
}

func TestCurrentLevelInfo_MaxLevel(t *testing.T) {
	info := CurrentLevelInfo(65, testLadder)
	if info.CurrentLevel.ID != 3 {
		t.Fatalf("current level: got id %d want 3", info.CurrentLevel.ID)
	}
	if info.NextLevel != nil {
		t.Fatalf("next level at top rung: got %+v want nil", info.NextLevel)
	}
	if info.Progress != 100 || info.DaysRemaining != 0 {
		t.Fatalf("top rung: got progress %.2f remaining %d", info.Progress, info.DaysRemaining)
	}
}

func TestCurrentLevelInfo_NoviceBaseline(t *testing.T) {
	// DefaultLadder starts at min_streak 7; below it the synthetic Novice
	// baseline applies and the current level is never absent.
	info := CurrentLevelInfo(5, DefaultLadder)
	if info.CurrentLevel.ID != 0 || info.CurrentLevel.Title != "Novice" {
		t.Fatalf("expected Novice baseline, got %+v", info.CurrentLevel)
	}
	if info.NextLevel == nil || info.NextLevel.MinStreak != 7 {
		t.Fatalf("next level: got %+v want first configured rung", info.NextLevel)
	}
	if info.DaysRemaining != 2 {
		t.Fatalf("days remaining: got %d want 2", info.DaysRemaining)
	}
}

func TestCurrentLevelInfo_ProgressBounds(t *testing.T) {
	for s := 0; s <= 100; s++ {
		for _, ladder := range []Ladder{testLadder, DefaultLadder} {
			info := CurrentLevelInfo(s, ladder)
			if info.Progress < 0 || info.Progress > 100 {
				t.Fatalf("streak %d: progress %.2f out of bounds", s, info.Progress)
			}
			if info.DaysRemaining < 0 {
				t.Fatalf("streak %d: negative days remaining %d", s, info.DaysRemaining)
			}
		}
	}
}

func TestCurrentLevelInfo_MidDefaultLadder(t *testing.T) {
	// halfway between the 7 and 15 rungs
	info := CurrentLevelInfo(11, DefaultLadder)
	if info.Progress != 50 {
		t.Fatalf("progress: got %.2f want 50", info.Progress)
	}
}

func TestCheckLevelUp_CrossingReportsNewLevel(t *testing.T) {
	lvl := CheckLevelUp(6, 7, testLadder)
	if lvl == nil || lvl.ID != 2 || lvl.Title != "Devotee" {
		t.Fatalf("got %+v want Devotee (id 2)", lvl)
	}
}

func TestCheckLevelUp_NoCrossing(t *testing.T) {
	if lvl := CheckLevelUp(3, 5, testLadder); lvl != nil {
		t.Fatalf("no boundary crossed, got %+v", lvl)
	}
}

func TestCheckLevelUp_DecreaseNeverTriggers(t *testing.T) {
	if lvl := CheckLevelUp(10, 5, testLadder); lvl != nil {
		t.Fatalf("streak drop must not level up, got %+v", lvl)
	}
	if lvl := CheckLevelUp(7, 7, testLadder); lvl != nil {
		t.Fatalf("unchanged streak must not level up, got %+v", lvl)
	}
}

func TestCheckLevelUp_JumpReportsReachedRungOnly(t *testing.T) {
	// e.g. a manual backend correction jumping across two rungs at once
	lvl := CheckLevelUp(2, 31, testLadder)
	if lvl == nil || lvl.ID != 3 {
		t.Fatalf("got %+v want the rung actually reached (id 3)", lvl)
	}
}

func TestLadderValidate(t *testing.T) {
	cases := []struct {
		name   string
		ladder Ladder
		ok     bool
	}{
		{"default", DefaultLadder, true},
		{"empty", Ladder{}, false},
		{"duplicate min streak", Ladder{{ID: 1, MinStreak: 0}, {ID: 2, MinStreak: 0}}, false},
		{"descending min streak", Ladder{{ID: 1, MinStreak: 10}, {ID: 2, MinStreak: 5}}, false},
		{"non-increasing ids", Ladder{{ID: 2, MinStreak: 0}, {ID: 2, MinStreak: 7}}, false},
		{"negative min streak", Ladder{{ID: 1, MinStreak: -1}}, false},
		{"id zero collides with baseline", Ladder{{ID: 0, MinStreak: 3}}, false},
		{"negative id", Ladder{{ID: -1, MinStreak: 3}}, false},
	}
	for _, tc := range cases {
		err := tc.ladder.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
