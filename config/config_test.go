package config

import (
	"errors"
	"testing"

	"github.com/dasgmd/learn-gita/streak"
)

func TestParseLevels(t *testing.T) {
	raw := []any{
		map[string]any{"id": float64(1), "title": "Seeker", "min_streak": float64(7), "reward": "Tulsi Mala"},
		map[string]any{"id": float64(2), "title": "Sadhak", "min_streak": float64(15)},
	}
	ladder, err := parseLevels(raw)
	if err != nil {
		t.Fatalf("parseLevels: %v", err)
	}
	if len(ladder) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(ladder))
	}
	if ladder[0].ID != 1 || ladder[0].Title != "Seeker" || ladder[0].MinStreak != 7 || ladder[0].Reward != "Tulsi Mala" {
		t.Fatalf("first level parsed wrong: %+v", ladder[0])
	}
	if ladder[1].Reward != "" {
		t.Fatalf("reward should default empty, got %q", ladder[1].Reward)
	}
	if err := ladder.Validate(); err != nil {
		t.Fatalf("parsed ladder should validate: %v", err)
	}
}

func TestParseLevelsNumbersMissingIDs(t *testing.T) {
	raw := []any{
		map[string]any{"title": "Seeker", "min_streak": float64(7)},
		map[string]any{"title": "Sadhak", "min_streak": float64(15)},
	}
	ladder, err := parseLevels(raw)
	if err != nil {
		t.Fatalf("parseLevels: %v", err)
	}
	if ladder[0].ID != 1 || ladder[1].ID != 2 {
		t.Fatalf("entries without ids should be numbered from 1, got %d and %d", ladder[0].ID, ladder[1].ID)
	}
	if err := ladder.Validate(); err != nil {
		t.Fatalf("numbered ladder should validate: %v", err)
	}
}

func TestParseLevelsRejectsBadShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  any
	}{
		{"not an array", map[string]any{"id": float64(1)}},
		{"entry not object", []any{"Seeker"}},
		{"missing title", []any{map[string]any{"id": float64(1), "min_streak": float64(7)}}},
	}
	for _, tc := range cases {
		_, err := parseLevels(tc.raw)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var le *streak.LadderError
		if !errors.As(err, &le) {
			t.Fatalf("%s: expected LadderError, got %T", tc.name, err)
		}
	}
}
