package streak

import "fmt"

// Level is one rung of the progression ladder.
type Level struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	MinStreak int    `json:"min_streak"`
	Reward    string `json:"reward,omitempty"`
}

// Ladder is the ordered level table, ascending by MinStreak. It is static
// configuration: loaded once at startup, validated, and passed into the pure
// functions below rather than held as package state.
type Ladder []Level

// Novice is the implied baseline below the first configured rung.
var Novice = Level{ID: 0, Title: "Novice", MinStreak: 0}

// DefaultLadder is the built-in progression used when configuration does not
// override it.
var DefaultLadder = Ladder{
	{ID: 1, Title: "Seeker", MinStreak: 7, Reward: "Tulsi Mala"},
	{ID: 2, Title: "Sadhak", MinStreak: 15, Reward: "Gita Bookmark"},
	{ID: 3, Title: "Devotee", MinStreak: 30, Reward: "Japa Bag"},
	{ID: 4, Title: "Bhakta", MinStreak: 45, Reward: "Deity Postcard"},
	{ID: 5, Title: "Sage", MinStreak: 60, Reward: "Certificate of Dedication"},
}

// Validate rejects ladders that would make current/next lookups ambiguous:
// empty tables, thresholds out of order or duplicated, non-increasing IDs,
// and IDs below 1 (0 belongs to the implied Novice baseline).
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return &LadderError{Reason: "no levels configured"}
	}
	for i, lvl := range l {
		if lvl.ID < 1 {
			return &LadderError{Reason: fmt.Sprintf("level %q must have id >= 1", lvl.Title)}
		}
		if lvl.MinStreak < 0 {
			return &LadderError{Reason: fmt.Sprintf("level %q has negative min_streak", lvl.Title)}
		}
		if i == 0 {
			continue
		}
		prev := l[i-1]
		if lvl.MinStreak <= prev.MinStreak {
			return &LadderError{Reason: fmt.Sprintf("min_streak not strictly ascending at %q", lvl.Title)}
		}
		if lvl.ID <= prev.ID {
			return &LadderError{Reason: fmt.Sprintf("level id not strictly ascending at %q", lvl.Title)}
		}
	}
	return nil
}

// LevelInfo describes a streak's position within the ladder.
type LevelInfo struct {
	CurrentLevel  Level   `json:"current_level"`
	NextLevel     *Level  `json:"next_level"`
	Progress      float64 `json:"progress"`
	DaysRemaining int     `json:"days_remaining"`
}

// CurrentLevelInfo maps a streak onto the ladder: the highest rung whose
// MinStreak the streak meets, the next rung (nil at the top), progress toward
// it clamped to [0,100], and whole days remaining. Below the first rung the
// current level is the synthetic Novice baseline.
func CurrentLevelInfo(streakDays int, levels Ladder) LevelInfo {
	current := Novice
	var next *Level

	for i := range levels {
		if streakDays >= levels[i].MinStreak {
			current = levels[i]
			if i+1 < len(levels) {
				next = &levels[i+1]
			} else {
				next = nil
			}
		} else {
			next = &levels[i]
			break
		}
	}

	info := LevelInfo{CurrentLevel: current, NextLevel: next}
	if next == nil {
		info.Progress = 100
		return info
	}

	span := next.MinStreak - current.MinStreak
	progress := float64(streakDays-current.MinStreak) / float64(span) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	info.Progress = progress
	if remaining := next.MinStreak - streakDays; remaining > 0 {
		info.DaysRemaining = remaining
	}
	return info
}

// CheckLevelUp returns the level newly reached when the streak grew across a
// rung boundary, or nil. A decreased or unchanged streak never triggers a
// level-up, even if the user still sits above some earlier threshold. When a
// streak jumps several rungs at once, only the rung actually reached is
// reported.
func CheckLevelUp(oldStreak, newStreak int, levels Ladder) *Level {
	if newStreak <= oldStreak {
		return nil
	}
	newLevel := CurrentLevelInfo(newStreak, levels).CurrentLevel
	oldLevel := CurrentLevelInfo(oldStreak, levels).CurrentLevel
	if newLevel.ID > oldLevel.ID {
		return &newLevel
	}
	return nil
}
