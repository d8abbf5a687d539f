package analytics

import (
	"sort"
	"strings"

	"daytrack/internal/calendar"
)

// Mood is the closed set of moods a journal entry can carry.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodTired   Mood = "tired"
	MoodAnxious Mood = "anxious"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
)

// Moods lists every valid mood.
var Moods = []Mood{MoodHappy, MoodExcited, MoodCalm, MoodNeutral, MoodTired, MoodAnxious, MoodSad, MoodAngry}

// ParseMood matches s case-insensitively against the known moods.
func ParseMood(s string) (Mood, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range Moods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// MoodOf maps a stored value to a Mood. Absent and unrecognised values are neutral.
func MoodOf(raw string) Mood {
	if m, ok := ParseMood(raw); ok {
		return m
	}
	return MoodNeutral
}

// MoodEntry is the slice of a journal entry the aggregator needs.
type MoodEntry struct {
	Date calendar.Date
	Mood Mood
}

// MoodDistribution maps each observed mood to its integer share of entries.
// Shares are rounded independently, so they may sum to 99 or 101.
type MoodDistribution map[Mood]int

// Distribution computes the share of each observed mood across entries.
func Distribution(entries []MoodEntry) MoodDistribution {
	out := MoodDistribution{}
	if len(entries) == 0 {
		return out
	}
	counts := make(map[Mood]int)
	for _, e := range entries {
		counts[normalizeMood(e.Mood)]++
	}
	for m, c := range counts {
		out[m] = Percent(c, len(entries))
	}
	return out
}

// RecentMoods returns the moods of the n most recent entries, newest first,
// duplicates included.
func RecentMoods(entries []MoodEntry, n int) []Mood {
	if n <= 0 || len(entries) == 0 {
		return []Mood{}
	}
	sorted := make([]MoodEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]Mood, len(sorted))
	for i, e := range sorted {
		out[i] = normalizeMood(e.Mood)
	}
	return out
}

func normalizeMood(m Mood) Mood {
	return MoodOf(string(m))
}
