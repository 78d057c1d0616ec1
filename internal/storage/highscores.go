package storage

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// High score table limits.
const (
	MaxHighScores = 10
	MaxNameLength = 16
	DefaultName   = "Anonymous"
)

// HighScore is one named entry in a game's top-ten table.
type HighScore struct {
	Name  string
	Score int
	Date  time.Time
}

// rawHighScore is a row as read from disk, before validation.
type rawHighScore struct {
	name  any
	score any
	date  any
}

// coerceScore accepts integer, float and numeric string scores.
// Negative, non-finite and non-numeric values are rejected.
func coerceScore(v any) (int, bool) {
	var f float64
	switch s := v.(type) {
	case int64:
		f = float64(s)
	case int:
		f = float64(s)
	case float64:
		f = s
	case []byte:
		return coerceScore(string(s))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(math.Floor(f)), true
}

func coerceName(v any) string {
	var name string
	switch s := v.(type) {
	case string:
		name = s
	case []byte:
		name = string(s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if r := []rune(name); len(r) > MaxNameLength {
		name = string(r[:MaxNameLength])
	}
	return name
}

func coerceDate(v any, now time.Time) time.Time {
	switch d := v.(type) {
	case time.Time:
		if !d.IsZero() {
			return d
		}
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, d); err == nil {
				return parsed
			}
		}
	case int64:
		if d > 0 {
			return time.UnixMilli(d)
		}
	}
	return now
}

// normalizeRaw filters rows that cannot be coerced into a HighScore.
func normalizeRaw(rows []rawHighScore, now time.Time) []HighScore {
	out := make([]HighScore, 0, len(rows))
	for _, r := range rows {
		score, ok := coerceScore(r.score)
		if !ok {
			continue
		}
		out = append(out, HighScore{
			Name:  coerceName(r.name),
			Score: score,
			Date:  coerceDate(r.date, now),
		})
	}
	return Normalize(out, now)
}

// Normalize cleans a table: it drops negative scores, fills empty names and
// dates, sorts by score descending (earlier dates first on ties) and caps the
// result at MaxHighScores.
func Normalize(list []HighScore, now time.Time) []HighScore {
	out := make([]HighScore, 0, len(list))
	for _, h := range list {
		if h.Score < 0 {
			continue
		}
		h.Name = coerceName(h.Name)
		if h.Date.IsZero() {
			h.Date = now
		}
		out = append(out, h)
	}
	slices.SortStableFunc(out, func(a, b HighScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	return out
}

// Qualifies reports whether score would enter the table.
func Qualifies(list []HighScore, score int) bool {
	if score <= 0 {
		return false
	}
	if len(list) < MaxHighScores {
		return true
	}
	return score > list[len(list)-1].Score
}

// Insert adds entry to a normalized table. It returns the new table and the
// 1-based rank of the entry, or 0 if it did not make the cut.
func Insert(list []HighScore, entry HighScore, now time.Time) ([]HighScore, int) {
	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.Name = coerceName(entry.Name)
	if entry.Score < 0 {
		return Normalize(list, now), 0
	}

	// Ties rank below existing entries.
	pos := len(list)
	for i, h := range list {
		if entry.Score > h.Score {
			pos = i
			break
		}
	}
	out := slices.Insert(slices.Clone(list), pos, entry)
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	if pos >= MaxHighScores {
		return out, 0
	}
	return out, pos + 1
}
