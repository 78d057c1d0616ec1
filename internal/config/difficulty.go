package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset adjusts a document for a chosen difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyPreset returns a copy of doc with the preset applied.
// Normal leaves the document unchanged.
func ApplyPreset(doc Document, preset DifficultyPreset) Document {
	out := doc.Clone()
	switch preset {
	case DifficultyEasy:
		out.Player.StartingLives = 5
		out.Enemies.RespawnCooldown = 40
		out.BossFight.BombWarningDelay = doc.BossFight.BombWarningDelay * 1.5
	case DifficultyHard:
		out.Player.StartingLives = 2
		out.Enemies.RespawnCooldown = 20
		out.Player.DamageFlash = doc.Player.DamageFlash * 0.5
		for i, n := range out.Enemies.LevelPattern {
			out.Enemies.LevelPattern[i] = n + 1
		}
	}
	return out
}
