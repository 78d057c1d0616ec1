package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a document fails validation.
var ErrInvalidConfig = errors.New("config: invalid document")

// Source describes where a loaded document came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

const configFile = "starsurge.yaml"

// Load loads the configuration document.
// Search order: customPath -> ~/.starsurge/configs/starsurge.yaml ->
// ./configs/starsurge.yaml -> embedded default -> DefaultDocument().
// Only a failing customPath is reported as an error; every other failure
// falls through to the next candidate.
func Load(customPath string, logger *log.Logger) (Document, Source, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Try custom path first
	if customPath != "" {
		doc, err := loadFile(customPath)
		if err != nil {
			return Document{}, SourceCustom, err
		}
		if err := doc.Validate(); err != nil {
			return Document{}, SourceCustom, fmt.Errorf("config %s: %w", customPath, err)
		}
		return doc, SourceCustom, nil
	}

	// Try user config directory, then local configs directory
	candidates := []struct {
		path   string
		source Source
	}{
		{userConfigPath(configFile), SourceUser},
		{filepath.Join("configs", configFile), SourceLocal},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if _, statErr := os.Stat(c.path); statErr != nil {
			continue
		}
		doc, err := loadFile(c.path)
		if err == nil {
			err = doc.Validate()
		}
		if err != nil {
			logger.Warn("ignoring config file", "path", c.path, "error", err)
			continue
		}
		return doc, c.source, nil
	}

	// Use embedded default YAML
	doc, err := Parse(defaultYAML)
	if err == nil {
		err = doc.Validate()
	}
	if err != nil {
		logger.Warn("embedded config unusable, using builtin defaults", "error", err)
		doc = DefaultDocument()
		if err := doc.Validate(); err != nil {
			return Document{}, SourceBuiltin, err
		}
		return doc, SourceBuiltin, nil
	}
	return doc, SourceEmbedded, nil
}

// Parse decodes a YAML document on top of DefaultDocument, so sections
// missing from data keep their default values. A collectable, power-up or
// boss entry that is present replaces the default entry as a whole.
func Parse(data []byte) (Document, error) {
	doc := DefaultDocument()
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	return doc, nil
}

// Marshal encodes a document as YAML.
func Marshal(doc Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return out, nil
}

func loadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return doc, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starsurge", "configs", filename)
}

// Validate checks the invariants the simulation relies on.
func (d *Document) Validate() error {
	switch {
	case d.Canvas.Width <= 0 || d.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size must be positive", ErrInvalidConfig)
	case d.Player.StartingLives <= 0:
		return fmt.Errorf("%w: player.startingLives must be positive", ErrInvalidConfig)
	case d.Player.StartingLevel <= 0:
		return fmt.Errorf("%w: player.startingLevel must be positive", ErrInvalidConfig)
	case d.GameProgression.StarsPerLevel <= 0:
		return fmt.Errorf("%w: gameProgression.starsPerLevel must be positive", ErrInvalidConfig)
	case d.GameProgression.MaxLevel <= 0:
		return fmt.Errorf("%w: gameProgression.maxLevel must be positive", ErrInvalidConfig)
	case len(d.Enemies.LevelPattern) == 0:
		return fmt.Errorf("%w: enemies.levelPattern must not be empty", ErrInvalidConfig)
	case d.BossFight.BombInterval <= 0:
		return fmt.Errorf("%w: bossFight.bombInterval must be positive", ErrInvalidConfig)
	}
	if _, ok := d.Collectables[GoldStar]; !ok {
		return fmt.Errorf("%w: collectables.%s is required", ErrInvalidConfig, GoldStar)
	}
	for _, level := range d.Enemies.BossLevels {
		if _, _, ok := d.BossForLevel(level); !ok {
			return fmt.Errorf("%w: no boss configured for boss level %d", ErrInvalidConfig, level)
		}
	}
	return nil
}
