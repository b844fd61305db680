// Package level parses the level JSON format and advances the
// monotonic enemy-spawn cursor (see DESIGN.md for the encoding/json
// choice).
package level

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// TextureRect is the sprite-sheet rectangle an entity definition draws
// from, defaulting to [0,0,32,32] when omitted.
type TextureRect struct {
	X, Y, W, H float64
}

var defaultTextureRect = TextureRect{X: 0, Y: 0, W: 32, H: 32}

// rawEntity is the on-wire JSON shape; every field is optional.
type rawEntity struct {
	Type        int        `json:"type"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	SpawnTime   float64    `json:"spawnTime"`
	SpritePath  string     `json:"spritePath"`
	TextureRect *[4]float64 `json:"textureRect"`
}

type rawLevel struct {
	Entities []rawEntity `json:"entities"`
}

// EnemySpawnData is one parsed, defaulted spawn entry.
type EnemySpawnData struct {
	Type        int
	X, Y        float64
	SpawnTime   float64
	SpritePath  string
	TextureRect TextureRect
}

// ErrNoEntities is returned when the JSON has no "entities" key at all.
// Callers should log it and continue with an empty spawn list rather
// than refuse to start.
var ErrNoEntities = errors.New("level: no entities array")

// Parse reads a level JSON document and returns its spawn list sorted by
// SpawnTime ascending. Malformed JSON or a missing entities array
// surfaces as an error; the caller decides whether to continue with an
// empty list.
func Parse(data []byte) ([]EnemySpawnData, error) {
	var raw rawLevel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "level: parse JSON")
	}
	if raw.Entities == nil {
		return nil, ErrNoEntities
	}

	out := make([]EnemySpawnData, len(raw.Entities))
	for i, e := range raw.Entities {
		rect := defaultTextureRect
		if e.TextureRect != nil {
			rect = TextureRect{X: e.TextureRect[0], Y: e.TextureRect[1], W: e.TextureRect[2], H: e.TextureRect[3]}
		}
		out[i] = EnemySpawnData{
			Type:        e.Type,
			X:           e.X,
			Y:           e.Y,
			SpawnTime:   e.SpawnTime,
			SpritePath:  e.SpritePath,
			TextureRect: rect,
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SpawnTime < out[j].SpawnTime })
	return out, nil
}
