package scenario

import (
	"fleetops/internal/domain/fleet"

	"github.com/google/uuid"
)

// defaultPalette holds the color tokens cycled over unit columns when a user
// has no saved config. Tokens match the dashboard's color picker.
var defaultPalette = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-orange-400",
	"bg-red-500",
	"bg-purple-500",
	"bg-pink-500",
}

// assignColors maps each unit to palette[index mod len(palette)] by position.
// Assignment is deterministic and order dependent; it only runs on first-time
// generation and never retroactively recolors stored configs.
func assignColors(units []*fleet.Unit, palette []string) map[uuid.UUID]string {
	colors := make(map[uuid.UUID]string, len(units))
	for i, u := range units {
		colors[u.ID] = palette[i%len(palette)]
	}
	return colors
}
