package catalog

import (
	"slices"

	"github.com/MKhiriev/go-writeups/models"
)

// PlatformChoices lists the platform facet values in display order.
var PlatformChoices = []string{
	models.FilterAll,
	string(models.PlatformHTB),
	string(models.PlatformTHM),
	string(models.PlatformCustom),
}

// DifficultyChoices lists the difficulty facet values in display order.
var DifficultyChoices = []string{
	models.FilterAll,
	string(models.DifficultyEasy),
	string(models.DifficultyMedium),
	string(models.DifficultyHard),
	string(models.DifficultyInsane),
}

// NextChoice returns the choice following current, wrapping around. An
// unknown current value yields the first choice.
func NextChoice(choices []string, current string) string {
	if len(choices) == 0 {
		return current
	}

	i := slices.Index(choices, current)
	return choices[(i+1)%len(choices)]
}

// PrevChoice returns the choice preceding current, wrapping around. An
// unknown current value yields the last choice.
func PrevChoice(choices []string, current string) string {
	if len(choices) == 0 {
		return current
	}

	i := slices.Index(choices, current)
	if i <= 0 {
		return choices[len(choices)-1]
	}
	return choices[i-1]
}

// ValidChoice reports whether v is one of choices. The CLI uses it to reject
// facet values nothing could ever match.
func ValidChoice(choices []string, v string) bool {
	return slices.Contains(choices, v)
}
