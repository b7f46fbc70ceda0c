package bot

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const (
	easyDepth   = 2
	mediumDepth = 5
)

// ParseDifficulty validates and returns the difficulty.
// Defaults to Hard if invalid or empty
func ParseDifficulty(difficulty string) Difficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Depth maps the difficulty to a search horizon. Hard always uses the
// configured horizon; the other presets never exceed it.
func (d Difficulty) Depth(configured int) int {
	var depth int
	switch d {
	case DifficultyEasy:
		depth = easyDepth
	case DifficultyMedium:
		depth = mediumDepth
	default:
		return configured
	}
	return min(depth, configured)
}
