package config

// BotDifficulty affects how closely the AI paddle tracks the ball
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for the AI paddle at a specific difficulty
type BotDifficultyConfig struct {
	SpeedFactor     float64 // Fraction of the human paddle speed
	Deadband        float64 // Tracking tolerance around the ball while it approaches
	ReturnFactor    float64 // Fraction of AI speed while drifting back to centre
	ReturnTolerance float64
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Default      BotDifficulty
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Default: BotDifficultyNormal,
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				SpeedFactor:     0.5,
				Deadband:        45,
				ReturnFactor:    0.5,
				ReturnTolerance: 10,
			},
			BotDifficultyNormal: {
				SpeedFactor:     0.7,
				Deadband:        30,
				ReturnFactor:    0.5,
				ReturnTolerance: 10,
			},
			BotDifficultyHard: {
				SpeedFactor:     0.9,
				Deadband:        15,
				ReturnFactor:    0.5,
				ReturnTolerance: 10,
			},
		},
	}
}

// BotSettings returns the tuning for d, falling back to the default difficulty.
func BotSettings(d BotDifficulty) BotDifficultyConfig {
	if c, ok := Bot.Difficulties[d]; ok {
		return c
	}
	return Bot.Difficulties[Bot.Default]
}
