package components

import "github.com/yohamta/donburi"

// GameOverData stores what the result screen shows.
type GameOverData struct {
	Title  string
	Detail string
	Won    bool
	Scores string // Empty for battle royale

	CanRestart bool // Offline matches can be replayed from here
}

// GameOver is the component type for game over screen state
var GameOver = donburi.NewComponentType[GameOverData]()
