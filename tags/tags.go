package tags

import "github.com/yohamta/donburi"

var (
	Party    = donburi.NewTag().SetName("Party")
	Finished = donburi.NewTag().SetName("Finished")
)

// Resolv tags for physics collision
const (
	ResolvPaddle = "paddle"
	ResolvBall   = "ball"
	ResolvLeft   = "left"
	ResolvRight  = "right"
)
