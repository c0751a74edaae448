package rules

// Direction tokens accepted from input sources.
const (
	MoveUp    = "up"
	MoveDown  = "down"
	MoveLeft  = "left"
	MoveRight = "right"
)

var (
	// DirectionNone is the direction of a snake that has not started moving.
	DirectionNone = Point{}
	// DirectionUp moves one row towards the top of the board.
	DirectionUp = Point{X: 0, Y: -1}
	// DirectionDown moves one row towards the bottom of the board.
	DirectionDown = Point{X: 0, Y: 1}
	// DirectionLeft moves one column left.
	DirectionLeft = Point{X: -1, Y: 0}
	// DirectionRight moves one column right.
	DirectionRight = Point{X: 1, Y: 0}
)

// ParseMove maps an input token to its direction vector. Unknown tokens return
// false.
func ParseMove(token string) (Point, bool) {
	switch token {
	case MoveUp:
		return DirectionUp, true
	case MoveDown:
		return DirectionDown, true
	case MoveLeft:
		return DirectionLeft, true
	case MoveRight:
		return DirectionRight, true
	}
	return DirectionNone, false
}

// sameAxis reports whether the requested direction travels on an axis the
// current direction already uses.
func sameAxis(current, requested Point) bool {
	return (current.X != 0 && requested.X != 0) || (current.Y != 0 && requested.Y != 0)
}
