package snake

// Fate is the outcome of the snake's proposed move on one tick.
type Fate uint8

const (
	FateMove Fate = iota // next cell is empty
	FateEat              // next cell holds food
	FateDie              // next cell is a wall or the snake itself
)

// String returns the name of the fate.
func (f Fate) String() string {
	switch f {
	case FateMove:
		return "move"
	case FateEat:
		return "eat"
	case FateDie:
		return "die"
	default:
		return "unknown"
	}
}

// State is the board's lifecycle state. GameOver is terminal.
type State uint8

const (
	StatePlaying State = iota
	StateGameOver
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
