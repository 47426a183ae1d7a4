package coordination

// Action is the choice made by one player in the coordination game.
type Action uint8

const (
	Stay Action = iota
	Move
)

var actionStr = [...]string{
	"Stay",
	"Move",
}

// String implements Stringer.
func (a Action) String() string {
	return actionStr[a]
}
