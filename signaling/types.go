package signaling

import "fmt"

// FirmType is the private type of a relocating firm, drawn by nature.
type FirmType uint8

const (
	LowCost FirmType = iota
	HighCost
)

// The number of distinct FirmTypes.
const NumFirmTypes = 2

var firmTypeStr = [...]string{
	"LowCost",
	"HighCost",
}

func (t FirmType) String() string {
	return firmTypeStr[t]
}

// Signal is the observable action a firm type commits to.
type Signal uint8

const (
	Send Signal = iota
	Withhold
)

// The number of distinct Signals.
const NumSignals = 2

var signalStr = [...]string{
	"Send",
	"Withhold",
}

func (s Signal) String() string {
	return signalStr[s]
}

// Other returns the alternative Signal.
func (s Signal) Other() Signal {
	if s == Send {
		return Withhold
	}

	return Send
}

// Response is the state's action after observing a Signal.
type Response uint8

const (
	Subsidize Response = iota
	WithholdSubsidy
)

// The number of distinct Responses.
const NumResponses = 2

var responseStr = [...]string{
	"Subsidize",
	"Withhold",
}

func (r Response) String() string {
	return responseStr[r]
}

// Other returns the alternative Response.
func (r Response) Other() Response {
	if r == Subsidize {
		return WithholdSubsidy
	}

	return Subsidize
}

// FirmStrategy assigns a Signal to each FirmType.
type FirmStrategy [NumFirmTypes]Signal

// Of returns the Signal sent by the given FirmType.
func (fs FirmStrategy) Of(t FirmType) Signal {
	return fs[t]
}

// Sends returns whether the given FirmType sends.
func (fs FirmStrategy) Sends(t FirmType) bool {
	return fs[t] == Send
}

// IsPooling returns whether both types send the same Signal.
func (fs FirmStrategy) IsPooling() bool {
	return fs[LowCost] == fs[HighCost]
}

func (fs FirmStrategy) String() string {
	return fmt.Sprintf("(%v, %v)", fs[LowCost], fs[HighCost])
}

// StateStrategy assigns a Response to each observed Signal.
type StateStrategy [NumSignals]Response

// After returns the state's Response to the observed Signal.
func (ss StateStrategy) After(s Signal) Response {
	return ss[s]
}

func (ss StateStrategy) String() string {
	return fmt.Sprintf("(%v, %v)", ss[Send], ss[Withhold])
}

// The number of pure strategies of the firm (a Signal per FirmType) and of
// the state (a Response per Signal).
const (
	NumFirmStrategies  = NumSignals * NumSignals
	NumStateStrategies = NumResponses * NumResponses
)

// FirmStrategies returns the 4 firm strategy profiles, LowCost's choice
// varying slowest.
func FirmStrategies() []FirmStrategy {
	result := make([]FirmStrategy, 0, NumFirmStrategies)
	for lc := Send; lc <= Withhold; lc++ {
		for hc := Send; hc <= Withhold; hc++ {
			result = append(result, FirmStrategy{lc, hc})
		}
	}

	return result
}

// StateStrategies returns the 4 state strategy profiles, the response
// after Send varying slowest.
func StateStrategies() []StateStrategy {
	result := make([]StateStrategy, 0, NumStateStrategies)
	for afterSend := Subsidize; afterSend <= WithholdSubsidy; afterSend++ {
		for afterWithhold := Subsidize; afterWithhold <= WithholdSubsidy; afterWithhold++ {
			result = append(result, StateStrategy{afterSend, afterWithhold})
		}
	}

	return result
}
