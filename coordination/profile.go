package coordination

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxPlayers is the largest number of players whose profiles we will enumerate.
// The search examines 2^N profiles.
const MaxPlayers = 20

// Profile is a bit-packed pure-strategy profile: one Action per player.
//
// Player 0 occupies the most significant of the n used bits, so that
// counting the packed value from 0 to 2^n-1 visits profiles in
// lexicographic order (all-Stay first, all-Move last).
type Profile struct {
	packed uint32
	n      uint8
}

// NewProfile creates a Profile from the given per-player Actions.
func NewProfile(actions ...Action) Profile {
	if len(actions) > MaxPlayers {
		panic("too many players in profile")
	}

	p := Profile{n: uint8(len(actions))}
	for i, a := range actions {
		p.Set(i, a)
	}

	return p
}

func profileFromIndex(idx uint32, n int) Profile {
	return Profile{packed: idx, n: uint8(n)}
}

// Len returns the number of players in the Profile.
func (p Profile) Len() int {
	return int(p.n)
}

func (p Profile) shift(i int) uint {
	if i < 0 || i >= int(p.n) {
		panic("player index out of range")
	}

	return uint(int(p.n) - 1 - i)
}

// Action returns the Action chosen by player i.
func (p Profile) Action(i int) Action {
	return Action((p.packed >> p.shift(i)) & 1)
}

// Set changes the Action chosen by player i.
func (p *Profile) Set(i int, a Action) {
	bit := uint32(1) << p.shift(i)
	if a == Move {
		p.packed |= bit
	} else {
		p.packed &^= bit
	}
}

// NumMoving returns the number of players choosing Move.
func (p Profile) NumMoving() int {
	return bits.OnesCount32(p.packed)
}

// AsSlice returns the Actions of all players in order.
func (p Profile) AsSlice() []Action {
	result := make([]Action, p.n)
	for i := range result {
		result[i] = p.Action(i)
	}

	return result
}

// String formats the Profile as a tuple of 0 (Stay) and 1 (Move).
func (p Profile) String() string {
	parts := make([]string, p.n)
	for i := range parts {
		parts[i] = strconv.Itoa(int(p.Action(i)))
	}

	return "(" + strings.Join(parts, ",") + ")"
}

// EnumerateProfiles calls cb with each of the 2^n profiles of n players,
// in lexicographic order.
func EnumerateProfiles(n int, cb func(p Profile)) {
	if n < 0 || n > MaxPlayers {
		panic("number of players out of range")
	}

	total := uint32(1) << uint(n)
	for idx := uint32(0); idx < total; idx++ {
		cb(profileFromIndex(idx, n))
	}
}
