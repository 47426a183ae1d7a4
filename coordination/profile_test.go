package coordination

import (
	"reflect"
	"testing"
)

func TestNewProfile(t *testing.T) {
	actions := []Action{Move, Stay, Stay, Move, Move}
	p := NewProfile(actions...)
	if p.Len() != 5 {
		t.Errorf("profile has len %d, expected %d", p.Len(), 5)
	}
	if p.NumMoving() != 3 {
		t.Errorf("profile has %d movers, expected %d", p.NumMoving(), 3)
	}
	if !reflect.DeepEqual(p.AsSlice(), actions) {
		t.Errorf("got unexpected actions: %v", p.AsSlice())
	}
	if p.String() != "(1,0,0,1,1)" {
		t.Errorf("got unexpected string: %v", p)
	}
}

func TestProfileSet(t *testing.T) {
	p := NewProfile(Stay, Stay, Stay)
	p.Set(1, Move)
	if p.Action(1) != Move {
		t.Errorf("player 1 plays %v, expected Move", p.Action(1))
	}
	p.Set(1, Stay)
	if p != NewProfile(Stay, Stay, Stay) {
		t.Errorf("got unexpected profile: %v", p)
	}
}

func TestEnumerateProfiles(t *testing.T) {
	for n := 0; n <= 10; n++ {
		seen := make(map[Profile]struct{})
		var first, last Profile
		EnumerateProfiles(n, func(p Profile) {
			if len(seen) == 0 {
				first = p
			}
			last = p
			seen[p] = struct{}{}
		})

		if len(seen) != 1<<uint(n) {
			t.Errorf("n=%d: enumerated %d distinct profiles, expected %d", n, len(seen), 1<<uint(n))
		}
		if first.NumMoving() != 0 {
			t.Errorf("n=%d: first profile %v is not all-Stay", n, first)
		}
		if last.NumMoving() != n {
			t.Errorf("n=%d: last profile %v is not all-Move", n, last)
		}
	}
}

func TestEnumerateProfilesOrder(t *testing.T) {
	var got []string
	EnumerateProfiles(2, func(p Profile) {
		got = append(got, p.String())
	})

	expected := []string{"(0,0)", "(0,1)", "(1,0)", "(1,1)"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected: %v, got: %v", expected, got)
	}
}
