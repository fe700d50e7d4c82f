package component

import "sort"

// Ability is a capability tag on the player. Actions check membership before running.
type Ability string

const (
	AbilityJump        Ability = "jump"
	AbilityDash        Ability = "dash"
	AbilitySpiritSight Ability = "spirit_sight"
)

// Abilities is a set of capability tags.
type Abilities map[Ability]struct{}

// AllAbilities returns a fresh set holding every ability.
func AllAbilities() Abilities {
	return NewAbilities(AbilityJump, AbilityDash, AbilitySpiritSight)
}

func NewAbilities(list ...Ability) Abilities {
	set := make(Abilities, len(list))
	for _, a := range list {
		set[a] = struct{}{}
	}
	return set
}

func (s Abilities) Has(a Ability) bool {
	_, ok := s[a]
	return ok
}

// Remove deletes a and reports whether it was present.
func (s Abilities) Remove(a Ability) bool {
	if !s.Has(a) {
		return false
	}
	delete(s, a)
	return true
}

// List returns the abilities in a stable order.
func (s Abilities) List() []Ability {
	out := make([]Ability, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
