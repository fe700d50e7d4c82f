package obj

// InputState is the point-in-time set of held controls sampled once per tick.
type InputState struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// Jump is true while a jump key is held.
	Jump bool
}

// Apply drives the player from held input.
func (in InputState) Apply(p *Player) {
	if p == nil {
		return
	}
	if in.MoveX != 0 {
		p.Move(in.MoveX)
	}
	if in.Jump {
		p.Jump()
	}
}
