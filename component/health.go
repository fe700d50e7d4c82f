package component

// Health is a reusable health pool for any actor that can take damage.
// Current always stays within [0, Max].
type Health struct {
	Max     float64
	Current float64

	// OnDamage runs after a hit lands, with Current already clamped.
	OnDamage func(h *Health, amount float64)
	// OnDeath runs once, on the hit that reaches zero.
	OnDeath func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Max: max, Current: max}
}

// IsAlive reports whether the pool still holds any health.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// TakeDamage subtracts amount and clamps at zero. It returns true only when
// this call is the one that brought health to exactly zero.
func (h *Health) TakeDamage(amount float64) bool {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current = max(0, h.Current-amount)
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current > 0 {
		return false
	}
	if h.OnDeath != nil {
		h.OnDeath(h)
	}
	return true
}

// Drain removes health without damage callbacks, used for continuous decay.
func (h *Health) Drain(amount float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.SetCurrent(h.Current - amount)
}

// Kill zeroes health immediately.
func (h *Health) Kill() {
	if h == nil {
		return
	}
	h.Current = 0
}

// Reset refills the pool.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
}

// SetCurrent sets the current health value and clamps to [0, Max].
func (h *Health) SetCurrent(v float64) {
	if h == nil {
		return
	}
	h.Current = v
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Max > 0 && h.Current > h.Max {
		h.Current = h.Max
	}
}

// Fraction returns Current/Max for health bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
