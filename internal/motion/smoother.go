// Package motion holds the two stateful per-frame filters: the position
// smoother that makes the cursor glide toward its interpolated target, and
// the shape stabilizer that suppresses cursor-shape flicker. Both integrate
// state across frames, so each playback or export session must own its own
// instances, and both must be Reset after any non-sequential seek.
package motion

// maxStepSeconds caps the integration step so a frame hitch does not make the
// cursor teleport.
const maxStepSeconds = 0.1

// Smoother tracks a target position with a critically damped spring. The
// output lags the target by roughly the time constant tau without ever
// overshooting it.
type Smoother struct {
	x, y   float64
	vx, vy float64

	targetX, targetY float64
	tau              float64
}

// NewSmoother creates a smoother at rest on (x, y). tau is the smoothing time
// constant in seconds; non-positive values fall back to a snappy default.
func NewSmoother(x, y, tau float64) *Smoother {
	if tau <= 0 {
		tau = 0.15
	}
	return &Smoother{x: x, y: y, targetX: x, targetY: y, tau: tau}
}

// SetTarget updates the position being tracked. Velocity is deliberately kept
// so a target that moves every frame produces one continuous glide.
func (s *Smoother) SetTarget(x, y float64) {
	s.targetX = x
	s.targetY = y
}

// Reset snaps the smoother onto (x, y) with zero velocity. Required after a
// seek or content change, otherwise the cursor visibly flies in from the
// stale position.
func (s *Smoother) Reset(x, y float64) {
	s.x, s.y = x, y
	s.targetX, s.targetY = x, y
	s.vx, s.vy = 0, 0
}

// Update advances the spring by dt seconds of wall-clock time and returns the
// new smoothed position. dt is capped at 100ms; zero or negative dt returns
// the current position unchanged.
func (s *Smoother) Update(dt float64) (float64, float64) {
	if dt <= 0 {
		return s.x, s.y
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}

	s.x, s.vx = springStep(s.x, s.vx, s.targetX, s.tau, dt)
	s.y, s.vy = springStep(s.y, s.vy, s.targetY, s.tau, dt)
	return s.x, s.y
}

// Position returns the current smoothed position without advancing time.
func (s *Smoother) Position() (float64, float64) {
	return s.x, s.y
}

// springStep integrates one axis of a critically damped spring. The
// exponential term uses a Padé-style approximation of e^-x that stays stable
// for any step size, so a capped dt can never make the spring diverge.
func springStep(pos, vel, target, tau, dt float64) (float64, float64) {
	omega := 2.0 / tau
	x := omega * dt
	decay := 1.0 / (1.0 + x + 0.48*x*x + 0.235*x*x*x)

	change := pos - target
	temp := (vel + omega*change) * dt

	newVel := (vel - omega*temp) * decay
	newPos := target + (change+temp)*decay
	return newPos, newVel
}
