package ecs

// Clock is an accumulator-based fixed-step scheduler. Advance adds
// realDt·TimeScale to the accumulator and returns the number of whole
// fixed steps that have elapsed, capped at maxStepsPerUpdate to guard
// against a spiral of death after a stall; the remaining fractional time
// carries over to the next call.
type Clock struct {
	TotalTime      float64
	FixedDeltaTime float64
	FrameCount     uint64
	TimeScale      float64
	accumulator    float64
}

// maxStepsPerUpdate guards against a spiral of death after a stall.
const maxStepsPerUpdate = 5

// NewClock returns a clock with the given fixed step, starting at
// TimeScale 1.
func NewClock(fixedDeltaTime float64) *Clock {
	return &Clock{
		FixedDeltaTime: fixedDeltaTime,
		TimeScale:      1,
	}
}

// Advance accumulates realDt and issues up to 5 whole fixed steps,
// advancing TotalTime and FrameCount once per step. It returns the number
// of steps issued.
func (c *Clock) Advance(realDt float64) int {
	c.accumulator += realDt * c.TimeScale

	steps := 0
	for c.accumulator >= c.FixedDeltaTime && steps < maxStepsPerUpdate {
		c.TotalTime += c.FixedDeltaTime
		c.FrameCount++
		c.accumulator -= c.FixedDeltaTime
		steps++
	}
	return steps
}

// InterpolationAlpha returns the fractional progress toward the next step,
// useful for client-side render interpolation (not used server-side).
func (c *Clock) InterpolationAlpha() float64 {
	if c.FixedDeltaTime == 0 {
		return 0
	}
	return c.accumulator / c.FixedDeltaTime
}

// StepDeltaTime returns the dt a system should use for one fixed step:
// FixedDeltaTime scaled by TimeScale.
func (c *Clock) StepDeltaTime() float64 {
	return c.FixedDeltaTime * c.TimeScale
}
