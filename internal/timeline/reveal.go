package timeline

import "time"

// Reveal is a one-way latch set the first time an element's visible ratio
// reaches its threshold. It never resets.
type Reveal struct {
	Revealed bool
}

// Observe returns the latch after seeing the element's current intersection ratio.
func (r Reveal) Observe(ratio, threshold float64) Reveal {
	if r.Revealed {
		return r
	}
	if ratio > 0 && ratio >= threshold {
		return Reveal{Revealed: true}
	}
	return r
}

// Stagger describes how the children of a revealed section animate in.
type Stagger struct {
	Delay    time.Duration // before the first child starts
	Step     time.Duration // added per child index
	Duration time.Duration // of each child's animation
	Distance float64       // initial downward offset in pixels
}

// DefaultStagger matches the site's section reveals.
var DefaultStagger = Stagger{
	Delay:    100 * time.Millisecond,
	Step:     120 * time.Millisecond,
	Duration: 600 * time.Millisecond,
	Distance: 40,
}

// Child is the drawn state of one child element.
type Child struct {
	Opacity float64
	OffsetY float64
}

// RevealState returns child index's state elapsed after the latch was set.
// Before reveal every child is hidden at its starting offset.
func RevealState(r Reveal, elapsed time.Duration, index int, s Stagger) Child {
	hidden := Child{Opacity: 0, OffsetY: s.Distance}
	if !r.Revealed {
		return hidden
	}
	start := s.Delay + time.Duration(index)*s.Step
	if elapsed <= start {
		return hidden
	}
	t := 1.0
	if s.Duration > 0 {
		t = clamp01(float64(elapsed-start) / float64(s.Duration))
	}
	e := EaseOutCubic(t)
	return Child{Opacity: e, OffsetY: s.Distance * (1 - e)}
}

// EaseOutCubic is 1-(1-t)^3 for t in [0,1].
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
