// Package timeline maps vertical scroll position onto a horizontally scrolling
// strip of cards. Every function is pure; callers re-run them on each scroll or
// resize with fresh measurements.
package timeline

import "math"

// Section is the tall scroll container that pins the strip while the page scrolls.
// Top is its absolute page offset and Height its full height, both in pixels.
type Section struct {
	Top    float64
	Height float64
}

// Viewport is the visible window size in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Card is one item in the strip. Offset is the card's left edge measured from the
// start of the strip; Group is the marker it belongs to (a year, a series, a day).
type Card struct {
	Group  string
	Offset float64
}

// Layout is one measurement of the page.
type Layout struct {
	Section      Section
	Viewport     Viewport
	ContentWidth float64
	Cards        []Card
}

// State is what a frame needs to draw the strip.
type State struct {
	Progress   float64
	TranslateX float64
	// Active is the group of the last card whose left edge has reached the
	// viewport's left edge, or the first card's group before any has.
	Active string
}

// Progress maps scrollY into [0,1] across the section's scroll range
// [Top, Top+Height-viewport height].
func Progress(scrollY float64, s Section, v Viewport) float64 {
	span := s.Height - v.Height
	if span <= 0 {
		if scrollY >= s.Top {
			return 1
		}
		return 0
	}
	return clamp01((scrollY - s.Top) / span)
}

// Translate returns the strip's horizontal translation for progress. It is never
// positive, and is zero when the content fits the viewport.
func Translate(progress, contentWidth, viewportWidth float64) float64 {
	return -clamp01(progress) * travel(contentWidth, viewportWidth)
}

// Compute derives the full frame state for scrollY.
func Compute(scrollY float64, l Layout) State {
	p := Progress(scrollY, l.Section, l.Viewport)
	tx := Translate(p, l.ContentWidth, l.Viewport.Width)
	st := State{Progress: p, TranslateX: tx}
	if len(l.Cards) == 0 {
		return st
	}
	st.Active = l.Cards[0].Group
	for _, c := range l.Cards {
		if c.Offset+tx <= 0 {
			st.Active = c.Group
		}
	}
	return st
}

// ScrollTarget returns the absolute vertical offset that brings the first card of
// group to the viewport's left edge. ok is false when no card has that group.
func ScrollTarget(group string, l Layout) (y float64, ok bool) {
	for _, c := range l.Cards {
		if c.Group != group {
			continue
		}
		dist := travel(l.ContentWidth, l.Viewport.Width)
		p := 0.0
		if dist > 0 {
			p = clamp01(c.Offset / dist)
		}
		span := math.Max(0, l.Section.Height-l.Viewport.Height)
		return l.Section.Top + p*span, true
	}
	return 0, false
}

func travel(contentWidth, viewportWidth float64) float64 {
	return math.Max(0, contentWidth-viewportWidth)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
