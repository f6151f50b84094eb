// Package reveal runs the two-phase fade-in of the visible cards.
//
// Phase one runs synchronously: every card that is not shown gets
// display:none, and every shown card is reset to the unrevealed look
// and appended to the container in its final order. Phase two runs on
// the next animation frame and flips the shown cards to the revealed
// look with a staggered transition delay. The split lets the browser
// paint the unrevealed state first, so the transition is visible.
package reveal

import (
	"fmt"
	"time"

	"github.com/kittclouds/rarestones/pkg/catalog"
	"github.com/kittclouds/rarestones/pkg/dom"
)

// Scheduler runs fn before the next repaint.
type Scheduler interface {
	RequestFrame(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) RequestFrame(fn func()) { f(fn) }

// Style describes the two visual states.
type Style struct {
	// Step is the delay added per position in phase two.
	Step time.Duration `yaml:"step"`
	// Offset is the transform of an unrevealed card, Rest the transform
	// it transitions to.
	Offset string `yaml:"offset"`
	Rest   string `yaml:"rest"`
}

// DefaultStyle is a 40ms stagger with an 8px upward slide.
func DefaultStyle() Style {
	return Style{Step: 40 * time.Millisecond, Offset: "translateY(8px)", Rest: "translateY(0)"}
}

// CSS properties written by the animator.
const (
	PropDisplay   = "display"
	PropOpacity   = "opacity"
	PropTransform = "transform"
	PropDelay     = "transition-delay"
)

// Animator owns the presentation of one card container.
type Animator struct {
	container dom.Element
	scheduler Scheduler
	style     Style

	order   []catalog.Card
	pending bool
	frames  int
}

// New creates an Animator for container.
func New(container dom.Element, scheduler Scheduler, style Style) *Animator {
	return &Animator{container: container, scheduler: scheduler, style: style}
}

// Reveal shows exactly the cards in ordered, in that order, and hides the
// rest of all. Phase two is scheduled at most once per frame; whichever
// Reveal ran last before the frame decides what it animates.
func (a *Animator) Reveal(all, ordered []catalog.Card) {
	shown := make(map[int]bool, len(ordered))
	for _, c := range ordered {
		shown[c.DisplayIndex] = true
	}
	for _, c := range all {
		if !shown[c.DisplayIndex] {
			c.Element.SetStyle(PropDisplay, "none")
		}
	}
	for _, c := range ordered {
		el := c.Element
		el.SetStyle(PropDisplay, "")
		el.SetStyle(PropDelay, "")
		el.SetStyle(PropOpacity, "0")
		el.SetStyle(PropTransform, a.style.Offset)
		a.container.AppendChild(el)
	}

	a.order = append(a.order[:0], ordered...)
	if a.pending {
		return
	}
	a.pending = true
	a.scheduler.RequestFrame(a.flush)
}

// flush is phase two. Visibility is read from the elements now, not from
// the list captured when the frame was requested, so a card hidden in the
// meantime is never animated.
func (a *Animator) flush() {
	a.pending = false
	a.frames++
	pos := 0
	for _, c := range a.order {
		el := c.Element
		if el.Style(PropDisplay) == "none" {
			continue
		}
		el.SetStyle(PropDelay, formatDelay(time.Duration(pos)*a.style.Step))
		el.SetStyle(PropOpacity, "1")
		el.SetStyle(PropTransform, a.style.Rest)
		pos++
	}
}

// Frames returns how many phase-two passes have run.
func (a *Animator) Frames() int { return a.frames }

// Pending reports whether phase two is still waiting for its frame.
func (a *Animator) Pending() bool { return a.pending }

func formatDelay(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
