package host

import "github.com/gdamore/tcell/v2"

// Kind selects a listener channel
type Kind uint8

const (
	KindMouseDown Kind = iota
	KindMouseMove
	KindMouseUp
	KindMouseLeave
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindWheel
	KindResize
	KindKey
	kindCount
)

var kindNames = [kindCount]string{
	"mousedown", "mousemove", "mouseup", "mouseleave",
	"touchstart", "touchmove", "touchend",
	"wheel", "resize", "key",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Touch is one contact point in logical pixels
type Touch struct {
	X, Y float64
}

// Event is a platform input event translated to logical pixels
type Event struct {
	Kind    Kind
	X, Y    float64
	Touches []Touch
	DeltaY  float64 // wheel, positive scrolls down

	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask

	Width, Height float64 // resize
}

// Handler receives dispatched events
type Handler func(Event)
