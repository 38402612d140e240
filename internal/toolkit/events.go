package toolkit

// Synthetic input events. These are plain values handed to App.PostEvent; the
// host adapter translates them into its native event types.

// EventType discriminates synthetic events.
type EventType int

const (
	MousePress EventType = iota
	MouseRelease
	MouseDblClick
	MouseMove
	KeyPress
	KeyRelease
)

// String returns a readable name, used in logs and test failures.
func (t EventType) String() string {
	switch t {
	case MousePress:
		return "MousePress"
	case MouseRelease:
		return "MouseRelease"
	case MouseDblClick:
		return "MouseDblClick"
	case MouseMove:
		return "MouseMove"
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	}
	return "Unknown"
}

// MouseButton identifies the pressed pointer button.
type MouseButton int

const (
	NoButton MouseButton = iota
	LeftButton
	RightButton
	MiddleButton
)

// Event is a synthetic input event.
type Event interface {
	Type() EventType
}

// MouseEvent is a synthetic pointer event at Pos (target-local coordinates)
// with its precomputed global position.
type MouseEvent struct {
	Kind      EventType
	Pos       Point
	GlobalPos Point
	Button    MouseButton
}

func (e *MouseEvent) Type() EventType { return e.Kind }

// KeyModifier is a bitmask of held modifier keys.
type KeyModifier int

const (
	ModNone  KeyModifier = 0
	ModShift KeyModifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// KeyEvent is a synthetic keyboard event. Key is the character's code point
// and Text its textual form. Plain key sequences carry no modifiers; only
// shortcut synthesis sets Mod.
type KeyEvent struct {
	Kind EventType
	Key  int
	Text string
	Mod  KeyModifier
}

func (e *KeyEvent) Type() EventType { return e.Kind }
