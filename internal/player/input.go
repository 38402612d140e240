package player

import "github.com/xkilldash9x/uiprobe/internal/toolkit"

// Input synthesis. Everything goes through App.PostEvent: the host runs its
// own single-threaded loop and direct dispatch from a command handler would
// re-enter widget code mid-state-machine. Posting defers delivery to the next
// loop iteration, so a press is always delivered strictly before its release
// but never before the handler returns.

func (p *Player) postMouse(target toolkit.Object, kind toolkit.EventType,
	pos, global toolkit.Point, button toolkit.MouseButton) {
	p.app.PostEvent(target, &toolkit.MouseEvent{
		Kind:      kind,
		Pos:       pos,
		GlobalPos: global,
		Button:    button,
	})
}

// postClick enqueues a press then release pair on a widget at pos, in widget
// coordinates.
func (p *Player) postClick(w toolkit.Widget, pos toolkit.Point, button toolkit.MouseButton) {
	global := w.MapToGlobal(pos)
	p.postMouse(w, toolkit.MousePress, pos, global, button)
	p.postMouse(w, toolkit.MouseRelease, pos, global, button)
}

// postDoubleClick enqueues a left click pair followed by a double-click event
// at the same point.
func (p *Player) postDoubleClick(w toolkit.Widget, pos toolkit.Point) {
	p.postClick(w, pos, toolkit.LeftButton)
	p.postMouse(w, toolkit.MouseDblClick, pos, w.MapToGlobal(pos), toolkit.LeftButton)
}

// postWindowClick enqueues a press/release pair on a non-widget target (quick
// windows) where pos is already in window coordinates.
func (p *Player) postWindowClick(target toolkit.Object, pos toolkit.Point, button toolkit.MouseButton) {
	p.postMouse(target, toolkit.MousePress, pos, pos, button)
	p.postMouse(target, toolkit.MouseRelease, pos, pos, button)
}

// postKeySequence enqueues a key press/release pair per rune of text, using
// the rune's code point as the key, with no modifier.
func (p *Player) postKeySequence(target toolkit.Object, text string) {
	for _, ch := range text {
		p.app.PostEvent(target, &toolkit.KeyEvent{
			Kind: toolkit.KeyPress, Key: int(ch), Text: string(ch),
		})
		p.app.PostEvent(target, &toolkit.KeyEvent{
			Kind: toolkit.KeyRelease, Key: int(ch), Text: string(ch),
		})
	}
}

// activateFocus raises the widget's window then gives it input focus, tagged
// as a pointer interaction.
func activateFocus(w toolkit.Widget) {
	w.ActivateWindow()
	w.SetFocus(toolkit.MouseFocusReason)
}
