package player

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// DelayedResponse is the handoff contract for the two commands whose result
// is produced after the handler returns. The handler hands one back
// immediately; the transport calls Start once and emits the bag passed to
// done as the command's response.
type DelayedResponse interface {
	// Start begins the asynchronous work. done is invoked exactly once,
	// possibly before Start returns when the work fails immediately.
	Start(done func(schemas.Bag))
}

// ResponseState tracks a delayed response through its lifetime.
type ResponseState int

const (
	ResponsePending ResponseState = iota
	ResponseInProgress
	ResponseCompleted
	ResponseFailed
)

// schedule runs fn on a later iteration of the host loop, honoring the
// configured pacing between drag steps. With no interval the work stays
// entirely on Defer chains, which keeps tests deterministic.
func (p *Player) schedule(fn func()) {
	if d := p.cfg.DragInterval; d > 0 {
		time.AfterFunc(d, func() { p.app.Defer(fn) })
		return
	}
	p.app.Defer(fn)
}

// bagPoint reads an {x, y} sub-bag, falling back to def when absent.
func bagPoint(b schemas.Bag, def toolkit.Point) toolkit.Point {
	if b == nil {
		return def
	}
	return toolkit.Point{X: b.Int("x"), Y: b.Int("y")}
}

// -- drag and drop --

// dragResponse presses on the source widget, walks interpolated move events
// toward the destination, then releases. Each phase runs on its own host
// loop iteration so the application sees a plausible drag, not one burst.
type dragResponse struct {
	p     *Player
	cmd   schemas.Bag
	state ResponseState
}

func (p *Player) dragNDrop(cmd schemas.Bag) DelayedResponse {
	return &dragResponse{p: p, cmd: cmd}
}

// State reports where the drag currently stands.
func (r *dragResponse) State() ResponseState { return r.state }

func (r *dragResponse) Start(done func(schemas.Bag)) {
	src := locate[toolkit.Widget](r.p, r.cmd, "srcoid", "Widget")
	if src.hasError() {
		r.state = ResponseFailed
		done(src.err)
		return
	}
	dest := src.val
	if r.cmd.Has("destoid") {
		destCtx := locate[toolkit.Widget](r.p, r.cmd, "destoid", "Widget")
		if destCtx.hasError() {
			r.state = ResponseFailed
			done(destCtx.err)
			return
		}
		dest = destCtx.val
	}
	srcPos := bagPoint(r.cmd.Sub("srcpos"), src.val.Rect().Center())
	destPos := bagPoint(r.cmd.Sub("destpos"), dest.Rect().Center())
	srcGlobal := src.val.MapToGlobal(srcPos)
	destGlobal := dest.MapToGlobal(destPos)

	r.state = ResponseInProgress
	r.p.postMouse(src.val, toolkit.MousePress, srcPos, srcGlobal, toolkit.LeftButton)

	steps := r.p.cfg.DragSteps
	if steps < 1 {
		steps = 1
	}
	step := 0
	var move func()
	move = func() {
		step++
		t := float64(step) / float64(steps+1)
		global := toolkit.Point{
			X: srcGlobal.X + int(float64(destGlobal.X-srcGlobal.X)*t),
			Y: srcGlobal.Y + int(float64(destGlobal.Y-srcGlobal.Y)*t),
		}
		r.p.postMouse(dest, toolkit.MouseMove, dest.MapFromGlobal(global), global, toolkit.NoButton)
		if step < steps {
			r.p.schedule(move)
			return
		}
		r.p.schedule(func() {
			r.p.postMouse(dest, toolkit.MouseRelease, destPos, destGlobal, toolkit.LeftButton)
			r.state = ResponseCompleted
			done(schemas.Bag{})
		})
	}
	r.p.schedule(move)
}

// -- keyboard shortcut --

// namedKeys maps the key sequence spellings that are not single characters.
var namedKeys = map[string]int{
	"tab":       0x09,
	"return":    0x0d,
	"enter":     0x0d,
	"escape":    0x1b,
	"esc":       0x1b,
	"space":     0x20,
	"backspace": 0x08,
	"delete":    0x7f,
}

// modifierNames maps key sequence modifier spellings to their bitmask.
var modifierNames = map[string]toolkit.KeyModifier{
	"shift": toolkit.ModShift,
	"ctrl":  toolkit.ModCtrl,
	"alt":   toolkit.ModAlt,
	"meta":  toolkit.ModMeta,
}

// parseKeySequence splits a textual sequence like "Ctrl+Shift+S" into its
// modifier mask and final key.
func parseKeySequence(sequence string) (key int, text string, mod toolkit.KeyModifier, err error) {
	tokens := strings.Split(sequence, "+")
	for i, token := range tokens {
		lower := strings.ToLower(strings.TrimSpace(token))
		if m, ok := modifierNames[lower]; ok && i < len(tokens)-1 {
			mod |= m
			continue
		}
		if i < len(tokens)-1 {
			return 0, "", 0, fmt.Errorf("unknown modifier %q", token)
		}
		if k, ok := namedKeys[lower]; ok {
			return k, "", mod, nil
		}
		runes := []rune(strings.TrimSpace(token))
		if len(runes) != 1 {
			return 0, "", 0, fmt.Errorf("unknown key %q", token)
		}
		upper := unicode.ToUpper(runes[0])
		return int(upper), string(runes[0]), mod, nil
	}
	return 0, "", 0, fmt.Errorf("empty key sequence")
}

// shortcutResponse posts the key press on one loop iteration and the release
// on the next, mirroring how a user holds a chord briefly.
type shortcutResponse struct {
	p     *Player
	cmd   schemas.Bag
	state ResponseState
}

func (p *Player) shortcut(cmd schemas.Bag) DelayedResponse {
	return &shortcutResponse{p: p, cmd: cmd}
}

// State reports where the shortcut currently stands.
func (r *shortcutResponse) State() ResponseState { return r.state }

func (r *shortcutResponse) Start(done func(schemas.Bag)) {
	var target toolkit.Object
	if r.cmd.Has("oid") {
		ctx := locate[toolkit.Widget](r.p, r.cmd, "oid", "Widget")
		if ctx.hasError() {
			r.state = ResponseFailed
			done(ctx.err)
			return
		}
		target = ctx.val
	} else {
		w := r.p.app.ActiveWindow()
		if w == nil {
			r.state = ResponseFailed
			done(schemas.Error(schemas.ErrNoActiveWindow,
				"There is no active widget (focus)"))
			return
		}
		target = w
	}

	sequence := r.cmd.String("keysequence")
	key, text, mod, err := parseKeySequence(sequence)
	if err != nil {
		r.state = ResponseFailed
		done(schemas.Error(schemas.ErrInvalidCommand,
			fmt.Sprintf("Unable to parse key sequence `%s`: %s", sequence, err)))
		return
	}

	r.state = ResponseInProgress
	r.p.app.PostEvent(target, &toolkit.KeyEvent{
		Kind: toolkit.KeyPress, Key: key, Text: text, Mod: mod,
	})
	r.p.schedule(func() {
		r.p.app.PostEvent(target, &toolkit.KeyEvent{
			Kind: toolkit.KeyRelease, Key: key, Text: text, Mod: mod,
		})
		r.state = ResponseCompleted
		done(schemas.Bag{})
	})
}
