package player

import (
	"fmt"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// locator resolves a command's handle field into a capability-checked value.
// Every handler that targets an object goes through one and returns err
// unchanged when set; that keeps the error contract uniform across the whole
// command surface.
type locator[T any] struct {
	id  uint64
	obj toolkit.Object
	val T
	err schemas.Bag
}

func (l *locator[T]) hasError() bool { return l.err != nil }

// locate extracts the handle under key, resolves it through the registry and
// asserts the required capability. kind names the capability in the error
// message.
func locate[T any](p *Player, cmd schemas.Bag, key, kind string) locator[T] {
	var l locator[T]
	l.id = cmd.Uint64(key)
	l.obj = p.reg.Resolve(l.id)
	if l.obj == nil {
		l.err = schemas.Error(schemas.ErrNotRegisteredObject,
			fmt.Sprintf("The object (id:%d) is not registered or has been destroyed", l.id))
		return l
	}
	val, ok := l.obj.(T)
	if !ok {
		l.err = schemas.Error(schemas.ErrNotAWidget,
			fmt.Sprintf("Object (id:%d) is not a %s", l.id, kind))
		return l
	}
	l.val = val
	return l
}

// locateObject resolves a handle without any capability requirement.
func locateObject(p *Player, cmd schemas.Bag, key string) locator[toolkit.Object] {
	return locate[toolkit.Object](p, cmd, key, "Object")
}

// quickLocator additionally requires the quick item to have an owning window.
type quickLocator struct {
	locator[toolkit.QuickItem]
	window toolkit.QuickWindow
}

func locateQuickItem(p *Player, cmd schemas.Bag, key string) quickLocator {
	l := quickLocator{locator: locate[toolkit.QuickItem](p, cmd, key, "QuickItem")}
	if l.hasError() {
		return l
	}
	l.window = l.val.Window()
	if l.window == nil {
		l.err = schemas.Error(schemas.ErrNoWindowForQuickItem,
			"No window associated to the item.")
	}
	return l
}
