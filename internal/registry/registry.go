// Package registry maps opaque numeric handles to live toolkit objects.
//
// Handles are generation tagged: every registered object occupies an arena
// slot, and the handle packs the slot index with the slot's generation
// counter. Destroying an object bumps the generation, so a stale handle can
// never resolve to a different object that later reuses the slot.
package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// identBase keeps identity-only ids (graphics items) out of the handle space.
const identBase = uint64(1) << 63

type slot struct {
	gen uint32
	obj toolkit.Object
}

// Registry is the per-session handle arena. It is the only component allowed
// to remove entries, which it does when the toolkit reports an object's
// destruction.
type Registry struct {
	log *zap.Logger

	mu       sync.Mutex
	slots    []slot
	free     []uint32
	byObject map[toolkit.Object]uint64
	idents   map[any]uint64
	nextID   uint64
}

// New creates an empty registry.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:      log.Named("registry"),
		byObject: make(map[toolkit.Object]uint64),
		idents:   make(map[any]uint64),
	}
}

// Register returns the handle for obj, issuing one and arming a destruction
// watch on first sight. Registering nil returns 0, which never resolves;
// callers are expected to check.
func (r *Registry) Register(obj toolkit.Object) uint64 {
	if obj == nil {
		return 0
	}
	r.mu.Lock()
	if h, ok := r.byObject[obj]; ok {
		r.mu.Unlock()
		return h
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx].obj = obj
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{obj: obj})
	}
	h := handleFor(idx, r.slots[idx].gen)
	r.byObject[obj] = h
	r.mu.Unlock()

	// One watch per object: armed only on the insert path, so repeated
	// registration cannot double-subscribe.
	obj.OnDestroyed(r.objectDestroyed)

	r.log.Debug("Registered object.",
		zap.Uint64("oid", h), zap.String("name", obj.Name()))
	return h
}

// Resolve returns the object behind a handle, or nil when the handle was
// never issued or its object has been destroyed.
func (r *Registry) Resolve(h uint64) toolkit.Object {
	idx, gen, ok := splitHandle(h)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(idx) >= len(r.slots) {
		return nil
	}
	s := r.slots[idx]
	if s.gen != gen {
		return nil
	}
	return s.obj
}

// Identify returns a stable identity-only id for v (graphics items). The id
// is never resolvable through Resolve; stale ids simply stop matching any
// live item.
func (r *Registry) Identify(v any) uint64 {
	if v == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.idents[v]; ok {
		return id
	}
	r.nextID++
	id := identBase | r.nextID
	r.idents[v] = id
	return id
}

// objectDestroyed is the destruction watch target. Unknown objects are a
// no-op.
func (r *Registry) objectDestroyed(obj toolkit.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byObject[obj]
	if !ok {
		return
	}
	delete(r.byObject, obj)
	idx, _, _ := splitHandle(h)
	r.slots[idx].gen++
	r.slots[idx].obj = nil
	r.free = append(r.free, idx)
	r.log.Debug("Object destroyed, handle invalidated.", zap.Uint64("oid", h))
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byObject)
}

func handleFor(idx, gen uint32) uint64 {
	// +1 keeps handle 0 reserved for "no object".
	return uint64(gen)<<32 | uint64(idx+1)
}

func splitHandle(h uint64) (idx, gen uint32, ok bool) {
	if h == 0 || h >= identBase {
		return 0, 0, false
	}
	low := uint32(h)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(h >> 32), true
}
