// Package backref implements non-owning, nullable back-links.
//
// An owner that needs to call back into the object that created it
// (a Presenter calling its Boundary, a Router calling the Boundary's display host)
// holds a Ref instead of a plain pointer.
// A Ref never keeps its target alive, and once released it stays absent forever,
// so callbacks arriving after a teardown become no-ops.
package backref

import (
	"fmt"
	"sync"
	"weak"
)

// Ref is a non-owning link to a target, exposed as I.
//
// The zero value, and a nil *Ref, are valid and always absent.
type Ref[I any] struct {
	mutex    sync.RWMutex
	lookup   func() (I, bool)
	released bool
}

// To makes a Ref that points to ptr and exposes it as I.
// *T must implement I; a mismatch is a wiring mistake and panics.
func To[I, T any](ptr *T) *Ref[I] {
	if ptr == nil {
		return &Ref[I]{released: true}
	}
	if _, ok := any(ptr).(I); !ok {
		panic(fmt.Sprintf("backref: %T doesn't implement %s", ptr, typeName[I]()))
	}
	wp := weak.Make(ptr)
	return &Ref[I]{lookup: func() (I, bool) {
		p := wp.Value()
		if p == nil {
			return *new(I), false
		}
		v, ok := any(p).(I)
		return v, ok
	}}
}

// Get returns the target when it is still linked and alive.
func (r *Ref[I]) Get() (I, bool) {
	if r == nil {
		return *new(I), false
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if r.released || r.lookup == nil {
		return *new(I), false
	}
	return r.lookup()
}

// Do calls fn with the target, or does nothing when the target is absent.
// It reports whether fn was called.
func (r *Ref[I]) Do(fn func(I)) bool {
	v, ok := r.Get()
	if !ok {
		return false
	}
	fn(v)
	return true
}

// Release unlinks the target.
// It is safe to call Release multiple times.
func (r *Ref[I]) Release() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.released = true
	r.lookup = nil
}

// Released reports whether the Ref was explicitly released.
func (r *Ref[I]) Released() bool {
	if r == nil {
		return true
	}
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.released
}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
