package core

import "fmt"

// HostObject is the closed set of heavyweight values the registry can hold.
// Polymorphism is a tagged union dispatched on ObjectTag; there is no open
// extension point, matching the rest of the host's closed-taxonomy style.
type HostObject interface {
	objectTag() ObjectTag
}

// ObjectRegistry is an append-only, ordered store of HostObjects. Handles are
// (ObjectTag, index) pairs; indices are never reused or compacted within a
// single Host lifetime — a registry-by-map pattern generalized to a slice
// so handles stay stable across growth.
type ObjectRegistry struct {
	entries []HostObject
	budget  *Budget
}

func NewObjectRegistry(b *Budget) *ObjectRegistry {
	return &ObjectRegistry{budget: b}
}

// Add charges HostMemAlloc, appends obj, and returns its handle.
func (r *ObjectRegistry) Add(obj HostObject) (Val, error) {
	if err := r.budget.Charge(CostHostMemAlloc, 1); err != nil {
		return Val{}, err
	}
	idx := uint32(len(r.entries))
	r.entries = append(r.entries, obj)
	return objectVal(obj.objectTag(), idx), nil
}

// Len returns the number of objects currently registered.
func (r *ObjectRegistry) Len() int { return len(r.entries) }

func (r *ObjectRegistry) checkType(idx uint32, tag ObjectTag) error {
	if int(idx) >= len(r.entries) {
		return NewHostError(ErrObject, ErrCodeIndexBounds, "object index out of range")
	}
	if r.entries[idx].objectTag() != tag {
		return NewHostError(ErrObject, ErrCodeUnexpectedType, "object handle type mismatch")
	}
	return nil
}

// Visit validates the handle and invokes f with the borrowed object. It does
// not charge budget itself — callers charge the cost appropriate to what
// they do with the object.
func (r *ObjectRegistry) Visit(v Val, f func(HostObject) error) error {
	tag, idx, ok := v.ObjectHandle()
	if !ok {
		return NewHostError(ErrValue, ErrCodeUnexpectedType, "not an object handle")
	}
	if err := r.checkType(idx, tag); err != nil {
		return err
	}
	return f(r.entries[idx])
}

// Get is a typed convenience wrapper around Visit for call sites that already
// know the expected Go type of the underlying HostObject.
func Get[T HostObject](r *ObjectRegistry, v Val) (T, error) {
	var zero T
	tag, idx, ok := v.ObjectHandle()
	if !ok {
		return zero, NewHostError(ErrValue, ErrCodeUnexpectedType, "not an object handle")
	}
	if err := r.checkType(idx, tag); err != nil {
		return zero, err
	}
	obj, ok := r.entries[idx].(T)
	if !ok {
		return zero, NewHostError(ErrObject, ErrCodeUnexpectedType, fmt.Sprintf("object #%d is not %T", idx, zero))
	}
	return obj, nil
}
