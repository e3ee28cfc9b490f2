package internal

import (
	"sync"

	"github.com/zephyrtronium/contains"
)

// NativeMethod is a built-in method: a Go function taking the receiver,
// positional arguments, and the owning VM, and producing a Value or an
// error. User-defined behavior instead lives as a block-valued member (see
// VM.CallMethod); NativeMethod is only for the handful of built-ins wired up
// in builtins.go.
type NativeMethod func(self Value, args []Value, vm *VM) (Value, error)

// Object is a prototype object: a parent link, a member table, a method
// table, and an optional opaque internal value used by built-ins (blocks
// stash their parameter names and body here; see builtins.go).
//
// Objects are shared by reference once placed on the heap. The embedded
// Mutex guards the mutable fields below so that re-entrant access through
// parent chains (a native method on a parent reading a member set by a
// child's earlier call) stays well-defined. The language itself is
// single-threaded; no lock is ever held across a call back into eval.
type Object struct {
	sync.Mutex

	id ObjectId
	parent *Object

	members map[SymbolId]Value
	methods map[SymbolId]NativeMethod

	internalValue interface{}
}

// newObject allocates an Object whose parent is parent (nil for the root of
// the whole graph). If parent is non-nil, members is seeded with a shallow
// copy of the parent's member table as it stands at this instant: later
// writes to those members on the parent are not seen by children created
// earlier. A member the parent gains only after this point is still found
// by GetMember's parent-chain walk.
func newObject(id ObjectId, parent *Object) *Object {
	o := &Object{
		id: id,
		parent: parent,
		members: map[SymbolId]Value{},
		methods: map[SymbolId]NativeMethod{},
	}
	if parent != nil {
		parent.Lock()
		for k, v := range parent.members {
			o.members[k] = v
		}
		parent.Unlock()
	}
	return o
}

// ID returns the object's heap id.
func (o *Object) ID() ObjectId { return o.id }

// Parent returns the object's prototype, or nil if it has none.
func (o *Object) Parent() *Object {
	o.Lock()
	defer o.Unlock()
	return o.parent
}

// AddMethod installs fn as the native method for sym on o only.
func (o *Object) AddMethod(sym SymbolId, fn NativeMethod) {
	o.Lock()
	defer o.Unlock()
	o.methods[sym] = fn
}

// GetMethod looks up sym in o's method table, then its parent's, and so on.
// Methods are never copied at create time; they are always resolved by
// walking the parent chain at call time, unlike members.
func (o *Object) GetMethod(sym SymbolId) (NativeMethod, error) {
	var visited contains.Set
	for cur := o; cur != nil; {
		cur.Lock()
		fn, ok := cur.methods[sym]
		next := cur.parent
		cur.Unlock()
		if ok {
			return fn, nil
		}
		if next != nil && !visited.Add(uintptr(next.id)) {
			break // malformed cycle; stop rather than loop forever
		}
		cur = next
	}
	return nil, NewError(MethodNotFound, "method not found")
}

// SetMember stores value under sym on o only; it never affects o's parent.
func (o *Object) SetMember(sym SymbolId, value Value) {
	o.Lock()
	defer o.Unlock()
	o.members[sym] = value
}

// GetMember looks up sym in o's member table, then its parent's, walking the
// whole chain.
func (o *Object) GetMember(sym SymbolId) (Value, error) {
	var visited contains.Set
	for cur := o; cur != nil; {
		cur.Lock()
		v, ok := cur.members[sym]
		next := cur.parent
		cur.Unlock()
		if ok {
			return v, nil
		}
		if next != nil && !visited.Add(uintptr(next.id)) {
			break
		}
		cur = next
	}
	return Value{}, NewError(MemberNotFound, "member not found")
}

// SetInternalValue stashes an opaque payload on o, used by built-ins such as
// blocks to hide non-Value state (parameter names and body nodes).
func (o *Object) SetInternalValue(v interface{}) {
	o.Lock()
	defer o.Unlock()
	o.internalValue = v
}

// InternalValue returns the payload set by SetInternalValue. Callers assert
// the concrete type by contract with the built-in that owns the slot.
func (o *Object) InternalValue() interface{} {
	o.Lock()
	defer o.Unlock()
	return o.internalValue
}

// IsSubclass reports whether id is o itself or any ancestor of o.
func (o *Object) IsSubclass(id ObjectId) bool {
	var visited contains.Set
	for cur := o; cur != nil; {
		if cur.id == id {
			return true
		}
		cur.Lock()
		next := cur.parent
		cur.Unlock()
		if next != nil && !visited.Add(uintptr(next.id)) {
			break
		}
		cur = next
	}
	return false
}
