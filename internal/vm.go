package internal

import (
	"io"
)

// frame is one entry in the scope stack: a local name-to-value mapping for
// the block invocation that pushed it.
type frame map[SymbolId]Value

// VM owns every piece of mutable interpreter state: the object heap, the
// global binding table (the "assigns table"), the lexical scope stack, and
// the symbol interner. A VM is not safe for concurrent use from multiple
// goroutines; the language is single-threaded by design.
type VM struct {
	heap map[ObjectId]*Object
	nextID ObjectId
	globals map[SymbolId]Value
	symbols *SymbolTable
	stack []frame

	// Known globals, cached for dispatch and builtins.go bootstrap.
	rootSym, blockSym, turtleSym, lineSym, conditionSym, buttonSym SymbolId

	tracer io.Writer
}

// NewVM constructs a VM with an empty heap and installs the built-in
// prototype graph (ルート, ブロック, タートル, 線, Condition, ボタン).
func NewVM() *VM {
	vm := &VM{
		heap: map[ObjectId]*Object{},
		globals: map[SymbolId]Value{},
		symbols: NewSymbolTable(),
	}
	vm.bootstrap()
	return vm
}

// SetTracer directs one line of eval diagnostics per MethodCall node to w.
// A nil tracer (the default) disables tracing entirely.
func (vm *VM) SetTracer(w io.Writer) { vm.tracer = w }

// ToSymbol interns name in the VM's symbol table.
func (vm *VM) ToSymbol(name string) SymbolId { return vm.symbols.ToSymbol(name) }

// GetSymbol looks up name without interning it.
func (vm *VM) GetSymbol(name string) (SymbolId, bool) { return vm.symbols.Get(name) }

// SymbolName returns the interned name for sym, for diagnostics.
func (vm *VM) SymbolName(sym SymbolId) string { return vm.symbols.Name(sym) }

// NewObject allocates a new heap Object whose parent is parent (nil makes it
// an ancestorless root), seeding its members with a snapshot copy of
// parent's members.
func (vm *VM) NewObject(parent *Object) *Object {
	vm.nextID++
	id := vm.nextID
	o := newObject(id, parent)
	vm.heap[id] = o
	return o
}

// GetObject resolves id against the heap.
func (vm *VM) GetObject(id ObjectId) (*Object, error) {
	o, ok := vm.heap[id]
	if !ok {
		return nil, NewError(ObjectNotFound, "object %d not found", id)
	}
	return o, nil
}

// Objects returns a snapshot slice of every object currently on the heap, in
// unspecified order.
func (vm *VM) Objects() []*Object {
	out := make([]*Object, 0, len(vm.heap))
	for _, o := range vm.heap {
		out = append(out, o)
	}
	return out
}

// AssignGlobal stores value under the global binding name (bare `name =
// expr` assignment). It always succeeds; globals hold any Value.
func (vm *VM) AssignGlobal(sym SymbolId, value Value) {
	vm.globals[sym] = value
}

// GetGlobal reads a global binding, or ObjectNotFound if it was never
// assigned.
func (vm *VM) GetGlobal(sym SymbolId) (Value, error) {
	v, ok := vm.globals[sym]
	if !ok {
		return Value{}, NewError(ObjectNotFound, "global not found")
	}
	return v, nil
}

// GetObjectId looks up a global name and requires it to hold an ObjectRef.
func (vm *VM) GetObjectId(globalName string) (ObjectId, error) {
	sym, ok := vm.GetSymbol(globalName)
	if !ok {
		return 0, NewError(ObjectNotFound, "no such global %q", globalName)
	}
	v, err := vm.GetGlobal(sym)
	if err != nil {
		return 0, err
	}
	return v.AsObjectId()
}

// PushFrame pushes a new scope frame, binding each name in params to the
// positionally corresponding Value in args. Extra args are ignored; a param
// with no corresponding arg is left unbound (a later bare read of it fails
// with ObjectNotFound rather than resolving to Null) per the block.exec
// contract.
func (vm *VM) PushFrame(params []string, args []Value) {
	f := make(frame, len(params))
	for i, name := range params {
		if i >= len(args) {
			break
		}
		f[vm.ToSymbol(name)] = args[i]
	}
	vm.stack = append(vm.stack, f)
}

// PopFrame pops the innermost scope frame. Callers must pop on every path,
// including error returns, so that stack depth tracks block nesting exactly.
func (vm *VM) PopFrame() {
	vm.stack = vm.stack[:len(vm.stack)-1]
}

// LookupLocal searches the scope stack from innermost to outermost frame for
// sym.
func (vm *VM) LookupLocal(sym SymbolId) (Value, bool) {
	for i := len(vm.stack) - 1; i >= 0; i-- {
		if v, ok := vm.stack[i][sym]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// ReadName resolves a bare identifier: scope stack innermost-to-outermost,
// then globals.
func (vm *VM) ReadName(sym SymbolId) (Value, error) {
	if v, ok := vm.LookupLocal(sym); ok {
		return v, nil
	}
	return vm.GetGlobal(sym)
}
