/*
Package dolittle implements an interpreter for a small Japanese-syntax
prototype-based scripting language, in the style of a turtle-graphics
teaching tool: every value is either a number, a string, a boolean, null,
or a reference to a heap-allocated object, and objects gain behavior by
cloning a prototype (ルート, ブロック, タートル, 線, Condition, ボタン)
rather than by instantiating a class.

Hello world (turn a turtle and take a step):

	かめた = タートル！作る。
	かめた！ ９０ 左回り １００ 歩く。

Embedding follows a facade wrapping VM state: use New to construct an
Interpreter, Exec to run source against it, and GetObjects to snapshot
the heap for a view layer (GUI, web, or test).
*/
package dolittle

import (
	"io"

	"github.com/higumachan/dolittle-go/internal"
	"github.com/higumachan/dolittle-go/parse"
)

// Interpreter wraps one VM: construct one with New, feed it
// source with Exec, and inspect resulting state with GetObjects/GetSymbol/
// GetObjectId. It owns one internal.VM and is not safe for concurrent use
// from multiple goroutines — an embedding GUI or REPL must serialize access
// itself.
type Interpreter struct {
	vm *internal.VM
}

// New constructs an Interpreter with a freshly bootstrapped prototype
// graph (ルート/ブロック/タートル/線/Condition/ボタン).
func New() *Interpreter {
	return &Interpreter{vm: internal.NewVM()}
}

// SetTracer directs one eval diagnostic line per MethodCall to w. Pass nil
// to disable tracing; that is also the default.
func (in *Interpreter) SetTracer(w io.Writer) {
	in.vm.SetTracer(w)
}

// Exec parses source into a sequence of statements and evaluates each in
// turn. On the first error, execution stops and the error is returned; any
// heap side effects from statements before the failing one remain in
// effect.
func (in *Interpreter) Exec(source string) error {
	stmts, err := parse.ParseProgram(source)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := internal.Eval(stmt, in.vm); err != nil {
			return err
		}
	}
	return nil
}

// GetSymbol interns name and returns its SymbolId, allocating one if name
// was never seen before.
func (in *Interpreter) GetSymbol(name string) internal.SymbolId {
	return in.vm.ToSymbol(name)
}

// GetObjectId looks up a global and requires it to hold an object
// reference.
func (in *Interpreter) GetObjectId(globalName string) (internal.ObjectId, error) {
	return in.vm.GetObjectId(globalName)
}

// ObjectView is a read-only snapshot of one heap object, shaped for the
// the view returned by GetObjects: a drawable turtle (x, y, direction in
// degrees) or a line segment (x1, y1, x2, y2), or neither. It never retains
// a reference into the VM's heap.
type ObjectView struct {
	ID internal.ObjectId
	IsTurtle bool // is_subclass(turtle) && visible == true
	X, Y, Dir float64

	IsLine bool // is_subclass(line), excluding the 線 prototype itself
	X1, Y1, X2, Y2 float64
}

// GetObjects snapshots the entire heap in unspecified order.
func (in *Interpreter) GetObjects() ([]ObjectView, error) {
	turtleID, err := in.vm.GetObjectId("タートル")
	if err != nil {
		return nil, err
	}
	lineID, err := in.vm.GetObjectId("線")
	if err != nil {
		return nil, err
	}

	xSym := in.vm.ToSymbol("x")
	ySym := in.vm.ToSymbol("y")
	dirSym := in.vm.ToSymbol("direction")
	visSym := in.vm.ToSymbol("visible")
	x1Sym := in.vm.ToSymbol("x1")
	y1Sym := in.vm.ToSymbol("y1")
	x2Sym := in.vm.ToSymbol("x2")
	y2Sym := in.vm.ToSymbol("y2")

	objs := in.vm.Objects()
	views := make([]ObjectView, 0, len(objs))
	for _, obj := range objs {
		v := ObjectView{ID: obj.ID()}

		if obj.IsSubclass(turtleID) {
			if visVal, err := obj.GetMember(visSym); err == nil {
				if visible, err := visVal.AsBool(); err == nil && visible {
					v.IsTurtle = true
					v.X = numMember(obj, xSym)
					v.Y = numMember(obj, ySym)
					v.Dir = numMember(obj, dirSym)
				}
			}
		}
		if obj.ID() != lineID && obj.IsSubclass(lineID) {
			v.IsLine = true
			v.X1 = numMember(obj, x1Sym)
			v.Y1 = numMember(obj, y1Sym)
			v.X2 = numMember(obj, x2Sym)
			v.Y2 = numMember(obj, y2Sym)
		}
		views = append(views, v)
	}
	return views, nil
}

func numMember(obj *internal.Object, sym internal.SymbolId) float64 {
	v, err := obj.GetMember(sym)
	if err != nil {
		return 0
	}
	n, err := v.AsNum()
	if err != nil {
		return 0
	}
	return n
}
