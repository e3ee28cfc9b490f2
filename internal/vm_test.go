package internal

import "testing"

// TestBlockScopeNotVisibleAfterReturn checks property 7: a
// parameter name bound in a block's frame is not visible after the frame
// is popped.
func TestBlockScopeNotVisibleAfterReturn(t *testing.T) {
	vm := NewVM()
	lenSym := vm.ToSymbol("長さ")

	vm.PushFrame([]string{"長さ"}, []Value{NumVal(5)})
	if _, ok := vm.LookupLocal(lenSym); !ok {
		t.Fatal("長さ not visible inside its own frame")
	}
	vm.PopFrame()

	if _, ok := vm.LookupLocal(lenSym); ok {
		t.Error("長さ still visible after its frame was popped")
	}
	if _, err := vm.ReadName(lenSym); err == nil {
		t.Error("ReadName resolved a name whose frame was already popped")
	}
}

// TestNestedBlockScopeSeesOuterFrame checks that an inner frame's lookup
// falls through to an outer frame still on the stack, searching the scope
// stack innermost-to-outermost.
func TestNestedBlockScopeSeesOuterFrame(t *testing.T) {
	vm := NewVM()
	outerSym := vm.ToSymbol("外")
	innerSym := vm.ToSymbol("内")

	vm.PushFrame([]string{"外"}, []Value{NumVal(1)})
	vm.PushFrame([]string{"内"}, []Value{NumVal(2)})

	if v, ok := vm.LookupLocal(outerSym); !ok {
		t.Fatal("inner frame did not see outer frame's binding")
	} else if n, _ := v.AsNum(); n != 1 {
		t.Errorf("外 = %v, want 1", n)
	}
	if v, ok := vm.LookupLocal(innerSym); !ok || mustNum(t, v) != 2 {
		t.Error("inner frame lost its own binding")
	}

	vm.PopFrame()
	if _, ok := vm.LookupLocal(innerSym); ok {
		t.Error("内 still visible after the inner frame popped")
	}
	if _, ok := vm.LookupLocal(outerSym); !ok {
		t.Error("外 should still be visible; only the inner frame was popped")
	}
	vm.PopFrame()
}

// TestInnerFrameShadowsOuter checks that a name bound in both an inner and
// an outer frame resolves to the innermost binding.
func TestInnerFrameShadowsOuter(t *testing.T) {
	vm := NewVM()
	sym := vm.ToSymbol("長さ")

	vm.PushFrame([]string{"長さ"}, []Value{NumVal(1)})
	vm.PushFrame([]string{"長さ"}, []Value{NumVal(2)})

	if v, ok := vm.LookupLocal(sym); !ok || mustNum(t, v) != 2 {
		t.Error("inner binding did not shadow outer binding")
	}
	vm.PopFrame()
	if v, ok := vm.LookupLocal(sym); !ok || mustNum(t, v) != 1 {
		t.Error("outer binding not restored after inner frame popped")
	}
	vm.PopFrame()
}

// TestReadNameFallsBackToGlobal checks that a name with no local binding
// resolves against globals.
func TestReadNameFallsBackToGlobal(t *testing.T) {
	vm := NewVM()
	sym := vm.ToSymbol("てすと")
	vm.AssignGlobal(sym, NumVal(7))

	v, err := vm.ReadName(sym)
	if err != nil {
		t.Fatalf("ReadName: %v", err)
	}
	if mustNum(t, v) != 7 {
		t.Errorf("てすと = %v, want 7", v)
	}
}

func mustNum(t *testing.T, v Value) float64 {
	t.Helper()
	n, err := v.AsNum()
	if err != nil {
		t.Fatalf("AsNum: %v", err)
	}
	return n
}
