package parse

import (
	"testing"

	"github.com/higumachan/dolittle-go/internal"
)

// TestPrecedence covers scenario S6: parsing "1 + 2 * 3" yields
// BinaryOp(+, 1, BinaryOp(*, 2, 3)), and "(1 + 2) * 3" yields
// BinaryOp(*, BinaryOp(+, 1, 2), 3).
func TestPrecedence(t *testing.T) {
	t.Run("AddBeforeMul", func(t *testing.T) {
		stmts, err := ParseProgram("1 + 2 * 3。")
		if err != nil {
			t.Fatalf("ParseProgram: %v", err)
		}
		if len(stmts) != 1 {
			t.Fatalf("got %d statements, want 1", len(stmts))
		}
		op, ok := stmts[0].(internal.BinaryOp)
		if !ok || op.Op != internal.OpAdd {
			t.Fatalf("root node = %#v, want BinaryOp(+)", stmts[0])
		}
		right, ok := op.Right.(internal.BinaryOp)
		if !ok || right.Op != internal.OpMul {
			t.Fatalf("right operand = %#v, want BinaryOp(*)", op.Right)
		}
	})

	t.Run("ParenOverridesPrecedence", func(t *testing.T) {
		stmts, err := ParseProgram("(1 + 2) * 3。")
		if err != nil {
			t.Fatalf("ParseProgram: %v", err)
		}
		op, ok := stmts[0].(internal.BinaryOp)
		if !ok || op.Op != internal.OpMul {
			t.Fatalf("root node = %#v, want BinaryOp(*)", stmts[0])
		}
		left, ok := op.Left.(internal.BinaryOp)
		if !ok || left.Op != internal.OpAdd {
			t.Fatalf("left operand = %#v, want BinaryOp(+)", op.Left)
		}
	})
}

func evalProgram(t *testing.T, vm *internal.VM, src string) internal.Value {
	t.Helper()
	stmts, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	var last internal.Value
	for _, s := range stmts {
		v, err := internal.Eval(s, vm)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
		last = v
	}
	return last
}

// TestPrecedenceEvaluates checks the numeric results scenario S6 requires.
func TestPrecedenceEvaluates(t *testing.T) {
	vm := internal.NewVM()
	if v := evalProgram(t, vm, "1 + 2 * 3。"); mustFloat(t, v) != 7 {
		t.Errorf("1 + 2 * 3 = %v, want 7", v)
	}
	if v := evalProgram(t, vm, "(1 + 2) * 3。"); mustFloat(t, v) != 9 {
		t.Errorf("(1 + 2) * 3 = %v, want 9", v)
	}
}

func mustFloat(t *testing.T, v internal.Value) float64 {
	t.Helper()
	n, err := v.AsNum()
	if err != nil {
		t.Fatalf("AsNum: %v", err)
	}
	return n
}

// TestAssignmentParsing checks both assignment forms of : bare
// `name = expr`, and `receiver:name = expr`.
func TestAssignmentParsing(t *testing.T) {
	stmts, err := ParseProgram("てすと＝１。")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	assign, ok := stmts[0].(internal.Assign)
	if !ok {
		t.Fatalf("node = %#v, want Assign", stmts[0])
	}
	if assign.TargetObject != nil {
		t.Errorf("TargetObject = %#v, want nil for a bare assignment", assign.TargetObject)
	}
	if assign.Name != "てすと" {
		t.Errorf("Name = %q, want てすと", assign.Name)
	}

	stmts, err = ParseProgram("かめた：四角＝１。")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	assign, ok = stmts[0].(internal.Assign)
	if !ok {
		t.Fatalf("node = %#v, want Assign", stmts[0])
	}
	if assign.TargetObject == nil {
		t.Fatal("TargetObject = nil, want かめた for a member assignment")
	}
	if assign.Name != "四角" {
		t.Errorf("Name = %q, want 四角", assign.Name)
	}
}

// TestMethodCallChaining checks that a single bang followed by several
// (args* symbol) groups folds left-associatively, per the turn-then-walk
// shape of scenario S2: かめた！ ９０ 左回り １００ 歩く parses
// as ((かめた!90 左回り) !100 歩く).
func TestMethodCallChaining(t *testing.T) {
	stmts, err := ParseProgram("かめた！ ９０ 左回り １００ 歩く。")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	outer, ok := stmts[0].(internal.MethodCall)
	if !ok {
		t.Fatalf("node = %#v, want MethodCall", stmts[0])
	}
	if outer.Method != "歩く" {
		t.Fatalf("outer method = %q, want 歩く", outer.Method)
	}
	if len(outer.Args) != 1 {
		t.Fatalf("outer args = %v, want 1 (100)", outer.Args)
	}
	inner, ok := outer.Receiver.(internal.MethodCall)
	if !ok {
		t.Fatalf("receiver = %#v, want MethodCall (左回り)", outer.Receiver)
	}
	if inner.Method != "左回り" {
		t.Fatalf("inner method = %q, want 左回り", inner.Method)
	}
	if _, ok := inner.Receiver.(internal.Decl); !ok {
		t.Fatalf("innermost receiver = %#v, want Decl(かめた)", inner.Receiver)
	}
}

// TestParenthesizedArg checks that a bare-name argument must be
// parenthesized, as in scenario S3's かめた!（長さ）歩く.
func TestParenthesizedArg(t *testing.T) {
	stmts, err := ParseProgram("かめた！（長さ）歩く。")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	call, ok := stmts[0].(internal.MethodCall)
	if !ok {
		t.Fatalf("node = %#v, want MethodCall", stmts[0])
	}
	if len(call.Args) != 1 {
		t.Fatalf("args = %v, want 1", call.Args)
	}
	if _, ok := call.Args[0].(internal.Decl); !ok {
		t.Fatalf("arg = %#v, want Decl(長さ)", call.Args[0])
	}
}

// TestBlockWithParams checks block/params parsing, including the
// full-width pipe glyph used throughout examples.
func TestBlockWithParams(t *testing.T) {
	stmts, err := ParseProgram("「｜長さ｜ 長さ。」。")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	block, ok := stmts[0].(internal.BlockDefine)
	if !ok {
		t.Fatalf("node = %#v, want BlockDefine", stmts[0])
	}
	if len(block.Params) != 1 || block.Params[0] != "長さ" {
		t.Fatalf("params = %v, want [長さ]", block.Params)
	}
	if len(block.Body) != 1 {
		t.Fatalf("body = %v, want 1 statement", block.Body)
	}
}

// TestUnterminatedBlockErrors checks that a block missing its closing
// bracket is reported as an error rather than looping or panicking.
func TestUnterminatedBlockErrors(t *testing.T) {
	_, err := ParseProgram("「かめた。")
	if err == nil {
		t.Fatal("unterminated block did not error")
	}
}

// TestS5ConditionalGlobals covers scenario S5: evaluates the full
// then/else chain and asserts on the resulting globals directly through
// the VM, since dolittle_test.TestS5ConditionalThenElse (facade-level)
// only checks that Exec succeeds.
func TestS5ConditionalGlobals(t *testing.T) {
	vm := internal.NewVM()
	src := "てすと＝１。\n" +
		"「てすと＝＝１。」！ならば　「てすと２＝２。」　実行。\n" +
		"「てすと＝＝０。」！ならば　「てすと２＝２。」　実行　そうでないなら　「てすと３＝３。」　実行。\n"
	evalProgram(t, vm, src)

	for _, c := range []struct {
		name string
		want float64
	}{
		{"てすと", 1},
		{"てすと２", 2},
		{"てすと３", 3},
	} {
		sym, ok := vm.GetSymbol(c.name)
		if !ok {
			t.Fatalf("%s was never interned", c.name)
		}
		v, err := vm.GetGlobal(sym)
		if err != nil {
			t.Fatalf("GetGlobal(%s): %v", c.name, err)
		}
		if n := mustFloat(t, v); n != c.want {
			t.Errorf("%s = %v, want %v", c.name, n, c.want)
		}
	}
}
