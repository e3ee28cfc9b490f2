package internal

import "math"

// blockInternal is the opaque internal value stashed on every ブロック
// instance: its parameter names and its body statements.
type blockInternal struct {
	params []string
	body []ASTNode
}

// bootstrap builds the small graph of prototype objects reachable through
// named globals described in : ルート, ブロック, タートル, 線,
// Condition, ボタン.
func (vm *VM) bootstrap() {
	root := vm.NewObject(nil)
	vm.rootSym = vm.ToSymbol("ルート")
	vm.AssignGlobal(vm.rootSym, ObjectRefVal(root.id))
	root.AddMethod(vm.ToSymbol("作る"), nativeCreate)

	block := vm.NewObject(root)
	vm.blockSym = vm.ToSymbol("ブロック")
	vm.AssignGlobal(vm.blockSym, ObjectRefVal(block.id))
	block.AddMethod(vm.ToSymbol("実行"), nativeBlockExec)
	block.AddMethod(vm.ToSymbol("繰り返す"), nativeRepeat)
	block.AddMethod(vm.ToSymbol("ならば"), nativeIf)

	condition := vm.NewObject(root)
	vm.conditionSym = vm.ToSymbol("Condition")
	vm.AssignGlobal(vm.conditionSym, ObjectRefVal(condition.id))
	condition.AddMethod(vm.ToSymbol("実行"), nativeConditionThen)
	condition.AddMethod(vm.ToSymbol("そうでないなら"), nativeConditionElse)

	line := vm.NewObject(root)
	vm.lineSym = vm.ToSymbol("線")
	vm.AssignGlobal(vm.lineSym, ObjectRefVal(line.id))
	// 作る is inherited from ルート; 線 adds nothing of its own.

	turtle := vm.NewObject(root)
	vm.turtleSym = vm.ToSymbol("タートル")
	vm.AssignGlobal(vm.turtleSym, ObjectRefVal(turtle.id))
	turtle.AddMethod(vm.ToSymbol("作る"), nativeTurtleCreate)
	turtle.AddMethod(vm.ToSymbol("歩く"), nativeWalk)
	turtle.AddMethod(vm.ToSymbol("右回り"), nativeTurnRight)
	turtle.AddMethod(vm.ToSymbol("左回り"), nativeTurnLeft)
	turtle.SetMember(vm.ToSymbol("x"), NumVal(0))
	turtle.SetMember(vm.ToSymbol("y"), NumVal(0))
	turtle.SetMember(vm.ToSymbol("direction"), NumVal(0))
	turtle.SetMember(vm.ToSymbol("visible"), BoolVal(false))

	button := vm.NewObject(root)
	vm.buttonSym = vm.ToSymbol("ボタン")
	vm.AssignGlobal(vm.buttonSym, ObjectRefVal(button.id))
	button.AddMethod(vm.ToSymbol("クリック"), nativeButtonClick)
}

// newBlock allocates a ブロック child carrying params/body as its internal
// value, per BlockDefine's evaluation rule.
func (vm *VM) newBlock(params []string, body []ASTNode) Value {
	blockVal, err := vm.GetGlobal(vm.blockSym)
	if err != nil {
		// bootstrap always installs ブロック before any source runs.
		panic("dolittle: ブロック prototype missing")
	}
	blockProto, err := blockVal.AsObject(vm)
	if err != nil {
		panic("dolittle: ブロック global is not an object")
	}
	obj := vm.NewObject(blockProto)
	obj.SetInternalValue(&blockInternal{params: params, body: body})
	return ObjectRefVal(obj.id)
}

// isBlock reports whether obj descends from the ブロック prototype.
func (vm *VM) isBlock(obj *Object) bool {
	blockVal, err := vm.GetGlobal(vm.blockSym)
	if err != nil {
		return false
	}
	blockID, err := blockVal.AsObjectId()
	if err != nil {
		return false
	}
	return obj.IsSubclass(blockID)
}

// execBlock runs obj's stashed body, binding params to args positionally
//. The frame is popped on every exit path,
// including an error partway through the body.
func (vm *VM) execBlock(obj *Object, args []Value) (Value, error) {
	raw := obj.InternalValue()
	bi, ok := raw.(*blockInternal)
	if !ok {
		return Value{}, NewError(Runtime, "object has no executable body")
	}
	vm.PushFrame(bi.params, args)
	defer vm.PopFrame()

	result := Null
	for _, stmt := range bi.body {
		v, err := Eval(stmt, vm)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

// nativeCreate implements ルート作る: allocate a child of the receiver,
// snapshotting its members (newObject does the snapshot).
func nativeCreate(self Value, args []Value, vm *VM) (Value, error) {
	recv, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	child := vm.NewObject(recv)
	return ObjectRefVal(child.id), nil
}

// nativeTurtleCreate implements タートル作る: create as ルート does, then
// mark the new instance visible.
func nativeTurtleCreate(self Value, args []Value, vm *VM) (Value, error) {
	v, err := nativeCreate(self, args, vm)
	if err != nil {
		return Value{}, err
	}
	obj, err := v.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	obj.SetMember(vm.ToSymbol("visible"), BoolVal(true))
	return v, nil
}

// nativeWalk implements タートル歩く: move the turtle amount units along its
// current heading, and record the edge traveled as a new 線 instance.
func nativeWalk(self Value, args []Value, vm *VM) (Value, error) {
	if len(args) < 1 {
		return Value{}, NewError(ArgumentError, "歩く requires 1 argument")
	}
	amount, err := args[0].AsNum()
	if err != nil {
		return Value{}, err
	}
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}

	xSym, ySym, dirSym := vm.ToSymbol("x"), vm.ToSymbol("y"), vm.ToSymbol("direction")
	dirVal, err := obj.GetMember(dirSym)
	if err != nil {
		return Value{}, err
	}
	deg, err := dirVal.AsNum()
	if err != nil {
		return Value{}, err
	}
	dx, dy := dirVector(deg)

	x1v, err := obj.GetMember(xSym)
	if err != nil {
		return Value{}, err
	}
	y1v, err := obj.GetMember(ySym)
	if err != nil {
		return Value{}, err
	}
	x1, err := x1v.AsNum()
	if err != nil {
		return Value{}, err
	}
	y1, err := y1v.AsNum()
	if err != nil {
		return Value{}, err
	}

	x2, y2 := x1+amount*dx, y1+amount*dy
	obj.SetMember(xSym, NumVal(x2))
	obj.SetMember(ySym, NumVal(y2))

	lineProto, err := vm.GetGlobal(vm.lineSym)
	if err != nil {
		return Value{}, err
	}
	lineVal, err := vm.CallMethod(lineProto, vm.ToSymbol("作る"), nil)
	if err != nil {
		return Value{}, err
	}
	lineObj, err := lineVal.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	lineObj.SetMember(vm.ToSymbol("x1"), NumVal(x1))
	lineObj.SetMember(vm.ToSymbol("y1"), NumVal(y1))
	lineObj.SetMember(vm.ToSymbol("x2"), NumVal(x2))
	lineObj.SetMember(vm.ToSymbol("y2"), NumVal(y2))

	return self, nil
}

// nativeTurnLeft implements タートル左回り: add degrees to direction.
func nativeTurnLeft(self Value, args []Value, vm *VM) (Value, error) {
	return turnBy(self, args, vm, 1)
}

// nativeTurnRight implements タートル右回り: subtract degrees from direction.
func nativeTurnRight(self Value, args []Value, vm *VM) (Value, error) {
	return turnBy(self, args, vm, -1)
}

func turnBy(self Value, args []Value, vm *VM, sign float64) (Value, error) {
	if len(args) < 1 {
		return Value{}, NewError(ArgumentError, "turn requires 1 argument")
	}
	deg, err := args[0].AsNum()
	if err != nil {
		return Value{}, err
	}
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	dirSym := vm.ToSymbol("direction")
	cur, err := obj.GetMember(dirSym)
	if err != nil {
		return Value{}, err
	}
	curDeg, err := cur.AsNum()
	if err != nil {
		return Value{}, err
	}
	obj.SetMember(dirSym, NumVal(curDeg+sign*deg))
	return self, nil
}

// nativeBlockExec implements ブロック実行 when invoked directly on a block
// value (as opposed to the member-override path in CallMethod).
func nativeBlockExec(self Value, args []Value, vm *VM) (Value, error) {
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	return vm.execBlock(obj, args)
}

// nativeRepeat implements ブロック繰り返す: execute the receiver block n
// times with no arguments, returning the final call's result. n=0 runs zero
// times and returns Null.
func nativeRepeat(self Value, args []Value, vm *VM) (Value, error) {
	if len(args) < 1 {
		return Value{}, NewError(ArgumentError, "繰り返す requires 1 argument")
	}
	n, err := args[0].AsNum()
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return Value{}, NewError(Runtime, "繰り返す count must be finite and non-negative")
	}
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	k := int(math.Floor(n))
	result := Null
	for i := 0; i < k; i++ {
		result, err = vm.execBlock(obj, nil)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

// nativeIf implements ブロックならば: evaluate the receiver block once to
// obtain a Bool, and wrap it in a fresh Condition instance.
func nativeIf(self Value, args []Value, vm *VM) (Value, error) {
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	flagVal, err := vm.execBlock(obj, nil)
	if err != nil {
		return Value{}, err
	}
	flag, err := flagVal.AsBool()
	if err != nil {
		return Value{}, err
	}
	condProto, err := vm.GetGlobal(vm.conditionSym)
	if err != nil {
		return Value{}, err
	}
	condObj, err := condProto.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	inst := vm.NewObject(condObj)
	inst.SetMember(vm.ToSymbol("flag"), BoolVal(flag))
	return ObjectRefVal(inst.id), nil
}

// nativeConditionThen implements Condition実行: run the given block if flag
// is true; otherwise return self unchanged.
func nativeConditionThen(self Value, args []Value, vm *VM) (Value, error) {
	if len(args) < 1 {
		return Value{}, NewError(ArgumentError, "実行 requires a block argument")
	}
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	flagVal, err := obj.GetMember(vm.ToSymbol("flag"))
	if err != nil {
		return Value{}, err
	}
	flag, err := flagVal.AsBool()
	if err != nil {
		return Value{}, err
	}
	if !flag {
		return self, nil
	}
	blockObj, err := args[0].AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	return vm.execBlock(blockObj, nil)
}

// nativeConditionElse implements Conditionそうでないなら: a sibling
// Condition with the negated flag.
func nativeConditionElse(self Value, args []Value, vm *VM) (Value, error) {
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	flagVal, err := obj.GetMember(vm.ToSymbol("flag"))
	if err != nil {
		return Value{}, err
	}
	flag, err := flagVal.AsBool()
	if err != nil {
		return Value{}, err
	}
	inst := vm.NewObject(obj.Parent())
	inst.SetMember(vm.ToSymbol("flag"), BoolVal(!flag))
	return ObjectRefVal(inst.id), nil
}

// nativeButtonClick implements ボタンクリック: execute the block stored in
// the 動作 member.
func nativeButtonClick(self Value, args []Value, vm *VM) (Value, error) {
	obj, err := self.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	actionVal, err := obj.GetMember(vm.ToSymbol("動作"))
	if err != nil {
		return Value{}, err
	}
	actionObj, err := actionVal.AsObject(vm)
	if err != nil {
		return Value{}, err
	}
	return vm.execBlock(actionObj, nil)
}
