package internal

// CallMethod implements method dispatch: a member-valued block
// beats a native method of the same name, so that user code can simply
// assign a block to a member slot to define or override behavior (the
// かめた:四角 pattern) without a separate method-definition syntax.
func (vm *VM) CallMethod(receiver Value, method SymbolId, args []Value) (Value, error) {
	target, err := receiver.AsObject(vm)
	if err != nil {
		return Value{}, err
	}

	if member, memErr := target.GetMember(method); memErr == nil {
		if member.IsObjectRef() {
			if memberObj, oerr := member.AsObject(vm); oerr == nil && vm.isBlock(memberObj) {
				return vm.execBlock(memberObj, args)
			}
		}
	}

	fn, err := target.GetMethod(method)
	if err != nil {
		return Value{}, NewError(MethodNotFound, "no method or block member found")
	}
	return fn(receiver, args, vm)
}
