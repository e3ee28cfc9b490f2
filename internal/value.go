package internal

// ObjectId is an opaque heap key, monotonically allocated by the VM.
type ObjectId uint64

// valueKind tags the payload a Value currently holds.
type valueKind int

const (
	kindNull valueKind = iota
	kindNum
	kindStr
	kindBool
	kindObjectRef
)

// Value is the tagged union every AST node evaluates to: a number, a string,
// a boolean, null, or a reference to a heap object. Scalars are copied by
// value; ObjectRef is a share-by-reference handle into the VM's heap.
type Value struct {
	kind valueKind
	num  float64
	str  string
	b    bool
	obj  ObjectId
}

// Null is the unique null value.
var Null = Value{kind: kindNull}

// NumVal constructs a Num value.
func NumVal(f float64) Value { return Value{kind: kindNum, num: f} }

// StrVal constructs a Str value.
func StrVal(s string) Value { return Value{kind: kindStr, str: s} }

// BoolVal constructs a Bool value.
func BoolVal(b bool) Value { return Value{kind: kindBool, b: b} }

// ObjectRefVal constructs an ObjectRef value.
func ObjectRefVal(id ObjectId) Value { return Value{kind: kindObjectRef, obj: id} }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == kindNull }

// IsObjectRef reports whether v holds an object reference.
func (v Value) IsObjectRef() bool { return v.kind == kindObjectRef }

// AsNum returns v's numeric payload, or a Runtime error if v is not Num.
func (v Value) AsNum() (float64, error) {
	if v.kind != kindNum {
		return 0, NewError(Runtime, "value is not a number")
	}
	return v.num, nil
}

// AsStr returns v's string payload, or a Runtime error if v is not Str.
func (v Value) AsStr() (string, error) {
	if v.kind != kindStr {
		return "", NewError(Runtime, "value is not a string")
	}
	return v.str, nil
}

// AsBool returns v's boolean payload, or a Runtime error if v is not Bool.
func (v Value) AsBool() (bool, error) {
	if v.kind != kindBool {
		return false, NewError(Runtime, "value is not a boolean")
	}
	return v.b, nil
}

// AsObjectId returns v's object id, or a Runtime error if v is not an
// ObjectRef.
func (v Value) AsObjectId() (ObjectId, error) {
	if v.kind != kindObjectRef {
		return 0, NewError(Runtime, "value is not an object reference")
	}
	return v.obj, nil
}

// AsObject resolves v to its heap Object via vm, or a Runtime/ObjectNotFound
// error.
func (v Value) AsObject(vm *VM) (*Object, error) {
	id, err := v.AsObjectId()
	if err != nil {
		return nil, err
	}
	return vm.GetObject(id)
}

// Equal reports structural equality for scalars and identity equality (same
// ObjectId) for object references. Values of different kinds are never
// equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case kindNull:
		return true
	case kindNum:
		return v.num == other.num
	case kindStr:
		return v.str == other.str
	case kindBool:
		return v.b == other.b
	case kindObjectRef:
		return v.obj == other.obj
	}
	return false
}
