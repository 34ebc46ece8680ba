package icvm

// I is a resolved instruction, it changes the state of the VM.
// Operands which are read have already been loaded from memory,
// destinations have been resolved to absolute addresses.
type I interface {
	isI()
}

type baseI struct{}

func (baseI) isI() {}

// arithmetic

type addI struct {
	x, y Word
	dst  Word
	baseI
}

type mulI struct {
	x, y Word
	dst  Word
	baseI
}

type lessThanI struct {
	x, y Word
	dst  Word
	baseI
}

type equalsI struct {
	x, y Word
	dst  Word
	baseI
}

// io

type inputI struct {
	dst Word
	baseI
}

type outputI struct {
	x Word
	baseI
}

// control flow

type jumpIfTrueI struct {
	cond, target Word
	baseI
}

type jumpIfFalseI struct {
	cond, target Word
	baseI
}

type adjustBaseI struct {
	delta Word
	baseI
}

type haltI struct{ baseI }

// operands resolves the parameters of the instruction at the program counter.
// The first error encountered is kept in err, and later calls are no-ops.
type operands struct {
	vm  *VM
	oc  Opcode
	err error
}

func (o *operands) raw(i int) Word {
	if o.err != nil {
		return 0
	}
	w, err := o.vm.mem.Get(o.vm.pc + 1 + Word(i))
	if err != nil {
		o.err = err
	}
	return w
}

// value reads parameter i as an operand
func (o *operands) value(i int) Word {
	p := o.raw(i)
	if o.err != nil {
		return 0
	}
	// Decode has already rejected unknown modes
	switch o.oc.Modes[i] {
	case Immediate:
		return p
	case Relative:
		return o.load(o.vm.relBase + p)
	default:
		return o.load(p)
	}
}

// addr reads parameter i as a write target
func (o *operands) addr(i int) Word {
	p := o.raw(i)
	if o.err != nil {
		return 0
	}
	a := p
	switch o.oc.Modes[i] {
	case Immediate:
		o.err = ErrInvalidWriteTarget{Op: o.oc.Op, Param: i}
		return 0
	case Relative:
		a = o.vm.relBase + p
	}
	if a < 0 {
		o.err = ErrNegativeAddress{Addr: a}
		return 0
	}
	return a
}

func (o *operands) load(addr Word) Word {
	x, err := o.vm.mem.Get(addr)
	if err != nil {
		o.err = err
	}
	return x
}

// fetch decodes the instruction at the program counter and resolves its operands.
func (vm *VM) fetch() (I, error) {
	word, err := vm.mem.Get(vm.pc)
	if err != nil {
		return nil, err
	}
	oc, err := Decode(word)
	if err != nil {
		return nil, err
	}
	o := operands{vm: vm, oc: oc}
	var ix I
	switch oc.Op {
	case OpAdd:
		ix = addI{x: o.value(0), y: o.value(1), dst: o.addr(2)}
	case OpMul:
		ix = mulI{x: o.value(0), y: o.value(1), dst: o.addr(2)}
	case OpInput:
		ix = inputI{dst: o.addr(0)}
	case OpOutput:
		ix = outputI{x: o.value(0)}
	case OpJumpIfTrue:
		ix = jumpIfTrueI{cond: o.value(0), target: o.value(1)}
	case OpJumpIfFalse:
		ix = jumpIfFalseI{cond: o.value(0), target: o.value(1)}
	case OpLessThan:
		ix = lessThanI{x: o.value(0), y: o.value(1), dst: o.addr(2)}
	case OpEquals:
		ix = equalsI{x: o.value(0), y: o.value(1), dst: o.addr(2)}
	case OpAdjustBase:
		ix = adjustBaseI{delta: o.value(0)}
	case OpHalt:
		ix = haltI{}
	default:
		return nil, ErrUnknownOpcode{Word: word}
	}
	if o.err != nil {
		return nil, o.err
	}
	return ix, nil
}
