// package icvm contains an implementation of the Intcode virtual machine.
package icvm

import (
	"fmt"
	"slices"

	"intcode.org/intcode/internal/ringbuf"
)

// State is the execution state of a VM.
type State uint8

const (
	Running State = iota
	// WaitingForInput means the VM tried to execute an input instruction with
	// nothing to read. The instruction is retried by the next call to Run.
	WaitingForInput
	Halted
	// Faulted means the VM stopped because of an error, see VM.Err.
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForInput:
		return "waiting-for-input"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// VM is a single Intcode machine.
// A VM must not be used by more than one goroutine at a time.
type VM struct {
	mem     Memory
	pc      Word
	relBase Word
	steps   uint64

	input   ringbuf.RingBuf[Word]
	inputCh <-chan Word
	output  []Word

	state State
	err   error
}

// New creates a VM with a copy of code as its memory.
func New(code []Word) *VM {
	return &VM{
		mem:   NewMemory(code),
		input: ringbuf.New[Word](4),
	}
}

// Run executes instructions until the VM halts, faults, or needs input which
// is not available.
// Calling Run on a halted VM returns immediately.
// Calling Run on a faulted VM returns the same error again.
func (vm *VM) Run() (State, error) {
	switch vm.state {
	case Halted, Faulted:
		return vm.state, vm.err
	}
	vm.state = Running
	for vm.state == Running {
		ix, err := vm.fetch()
		if err != nil {
			vm.fail(err)
			break
		}
		vm.step(ix)
	}
	return vm.state, vm.err
}

func (vm *VM) step(ix I) {
	switch ix := ix.(type) {
	case addI:
		vm.store(ix.dst, ix.x+ix.y, 4)
	case mulI:
		vm.store(ix.dst, ix.x*ix.y, 4)
	case lessThanI:
		vm.store(ix.dst, boolWord(ix.x < ix.y), 4)
	case equalsI:
		vm.store(ix.dst, boolWord(ix.x == ix.y), 4)

	// io
	case inputI:
		vm.readInput(ix)
	case outputI:
		vm.output = append(vm.output, ix.x)
		vm.advance(2)

	// control flow
	case jumpIfTrueI:
		vm.jumpIf(ix.cond != 0, ix.target, 3)
	case jumpIfFalseI:
		vm.jumpIf(ix.cond == 0, ix.target, 3)
	case adjustBaseI:
		vm.relBase += ix.delta
		vm.advance(2)
	case haltI:
		vm.state = Halted

	default:
		panic(ix)
	}
}

func (vm *VM) advance(n Word) {
	vm.pc += n
	vm.steps++
}

func (vm *VM) store(addr, x Word, n Word) {
	if err := vm.mem.Set(addr, x); err != nil {
		vm.fail(err)
		return
	}
	vm.advance(n)
}

func (vm *VM) jumpIf(cond bool, target Word, n Word) {
	if !cond {
		vm.advance(n)
		return
	}
	vm.pc = target
	vm.steps++
}

// readInput does not move the program counter if no input is available.
func (vm *VM) readInput(ix inputI) {
	x, ok, err := vm.nextInput()
	if err != nil {
		vm.fail(err)
		return
	}
	if !ok {
		vm.state = WaitingForInput
		return
	}
	vm.store(ix.dst, x, 2)
}

func (vm *VM) nextInput() (Word, bool, error) {
	if x, ok := vm.input.PopFront(); ok {
		return x, true, nil
	}
	if vm.inputCh == nil {
		return 0, false, nil
	}
	select {
	case x, ok := <-vm.inputCh:
		if !ok {
			return 0, false, ErrInputClosed
		}
		return x, true, nil
	default:
		return 0, false, nil
	}
}

func (vm *VM) fail(err error) {
	vm.state = Faulted
	vm.err = ErrFault{PC: vm.pc, Err: err}
}

// SendInput appends x to the input queue.
func (vm *VM) SendInput(xs ...Word) {
	for _, x := range xs {
		vm.input.PushBack(x)
	}
}

// AttachInput sets a channel to read from when the input queue is empty.
// Reads from ch never block: if nothing is ready the VM waits for input.
// If ch is closed the VM faults with ErrInputClosed.
func (vm *VM) AttachInput(ch <-chan Word) {
	vm.inputCh = ch
}

// PendingInput returns the number of queued input values.
func (vm *VM) PendingInput() int {
	return vm.input.Len()
}

// Output returns the most recent output value.
func (vm *VM) Output() (Word, bool) {
	if len(vm.output) == 0 {
		return 0, false
	}
	return vm.output[len(vm.output)-1], true
}

// AllOutput returns every value output so far, oldest first.
func (vm *VM) AllOutput() []Word {
	return slices.Clone(vm.output)
}

// Poke writes directly to memory.
// It is used to patch a program before it is run.
func (vm *VM) Poke(addr, x Word) error {
	return vm.mem.Set(addr, x)
}

// Peek reads directly from memory.
func (vm *VM) Peek(addr Word) (Word, error) {
	return vm.mem.Get(addr)
}

// Memory returns a copy of the VM's memory.
func (vm *VM) Memory() []Word {
	return vm.mem.Words()
}

func (vm *VM) IsFinished() bool {
	return vm.state == Halted
}

func (vm *VM) State() State {
	return vm.state
}

func (vm *VM) Err() error {
	return vm.err
}

// PC returns the program counter.
func (vm *VM) PC() Word {
	return vm.pc
}

// RelativeBase returns the value of the relative base register.
func (vm *VM) RelativeBase() Word {
	return vm.relBase
}

// Steps returns the number of instructions executed.
// A halt or an input instruction without input is not counted.
func (vm *VM) Steps() uint64 {
	return vm.steps
}

func boolWord(x bool) Word {
	if x {
		return 1
	}
	return 0
}

// RunProgram runs code with the given inputs until it halts and returns the
// final memory and the output.
// It is an error for the program to wait for more input.
func RunProgram(code []Word, inputs ...Word) (mem, out []Word, err error) {
	vm := New(code)
	vm.SendInput(inputs...)
	state, err := vm.Run()
	if err != nil {
		return nil, nil, err
	}
	if state != Halted {
		return nil, nil, fmt.Errorf("icvm: program is %v after %d inputs", state, len(inputs))
	}
	return vm.Memory(), vm.AllOutput(), nil
}
