package icvm

import (
	"fmt"

	"intcode.org/intcode"
)

type Word = intcode.Word

// Op is an operation number, the low two decimal digits of an instruction word.
type Op Word

const (
	OpAdd         Op = 1
	OpMul         Op = 2
	OpInput       Op = 3
	OpOutput      Op = 4
	OpJumpIfTrue  Op = 5
	OpJumpIfFalse Op = 6
	OpLessThan    Op = 7
	OpEquals      Op = 8
	OpAdjustBase  Op = 9
	OpHalt        Op = 99
)

// MaxParams is the largest number of parameters taken by any instruction.
const MaxParams = 3

// Len returns the number of words consumed by an instruction with this
// operation, including the instruction word itself.
// ok is false if the operation is not known.
func (op Op) Len() (n int, ok bool) {
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return 4, true
	case OpJumpIfTrue, OpJumpIfFalse:
		return 3, true
	case OpInput, OpOutput, OpAdjustBase:
		return 2, true
	case OpHalt:
		return 1, true
	default:
		return 0, false
	}
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpInput:
		return "in"
	case OpOutput:
		return "out"
	case OpJumpIfTrue:
		return "jt"
	case OpJumpIfFalse:
		return "jf"
	case OpLessThan:
		return "lt"
	case OpEquals:
		return "eq"
	case OpAdjustBase:
		return "arb"
	case OpHalt:
		return "halt"
	default:
		return fmt.Sprintf("op(%d)", Word(op))
	}
}

// Mode is a parameter addressing mode.
type Mode uint8

const (
	// Position: the parameter is the address of the operand.
	Position Mode = 0
	// Immediate: the parameter is the operand.
	Immediate Mode = 1
	// Relative: the parameter plus the relative base is the address of the operand.
	Relative Mode = 2
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Opcode is a decoded instruction word.
type Opcode struct {
	Op    Op
	Modes [MaxParams]Mode
}

// Len is the number of words in the instruction.
func (oc Opcode) Len() int {
	n, _ := oc.Op.Len()
	return n
}

// NumParams is the number of parameters which follow the instruction word.
func (oc Opcode) NumParams() int {
	return oc.Len() - 1
}

// Decode splits an instruction word into its operation and the addressing
// mode of each parameter.
// The hundreds digit is the mode of the first parameter, the thousands digit
// the mode of the second, and so on. Missing digits mean Position.
func Decode(word Word) (Opcode, error) {
	if word < 0 {
		return Opcode{}, ErrUnknownOpcode{Word: word}
	}
	oc := Opcode{Op: Op(word % 100)}
	n, ok := oc.Op.Len()
	if !ok {
		return Opcode{}, ErrUnknownOpcode{Word: word}
	}
	rest := word / 100
	for i := 0; i < n-1; i++ {
		m := Mode(rest % 10)
		if m > Relative {
			return Opcode{}, ErrInvalidMode{Word: word, Param: i, Mode: m}
		}
		oc.Modes[i] = m
		rest /= 10
	}
	return oc, nil
}
