package icvm

import (
	"errors"
	"fmt"
)

// ErrInputClosed is returned when the channel attached with AttachInput
// has been closed and the input queue is empty.
var ErrInputClosed = errors.New("icvm: input channel closed")

type ErrUnknownOpcode struct {
	Word Word
}

func (e ErrUnknownOpcode) Error() string {
	return fmt.Sprintf("icvm: unknown opcode %d (word %d)", e.Word%100, e.Word)
}

type ErrInvalidMode struct {
	Word  Word
	Param int
	Mode  Mode
}

func (e ErrInvalidMode) Error() string {
	return fmt.Sprintf("icvm: invalid mode %d for parameter %d (word %d)", e.Mode, e.Param+1, e.Word)
}

// ErrInvalidWriteTarget is returned when the destination parameter of an
// instruction is in Immediate mode.
type ErrInvalidWriteTarget struct {
	Op    Op
	Param int
}

func (e ErrInvalidWriteTarget) Error() string {
	return fmt.Sprintf("icvm: %v: parameter %d is a write target in immediate mode", e.Op, e.Param+1)
}

type ErrNegativeAddress struct {
	Addr Word
}

func (e ErrNegativeAddress) Error() string {
	return fmt.Sprintf("icvm: negative address %d", e.Addr)
}

// ErrAddressTooLarge is returned when a write would grow memory past MaxMemory.
type ErrAddressTooLarge struct {
	Addr Word
}

func (e ErrAddressTooLarge) Error() string {
	return fmt.Sprintf("icvm: address %d is too large, memory is limited to %d words", e.Addr, MaxMemory)
}

// ErrFault wraps the error which stopped a VM with the position of the
// instruction that caused it.
type ErrFault struct {
	PC  Word
	Err error
}

func (e ErrFault) Error() string {
	return fmt.Sprintf("icvm: fault at pc=%d: %v", e.PC, e.Err)
}

func (e ErrFault) Unwrap() error {
	return e.Err
}
