package icamp

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOutput is returned when a stage returns control without ever
	// producing an output.
	ErrNoOutput = errors.New("icamp: stage produced no output")
	// ErrStageNotHalted is returned in single pass mode when a stage waits
	// for more input instead of halting.
	ErrStageNotHalted = errors.New("icamp: stage is waiting for input")
)

type ErrStage struct {
	Stage int
	Err   error
}

func (e ErrStage) Error() string {
	return fmt.Sprintf("stage %d: %v", e.Stage, e.Err)
}

func (e ErrStage) Unwrap() error {
	return e.Err
}

type ErrPhaseCount struct {
	Stages, Phases int
}

func (e ErrPhaseCount) Error() string {
	return fmt.Sprintf("icamp: %d phases for %d stages", e.Phases, e.Stages)
}
