// package icamp chains Intcode machines into amplifier networks and searches
// for the phase settings which maximize their output.
package icamp

import (
	"context"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icvm"
)

type Word = intcode.Word

// Network is a line of independent VMs, each running its own copy of the
// same program.
// The output of stage i is the input of stage i+1.
type Network struct {
	stages []*icvm.VM
}

func NewNetwork(code []Word, n int) *Network {
	stages := make([]*icvm.VM, n)
	for i := range stages {
		stages[i] = icvm.New(code)
	}
	return &Network{stages: stages}
}

func (n *Network) Len() int {
	return len(n.stages)
}

func (n *Network) Stage(i int) *icvm.VM {
	return n.stages[i]
}

func (n *Network) sendPhases(phases []Word) error {
	if len(phases) != len(n.stages) {
		return ErrPhaseCount{Stages: len(n.stages), Phases: len(phases)}
	}
	for i, ph := range phases {
		n.stages[i].SendInput(ph)
	}
	return nil
}

// RunSinglePass sends each stage its phase, then passes signal through the
// stages in order. Every stage must halt.
// The output of the last stage is returned.
func (n *Network) RunSinglePass(phases []Word, signal Word) (Word, error) {
	if err := n.sendPhases(phases); err != nil {
		return 0, err
	}
	for i, vm := range n.stages {
		vm.SendInput(signal)
		state, err := vm.Run()
		if err != nil {
			return 0, ErrStage{Stage: i, Err: err}
		}
		if state != icvm.Halted {
			return 0, ErrStage{Stage: i, Err: ErrStageNotHalted}
		}
		out, ok := vm.Output()
		if !ok {
			return 0, ErrStage{Stage: i, Err: ErrNoOutput}
		}
		signal = out
	}
	return signal, nil
}

// RunFeedback sends each stage its phase, then drives the stages round robin,
// feeding the output of the last stage back into the first, until the last
// stage halts.
// The last signal produced is returned.
func (n *Network) RunFeedback(ctx context.Context, phases []Word, signal Word) (Word, error) {
	if err := n.sendPhases(phases); err != nil {
		return 0, err
	}
	s := scheduler{stages: n.stages, signal: signal}
	for {
		done, err := s.step()
		if err != nil {
			return 0, err
		}
		if done {
			break
		}
	}
	logctx.Debug(ctx, "feedback loop done",
		zap.Any("phases", phases),
		zap.Int("runs", s.j),
		zap.Int64("signal", s.signal),
	)
	return s.signal, nil
}

// scheduler cycles through a list of VMs, resuming each with the current signal.
type scheduler struct {
	stages []*icvm.VM
	signal Word
	// j counts the runs so far
	j int
}

// step runs the next stage once.
// It returns true when the last stage has halted.
func (s *scheduler) step() (bool, error) {
	i := s.j % len(s.stages)
	vm := s.stages[i]
	vm.SendInput(s.signal)
	state, err := vm.Run()
	if err != nil {
		return false, ErrStage{Stage: i, Err: err}
	}
	out, ok := vm.Output()
	if !ok {
		return false, ErrStage{Stage: i, Err: ErrNoOutput}
	}
	s.signal = out
	s.j++

	return i == len(s.stages)-1 && state == icvm.Halted, nil
}

// Evaluate runs a fresh network of len(phases) stages and returns its output.
func Evaluate(ctx context.Context, code []Word, mode Mode, phases []Word, signal Word) (Word, error) {
	n := NewNetwork(code, len(phases))
	switch mode {
	case Feedback:
		return n.RunFeedback(ctx, phases, signal)
	default:
		return n.RunSinglePass(phases, signal)
	}
}
