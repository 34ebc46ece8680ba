// package nounverb searches for the pair of configuration cells which makes
// an Intcode program leave a given value in memory cell 0.
//
// Cell 1 holds the noun, cell 2 holds the verb.
package nounverb

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intcode.org/intcode"
	"intcode.org/intcode/icvm"
)

type Word = intcode.Word

const (
	NounAddr   Word = 1
	VerbAddr   Word = 2
	ResultAddr Word = 0

	// DefaultMax is the largest noun and verb searched by default.
	DefaultMax Word = 99
)

var ErrNotFound = errors.New("nounverb: no noun and verb produce the target")

// Run patches noun and verb into a copy of code, runs it until it halts, and
// returns the value left in cell 0.
func Run(code []Word, noun, verb Word) (Word, error) {
	vm := icvm.New(code)
	if err := vm.Poke(NounAddr, noun); err != nil {
		return 0, err
	}
	if err := vm.Poke(VerbAddr, verb); err != nil {
		return 0, err
	}
	state, err := vm.Run()
	if err != nil {
		return 0, err
	}
	if state != icvm.Halted {
		return 0, fmt.Errorf("nounverb: program is %v", state)
	}
	return vm.Peek(ResultAddr)
}

// Pair is a noun and verb.
type Pair struct {
	Noun, Verb Word
}

// Answer is the conventional single number encoding of the pair.
func (p Pair) Answer() Word {
	return 100*p.Noun + p.Verb
}

// Find tries every noun and verb in [0, max] and returns the first pair,
// ordered by noun then verb, for which Run returns target.
// Pairs for which the program faults are skipped.
// Nouns are searched concurrently.
func Find(ctx context.Context, code []Word, target, max Word) (Pair, error) {
	if max < 0 {
		return Pair{}, fmt.Errorf("nounverb: max must be >= 0, have %d", max)
	}
	code = intcode.Clone(code)
	var (
		mu    sync.Mutex
		best  Pair
		found bool
	)
	eg, ctx2 := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for noun := Word(0); noun <= max; noun++ {
		eg.Go(func() error {
			for verb := Word(0); verb <= max; verb++ {
				if err := ctx2.Err(); err != nil {
					return err
				}
				mu.Lock()
				done := found && best.Noun < noun
				mu.Unlock()
				if done {
					return nil
				}
				out, err := Run(code, noun, verb)
				if err != nil {
					logctx.Debug(ctx2, "skipping pair", zap.Int64("noun", noun), zap.Int64("verb", verb), zap.Error(err))
					continue
				}
				if out != target {
					continue
				}
				mu.Lock()
				if !found || noun < best.Noun {
					best, found = Pair{Noun: noun, Verb: verb}, true
				}
				mu.Unlock()
				return nil
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Pair{}, err
	}
	if !found {
		return Pair{}, ErrNotFound
	}
	logctx.Info(ctx, "found noun and verb", zap.Int64("noun", best.Noun), zap.Int64("verb", best.Verb))
	return best, nil
}
