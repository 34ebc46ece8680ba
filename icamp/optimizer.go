package icamp

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intcode.org/intcode"
)

// MaxStages is the largest network FindBestPhaseSettings will search.
const MaxStages = 10

// Mode selects how the stages of a network are wired.
type Mode uint8

const (
	// SinglePass: the signal passes through each stage once.
	SinglePass Mode = iota
	// Feedback: the last stage feeds the first until the last stage halts.
	Feedback
)

func (m Mode) String() string {
	switch m {
	case SinglePass:
		return "single-pass"
	case Feedback:
		return "feedback"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// DefaultOffset is the lowest phase setting used by convention in this mode.
func (m Mode) DefaultOffset() Word {
	if m == Feedback {
		return 5
	}
	return 0
}

// ParseMode is the inverse of Mode.String
func ParseMode(x string) (Mode, error) {
	switch x {
	case "single-pass":
		return SinglePass, nil
	case "feedback":
		return Feedback, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", x)
	}
}

// Params configure a phase setting search.
type Params struct {
	Stages int
	Mode   Mode
	// Offset is the lowest phase. The phases searched are Offset ..< Offset+Stages
	Offset Word
	// Signal is sent to the first stage after its phase.
	Signal Word
	// Workers limits the number of permutations evaluated concurrently.
	// If Workers <= 0, GOMAXPROCS is used.
	Workers int
}

// NewParams returns Params for mode with the conventional offset.
func NewParams(mode Mode, stages int) Params {
	return Params{
		Stages: stages,
		Mode:   mode,
		Offset: mode.DefaultOffset(),
	}
}

func (p Params) validate() error {
	if p.Stages < 1 || p.Stages > MaxStages {
		return fmt.Errorf("icamp: stages must be in [1, %d], have %d", MaxStages, p.Stages)
	}
	return nil
}

// Result is the outcome of a phase setting search.
type Result struct {
	Phases []Word
	Score  Word
}

func (r Result) Clone() Result {
	return Result{Phases: slices.Clone(r.Phases), Score: r.Score}
}

// FindBestPhaseSettings evaluates a fresh network for every permutation of the
// phases, and returns the permutation producing the largest output.
// If several permutations tie, the first in lexicographic order wins.
// Permutations are evaluated concurrently; any error aborts the search.
func FindBestPhaseSettings(ctx context.Context, code []Word, p Params) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	code = intcode.Clone(code)

	var mu sync.Mutex
	best, bestIdx := Result{}, -1
	eg, ctx2 := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	idx := 0
	for phases := range Permutations(p.Offset, p.Stages) {
		if ctx2.Err() != nil {
			break
		}
		i := idx
		idx++
		eg.Go(func() error {
			score, err := Evaluate(ctx2, code, p.Mode, phases, p.Signal)
			if err != nil {
				return fmt.Errorf("phases %v: %w", phases, err)
			}
			mu.Lock()
			defer mu.Unlock()
			if bestIdx < 0 || score > best.Score || (score == best.Score && i < bestIdx) {
				best, bestIdx = Result{Phases: phases, Score: score}, i
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logctx.Info(ctx, "phase search done",
		zap.Stringer("mode", p.Mode),
		zap.Int("stages", p.Stages),
		zap.Int("permutations", idx),
		zap.Any("phases", best.Phases),
		zap.Int64("score", best.Score),
		zap.Duration("elapsed", time.Since(start)),
	)
	return best, nil
}
