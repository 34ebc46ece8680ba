package icamp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intcode.org/intcode/icvm"
	"intcode.org/intcode/ictests"
	"intcode.org/intcode/internal/testutil"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	for _, tc := range ictests.PhaseCases() {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			mode := SinglePass
			if tc.Feedback {
				mode = Feedback
			}
			score, err := Evaluate(ctx, tc.Code, mode, tc.Phases, 0)
			require.NoError(t, err)
			require.Equal(t, tc.Score, score)
		})
	}
}

func TestSinglePassStagesIndependent(t *testing.T) {
	t.Parallel()
	tc := ictests.PhaseCases()[0]
	n := NewNetwork(tc.Code, 5)
	_, err := n.RunSinglePass(tc.Phases, 0)
	require.NoError(t, err)
	for i := 0; i < n.Len(); i++ {
		require.True(t, n.Stage(i).IsFinished())
		require.Len(t, n.Stage(i).AllOutput(), 1)
	}
	// each stage saw a different phase, so their memories differ
	require.NotEqual(t, n.Stage(0).Memory(), n.Stage(4).Memory())
}

func TestSinglePassNotHalted(t *testing.T) {
	t.Parallel()
	// reads three inputs, so it waits after phase and signal
	code := []Word{3, 0, 3, 0, 3, 0, 99}
	n := NewNetwork(code, 2)
	_, err := n.RunSinglePass([]Word{0, 1}, 0)
	require.ErrorIs(t, err, ErrStageNotHalted)
	var se ErrStage
	require.ErrorAs(t, err, &se)
	require.Equal(t, 0, se.Stage)
}

func TestSinglePassNoOutput(t *testing.T) {
	t.Parallel()
	code := []Word{3, 0, 3, 0, 99}
	n := NewNetwork(code, 3)
	_, err := n.RunSinglePass([]Word{0, 1, 2}, 0)
	require.ErrorIs(t, err, ErrNoOutput)
}

func TestPhaseCount(t *testing.T) {
	t.Parallel()
	n := NewNetwork(ictests.PhaseCases()[0].Code, 5)
	_, err := n.RunSinglePass([]Word{0, 1, 2}, 0)
	require.ErrorAs(t, err, &ErrPhaseCount{})
}

func TestStageFault(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	_, err := Evaluate(ctx, []Word{3, 0, 3, 0, 42}, Feedback, []Word{5, 6}, 0)
	require.ErrorAs(t, err, &icvm.ErrUnknownOpcode{})
	require.ErrorAs(t, err, &ErrStage{})
}

func TestFeedbackResumesStages(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	tc := ictests.PhaseCases()[3]
	require.True(t, tc.Feedback)
	n := NewNetwork(tc.Code, 5)
	score, err := n.RunFeedback(ctx, tc.Phases, 0)
	require.NoError(t, err)
	require.Equal(t, tc.Score, score)
	for i := 0; i < n.Len(); i++ {
		require.True(t, n.Stage(i).IsFinished())
		// every stage went around the loop more than once
		require.Greater(t, len(n.Stage(i).AllOutput()), 1)
	}
}
