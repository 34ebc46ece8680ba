package icvm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"intcode.org/intcode/ictests"
)

func TestDisassemble(t *testing.T) {
	t.Parallel()
	lines := Disassemble([]Word{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	var strs []string
	for _, l := range lines {
		strs = append(strs, l.String())
	}
	require.Equal(t, []string{
		"0000 add [9] [10] -> [3]",
		"0004 mul [3] [11] -> [0]",
		"0008 halt",
		"0009 data 30",
		"0010 data 40",
		"0011 data 50",
	}, strs)
}

func TestDisassembleModes(t *testing.T) {
	t.Parallel()
	lines := Disassemble(ictests.Quine[:4])
	require.Len(t, lines, 2)
	require.Equal(t, "0000 arb 1", lines[0].String())
	require.Equal(t, "0002 out [rb-1]", lines[1].String())
}

func TestDisassembleTruncated(t *testing.T) {
	t.Parallel()
	lines := Disassemble([]Word{1, 0})
	require.Len(t, lines, 2)
	require.True(t, lines[0].Data)
	require.True(t, lines[1].Data)
}
