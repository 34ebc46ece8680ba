// package ictests holds Intcode programs with known behavior, shared by the
// tests of several packages.
package ictests

import "intcode.org/intcode"

type Word = intcode.Word

// MemoryCase is a program with the memory it leaves behind when it halts.
type MemoryCase struct {
	Name string
	Code []Word
	End  []Word
}

func MemoryCases() []MemoryCase {
	return []MemoryCase{
		{Name: "Halt", Code: []Word{99}, End: []Word{99}},
		{
			Name: "AddMul",
			Code: []Word{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50},
			End:  []Word{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50},
		},
		{Name: "1+1", Code: []Word{1, 0, 0, 0, 99}, End: []Word{2, 0, 0, 0, 99}},
		{Name: "3*2", Code: []Word{2, 3, 0, 3, 99}, End: []Word{2, 3, 0, 6, 99}},
		{Name: "99*99", Code: []Word{2, 4, 4, 5, 99, 0}, End: []Word{2, 4, 4, 5, 99, 9801}},
		{Name: "SelfModify", Code: []Word{1, 1, 1, 4, 99, 5, 6, 0, 99}, End: []Word{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{Name: "ImmediateMul", Code: []Word{1002, 4, 3, 4, 33}, End: []Word{1002, 4, 3, 4, 99}},
		{Name: "NegativeImmediate", Code: []Word{1101, 100, -1, 4, 0}, End: []Word{1101, 100, -1, 4, 99}},
	}
}

var (
	// EqualTo8 outputs 1 if its input equals 8, otherwise 0. Position mode.
	EqualTo8 = []Word{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}
	// EqualTo8Immediate is EqualTo8 using immediate mode.
	EqualTo8Immediate = []Word{3, 3, 1108, -1, 8, 3, 4, 3, 99}
	// LessThan8 outputs 1 if its input is less than 8, otherwise 0. Position mode.
	LessThan8 = []Word{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}
	// LessThan8Immediate is LessThan8 using immediate mode.
	LessThan8Immediate = []Word{3, 3, 1107, -1, 8, 3, 4, 3, 99}

	// NonZero outputs 0 if its input is 0, otherwise 1. Uses jumps.
	NonZero = []Word{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}
	// NonZeroImmediate is NonZero using immediate mode.
	NonZeroImmediate = []Word{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}

	// Compare8 outputs 999 if its input is below 8, 1000 if it is 8, and 1001 if it is above 8.
	Compare8 = []Word{
		3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
		1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
		999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99,
	}

	// Quine outputs a copy of itself, using relative mode.
	Quine = []Word{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	// BigMul outputs a 16 digit number.
	BigMul = []Word{1102, 34915192, 34915192, 7, 4, 7, 99, 0}
	// BigOut outputs the large number in its middle.
	BigOut = []Word{104, 1125899906842624, 99}

	// EchoSum reads two inputs and outputs their sum.
	EchoSum = []Word{3, 11, 3, 12, 1, 11, 12, 13, 4, 13, 99, 0, 0, 0}
)

// PhaseCase is an amplifier program with its best phase settings.
type PhaseCase struct {
	Name     string
	Code     []Word
	Feedback bool
	Phases   []Word
	Score    Word
}

func PhaseCases() []PhaseCase {
	return []PhaseCase{
		{
			Name:   "43210",
			Code:   []Word{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0},
			Phases: []Word{4, 3, 2, 1, 0},
			Score:  43210,
		},
		{
			Name: "54321",
			Code: []Word{
				3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23,
				101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0,
			},
			Phases: []Word{0, 1, 2, 3, 4},
			Score:  54321,
		},
		{
			Name: "65210",
			Code: []Word{
				3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33,
				1002, 33, 7, 33, 1, 33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0,
			},
			Phases: []Word{1, 0, 4, 3, 2},
			Score:  65210,
		},
		{
			Name: "Feedback139629729",
			Code: []Word{
				3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
				27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5,
			},
			Feedback: true,
			Phases:   []Word{9, 8, 7, 6, 5},
			Score:    139629729,
		},
		{
			Name: "Feedback18216",
			Code: []Word{
				3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
				-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
				53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10,
			},
			Feedback: true,
			Phases:   []Word{9, 7, 8, 5, 6},
			Score:    18216,
		},
	}
}
