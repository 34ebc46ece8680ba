package icvm

import (
	"fmt"
	"strconv"
	"strings"

	"go.brendoncarroll.net/exp/slices2"
)

// Line is one decoded instruction, or a single word of data.
type Line struct {
	Addr   Word
	Opcode Opcode
	// Params holds the raw parameter words.
	Params []Word
	// Data is set if the word at Addr could not be decoded as an instruction.
	Data bool
	Word Word
}

func (l Line) String() string {
	if l.Data {
		return fmt.Sprintf("%04d data %d", l.Addr, l.Word)
	}
	params := make([]param, len(l.Params))
	for i := range params {
		params[i] = param{mode: l.Opcode.Modes[i], raw: l.Params[i]}
	}
	args := slices2.Map(params, param.String)
	if isWrite(l.Opcode.Op) && len(args) > 0 {
		last := len(args) - 1
		args[last] = "-> " + args[last]
	}
	return strings.TrimRight(fmt.Sprintf("%04d %s %s", l.Addr, l.Opcode.Op, strings.Join(args, " ")), " ")
}

type param struct {
	mode Mode
	raw  Word
}

func (p param) String() string {
	switch p.mode {
	case Immediate:
		return strconv.FormatInt(p.raw, 10)
	case Relative:
		if p.raw < 0 {
			return fmt.Sprintf("[rb%d]", p.raw)
		}
		return fmt.Sprintf("[rb+%d]", p.raw)
	default:
		return fmt.Sprintf("[%d]", p.raw)
	}
}

func isWrite(op Op) bool {
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals, OpInput:
		return true
	}
	return false
}

// Disassemble decodes code from start to end, one instruction after another.
// Words which do not decode, or instructions which would run past the end of
// code, are reported as data.
func Disassemble(code []Word) []Line {
	var lines []Line
	for pc := 0; pc < len(code); {
		oc, err := Decode(code[pc])
		if err != nil || pc+oc.Len() > len(code) {
			lines = append(lines, Line{Addr: Word(pc), Data: true, Word: code[pc]})
			pc++
			continue
		}
		n := oc.Len()
		lines = append(lines, Line{
			Addr:   Word(pc),
			Opcode: oc,
			Params: append([]Word(nil), code[pc+1:pc+n]...),
			Word:   code[pc],
		})
		pc += n
	}
	return lines
}
