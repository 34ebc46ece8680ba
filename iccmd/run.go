package iccmd

import (
	"strconv"

	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icvm"
)

var inputParam = star.Param[intcode.Word]{
	Name:     "in",
	Repeated: true,
	Parse:    parseWord,
}

var runCmd = star.Command{
	Metadata: star.Metadata{
		Short: "run a program, printing its output",
	},
	Flags: []star.IParam{fileParam, inputParam, verboseParam},
	F: func(c star.Context) error {
		ctx, err := newContext(c)
		if err != nil {
			return err
		}
		code, err := loadProgram(c)
		if err != nil {
			return err
		}
		vm := icvm.New(code)
		vm.SendInput(inputParam.LoadAll(c)...)
		state, err := vm.Run()
		if err != nil {
			return err
		}
		logctx.Info(ctx, "program stopped",
			zap.Stringer("program", intcode.Hash(code)),
			zap.Stringer("state", state),
			zap.Uint64("steps", vm.Steps()),
		)
		for _, line := range slices2.Map(vm.AllOutput(), formatWord) {
			c.Printf("%s\n", line)
		}
		if state != icvm.Halted {
			c.Printf("STATE: %v\n", state)
		}
		return nil
	},
}

var disasmCmd = star.Command{
	Metadata: star.Metadata{
		Short: "print the instructions of a program",
	},
	Flags: []star.IParam{fileParam},
	F: func(c star.Context) error {
		code, err := loadProgram(c)
		if err != nil {
			return err
		}
		for _, l := range icvm.Disassemble(code) {
			c.Printf("%v\n", l)
		}
		return nil
	},
}

func formatWord(x intcode.Word) string {
	return strconv.FormatInt(x, 10)
}
