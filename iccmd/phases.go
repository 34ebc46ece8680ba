package iccmd

import (
	"fmt"
	"strings"

	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/star"

	"intcode.org/intcode/icamp"
	"intcode.org/intcode/icstore"
	"intcode.org/intcode/nounverb"
)

var stagesParam = star.Param[int]{
	Name:    "stages",
	Default: star.Ptr("5"),
	Parse: func(x string) (int, error) {
		n, err := parseWord(x)
		return int(n), err
	},
}

var modeParam = star.Param[icamp.Mode]{
	Name:    "mode",
	Default: star.Ptr(icamp.SinglePass.String()),
	Parse:   icamp.ParseMode,
}

// offsetParam is empty by default, meaning the mode's conventional offset.
var offsetParam = star.Param[string]{
	Name:    "offset",
	Default: star.Ptr(""),
	Parse:   star.ParseString,
}

var (
	signalParam = wordParam("signal", "0")
	targetParam = wordParam("target", "19690720")
	maxParam    = wordParam("max", "99")
)

var phasesCmd = star.Command{
	Metadata: star.Metadata{
		Short: "find the amplifier phase settings which produce the largest signal",
	},
	Flags: []star.IParam{fileParam, stagesParam, modeParam, offsetParam, signalParam, DBParam, verboseParam},
	F: func(c star.Context) error {
		ctx, err := newContext(c)
		if err != nil {
			return err
		}
		code, err := loadProgram(c)
		if err != nil {
			return err
		}
		p := icamp.NewParams(modeParam.Load(c), stagesParam.Load(c))
		if x := offsetParam.Load(c); x != "" {
			if p.Offset, err = parseWord(x); err != nil {
				return fmt.Errorf("parsing offset: %w", err)
			}
		}
		p.Signal = signalParam.Load(c)

		db := DBParam.Load(c)
		defer db.Close()
		s := icamp.NewSearcher(1, icstore.New(db))
		res, err := s.Search(ctx, code, p)
		if err != nil {
			return err
		}
		c.Printf("PHASES: %s\n", strings.Join(slices2.Map(res.Phases, formatWord), " "))
		c.Printf("SCORE: %d\n", res.Score)
		return nil
	},
}

var nounVerbCmd = star.Command{
	Metadata: star.Metadata{
		Short: "find the noun and verb which make a program leave target in cell 0",
	},
	Flags: []star.IParam{fileParam, targetParam, maxParam, verboseParam},
	F: func(c star.Context) error {
		ctx, err := newContext(c)
		if err != nil {
			return err
		}
		code, err := loadProgram(c)
		if err != nil {
			return err
		}
		pair, err := nounverb.Find(ctx, code, targetParam.Load(c), maxParam.Load(c))
		if err != nil {
			return err
		}
		c.Printf("NOUN: %d VERB: %d ANSWER: %d\n", pair.Noun, pair.Verb, pair.Answer())
		return nil
	},
}
