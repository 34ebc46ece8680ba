package iccmd

import (
	"strings"

	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/star"

	"intcode.org/intcode"
	"intcode.org/intcode/icstore"
)

var historyCmd = star.Command{
	Metadata: star.Metadata{
		Short: "list the recorded phase searches for a program",
	},
	Flags: []star.IParam{DBParam, fileParam},
	F: func(c star.Context) error {
		code, err := loadProgram(c)
		if err != nil {
			return err
		}
		db := DBParam.Load(c)
		defer db.Close()
		s := icstore.New(db)
		id := intcode.Hash(code)
		recs, err := s.ListResults(c.Context, id)
		if err != nil {
			return err
		}
		c.Printf("PROGRAM: %v\n", id)
		c.Printf("ID\tMODE\tSTAGES\tOFFSET\tPHASES\tSCORE\n")
		for _, rec := range recs {
			c.Printf("%d\t%v\t%d\t%d\t%s\t%d\n", rec.ID, rec.Mode, rec.Stages, rec.Offset,
				strings.Join(slices2.Map(rec.Phases, formatWord), " "), rec.Score)
		}
		return nil
	},
}
