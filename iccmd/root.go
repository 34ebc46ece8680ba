// package iccmd implements the intcode command line tool.
package iccmd

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icstore"
)

func Root() star.Command {
	return root
}

var root = star.NewDir(star.Metadata{
	Short: "Intcode virtual machine",
}, map[star.Symbol]star.Command{
	"run":    runCmd,
	"disasm": disasmCmd,

	"phases":   phasesCmd,
	"nounverb": nounVerbCmd,

	"history": historyCmd,
	"serve":   serveCmd,
})

var DBParam = star.Param[*sqlx.DB]{
	Name:    "db",
	Default: star.Ptr(":memory:"),
	Parse: func(x string) (*sqlx.DB, error) {
		db, err := icstore.Open(x)
		if err != nil {
			return nil, err
		}
		if err := icstore.Setup(context.Background(), db); err != nil {
			return nil, err
		}
		return db, nil
	},
}

var fileParam = star.Param[*os.File]{
	Name: "f",
	Parse: func(x string) (*os.File, error) {
		return os.Open(x)
	},
}

var verboseParam = star.Param[bool]{
	Name:    "v",
	Default: star.Ptr("false"),
	Parse:   strconv.ParseBool,
}

var wordParam = func(name, def string) star.Param[intcode.Word] {
	return star.Param[intcode.Word]{
		Name:    star.Symbol(name),
		Default: star.Ptr(def),
		Parse:   parseWord,
	}
}

func parseWord(x string) (intcode.Word, error) {
	return strconv.ParseInt(x, 10, intcode.WordBits)
}

// loadProgram reads and parses the program passed with -f
func loadProgram(c star.Context) ([]intcode.Word, error) {
	f := fileParam.Load(c)
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return intcode.Parse(data)
}

// newContext returns c.Context with a logger attached.
// Logging is off unless -v is set.
func newContext(c star.Context) (context.Context, error) {
	l := zap.NewNop()
	if verboseParam.Load(c) {
		var err error
		if l, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}
	return logctx.NewContext(c.Context, l), nil
}
