package iccmd

import (
	"net"

	"go.brendoncarroll.net/star"

	"intcode.org/intcode/icstore"
	"intcode.org/intcode/icweb"
)

var ListenerParam = star.Param[net.Listener]{
	Name:    "l",
	Default: star.Ptr("127.0.0.1:6666"),
	Parse: func(x string) (net.Listener, error) {
		return net.Listen("tcp", x)
	},
}

var serveCmd = star.Command{
	Metadata: star.Metadata{
		Short: "serve the web interface and API",
	},
	Flags: []star.IParam{DBParam, ListenerParam, verboseParam},
	F: func(c star.Context) error {
		ctx, err := newContext(c)
		if err != nil {
			return err
		}
		db := DBParam.Load(c)
		defer db.Close()
		lis := ListenerParam.Load(c)
		defer lis.Close()
		return icweb.Serve(ctx, lis, icstore.New(db))
	},
}
