// package icweb serves a web interface and a JSON API for running Intcode
// programs and searching their phase settings.
package icweb

import (
	"context"
	"embed"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icamp"
	"intcode.org/intcode/icstore"
	"intcode.org/intcode/icvm"
)

type Word = intcode.Word

func Serve(ctx context.Context, l net.Listener, store *icstore.Store) error {
	return New(store).Serve(ctx, l)
}

// devPath is the path to the views from the directory the application is run.
// when it is empty the embedded views are used.
var devPath = "" // "./icweb"

type Server struct {
	store *icstore.Store
	srch  *icamp.Searcher
	app   *fiber.App
	bgCtx context.Context
}

func New(store *icstore.Store) *Server {
	s := &Server{
		store: store,
		srch:  icamp.NewSearcher(64, store),
		bgCtx: context.Background(),
	}

	var renderer *html.Engine
	if devPath != "" {
		renderer = html.New(devPath, ".html")
		renderer.Reload(true)
	} else {
		renderer = html.NewFileSystem(http.FS(viewFS), ".html")
	}
	renderer.AddFunc("words", formatWords)
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 renderer,
		ErrorHandler:          errorHandler,
	})
	app.Use(recover.New())
	// views
	app.Get("/", s.home)
	app.Post("/program", s.postProgram)
	app.Get("/program/:id", s.program)
	app.Post("/program/:id/search", s.search)

	v1 := app.Group("/v1")
	v1.Post("/program", s.apiPostProgram)
	v1.Get("/program/:id", s.apiGetProgram)
	v1.Get("/program/:id/disasm", s.apiDisasm)
	v1.Post("/program/:id/run", s.apiRun)
	v1.Post("/program/:id/phases", s.apiPhases)
	v1.Get("/program/:id/results", s.apiResults)
	v1.Get("/program/:id/ws", websocket.New(s.handleWS))
	s.app = app
	return s
}

// Serve blocks serving on l until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.bgCtx = ctx
	logctx.Infof(ctx, "serving on %v", l.Addr())
	go func() {
		<-ctx.Done()
		if err := s.app.Shutdown(); err != nil {
			logctx.Error(ctx, "shutting down", zap.Error(err))
		}
	}()
	return s.app.Listener(l)
}

func (s *Server) home(c *fiber.Ctx) error {
	ids, err := s.store.ListPrograms(c.Context())
	if err != nil {
		return err
	}
	return c.Render("view/home", struct {
		Hostname string
		Programs []string
	}{
		Hostname: c.Hostname(),
		Programs: slices2.Map(ids, intcode.ProgramID.String),
	}, "view/layout")
}

func (s *Server) postProgram(c *fiber.Ctx) error {
	code, err := parseCode(c.FormValue("code"))
	if err != nil {
		return err
	}
	id, err := s.store.PutProgram(c.Context(), code)
	if err != nil {
		return err
	}
	return c.Redirect("/program/" + id.String())
}

func (s *Server) program(c *fiber.Ctx) error {
	ctx := c.Context()
	id, code, err := s.getProgram(c)
	if err != nil {
		return err
	}
	recs, err := s.store.ListResults(ctx, id)
	if err != nil {
		return err
	}
	return c.Render("view/program", struct {
		Hostname string
		ID       string
		Code     string
		Lines    []icvm.Line
		Results  []icstore.Record
	}{
		Hostname: c.Hostname(),
		ID:       id.String(),
		Code:     intcode.Format(code),
		Lines:    icvm.Disassemble(code),
		Results:  recs,
	}, "view/layout")
}

func (s *Server) search(c *fiber.Ctx) error {
	id, code, err := s.getProgram(c)
	if err != nil {
		return err
	}
	var req phasesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	p, err := req.params()
	if err != nil {
		return err
	}
	if _, err := s.srch.Search(s.bgCtx, code, p); err != nil {
		return err
	}
	return c.Redirect("/program/" + id.String())
}

func (s *Server) getProgram(c *fiber.Ctx) (intcode.ProgramID, []Word, error) {
	id, err := intcode.ParseProgramID(c.Params("id"))
	if err != nil {
		return intcode.ProgramID{}, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	code, err := s.store.GetProgram(c.Context(), id)
	if err != nil {
		return intcode.ProgramID{}, nil, err
	}
	return id, code, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &ferr):
		code = ferr.Code
	case errors.As(err, &icstore.ErrProgramNotFound{}):
		code = fiber.StatusNotFound
	case errors.As(err, &icamp.ErrPhaseCount{}), errors.Is(err, errBadCode):
		code = fiber.StatusBadRequest
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}

var errBadCode = errors.New("icweb: could not parse program")

func parseCode(x string) ([]Word, error) {
	code, err := intcode.Parse([]byte(x))
	if err != nil {
		return nil, errors.Join(errBadCode, err)
	}
	return code, nil
}

func formatWords(xs []Word) string {
	return strings.Join(slices2.Map(xs, func(x Word) string {
		return strconv.FormatInt(x, 10)
	}), " ")
}

//go:embed view/*
var viewFS embed.FS
