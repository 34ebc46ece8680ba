package icweb

import (
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icamp"
	"intcode.org/intcode/icstore"
	"intcode.org/intcode/icvm"
)

type errorResponse struct {
	Error string `json:"error"`
}

type programResponse struct {
	ID   intcode.ProgramID `json:"id"`
	Code []Word            `json:"code,omitempty"`
}

// runRequest is the body of a run request, and each message sent by the
// client during a session.
type runRequest struct {
	Input []Word `json:"input"`
}

// runResponse is the result of a run, and each message sent by the server
// during a session.
type runResponse struct {
	Output []Word `json:"output"`
	State  string `json:"state"`
	Error  string `json:"error,omitempty"`
}

type phasesRequest struct {
	Mode   string `json:"mode" form:"mode"`
	Stages int    `json:"stages" form:"stages"`
	// Offset defaults to the conventional offset for the mode.
	Offset *Word `json:"offset" form:"offset"`
	Signal Word  `json:"signal" form:"signal"`
}

func (r phasesRequest) params() (icamp.Params, error) {
	mode := icamp.SinglePass
	if r.Mode != "" {
		var err error
		if mode, err = icamp.ParseMode(r.Mode); err != nil {
			return icamp.Params{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	stages := r.Stages
	if stages == 0 {
		stages = 5
	}
	if stages < 1 || stages > icamp.MaxStages {
		return icamp.Params{}, fiber.NewError(fiber.StatusBadRequest, "stages out of range")
	}
	p := icamp.NewParams(mode, stages)
	if r.Offset != nil {
		p.Offset = *r.Offset
	}
	p.Signal = r.Signal
	return p, nil
}

type phasesResponse struct {
	Phases []Word `json:"phases"`
	Score  Word   `json:"score"`
}

type recordJSON struct {
	ID     int64  `json:"id"`
	Mode   string `json:"mode"`
	Stages int    `json:"stages"`
	Offset Word   `json:"offset"`
	Signal Word   `json:"signal"`
	Phases []Word `json:"phases"`
	Score  Word   `json:"score"`
}

func newRecordJSON(rec icstore.Record) recordJSON {
	return recordJSON{
		ID:     rec.ID,
		Mode:   rec.Mode.String(),
		Stages: rec.Stages,
		Offset: rec.Offset,
		Signal: rec.Signal,
		Phases: rec.Phases,
		Score:  rec.Score,
	}
}

func (s *Server) apiPostProgram(c *fiber.Ctx) error {
	code, err := parseCode(string(c.Body()))
	if err != nil {
		return err
	}
	id, err := s.store.PutProgram(c.Context(), code)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(programResponse{ID: id})
}

func (s *Server) apiGetProgram(c *fiber.Ctx) error {
	id, code, err := s.getProgram(c)
	if err != nil {
		return err
	}
	return c.JSON(programResponse{ID: id, Code: code})
}

func (s *Server) apiDisasm(c *fiber.Ctx) error {
	_, code, err := s.getProgram(c)
	if err != nil {
		return err
	}
	lines := slices2.Map(icvm.Disassemble(code), icvm.Line.String)
	return c.SendString(strings.Join(lines, "\n") + "\n")
}

// apiRun runs a program to completion with the given input.
// A program which faults or waits for more input is not an error for the
// request, the state is reported in the response.
func (s *Server) apiRun(c *fiber.Ctx) error {
	_, code, err := s.getProgram(c)
	if err != nil {
		return err
	}
	var req runRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	vm := icvm.New(code)
	vm.SendInput(req.Input...)
	state, err := vm.Run()
	return c.JSON(makeRunResponse(vm.AllOutput(), state, err))
}

func (s *Server) apiPhases(c *fiber.Ctx) error {
	_, code, err := s.getProgram(c)
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
	res, err := s.srch.Search(s.bgCtx, code, p)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(phasesResponse{Phases: res.Phases, Score: res.Score})
}

func (s *Server) apiResults(c *fiber.Ctx) error {
	id, _, err := s.getProgram(c)
	if err != nil {
		return err
	}
	recs, err := s.store.ListResults(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(slices2.Map(recs, newRecordJSON))
}

// handleWS runs a program interactively.
// Every time the VM stops, the output produced since the last message is sent
// along with the state. While the VM is waiting, each message from the client
// is queued as input and the VM is resumed.
// The session ends when the VM halts or faults.
func (s *Server) handleWS(c *websocket.Conn) {
	ctx := s.bgCtx
	id, err := intcode.ParseProgramID(c.Params("id"))
	if err != nil {
		logctx.Error(ctx, "websocket", zap.Error(err))
		return
	}
	logctx.Info(ctx, "started session", zap.Stringer("program", id))
	defer logctx.Info(ctx, "closing session", zap.Stringer("program", id))

	if err := func() error {
		code, err := s.store.GetProgram(ctx, id)
		if err != nil {
			return err
		}
		vm := icvm.New(code)
		sent := 0
		for {
			state, err := vm.Run()
			out := vm.AllOutput()
			if err := c.WriteJSON(makeRunResponse(out[sent:], state, err)); err != nil {
				return err
			}
			sent = len(out)
			if state != icvm.WaitingForInput {
				return nil
			}
			var req runRequest
			if err := c.ReadJSON(&req); err != nil {
				return err
			}
			vm.SendInput(req.Input...)
		}
	}(); err != nil {
		logctx.Error(ctx, "handling websocket", zap.Error(err))
		return
	}
}

func makeRunResponse(out []Word, state icvm.State, err error) runResponse {
	resp := runResponse{Output: out, State: state.String()}
	if out == nil {
		resp.Output = []Word{}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
