package icweb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/fasthttp/websocket"
	"github.com/stretchr/testify/require"

	"intcode.org/intcode"
	"intcode.org/intcode/icstore"
	"intcode.org/intcode/ictests"
	"intcode.org/intcode/internal/testutil"
)

func TestPostProgram(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	code := ictests.EchoSum

	var pr programResponse
	status := doJSON(t, http.MethodPost, mkURL(addr, "/v1/program"), "text/plain", intcode.Format(code), &pr)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, intcode.Hash(code), pr.ID)

	var pr2 programResponse
	status = doJSON(t, http.MethodGet, programURL(addr, pr.ID, ""), "", "", &pr2)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, code, pr2.Code)

	var er errorResponse
	status = doJSON(t, http.MethodPost, mkURL(addr, "/v1/program"), "text/plain", "1,x,3", &er)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, er.Error)
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	var er errorResponse
	status := doJSON(t, http.MethodGet, programURL(addr, intcode.Hash([]Word{99}), "/disasm"), "", "", &er)
	require.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, http.MethodGet, mkURL(addr, "/v1/program/not-an-id"), "", "", &er)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestRun(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	id := postProgram(t, addr, ictests.EchoSum)

	tcs := []struct {
		Name   string
		Input  []Word
		Output []Word
		State  string
	}{
		{Name: "Sum", Input: []Word{2, 3}, Output: []Word{5}, State: "halted"},
		{Name: "Negative", Input: []Word{-10, 3}, Output: []Word{-7}, State: "halted"},
		{Name: "Waiting", Input: []Word{1}, Output: []Word{}, State: "waiting-for-input"},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			var resp runResponse
			status := postJSON(t, programURL(addr, id, "/run"), runRequest{Input: tc.Input}, &resp)
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, tc.Output, resp.Output)
			require.Equal(t, tc.State, resp.State)
			require.Empty(t, resp.Error)
		})
	}
}

func TestRunFault(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	id := postProgram(t, addr, []Word{104, 7, 42})
	var resp runResponse
	status := postJSON(t, programURL(addr, id, "/run"), runRequest{}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, []Word{7}, resp.Output)
	require.Equal(t, "faulted", resp.State)
	require.Contains(t, resp.Error, "unknown opcode")
}

func TestRunHugeWrite(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	id := postProgram(t, addr, []Word{1101, 1, 1, math.MaxInt64, 99})
	var resp runResponse
	status := postJSON(t, programURL(addr, id, "/run"), runRequest{}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "faulted", resp.State)
	require.Contains(t, resp.Error, "too large")

	// the server is still up
	var pr programResponse
	status = doJSON(t, http.MethodGet, programURL(addr, id, ""), "", "", &pr)
	require.Equal(t, http.StatusOK, status)
}

func TestPhases(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	for _, tc := range ictests.PhaseCases() {
		id := postProgram(t, addr, tc.Code)
		req := phasesRequest{Mode: "single-pass"}
		if tc.Feedback {
			req.Mode = "feedback"
		}
		var resp phasesResponse
		status := postJSON(t, programURL(addr, id, "/phases"), req, &resp)
		require.Equal(t, http.StatusOK, status, tc.Name)
		require.Equal(t, tc.Phases, resp.Phases, tc.Name)
		require.Equal(t, tc.Score, resp.Score, tc.Name)

		var recs []recordJSON
		status = doJSON(t, http.MethodGet, programURL(addr, id, "/results"), "", "", &recs)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, recs, 1)
		require.Equal(t, req.Mode, recs[0].Mode)
		require.Equal(t, tc.Score, recs[0].Score)
	}

	id := postProgram(t, addr, ictests.PhaseCases()[0].Code)
	var er errorResponse
	status := postJSON(t, programURL(addr, id, "/phases"), phasesRequest{Mode: "sideways"}, &er)
	require.Equal(t, http.StatusBadRequest, status)
	status = postJSON(t, programURL(addr, id, "/phases"), phasesRequest{Stages: 11}, &er)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestPages(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	id := postProgram(t, addr, ictests.Quine)

	for _, path := range []string{"/", "/program/" + id.String()} {
		resp, err := http.Get(mkURL(addr, path))
		require.NoError(t, err)
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "%s: %s", path, data)
		require.Contains(t, string(data), id.String())
	}
}

func TestSession(t *testing.T) {
	t.Parallel()
	addr := startServing(t)
	id := postProgram(t, addr, ictests.Compare8)

	u := fmt.Sprintf("ws://%s/v1/program/%v/ws", addr.String(), id)
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg runResponse
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "waiting-for-input", msg.State)
	require.Empty(t, msg.Output)

	require.NoError(t, conn.WriteJSON(runRequest{Input: []Word{9}}))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "halted", msg.State)
	require.Equal(t, []Word{1001}, msg.Output)
}

func postProgram(t testing.TB, addr net.Addr, code []Word) intcode.ProgramID {
	var pr programResponse
	status := doJSON(t, http.MethodPost, mkURL(addr, "/v1/program"), "text/plain", intcode.Format(code), &pr)
	require.Equal(t, http.StatusCreated, status)
	return pr.ID
}

func postJSON(t testing.TB, u string, in, out any) int {
	data, err := json.Marshal(in)
	require.NoError(t, err)
	return doJSON(t, http.MethodPost, u, "application/json", string(data), out)
}

// doJSON sends a request and decodes the JSON response into out.
func doJSON(t testing.TB, method, u, contentType, body string, out any) int {
	req, err := http.NewRequest(method, u, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(bytes.NewReader(data)).Decode(out), "body: %q", data)
	return resp.StatusCode
}

func mkURL(addr net.Addr, path string) string {
	return fmt.Sprintf("http://%s%s", addr.String(), path)
}

func programURL(addr net.Addr, id intcode.ProgramID, suffix string) string {
	return mkURL(addr, "/v1/program/"+id.String()+suffix)
}

func startServing(t testing.TB) net.Addr {
	ctx := testutil.Context(t)
	db := testutil.NewDB(t)
	require.NoError(t, icstore.Setup(ctx, db))
	srv := New(icstore.New(db))
	lis := testutil.Listen(t)
	go srv.Serve(ctx, lis)
	return lis.Addr()
}
