// package icstore records programs and the results of phase setting searches
// in a SQLite database.
package icstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.brendoncarroll.net/tai64"
	"go.uber.org/zap"

	"intcode.org/intcode"
	"intcode.org/intcode/icamp"
	"intcode.org/intcode/internal/dbutil"
)

type Word = intcode.Word

var _ icamp.Recorder = &Store{}

func Open(p string) (*sqlx.DB, error) {
	return dbutil.Open(p)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS programs (
		id BLOB NOT NULL,
		code TEXT NOT NULL,
		PRIMARY KEY(id)
	) WITHOUT ROWID, STRICT`,
	`CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		program_id BLOB NOT NULL,
		mode TEXT NOT NULL,
		stages INTEGER NOT NULL,
		phase_offset INTEGER NOT NULL,
		init_signal INTEGER NOT NULL,
		phases TEXT NOT NULL,
		score INTEGER NOT NULL,
		tai_sec INTEGER NOT NULL,
		tai_nsec INTEGER NOT NULL,

		FOREIGN KEY(program_id) REFERENCES programs(id)
	) STRICT`,
	`CREATE INDEX IF NOT EXISTS results_program ON results (program_id, mode, stages)`,
}

// Setup creates the tables used by Store if they do not exist.
func Setup(ctx context.Context, db *sqlx.DB) error {
	return dbutil.DoTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

type ErrProgramNotFound struct {
	ID intcode.ProgramID
}

func (e ErrProgramNotFound) Error() string {
	return fmt.Sprintf("program %v not found", e.ID)
}

// ErrNoResults is returned by BestResult when no search has been recorded.
var ErrNoResults = errors.New("icstore: no results")

// Record is a completed phase setting search.
type Record struct {
	ID        int64
	ProgramID intcode.ProgramID
	Mode      icamp.Mode
	Stages    int
	Offset    Word
	Signal    Word
	Phases    []Word
	Score     Word

	// TAISec and TAINsec are the TAI64N time the result was recorded.
	TAISec, TAINsec int64
}

// row is how a Record is stored
type row struct {
	ID        int64  `db:"id"`
	ProgramID []byte `db:"program_id"`
	Mode      string `db:"mode"`
	Stages    int    `db:"stages"`
	Offset    int64  `db:"phase_offset"`
	Signal    int64  `db:"init_signal"`
	Phases    string `db:"phases"`
	Score     int64  `db:"score"`
	TAISec    int64  `db:"tai_sec"`
	TAINsec   int64  `db:"tai_nsec"`
}

func (r row) record() (Record, error) {
	mode, err := icamp.ParseMode(r.Mode)
	if err != nil {
		return Record{}, err
	}
	var phases []Word
	if r.Phases != "" {
		if phases, err = intcode.Parse([]byte(r.Phases)); err != nil {
			return Record{}, err
		}
	}
	return Record{
		ID:        r.ID,
		ProgramID: intcode.ProgramID(r.ProgramID),
		Mode:      mode,
		Stages:    r.Stages,
		Offset:    r.Offset,
		Signal:    r.Signal,
		Phases:    phases,
		Score:     r.Score,
		TAISec:    r.TAISec,
		TAINsec:   r.TAINsec,
	}, nil
}

// Store is a record of programs and searches.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// PutProgram saves code, and returns its ID.
// Saving the same program twice is not an error.
func (s *Store) PutProgram(ctx context.Context, code []Word) (intcode.ProgramID, error) {
	return dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) (intcode.ProgramID, error) {
		return putProgram(ctx, tx, code)
	})
}

func putProgram(ctx context.Context, tx *sqlx.Tx, code []Word) (intcode.ProgramID, error) {
	id := intcode.Hash(code)
	if _, err := tx.ExecContext(ctx, `INSERT INTO programs (id, code) VALUES (?, ?)
		ON CONFLICT DO NOTHING`, id[:], intcode.Format(code)); err != nil {
		return intcode.ProgramID{}, err
	}
	return id, nil
}

func (s *Store) GetProgram(ctx context.Context, id intcode.ProgramID) ([]Word, error) {
	return dbutil.DoTxR(ctx, s.db, func(tx *sqlx.Tx) ([]Word, error) {
		var text string
		if err := tx.GetContext(ctx, &text, `SELECT code FROM programs WHERE id = ?`, id[:]); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = ErrProgramNotFound{ID: id}
			}
			return nil, err
		}
		return intcode.Parse([]byte(text))
	})
}

// ListPrograms returns the IDs of every saved program.
func (s *Store) ListPrograms(ctx context.Context) ([]intcode.ProgramID, error) {
	return dbutil.DoTxR(ctx, s.db, func(tx *sqlx.Tx) ([]intcode.ProgramID, error) {
		var ids [][]byte
		if err := tx.SelectContext(ctx, &ids, `SELECT id FROM programs ORDER BY id`); err != nil {
			return nil, err
		}
		ret := make([]intcode.ProgramID, len(ids))
		for i := range ids {
			ret[i] = intcode.ProgramID(ids[i])
		}
		return ret, nil
	})
}

// PutResult saves a search result and the program it was for.
func (s *Store) PutResult(ctx context.Context, code []Word, p icamp.Params, res icamp.Result) (Record, error) {
	now := tai64.Now()
	return dbutil.DoTx1(ctx, s.db, func(tx *sqlx.Tx) (Record, error) {
		id, err := putProgram(ctx, tx, code)
		if err != nil {
			return Record{}, err
		}
		var rowID int64
		if err := tx.GetContext(ctx, &rowID, `INSERT INTO results
			(program_id, mode, stages, phase_offset, init_signal, phases, score, tai_sec, tai_nsec)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			id[:], p.Mode.String(), p.Stages, p.Offset, p.Signal, intcode.Format(res.Phases), res.Score,
			int64(now.Seconds), int64(now.Nanoseconds),
		); err != nil {
			return Record{}, err
		}
		return Record{
			ID:        rowID,
			ProgramID: id,
			Mode:      p.Mode,
			Stages:    p.Stages,
			Offset:    p.Offset,
			Signal:    p.Signal,
			Phases:    append([]Word(nil), res.Phases...),
			Score:     res.Score,
			TAISec:    int64(now.Seconds),
			TAINsec:   int64(now.Nanoseconds),
		}, nil
	})
}

// RecordSearch implements icamp.Recorder
func (s *Store) RecordSearch(ctx context.Context, code []Word, p icamp.Params, res icamp.Result) error {
	rec, err := s.PutResult(ctx, code, p, res)
	if err != nil {
		return err
	}
	logctx.Debug(ctx, "recorded search", zap.Int64("id", rec.ID), zap.Stringer("program", rec.ProgramID))
	return nil
}

const selectResults = `SELECT id, program_id, mode, stages, phase_offset, init_signal, phases, score, tai_sec, tai_nsec
	FROM results`

// ListResults returns every result recorded for a program, oldest first.
func (s *Store) ListResults(ctx context.Context, id intcode.ProgramID) ([]Record, error) {
	return dbutil.DoTxR(ctx, s.db, func(tx *sqlx.Tx) ([]Record, error) {
		var rows []row
		if err := tx.SelectContext(ctx, &rows, selectResults+` WHERE program_id = ? ORDER BY id`, id[:]); err != nil {
			return nil, err
		}
		return records(rows)
	})
}

// BestResult returns the highest scoring result for a program, mode and
// number of stages. Ties go to the oldest.
func (s *Store) BestResult(ctx context.Context, id intcode.ProgramID, mode icamp.Mode, stages int) (Record, error) {
	return dbutil.DoTxR(ctx, s.db, func(tx *sqlx.Tx) (Record, error) {
		var r row
		if err := tx.GetContext(ctx, &r, selectResults+` WHERE program_id = ? AND mode = ? AND stages = ?
			ORDER BY score DESC, id ASC LIMIT 1`, id[:], mode.String(), stages); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = ErrNoResults
			}
			return Record{}, err
		}
		return r.record()
	})
}

func records(rows []row) ([]Record, error) {
	ret := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec, err := r.record()
		if err != nil {
			return nil, err
		}
		ret = append(ret, rec)
	}
	return ret, nil
}
