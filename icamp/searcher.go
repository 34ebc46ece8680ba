package icamp

import (
	"context"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"intcode.org/intcode"
)

// Recorder is notified of every search a Searcher completes.
type Recorder interface {
	RecordSearch(ctx context.Context, code []Word, p Params, r Result) error
}

type searchKey struct {
	program intcode.ProgramID
	mode    Mode
	stages  int
	offset  Word
	signal  Word
}

// Searcher runs phase setting searches, remembering recent results.
// It is safe for concurrent use.
type Searcher struct {
	rec Recorder

	mu    sync.Mutex
	cache *simplelru.LRU[searchKey, Result]
}

// NewSearcher creates a Searcher which caches up to cacheSize results.
// rec may be nil.
func NewSearcher(cacheSize int, rec Recorder) *Searcher {
	cache, err := simplelru.NewLRU[searchKey, Result](cacheSize, nil)
	if err != nil {
		panic(err)
	}
	return &Searcher{rec: rec, cache: cache}
}

func (s *Searcher) Search(ctx context.Context, code []Word, p Params) (Result, error) {
	id := intcode.Hash(code)
	k := searchKey{
		program: id,
		mode:    p.Mode,
		stages:  p.Stages,
		offset:  p.Offset,
		signal:  p.Signal,
	}
	s.mu.Lock()
	res, exists := s.cache.Get(k)
	s.mu.Unlock()
	if exists {
		logctx.Debug(ctx, "phase search cache hit", zap.Stringer("program", id))
		return res.Clone(), nil
	}

	res, err := FindBestPhaseSettings(ctx, code, p)
	if err != nil {
		return Result{}, err
	}
	if s.rec != nil {
		if err := s.rec.RecordSearch(ctx, code, p, res); err != nil {
			return Result{}, err
		}
	}
	s.mu.Lock()
	s.cache.Add(k, res.Clone())
	s.mu.Unlock()
	return res, nil
}

// Len returns the number of cached results.
func (s *Searcher) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
