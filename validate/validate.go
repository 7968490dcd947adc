// Package validate checks an mjai event log against the legality the
// player-state engine derives for itself: every actor-chosen event
// (discard, call, riichi, win) must be one of the actions the engine
// marked legal immediately before that event was applied.
package validate

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"time"

	"riichiengine/agari"
	"riichiengine/feature"
	"riichiengine/mjai"
	"riichiengine/state"

	"golang.org/x/sync/errgroup"
)

// Violation records one event whose reported action was not among
// those the engine marked legal for its actor immediately before it.
type Violation struct {
	LogPath string
	Line    int
	Actor   int
	Type    mjai.Type
	Detail  string
	Dump    string // the actor's state snapshot right before the event
}

// LogResult is one file's validation outcome.
type LogResult struct {
	LogPath    string
	Events     int
	Violations []Violation
	Err        error // I/O or decode failure; distinct from a Violation
}

// Report aggregates every log Run processed.
type Report struct {
	mu      sync.Mutex
	Results []LogResult
}

func (r *Report) add(res LogResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Results = append(r.Results, res)
}

// Failed reports whether any log hit a decode/I-O error or a violation.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil || len(res.Violations) > 0 {
			return true
		}
	}
	return false
}

// TotalViolations sums violations across every log.
func (r *Report) TotalViolations() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Violations)
	}
	return n
}

// Run walks dir for *.json/*.json.gz logs and validates each one,
// concurrency logs in flight at a time. The bound is enforced with a
// buffered channel guarding an errgroup, the same fan-out-with-bound
// idiom the teacher's worker pools use for bulk background work.
// reportEvery periodically logs throughput; zero disables it. pub, if
// non-nil, receives one encoded feature.Sample per actor decision
// point encountered while validating — a free-riding training corpus
// built from logs already being read for validation.
func Run(ctx context.Context, dir string, concurrency int, rules agari.RuleSet, reportEvery time.Duration, pub *feature.Publisher) (*Report, error) {
	paths, err := discover(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Results: make([]LogResult, 0, len(paths))}
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	prog := &progress{}
	if reportEvery > 0 {
		progCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go reportProgress(progCtx, prog, len(paths), reportEvery)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()
			res := validateFile(p, rules, prog, pub)
			prog.addLog()
			report.add(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".json.gz") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("validate: walk %s: %w", dir, err)
	}
	return paths, nil
}

func openLog(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzReadCloser{gz: gz, f: f}, nil
}

// gzReadCloser closes both the gzip stream and the underlying file.
type gzReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g gzReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g gzReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

func validateFile(path string, rules agari.RuleSet, prog *progress, pub *feature.Publisher) LogResult {
	r, err := openLog(path)
	if err != nil {
		return LogResult{LogPath: path, Err: fmt.Errorf("validate: open %s: %w", path, err)}
	}
	defer r.Close()

	var seats [4]*state.PlayerState
	for i := range seats {
		seats[i] = state.New(i, rules)
	}

	res := LogResult{LogPath: path}
	sc := mjai.NewScanner(r)
	for sc.Scan() {
		ev := sc.Event()
		res.Events++

		actor, detail, ok := checkLegal(seats, ev)
		if !ok {
			res.Violations = append(res.Violations, Violation{
				LogPath: path,
				Line:    sc.Line(),
				Actor:   actor,
				Type:    ev.Type,
				Detail:  detail,
				Dump:    seats[actor].Dump(),
			})
		}
		if pub != nil && isActorDecision(ev) {
			pub.Publish(feature.Sample{
				PlayerID: actor,
				Kyoku:    seats[actor].Kyoku,
				Vector:   feature.Encode(seats[actor]),
			})
		}

		for i := range seats {
			seats[i].Update(ev)
		}
	}
	prog.addEvents(res.Events)
	if err := sc.Err(); err != nil {
		res.Err = fmt.Errorf("validate: %s line %d: %w", path, sc.Line(), err)
	}
	return res
}

// checkLegal compares an actor-chosen event against the ActionCandidate
// its actor's state carried coming into it. Events with no actor choice
// (start_kyoku, tsumo, dora, reach_accepted, ryukyoku, end_kyoku,
// end_game) always pass — the engine never marks those illegal.
func checkLegal(seats [4]*state.PlayerState, ev mjai.Event) (actor int, detail string, ok bool) {
	switch ev.Type {
	case mjai.TypeDahai:
		actor = ev.Dahai.Actor
		cans := seats[actor].LastCans
		legal := cans.CanDiscard && seats[actor].DiscardLegal(ev.Dahai.Pai.Deaka())
		return actor, "dahai not offered or tile forbidden (kuikae)", legal
	case mjai.TypeChi:
		actor = ev.Chi.Actor
		cans := seats[actor].LastCans
		return actor, "chi not offered", cans.CanChiLow || cans.CanChiMid || cans.CanChiHigh
	case mjai.TypePon:
		actor = ev.Pon.Actor
		return actor, "pon not offered", seats[actor].LastCans.CanPon
	case mjai.TypeDaiminkan:
		actor = ev.Daiminkan.Actor
		return actor, "daiminkan not offered", seats[actor].LastCans.CanDaiminkan
	case mjai.TypeAnkan:
		actor = ev.Ankan.Actor
		return actor, "ankan not offered", seats[actor].LastCans.CanAnkan
	case mjai.TypeKakan:
		actor = ev.Kakan.Actor
		return actor, "kakan not offered", seats[actor].LastCans.CanKakan
	case mjai.TypeReach:
		actor = ev.Reach.Actor
		return actor, "riichi not offered", seats[actor].LastCans.CanRiichi
	case mjai.TypeReachAccepted:
		return ev.Reach.Actor, "", true
	case mjai.TypeHora:
		actor = ev.Hora.Actor
		cans := seats[actor].LastCans
		if ev.Hora.Target == ev.Hora.Actor {
			return actor, "tsumo not offered", cans.CanTsumoAgari
		}
		return actor, "ron not offered", cans.CanRonAgari
	default:
		return 0, "", true
	}
}

// isActorDecision reports whether ev is a seat's own choice among its
// offered ActionCandidate, as opposed to a dealt event (start_kyoku,
// tsumo, dora, ryukyoku, end_kyoku, end_game) or the reach_accepted
// broadcast that echoes a declare with no choice of its own. Only
// decision points are worth sampling into feature vectors — the rest
// carry no label.
func isActorDecision(ev mjai.Event) bool {
	switch ev.Type {
	case mjai.TypeDahai, mjai.TypeChi, mjai.TypePon, mjai.TypeDaiminkan,
		mjai.TypeAnkan, mjai.TypeKakan, mjai.TypeHora, mjai.TypeReach:
		return true
	case mjai.TypeReachAccepted:
		return false
	default:
		return false
	}
}
