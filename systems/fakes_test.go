package systems

import (
	"sync"

	cfg "github.com/Olle-svg/ponggamebyolle/config"
	"github.com/Olle-svg/ponggamebyolle/shared/party"
)

// seqRand replays a fixed sequence of draws.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type fakeKeys map[cfg.ActionID]bool

func (k fakeKeys) Pressed(id cfg.ActionID) bool { return k[id] }

func held(ids ...cfg.ActionID) InputState {
	var in InputState
	for _, id := range ids {
		in.Current[id] = true
	}
	return in
}

// fakeParty is a PartyReader whose snapshot tests edit directly.
type fakeParty struct {
	mu      sync.Mutex
	id      string
	snap    party.Party
	version uint64
}

func (p *fakeParty) PlayerID() string { return p.id }

func (p *fakeParty) Snapshot() (party.Party, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.Clone(), p.version
}

func (p *fakeParty) set(fn func(*party.Party)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.snap)
	p.version++
}

// fakeWriter records what a controller published.
type fakeWriter struct {
	paddles    []float64
	balls      []party.BallSnapshot
	scores     [][2]int
	statuses   []party.Status
	eliminated []string
}

func (w *fakeWriter) Paddle(pos float64)          { w.paddles = append(w.paddles, pos) }
func (w *fakeWriter) Ball(b party.BallSnapshot)   { w.balls = append(w.balls, b) }
func (w *fakeWriter) Score(host, guest int)       { w.scores = append(w.scores, [2]int{host, guest}) }
func (w *fakeWriter) Status(s party.Status)       { w.statuses = append(w.statuses, s) }
func (w *fakeWriter) Eliminate(playerID string)   { w.eliminated = append(w.eliminated, playerID) }

// recorder collects hook calls.
type recorder struct {
	hits, walls, scoreSounds int
	results                  []bool
	scores                   [][2]int
	eliminated               []string
	winners                  []string
}

func (r *recorder) PaddleHit()          { r.hits++ }
func (r *recorder) WallBounce()         { r.walls++ }
func (r *recorder) Score()              { r.scoreSounds++ }
func (r *recorder) GameOver(won bool)   { r.results = append(r.results, won) }

func (r *recorder) hooks() Hooks {
	return Hooks{
		Feedback:     r,
		OnScore:      func(l, rt int) { r.scores = append(r.scores, [2]int{l, rt}) },
		OnEliminated: func(id string) { r.eliminated = append(r.eliminated, id) },
		OnGameOver:   func(w string, _ bool) { r.winners = append(r.winners, w) },
	}
}
