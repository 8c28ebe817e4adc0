package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/score"
)

// Engine runs guessing rounds over a fixed city pool and feeds score deltas
// into the Synchronizer. One Engine per playing surface.
type Engine struct {
	syncr *score.Synchronizer

	mu    sync.Mutex
	rnd   *rand.Rand
	pool  []domain.City
	cur   *round
	tally domain.Tally
}

// EngineOption tweaks Engine construction.
type EngineOption func(*Engine)

// WithRand injects a deterministic source for tests.
func WithRand(rnd *rand.Rand) EngineOption {
	return func(e *Engine) { e.rnd = rnd }
}

// NewEngine builds an engine over pool. The pool must be non-empty.
func NewEngine(pool []domain.City, syncr *score.Synchronizer, opts ...EngineOption) (*Engine, error) {
	if len(pool) == 0 {
		return nil, domain.ErrCityPoolEmpty
	}
	e := &Engine{
		syncr: syncr,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		pool:  append([]domain.City(nil), pool...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Result reports the outcome of one guess or decline.
type Result struct {
	Correct             bool    `json:"correct"`
	SecondChanceOffered bool    `json:"secondChanceOffered"`
	Message             string  `json:"message"`
	FunFact             string  `json:"funFact"`
	Score               float64 `json:"score"`
}

// StartRound draws a city uniformly and opens a fresh round. The previous
// city is not excluded from the draw; back-to-back repeats are allowed.
func (e *Engine) StartRound() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	city := e.pool[e.rnd.Intn(len(e.pool))]
	e.cur = &round{
		city:    city,
		options: GenerateOptions(e.rnd, city, e.pool),
	}
	return e.cur.snapshot()
}

// NextRound discards the current round and draws the next one.
func (e *Engine) NextRound() Snapshot {
	return e.StartRound()
}

// Round returns the current round state.
func (e *Engine) Round() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil {
		return Snapshot{}, domain.ErrRoundNotActive
	}
	return e.cur.snapshot(), nil
}

// Guess evaluates option against the current round.
func (e *Engine) Guess(ctx context.Context, option string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.cur == nil || e.cur.resolved:
		return Result{}, domain.ErrRoundNotActive
	case e.cur.secondChance == SecondChanceOffered:
		return Result{}, domain.ErrSecondChancePending
	}

	r := e.cur
	correct := option == r.city.Answer()
	funFact := e.randomFunFact(r.city)
	secondTry := r.secondChance == SecondChanceAccepted

	if correct {
		delta := 1.0
		msg := fmt.Sprintf("Correct! %s is the answer.", r.city.Name)
		if secondTry {
			delta = 0.5
			msg += " You earned 0.5 points for using a second chance."
		}
		e.tally.Correct += delta
		total := e.syncr.Increment(ctx, delta)
		r.feedback = Feedback{Shown: true, Correct: true, Message: msg, FunFact: funFact}
		r.resolved = true
		return Result{Correct: true, Message: msg, FunFact: funFact, Score: total}, nil
	}

	if !secondTry {
		// First miss: offer the retry instead of resolving.
		r.secondChance = SecondChanceOffered
		return Result{SecondChanceOffered: true, Score: e.syncr.Current()}, nil
	}

	msg := fmt.Sprintf("Sorry! The correct answer is %s. You lost 0.5 points for an incorrect second try.", r.city.Name)
	e.tally.Incorrect += 0.5
	total := e.syncr.Increment(ctx, -0.5)
	r.feedback = Feedback{Shown: true, Correct: false, Message: msg, FunFact: funFact}
	r.resolved = true
	return Result{Message: msg, FunFact: funFact, Score: total}, nil
}

// AcceptSecondChance takes the offered retry and reveals the extra clue.
func (e *Engine) AcceptSecondChance() (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil || e.cur.secondChance != SecondChanceOffered {
		return Snapshot{}, domain.ErrSecondChanceNotOffered
	}
	e.cur.secondChance = SecondChanceAccepted
	return e.cur.snapshot(), nil
}

// DeclineSecondChance forfeits the round. The incorrect tally grows by a full
// point but the score is untouched; declining carries no score risk.
func (e *Engine) DeclineSecondChance(ctx context.Context) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil || e.cur.secondChance != SecondChanceOffered {
		return Result{}, domain.ErrSecondChanceNotOffered
	}

	r := e.cur
	r.secondChance = SecondChanceDeclined
	e.tally.Incorrect++
	funFact := e.randomFunFact(r.city)
	msg := fmt.Sprintf("Sorry! The correct answer is %s.", r.city.Name)
	r.feedback = Feedback{Shown: true, Correct: false, Message: msg, FunFact: funFact}
	r.resolved = true
	return Result{Message: msg, FunFact: funFact, Score: e.syncr.Current()}, nil
}

// Tally returns the running correct/incorrect counters.
func (e *Engine) Tally() domain.Tally {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tally
}

func (e *Engine) randomFunFact(city domain.City) string {
	if len(city.FunFacts) == 0 {
		return ""
	}
	return city.FunFacts[e.rnd.Intn(len(city.FunFacts))]
}
