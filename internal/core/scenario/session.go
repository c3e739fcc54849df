package scenario

import (
	"context"
	"errors"
	"sync"

	"ai-vocab-coach/config"
	"ai-vocab-coach/internal/oracle"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"
)

// State is the session's position in the Menu -> Active -> Grading -> Report
// machine. Grading can fail back to Menu; Report is terminal and leaving it
// discards the report.
type State string

const (
	StateMenu    State = "menu"
	StateActive  State = "active"
	StateGrading State = "grading"
	StateReport  State = "report"
)

// turnGate enforces the at-most-one-in-flight turn invariant centrally,
// instead of a boolean scattered over callers.
type turnGate int

const (
	gateIdle turnGate = iota
	gateAwaitingReply
)

var (
	ErrTurnPending     = errors.New("turn request already in flight")
	ErrRefreshPending  = errors.New("scenario refresh already in flight")
	ErrInvalidState    = errors.New("operation not valid in current state")
	ErrUnknownScenario = errors.New("unknown scenario id")
)

// Session drives one learner's roleplay from scenario selection through
// grading. Methods are safe for concurrent use; the lock is released around
// Oracle calls and results are re-applied only if the session epoch is still
// current.
type Session struct {
	mu         sync.Mutex
	oracle     oracle.Oracle
	sourceLang string
	targetLang string

	state       State
	menu        []oracle.ScenarioDescriptor
	menuPending bool
	scenario    *oracle.ScenarioDescriptor
	history     []oracle.ChatTurn
	gate        turnGate
	report      *oracle.Report

	// epoch is bumped on every transition that invalidates in-flight work
	epoch uint64
}

func NewSession(o oracle.Oracle, sourceLang, targetLang string) *Session {
	return &Session{
		oracle:     o,
		sourceLang: sourceLang,
		targetLang: targetLang,
		state:      StateMenu,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Menu returns the current scenario batch.
func (s *Session) Menu() []oracle.ScenarioDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]oracle.ScenarioDescriptor, len(s.menu))
	copy(out, s.menu)
	return out
}

// History returns a copy of the conversation in strict submission order.
func (s *Session) History() []oracle.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]oracle.ChatTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Report returns the terminal report, or nil outside the Report state.
func (s *Session) Report() *oracle.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// RefreshScenarios requests a fresh batch of three descriptors. Selection is
// rejected while the request is pending; a failed refresh keeps the previous
// batch in place.
func (s *Session) RefreshScenarios(ctx context.Context) ([]oracle.ScenarioDescriptor, error) {
	s.mu.Lock()
	if s.state != StateMenu {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	if s.menuPending {
		s.mu.Unlock()
		return nil, ErrRefreshPending
	}
	s.menuPending = true
	epoch := s.epoch
	s.mu.Unlock()

	batch, err := s.oracle.GenerateScenarios(ctx, s.targetLang, s.sourceLang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuPending = false
	if s.epoch != epoch {
		// session moved on; discard whatever came back
		return nil, ErrInvalidState
	}
	if err != nil {
		logger.Error(err, "%v: scenario generation failed", config.ModuleScenario)
		return nil, apperror.Wrap(apperror.KindScenarioGeneration, status.ScenarioGenerationFailed, err)
	}
	s.menu = batch
	out := make([]oracle.ScenarioDescriptor, len(batch))
	copy(out, batch)
	return out, nil
}

// Select enters Active on the chosen descriptor, seeding the history with
// one counterpart turn equal to its opening line.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateMenu {
		return ErrInvalidState
	}
	if s.menuPending {
		return ErrRefreshPending
	}
	for i := range s.menu {
		if s.menu[i].ID == id {
			chosen := s.menu[i]
			s.scenario = &chosen
			s.history = []oracle.ChatTurn{{Role: oracle.RoleCounterpart, Text: chosen.OpeningLine}}
			s.state = StateActive
			s.gate = gateIdle
			s.report = nil
			s.epoch++
			return nil
		}
	}
	return ErrUnknownScenario
}

// Submit appends a learner turn and awaits exactly one counterpart reply.
// The full ordered history travels with every request. Submissions while a
// reply is outstanding are rejected, not queued, so the history can never be
// appended out of order. On a failed reply the learner's turn stays in the
// history and the gate reopens; the caller may resubmit.
func (s *Session) Submit(ctx context.Context, text string) (oracle.ChatTurn, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return oracle.ChatTurn{}, ErrInvalidState
	}
	if s.gate == gateAwaitingReply {
		s.mu.Unlock()
		return oracle.ChatTurn{}, ErrTurnPending
	}
	s.gate = gateAwaitingReply
	s.history = append(s.history, oracle.ChatTurn{Role: oracle.RoleLearner, Text: text})
	snapshot := make([]oracle.ChatTurn, len(s.history))
	copy(snapshot, s.history)
	scn := *s.scenario
	epoch := s.epoch
	s.mu.Unlock()

	reply, err := s.oracle.ScenarioReply(ctx, scn, snapshot, s.targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// the session this reply belongs to no longer exists
		return oracle.ChatTurn{}, ErrInvalidState
	}
	s.gate = gateIdle
	if err != nil {
		logger.Error(err, "%v: counterpart reply failed", config.ModuleScenario)
		return oracle.ChatTurn{}, apperror.Wrap(apperror.KindTurn, status.ScenarioTurnFailed, err)
	}
	reply.Role = oracle.RoleCounterpart
	s.history = append(s.history, reply)
	return reply, nil
}

// End freezes the history and runs the single evaluation call over it.
// Success lands in Report; failure discards the session's work and returns
// to Menu (fail-safe rather than fail-retry).
func (s *Session) End(ctx context.Context) (*oracle.Report, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return nil, ErrInvalidState
	}
	if s.gate == gateAwaitingReply {
		s.mu.Unlock()
		return nil, ErrTurnPending
	}
	s.state = StateGrading
	frozen := make([]oracle.ChatTurn, len(s.history))
	copy(frozen, s.history)
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	report, err := s.oracle.EvaluateSession(ctx, frozen, s.sourceLang, s.targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return nil, ErrInvalidState
	}
	if err != nil {
		logger.Error(err, "%v: evaluation failed, session discarded", config.ModuleScenario)
		s.toMenu()
		return nil, apperror.Wrap(apperror.KindEvaluation, status.ScenarioEvaluationFailed, err)
	}
	s.state = StateReport
	s.report = &report
	return &report, nil
}

// Leave abandons the current state back to Menu. A report being shown is
// discarded; an in-flight Oracle call completes on its own and its result is
// dropped by the epoch check.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toMenu()
}

// caller holds s.mu
func (s *Session) toMenu() {
	s.state = StateMenu
	s.scenario = nil
	s.history = nil
	s.gate = gateIdle
	s.report = nil
	s.epoch++
}
