package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-service/internal/domain"
	"trivia-service/internal/event"
	"trivia-service/internal/scoring"
	"trivia-service/internal/timer"
)

const (
	DefaultTimePerQuestion   = timer.DefaultDuration
	DefaultQuestionsPerRound = 10
	DefaultMaxPlayers        = 4

	outboxDrainTimeout = 2 * time.Second
)

var errNoTransport = errors.New("session transport not configured")

// Config wires an Engine to its collaborators and game rules.
type Config struct {
	Questions    QuestionSource
	Achievements AchievementSink // optional
	Transport    SessionTransport
	Events       Publisher // optional
	Logger       *zap.Logger

	Entitlements  domain.Entitlements
	ParticipantID string // generated when empty
	DisplayName   string

	// TimePerQuestion is the countdown length in ticks.
	TimePerQuestion   int
	QuestionsPerRound int
	MaxPlayers        int
	// MaxQuestions truncates the shuffled sequence; zero keeps every question.
	MaxQuestions int
	TickInterval time.Duration

	NewTicker timer.TickerFunc
	// Shuffle replaces the default seeded shuffle.
	Shuffle func([]domain.Question)
}

// Engine is the state machine of one trivia session. A single mutex
// serializes caller operations and timer callbacks.
type Engine struct {
	cfg    Config
	log    *zap.Logger
	events Publisher
	timer  *timer.Round
	outbox *outbox

	mu              sync.Mutex
	rng             *rand.Rand
	closed          bool
	state           domain.State
	mode            domain.Mode
	pendingCategory *domain.Category
	category        *domain.Category
	questions       []domain.Question
	position        int
	selected        *int
	score           int
	streak          scoring.Streak
	stats           domain.Statistics
	armedGen        uint64
	deckSeq         int64
	scoreSubmitted  bool
	reported        map[string]float64

	participantID string
	joinCode      string
	host          bool
	players       []domain.Player

	revision    uint64
	subscribers map[chan domain.Snapshot]struct{}
}

func NewEngine(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.TimePerQuestion <= 0 {
		cfg.TimePerQuestion = DefaultTimePerQuestion
	}
	if cfg.QuestionsPerRound <= 0 {
		cfg.QuestionsPerRound = DefaultQuestionsPerRound
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}
	if cfg.ParticipantID == "" {
		cfg.ParticipantID = uuid.NewString()
	}

	e := &Engine{
		cfg:           cfg,
		log:           cfg.Logger,
		events:        cfg.Events,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		state:         domain.StateNotStarted,
		mode:          domain.ModeSingle,
		reported:      make(map[string]float64),
		participantID: cfg.ParticipantID,
		subscribers:   make(map[chan domain.Snapshot]struct{}),
	}
	if e.events == nil {
		e.events = nopPublisher{}
	}
	e.outbox = newOutbox(e.log, defaultOutboxSize, defaultOutboxTimeout)
	e.timer = timer.New(timer.Config{
		Duration:      cfg.TimePerQuestion,
		Interval:      cfg.TickInterval,
		NewTickerFunc: cfg.NewTicker,
		OnTick:        e.onTick,
		OnDeadline:    e.onDeadline,
	})
	return e
}

// SelectCategory records the filter used by the next Start.
func (e *Engine) SelectCategory(c domain.Category) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return domain.ErrSessionClosed
	}
	switch e.state {
	case domain.StatePlaying, domain.StateRoundEnd:
		return domain.ErrSessionInProgress
	}
	e.pendingCategory = &c
	e.state = domain.StateSelectingCategory
	e.broadcastLocked()
	return nil
}

// Start builds a fresh session and arms the timer for its first question.
// A nil category falls back to the one recorded by SelectCategory. On error
// the engine is left untouched.
func (e *Engine) Start(ctx context.Context, mode domain.Mode, category *domain.Category) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return domain.ErrSessionClosed
	}
	switch e.state {
	case domain.StatePlaying, domain.StateRoundEnd:
		return domain.ErrSessionInProgress
	}
	if mode == "" {
		mode = domain.ModeSingle
	}
	if category == nil {
		category = e.pendingCategory
	}
	if e.cfg.Questions == nil {
		return domain.ErrNoQuestions
	}

	var questions []domain.Question
	if mode == domain.ModeMultiplayer && e.joinCode != "" && !e.host {
		deck, qs, err := e.hostDeckLocked(ctx)
		if err != nil {
			return err
		}
		e.prepareRosterLocked(ctx, mode)
		e.deckSeq = deck.Seq
		questions = qs
	} else {
		pool, err := e.cfg.Questions.FetchAvailable(ctx, e.cfg.Entitlements, category)
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}
		if len(pool) == 0 {
			return domain.ErrNoQuestions
		}
		questions = slices.Clone(pool)

		e.prepareRosterLocked(ctx, mode)
		e.shuffleLocked(questions)
		if e.cfg.MaxQuestions > 0 && len(questions) > e.cfg.MaxQuestions {
			questions = questions[:e.cfg.MaxQuestions]
		}
		if mode == domain.ModeMultiplayer {
			e.publishDeckLocked(ctx, questions)
		}
	}

	e.mode = mode
	e.category = category
	e.questions = questions
	e.position = 0
	e.selected = nil
	e.score = 0
	e.streak = scoring.Streak{}
	e.stats = domain.Statistics{}
	e.scoreSubmitted = false
	e.state = domain.StatePlaying
	e.armedGen = e.timer.Arm()

	e.log.Info("session started",
		zap.String("participant", e.participantID),
		zap.String("mode", string(mode)),
		zap.Int("questions", len(questions)),
		zap.String("join_code", e.joinCode),
	)
	e.events.Publish(ctx, domain.EventSessionStarted{Mode: mode, Questions: len(questions)})
	e.broadcastLocked()
	return nil
}

// SubmitAnswer resolves the current question with the chosen option.
// NoAnswer and out-of-range indexes count as wrong. Calls outside an open
// question are ignored.
func (e *Engine) SubmitAnswer(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resolveLocked(index, false)
}

// Advance moves past a resolved question, either to the next one or to
// GameOver. Calls before a selection is recorded are ignored.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if (e.state != domain.StatePlaying && e.state != domain.StateRoundEnd) || e.selected == nil {
		e.log.Debug("advance ignored",
			zap.String("state", string(e.state)),
			zap.Bool("selected", e.selected != nil),
		)
		return
	}

	e.selected = nil
	e.position++
	if e.position >= len(e.questions) {
		e.finishLocked()
	} else {
		e.state = domain.StatePlaying
		e.armedGen = e.timer.Arm()
	}
	e.broadcastLocked()
}

// Cancel stops the timer and discards the session.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.resetLocked()
	e.broadcastLocked()
}

// Close cancels the session, closes every subscription and waits briefly for
// queued collaborator calls.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.resetLocked()
	e.closed = true
	for ch := range e.subscribers {
		delete(e.subscribers, ch)
		close(ch)
	}
	e.mu.Unlock()

	if !e.outbox.close(outboxDrainTimeout) {
		e.log.Warn("outbox did not drain before close", zap.String("participant", e.participantID))
	}
}

// Join registers this engine as a non-host participant of code.
func (e *Engine) Join(ctx context.Context, code, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return domain.ErrSessionClosed
	}
	switch e.state {
	case domain.StatePlaying, domain.StateRoundEnd:
		return domain.ErrSessionInProgress
	}
	if e.cfg.Transport == nil {
		return errNoTransport
	}

	id, err := e.cfg.Transport.JoinSession(ctx, code)
	if err != nil {
		return fmt.Errorf("join session %s: %w", code, err)
	}
	if name == "" {
		name = e.cfg.DisplayName
	}

	e.mode = domain.ModeMultiplayer
	e.host = false
	e.joinCode = code
	e.deckSeq = 0
	e.participantID = id
	e.players = []domain.Player{{ID: id, Name: name}}

	e.log.Info("joined session", zap.String("join_code", code), zap.String("participant", id))
	e.broadcastLocked()
	return nil
}

// AddParticipant records a remote player on the roster.
func (e *Engine) AddParticipant(id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := e.playerIndexLocked(id); i >= 0 {
		e.players[i].Name = name
		e.broadcastLocked()
		return nil
	}
	if len(e.players) >= e.cfg.MaxPlayers {
		return domain.ErrSessionFull
	}
	e.players = append(e.players, domain.Player{ID: id, Name: name})
	e.broadcastLocked()
	return nil
}

// SetReady flips the ready flag of a roster entry.
func (e *Engine) SetReady(id string, ready bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.playerIndexLocked(id)
	if i < 0 {
		return domain.ErrParticipantNotFound
	}
	e.players[i].Ready = ready
	e.broadcastLocked()
	return nil
}

// ApplyOutcome mirrors the score of another participant.
func (e *Engine) ApplyOutcome(o domain.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if o.ParticipantID == e.participantID || (o.JoinCode != "" && o.JoinCode != e.joinCode) {
		return
	}
	i := e.playerIndexLocked(o.ParticipantID)
	if i < 0 {
		if len(e.players) >= e.cfg.MaxPlayers {
			e.log.Debug("outcome from participant beyond roster limit", zap.String("participant", o.ParticipantID))
			return
		}
		e.players = append(e.players, domain.Player{ID: o.ParticipantID, Name: o.ParticipantID})
		i = len(e.players) - 1
	}
	e.players[i].Score = o.ScoreAfter
	e.broadcastLocked()
}

// Snapshot returns the current read model.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot on every transition and
// timer tick. The caller must invoke the returned cancel function.
func (e *Engine) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	e.mu.Lock()
	// the buffer is empty, so the first send never blocks under the lock
	ch <- e.snapshotLocked()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) onTick(gen uint64, _ int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.timer.Current(gen) || e.state != domain.StatePlaying {
		return
	}
	e.broadcastLocked()
}

func (e *Engine) onDeadline(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.armedGen {
		return
	}
	e.resolveLocked(domain.NoAnswer, true)
}

func (e *Engine) resolveLocked(index int, timedOut bool) {
	if e.state != domain.StatePlaying || e.selected != nil || e.position >= len(e.questions) {
		e.log.Debug("answer ignored",
			zap.String("state", string(e.state)),
			zap.Int("index", index),
		)
		return
	}

	remaining := e.timer.Remaining()
	e.timer.Disarm()
	e.armedGen = 0

	tpq := e.timer.Duration()
	q := e.questions[e.position]
	correct := index == q.CorrectIndex
	awarded := scoring.Award(correct, q.Difficulty, remaining, tpq)

	chosen := index
	e.selected = &chosen
	e.score += awarded
	e.streak = e.streak.Record(correct)
	e.stats.Record(correct, time.Duration(tpq-remaining)*e.timer.Interval())

	if i := e.playerIndexLocked(e.participantID); i >= 0 {
		e.players[i].Score = e.score
	}
	next := e.position + 1
	if next%e.cfg.QuestionsPerRound == 0 && next < len(e.questions) {
		e.state = domain.StateRoundEnd
	}

	e.reportProgressLocked()
	if e.mode == domain.ModeMultiplayer && e.cfg.Transport != nil {
		o := domain.Outcome{
			JoinCode:      e.joinCode,
			QuestionID:    q.ID,
			ParticipantID: e.participantID,
			ChosenIndex:   index,
			IsCorrect:     correct,
			ScoreAfter:    e.score,
		}
		transport := e.cfg.Transport
		e.outbox.push("broadcast_outcome", func(ctx context.Context) error {
			return transport.BroadcastOutcome(ctx, o)
		})
	}

	e.events.Publish(context.Background(), domain.EventAnswerResolved{
		Mode:     e.mode,
		Correct:  correct,
		TimedOut: timedOut,
		Awarded:  awarded,
	})
	e.broadcastLocked()
}

func (e *Engine) finishLocked() {
	e.timer.Disarm()
	e.armedGen = 0
	e.state = domain.StateGameOver

	if !e.scoreSubmitted {
		e.scoreSubmitted = true
		if sink := e.cfg.Achievements; sink != nil {
			score := e.score
			e.outbox.push("submit_score", func(ctx context.Context) error {
				return sink.SubmitScore(ctx, score)
			})
		}
	}

	e.log.Info("session finished",
		zap.String("participant", e.participantID),
		zap.Int("score", e.score),
		zap.Int("highest_streak", e.streak.Highest),
	)
	e.events.Publish(context.Background(), domain.EventSessionEnded{
		Mode:          e.mode,
		Score:         e.score,
		HighestStreak: e.streak.Highest,
	})
}

func (e *Engine) reportProgressLocked() {
	sink := e.cfg.Achievements
	if sink == nil {
		return
	}
	view := progressView{
		streak:   e.streak.Current,
		score:    e.score,
		answered: len(e.stats.Samples),
	}
	for _, p := range pendingAchievements(view, e.reported) {
		e.reported[p.key] = p.percent
		e.outbox.push("report_progress", func(ctx context.Context) error {
			return sink.ReportProgress(ctx, p.key, p.percent)
		})
	}
}

func (e *Engine) prepareRosterLocked(ctx context.Context, mode domain.Mode) {
	if mode != domain.ModeMultiplayer {
		e.host = false
		e.joinCode = ""
		e.players = nil
		e.participantID = e.cfg.ParticipantID
		return
	}
	if e.mode == domain.ModeMultiplayer && e.joinCode != "" {
		for i := range e.players {
			e.players[i].Score = 0
		}
		return
	}

	e.host = true
	e.participantID = e.cfg.ParticipantID
	e.joinCode = e.createSessionLocked(ctx)
	e.players = []domain.Player{{
		ID:    e.participantID,
		Name:  e.cfg.DisplayName,
		Ready: true,
		Host:  true,
	}}
}

// createSessionLocked asks the transport for a join code and falls back to a
// local six-digit code when it cannot provide one.
func (e *Engine) createSessionLocked(ctx context.Context) string {
	if t := e.cfg.Transport; t != nil {
		code, err := t.CreateSession(ctx, domain.ModeMultiplayer)
		if err == nil && code != "" {
			return code
		}
		e.log.Warn("create session failed, using local join code", zap.Error(err))
	} else {
		e.log.Warn("no session transport, using local join code")
	}
	return fmt.Sprintf("%06d", 100000+e.rng.Intn(900000))
}

func (e *Engine) shuffleLocked(qs []domain.Question) {
	if e.cfg.Shuffle != nil {
		e.cfg.Shuffle(qs)
		return
	}
	e.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

// publishDeckLocked shares the host's question order with its guests. A
// failure leaves the host playing alone.
func (e *Engine) publishDeckLocked(ctx context.Context, qs []domain.Question) {
	if !e.host || e.cfg.Transport == nil {
		return
	}
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	deck, err := e.cfg.Transport.PublishDeck(ctx, e.joinCode, ids)
	if err != nil {
		e.log.Warn("publish deck failed", zap.String("join_code", e.joinCode), zap.Error(err))
		return
	}
	e.deckSeq = deck.Seq
}

// hostDeckLocked loads the question order the host published after the game
// this guest last played.
func (e *Engine) hostDeckLocked(ctx context.Context) (domain.Deck, []domain.Question, error) {
	if e.cfg.Transport == nil {
		return domain.Deck{}, nil, errNoTransport
	}
	deck, err := e.cfg.Transport.Deck(ctx, e.joinCode)
	if err != nil {
		return domain.Deck{}, nil, fmt.Errorf("fetch deck %s: %w", e.joinCode, err)
	}
	if deck.Seq <= e.deckSeq {
		return domain.Deck{}, nil, domain.ErrDeckNotReady
	}
	qs, err := e.cfg.Questions.Lookup(ctx, deck.QuestionIDs)
	if err != nil {
		return domain.Deck{}, nil, fmt.Errorf("resolve deck: %w", err)
	}
	if len(qs) == 0 {
		return domain.Deck{}, nil, domain.ErrNoQuestions
	}
	return deck, qs, nil
}

func (e *Engine) resetLocked() {
	e.timer.Disarm()
	e.armedGen = 0
	e.state = domain.StateNotStarted
	e.mode = domain.ModeSingle
	e.pendingCategory = nil
	e.category = nil
	e.questions = nil
	e.position = 0
	e.selected = nil
	e.score = 0
	e.streak = scoring.Streak{}
	e.stats = domain.Statistics{}
	e.host = false
	e.joinCode = ""
	e.deckSeq = 0
	e.players = nil
	e.participantID = e.cfg.ParticipantID
}

func (e *Engine) playerIndexLocked(id string) int {
	for i := range e.players {
		if e.players[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) broadcastLocked() {
	e.revision++
	snap := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			// slow subscriber: replace its oldest pending snapshot
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	total := len(e.questions)
	s := domain.Snapshot{
		Revision:      e.revision,
		State:         e.state,
		Mode:          e.mode,
		Score:         e.score,
		Streak:        e.streak.Current,
		HighestStreak: e.streak.Highest,
		TimeRemaining: e.cfg.TimePerQuestion,
		Position:      e.position,
		Total:         total,
		Round:         e.position/e.cfg.QuestionsPerRound + 1,
		JoinCode:      e.joinCode,
		ParticipantID: e.participantID,
		Players:       slices.Clone(e.players),
		Statistics:    e.stats.Summary(),
	}
	if total > 0 {
		s.Progress = float64(e.position) / float64(total)
	}
	switch e.state {
	case domain.StatePlaying, domain.StateRoundEnd:
		q := e.questions[e.position]
		s.Question = &q
		s.TimeRemaining = e.timer.Remaining()
	case domain.StateGameOver:
		s.TimeRemaining = e.timer.Remaining()
	}
	if e.selected != nil {
		v := *e.selected
		s.Selected = &v
	}
	if c := e.category; c != nil {
		v := *c
		s.Category = &v
	} else if c := e.pendingCategory; c != nil {
		v := *c
		s.Category = &v
	}
	return s
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, event.Event) {}
