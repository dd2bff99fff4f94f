package domain

const (
	EventNameSessionStarted = "session.started"
	EventNameAnswerResolved = "answer.resolved"
	EventNameSessionEnded   = "session.ended"
)

type EventSessionStarted struct {
	Mode      Mode
	Questions int
}

func (EventSessionStarted) Name() string { return EventNameSessionStarted }

type EventAnswerResolved struct {
	Mode     Mode
	Correct  bool
	TimedOut bool
	Awarded  int
}

func (EventAnswerResolved) Name() string { return EventNameAnswerResolved }

type EventSessionEnded struct {
	Mode          Mode
	Score         int
	HighestStreak int
}

func (EventSessionEnded) Name() string { return EventNameSessionEnded }
