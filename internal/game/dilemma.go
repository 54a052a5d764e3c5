// Package game implements the iterated prisoner's dilemma played between
// tournament strategies.
package game

import (
	"context"
	"errors"
	"fmt"

	"gentourney/internal/tournament"
)

var ErrUnsupportedStrategy = errors.New("strategy cannot play the dilemma")

type Move uint8

const (
	Cooperate Move = iota
	Defect
)

func (m Move) String() string {
	switch m {
	case Cooperate:
		return "C"
	case Defect:
		return "D"
	default:
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
}

// Flip returns the opposite move.
func (m Move) Flip() Move {
	if m == Cooperate {
		return Defect
	}
	return Cooperate
}

// Exchange is one encounter seen from a single player's side.
type Exchange struct {
	Own      Move
	Opponent Move
}

// Player is a strategy able to play one encounter. Respond must not modify
// the receiver; rounds may run encounters for the same player concurrently.
type Player interface {
	tournament.Strategy
	Respond(history []Exchange) Move
}

// Payoff holds the points awarded per encounter.
type Payoff struct {
	Temptation int `yaml:"temptation" json:"temptation"`
	Reward     int `yaml:"reward" json:"reward"`
	Punishment int `yaml:"punishment" json:"punishment"`
	Sucker     int `yaml:"sucker" json:"sucker"`
}

func DefaultPayoff() Payoff {
	return Payoff{Temptation: 5, Reward: 3, Punishment: 1, Sucker: 0}
}

// Validate requires the dilemma ordering T > R > P > S.
func (p Payoff) Validate() error {
	if !(p.Temptation > p.Reward && p.Reward > p.Punishment && p.Punishment > p.Sucker) {
		return fmt.Errorf("payoff must satisfy temptation > reward > punishment > sucker, got %d/%d/%d/%d",
			p.Temptation, p.Reward, p.Punishment, p.Sucker)
	}
	return nil
}

// Score returns the points for moves a and b.
func (p Payoff) Score(a, b Move) (int, int) {
	switch {
	case a == Cooperate && b == Cooperate:
		return p.Reward, p.Reward
	case a == Cooperate && b == Defect:
		return p.Sucker, p.Temptation
	case a == Defect && b == Cooperate:
		return p.Temptation, p.Sucker
	default:
		return p.Punishment, p.Punishment
	}
}

// Dilemma plays the iterated prisoner's dilemma.
type Dilemma struct {
	payoff Payoff
}

func NewDilemma(payoff Payoff) (*Dilemma, error) {
	if err := payoff.Validate(); err != nil {
		return nil, err
	}
	return &Dilemma{payoff: payoff}, nil
}

func (d *Dilemma) Payoff() Payoff {
	return d.payoff
}

// Play runs repetitions encounters between a and b. Each player sees the
// history of the current game only.
func (d *Dilemma) Play(ctx context.Context, a, b tournament.Strategy, repetitions int) (tournament.Outcome, error) {
	if repetitions < 0 {
		return tournament.Outcome{}, fmt.Errorf("repetitions must be >= 0, got %d", repetitions)
	}
	pa, ok := a.(Player)
	if !ok {
		return tournament.Outcome{}, unsupported(a)
	}
	pb, ok := b.(Player)
	if !ok {
		return tournament.Outcome{}, unsupported(b)
	}
	if err := ctx.Err(); err != nil {
		return tournament.Outcome{}, err
	}

	historyA := make([]Exchange, 0, repetitions)
	historyB := make([]Exchange, 0, repetitions)
	var outcome tournament.Outcome
	for i := 0; i < repetitions; i++ {
		moveA := pa.Respond(historyA)
		moveB := pb.Respond(historyB)
		pointsA, pointsB := d.payoff.Score(moveA, moveB)
		outcome.A += pointsA
		outcome.B += pointsB
		historyA = append(historyA, Exchange{Own: moveA, Opponent: moveB})
		historyB = append(historyB, Exchange{Own: moveB, Opponent: moveA})
	}
	return outcome, nil
}

func unsupported(s tournament.Strategy) error {
	if s == nil {
		return fmt.Errorf("%w: nil strategy", ErrUnsupportedStrategy)
	}
	return fmt.Errorf("%w: %s (%T)", ErrUnsupportedStrategy, s.ID(), s)
}
