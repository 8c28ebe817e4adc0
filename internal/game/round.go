package game

import "globetrotter-service/internal/domain"

// SecondChanceState is the retry sub-flow position within one round.
type SecondChanceState int

const (
	SecondChanceNotOffered SecondChanceState = iota
	SecondChanceOffered
	SecondChanceAccepted
	SecondChanceDeclined
)

// Feedback is what the player sees after a round resolves.
type Feedback struct {
	Shown   bool   `json:"shown"`
	Correct bool   `json:"correct"`
	Message string `json:"message"`
	FunFact string `json:"funFact"`
}

// round is the transient per-question state. Created on draw, discarded on
// advance; never reused.
type round struct {
	city         domain.City
	options      []string
	secondChance SecondChanceState
	feedback     Feedback
	resolved     bool
}

// Snapshot is the view-facing copy of a round. The city id is included so
// clients can correlate rounds; clues reveal the second-chance clue only
// after it has been earned.
type Snapshot struct {
	CityID       string            `json:"cityId"`
	Clues        []string          `json:"clues"`
	ExtraClue    string            `json:"extraClue,omitempty"`
	Options      []string          `json:"options"`
	SecondChance SecondChanceState `json:"secondChance"`
	Feedback     Feedback          `json:"feedback"`
	Resolved     bool              `json:"resolved"`
}

func (r *round) snapshot() Snapshot {
	s := Snapshot{
		CityID:       r.city.ID,
		Clues:        append([]string(nil), r.city.Clues...),
		Options:      append([]string(nil), r.options...),
		SecondChance: r.secondChance,
		Feedback:     r.feedback,
		Resolved:     r.resolved,
	}
	if r.secondChance == SecondChanceAccepted {
		s.ExtraClue = r.city.SecondChanceClue
	}
	return s
}
