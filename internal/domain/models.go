package domain

import (
	"encoding/json"
	"time"
)

// StringList accepts either a bare string or a list of strings on the wire
// and always carries a list in memory. External city feeds are inconsistent
// about this, so the shape is normalized here and nowhere else.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = StringList{one}
	return nil
}

// City is one guessable destination. Immutable once fetched.
type City struct {
	ID               string     `json:"id"`
	Name             string     `json:"city"`
	Country          string     `json:"country"`
	Clues            []string   `json:"clues"`
	FunFacts         StringList `json:"fun_fact"`
	SecondChanceClue string     `json:"secondChanceClue,omitempty"`
}

// Answer is the option string players guess against.
func (c City) Answer() string {
	return c.Name + ", " + c.Country
}

// Player identifies the person behind one connection.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Invitation is a challenge issued by one player for another to beat.
// Read-only once fetched.
type Invitation struct {
	ID          string    `json:"id"`
	InviterID   string    `json:"inviterId"`
	InviterName string    `json:"inviterName"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Tally counts correct/incorrect outcomes separately from the running score.
// Second-chance outcomes count as halves.
type Tally struct {
	Correct   float64 `json:"correct"`
	Incorrect float64 `json:"incorrect"`
}
