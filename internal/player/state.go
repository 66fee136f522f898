package player

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hash fields used when a State is stored in a Redis hash.
const (
	FieldIndex    = "index"
	FieldRevealed = "revealed"
	FieldSelected = "selected"
)

// State is the part of a Player that survives between requests.
type State struct {
	Index      int
	Revealed   []int
	Selections map[int]string
}

func (p *Player) Snapshot() State {
	revealed := make([]int, 0, len(p.revealed))
	for i, ok := range p.revealed {
		if ok {
			revealed = append(revealed, i)
		}
	}
	sort.Ints(revealed)

	selections := make(map[int]string, len(p.selections))
	for i, id := range p.selections {
		selections[i] = id
	}
	return State{Index: p.index, Revealed: revealed, Selections: selections}
}

// Restore applies s. Indices outside the session, which can happen if a
// stored cursor outlives a change to the session, are clamped or dropped.
func (p *Player) Restore(s State) {
	total := len(p.questions)
	p.index = clamp(s.Index, total)

	p.revealed = make(map[int]bool, len(s.Revealed))
	for _, i := range s.Revealed {
		if i >= 0 && i < total {
			p.revealed[i] = true
		}
	}

	p.selections = make(map[int]string, len(s.Selections))
	for i, id := range s.Selections {
		if i < 0 || i >= total {
			continue
		}
		if _, ok := p.questions[i].Question.FindChoice(id); ok {
			p.selections[i] = id
		}
	}
}

// Fields encodes the state as hash fields.
func (s State) Fields() map[string]string {
	revealed := make([]string, len(s.Revealed))
	for i, idx := range s.Revealed {
		revealed[i] = strconv.Itoa(idx)
	}

	selected := "{}"
	if len(s.Selections) > 0 {
		// map[int]string marshals with string keys in sorted order.
		if data, err := json.Marshal(s.Selections); err == nil {
			selected = string(data)
		}
	}

	return map[string]string{
		FieldIndex:    strconv.Itoa(s.Index),
		FieldRevealed: strings.Join(revealed, ","),
		FieldSelected: selected,
	}
}

// ParseState decodes hash fields written by State.Fields. Missing fields
// decode to their zero value.
func ParseState(fields map[string]string) (State, error) {
	s := State{Selections: map[int]string{}}

	if raw := fields[FieldIndex]; raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return State{}, fmt.Errorf("invalid cursor index %q: %w", raw, err)
		}
		s.Index = idx
	}

	if raw := fields[FieldRevealed]; raw != "" {
		for _, part := range strings.Split(raw, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return State{}, fmt.Errorf("invalid revealed index %q: %w", part, err)
			}
			s.Revealed = append(s.Revealed, idx)
		}
	}

	if raw := fields[FieldSelected]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.Selections); err != nil {
			return State{}, fmt.Errorf("invalid cursor selections: %w", err)
		}
	}
	return s, nil
}
