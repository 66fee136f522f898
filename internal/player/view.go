package player

// View is what the client renders for the current question. Correctness
// flags and the explanation stay hidden until the question is revealed.
type View struct {
	SessionID        string
	Label            string
	Index            int
	Total            int
	Progress         int
	HasPrev          bool
	HasNext          bool
	Revealed         bool
	SelectedChoiceID string
	Question         QuestionView
	Explanation      string
}

type QuestionView struct {
	ID         string
	Stem       string
	Difficulty int
	Choices    []ChoiceView
}

type ChoiceView struct {
	ID       string
	Label    string
	Selected bool
	// IsCorrect is nil before reveal.
	IsCorrect *bool
}

// SessionLabel shortens a session id for display: "Session 01HZX4AB...".
func SessionLabel(sessionID string) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Session " + short + "..."
}

func (p *Player) View() View {
	current := p.Current()
	revealed := p.Revealed()
	selected, _ := p.Selection()

	choices := make([]ChoiceView, len(current.Question.Choices))
	for i, c := range current.Question.Choices {
		cv := ChoiceView{ID: c.ID, Label: c.Label, Selected: c.ID == selected}
		if revealed {
			correct := c.IsCorrect
			cv.IsCorrect = &correct
		}
		choices[i] = cv
	}

	explanation := ExplanationPlaceholder
	if revealed && current.Question.Explanation != "" {
		explanation = current.Question.Explanation
	}

	return View{
		SessionID:        p.sessionID,
		Label:            SessionLabel(p.sessionID),
		Index:            p.index,
		Total:            len(p.questions),
		Progress:         p.Progress(),
		HasPrev:          p.HasPrev(),
		HasNext:          p.HasNext(),
		Revealed:         revealed,
		SelectedChoiceID: selected,
		Question: QuestionView{
			ID:         current.QuestionID,
			Stem:       current.Question.Stem,
			Difficulty: int(current.Question.Difficulty),
			Choices:    choices,
		},
		Explanation: explanation,
	}
}
