package handler

import (
	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/filter"
	"medqbank/internal/player"
)

func toChapterResponse(c domain.Chapter) dto.ChapterResponse {
	return dto.ChapterResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Title:       c.Title,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
}

func toChapterResponses(chapters []domain.Chapter) []dto.ChapterResponse {
	out := make([]dto.ChapterResponse, len(chapters))
	for i, c := range chapters {
		out[i] = toChapterResponse(c)
	}
	return out
}

func toModuleResponses(modules []domain.Module) []dto.ModuleResponse {
	out := make([]dto.ModuleResponse, len(modules))
	for i, m := range modules {
		out[i] = dto.ModuleResponse{
			ID:          m.ID,
			Slug:        m.Slug,
			Title:       m.Title,
			Description: m.Description,
			ChapterID:   m.ChapterID,
			YearMin:     m.YearMin,
			YearMax:     m.YearMax,
			SortOrder:   m.SortOrder,
		}
	}
	return out
}

func toBankResponse(b domain.Bank) dto.BankResponse {
	return dto.BankResponse{
		ID:          string(b),
		Title:       b.Title(),
		Description: b.Description(),
		Badge:       b.Badge(),
		YearFilter:  b.AllowsYearFilter(),
	}
}

func toFilterStateResponse(s filter.State) dto.FilterStateResponse {
	resp := dto.FilterStateResponse{
		Bank:        string(s.Bank),
		Title:       s.Bank.Title(),
		Description: s.Bank.Description(),
		YearEnabled: s.YearEnabled,
		Chapters:    toChapterResponses(s.Chapters),
		Modules:     toModuleResponses(s.Modules),
		ChapterID:   s.ChapterID,
		ModuleID:    s.ModuleID,
		Difficulty:  s.Difficulty,
		UnseenOnly:  s.UnseenOnly,
	}
	if s.YearEnabled {
		resp.Year = s.Year
	}
	if s.LoadError != nil {
		resp.ModulesError = "Impossible de charger les modules."
	}
	return resp
}

func toSessionResponse(s *domain.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:            s.ID,
		Bank:          string(s.Bank),
		Label:         player.SessionLabel(s.ID),
		QuestionCount: len(s.Questions),
		Criteria: dto.SessionCriteriaResponse{
			ChapterID:  s.Criteria.ChapterID,
			ModuleID:   s.Criteria.ModuleID,
			Year:       s.Criteria.Year,
			Difficulty: s.Criteria.Difficulty,
			UnseenOnly: s.Criteria.UnseenOnly,
			Count:      s.Criteria.Count,
		},
		CreatedAt: s.CreatedAt,
	}
}

// toSessionQuestionsResponse lists questions without their correctness
// flags; those are only exposed through the player after a reveal.
func toSessionQuestionsResponse(sessionID string, questions []domain.SessionQuestion) dto.SessionQuestionsResponse {
	out := make([]dto.SessionQuestionResponse, len(questions))
	for i, sq := range questions {
		choices := make([]dto.ChoiceResponse, len(sq.Question.Choices))
		for j, c := range sq.Question.Choices {
			choices[j] = dto.ChoiceResponse{ID: c.ID, Label: c.Label}
		}
		out[i] = dto.SessionQuestionResponse{
			ID:    sq.ID,
			Index: sq.Index,
			Question: dto.QuestionResponse{
				ID:         sq.QuestionID,
				Stem:       sq.Question.Stem,
				Difficulty: int(sq.Question.Difficulty),
				Choices:    choices,
			},
		}
	}
	return dto.SessionQuestionsResponse{SessionID: sessionID, Total: len(questions), Questions: out}
}

func toPlayerViewResponse(v player.View) dto.PlayerViewResponse {
	choices := make([]dto.ChoiceResponse, len(v.Question.Choices))
	for i, c := range v.Question.Choices {
		choices[i] = dto.ChoiceResponse{
			ID:        c.ID,
			Label:     c.Label,
			Selected:  c.Selected,
			IsCorrect: c.IsCorrect,
		}
	}
	return dto.PlayerViewResponse{
		SessionID:        v.SessionID,
		Label:            v.Label,
		Index:            v.Index,
		Position:         v.Index + 1,
		Total:            v.Total,
		Progress:         v.Progress,
		HasPrev:          v.HasPrev,
		HasNext:          v.HasNext,
		Revealed:         v.Revealed,
		SelectedChoiceID: v.SelectedChoiceID,
		Question: dto.QuestionResponse{
			ID:         v.Question.ID,
			Stem:       v.Question.Stem,
			Difficulty: v.Question.Difficulty,
			Choices:    choices,
		},
		Explanation: v.Explanation,
	}
}
