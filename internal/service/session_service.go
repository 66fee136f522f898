package service

import (
	"context"
	"errors"

	"medqbank/internal/auth"
	"medqbank/internal/cache"
	"medqbank/internal/config"
	"medqbank/internal/domain"
	"medqbank/internal/logger"
	"medqbank/internal/player"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AnswerOutcome is a scored selection and the player view after it.
type AnswerOutcome struct {
	Result   player.Result
	Recorded bool
	View     player.View
}

// SessionService builds sessions from filter criteria and drives the
// player for them. Player state is kept per viewer in a Redis hash.
type SessionService interface {
	CreateSession(ctx context.Context, criteria domain.SessionCriteria) (*domain.Session, error)
	CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	LoadQuestions(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error)

	View(ctx context.Context, sessionID string) (player.View, error)
	Next(ctx context.Context, sessionID string) (player.View, error)
	Prev(ctx context.Context, sessionID string) (player.View, error)
	Seek(ctx context.Context, sessionID string, index int) (player.View, error)
	Reveal(ctx context.Context, sessionID string) (player.View, error)
	Answer(ctx context.Context, sessionID, choiceID string) (*AnswerOutcome, error)
}

type sessionService struct {
	questions domain.QuestionRepository
	sessions  domain.SessionRepository
	answers   domain.AnswerRepository
	catalog   domain.CatalogRepository
	cache     domain.Cache
	cfg       *config.Config
	shuffle   func([]string) []string
	group     singleflight.Group
}

// NewSessionService creates a session service. cache may be nil; the player
// cursor then resets on every request.
func NewSessionService(
	questions domain.QuestionRepository,
	sessions domain.SessionRepository,
	answers domain.AnswerRepository,
	catalog domain.CatalogRepository,
	cache domain.Cache,
	cfg *config.Config,
) SessionService {
	return &sessionService{
		questions: questions,
		sessions:  sessions,
		answers:   answers,
		catalog:   catalog,
		cache:     cache,
		cfg:       cfg,
		shuffle:   ShuffleIDs,
	}
}

// normalizeCriteria validates criteria and fills in the caller and the
// default size. The year is dropped for banks that don't filter by it.
func (s *sessionService) normalizeCriteria(ctx context.Context, criteria domain.SessionCriteria, forCreate bool) (domain.SessionCriteria, error) {
	bank, err := domain.ParseBank(string(criteria.Bank))
	if err != nil {
		return criteria, err
	}
	criteria.Bank = bank

	var errs domain.ValidationErrors
	if criteria.Difficulty != nil && !domain.Difficulty(*criteria.Difficulty).Valid() {
		errs = append(errs, domain.NewOutOfRangeError("difficulty", *criteria.Difficulty, int(domain.MinDifficulty), int(domain.MaxDifficulty)))
	}
	if !bank.AllowsYearFilter() {
		criteria.Year = nil
	} else if criteria.Year != nil && (*criteria.Year < domain.MinYear || *criteria.Year > domain.MaxYear) {
		errs = append(errs, domain.NewOutOfRangeError("year", *criteria.Year, domain.MinYear, domain.MaxYear))
	}
	if forCreate {
		if criteria.Count == 0 {
			criteria.Count = s.cfg.Session.DefaultSize
		}
		if criteria.Count < 1 || criteria.Count > s.cfg.Session.MaxSize {
			errs = append(errs, domain.NewOutOfRangeError("count", criteria.Count, 1, s.cfg.Session.MaxSize))
		}
	}
	if len(errs) > 0 {
		return criteria, errs
	}

	criteria.UserID = auth.UserID(ctx)
	if criteria.UnseenOnly && criteria.UserID == "" {
		return criteria, domain.NewUnauthorizedError("Sign in to filter on unseen questions")
	}

	if criteria.ModuleID != "" {
		module, err := s.catalog.GetModule(ctx, criteria.ModuleID)
		if err != nil {
			return criteria, domain.NewInternalError("Failed to check module", err)
		}
		if module == nil {
			return criteria, domain.NewNotFoundError("Module not found").WithContext("module_id", criteria.ModuleID)
		}
		if criteria.ChapterID != "" && module.ChapterID != criteria.ChapterID {
			return criteria, domain.NewInvalidInputError("Module does not belong to the selected chapter").
				WithContext("module_id", criteria.ModuleID).
				WithContext("chapter_id", criteria.ChapterID)
		}
	}
	return criteria, nil
}

// CreateSession selects every matching question, shuffles the ids, keeps
// the first Count and persists them in that order.
func (s *sessionService) CreateSession(ctx context.Context, criteria domain.SessionCriteria) (*domain.Session, error) {
	criteria, err := s.normalizeCriteria(ctx, criteria, true)
	if err != nil {
		return nil, err
	}

	ids, err := s.questions.FindMatchingIDs(ctx, criteria)
	if err != nil {
		return nil, domain.NewInternalError("Failed to select questions", err)
	}
	if len(ids) == 0 {
		return nil, domain.NewNoMatchingQuestionsError()
	}

	ids = s.shuffle(ids)
	if len(ids) > criteria.Count {
		ids = ids[:criteria.Count]
	}

	session := &domain.Session{
		UserID:   criteria.UserID,
		Bank:     criteria.Bank,
		Criteria: criteria,
	}
	if err := s.sessions.CreateSession(ctx, session, ids); err != nil {
		return nil, domain.NewInternalError("Failed to create session", err)
	}

	logger.Get().Info("Session created",
		zap.String("session_id", session.ID),
		zap.String("bank", string(session.Bank)),
		zap.Int("questions", len(ids)),
		zap.Bool("authenticated", session.UserID != ""),
	)
	return session, nil
}

func (s *sessionService) CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error) {
	criteria, err := s.normalizeCriteria(ctx, criteria, false)
	if err != nil {
		return 0, err
	}
	count, err := s.questions.CountMatching(ctx, criteria)
	if err != nil {
		return 0, domain.NewInternalError("Failed to count questions", err)
	}
	return count, nil
}

// GetSession returns the session row with its ordered questions attached,
// so callers can report the criteria and the question count together.
func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get session", err)
	}
	if session == nil {
		return nil, domain.NewInvalidSessionError(sessionID)
	}
	questions, err := s.LoadQuestions(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Questions = questions
	return session, nil
}

// LoadQuestions returns the ordered questions of a session in one fetch,
// cached and deduplicated per session id. A session without questions is
// reported as invalid and never cached.
func (s *sessionService) LoadQuestions(ctx context.Context, sessionID string) ([]domain.SessionQuestion, error) {
	key := cache.SessionQuestionsKey(sessionID)

	var questions []domain.SessionQuestion
	if getCachedJSON(ctx, s.cache, key, &questions) && len(questions) > 0 {
		return questions, nil
	}

	questions, err := loadShared(ctx, &s.group, key, func(ctx context.Context) ([]domain.SessionQuestion, error) {
		questions, err := s.sessions.GetSessionQuestions(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			setCachedJSON(ctx, s.cache, key, questions, s.cfg.Cache.SessionTTL)
		}
		return questions, nil
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to load session questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewInvalidSessionError(sessionID)
	}
	return questions, nil
}

// openPlayer builds the caller's player from the session questions and the
// stored cursor fields. Without a usable cursor, an authenticated caller's
// recorded answers rebuild it.
func (s *sessionService) openPlayer(ctx context.Context, sessionID string, questions []domain.SessionQuestion, fields map[string]string) (*player.Player, error) {
	p, err := player.New(sessionID, questions)
	if err != nil {
		return nil, domain.NewInvalidSessionError(sessionID)
	}

	state, ok := parseCursor(sessionID, fields)
	if !ok {
		state, ok = s.recordedState(ctx, sessionID, questions)
	}
	if ok {
		p.Restore(state)
	}
	return p, nil
}

func parseCursor(sessionID string, fields map[string]string) (player.State, bool) {
	if len(fields) == 0 {
		return player.State{}, false
	}
	state, err := player.ParseState(fields)
	if err != nil {
		logger.Get().Warn("Discarding corrupt player cursor", zap.String("session_id", sessionID), zap.Error(err))
		return player.State{}, false
	}
	return state, true
}

// recordedState replays the caller's stored answers: each answered question
// is selected and revealed, and the cursor sits on the latest one.
func (s *sessionService) recordedState(ctx context.Context, sessionID string, questions []domain.SessionQuestion) (player.State, bool) {
	userID := auth.UserID(ctx)
	if userID == "" {
		return player.State{}, false
	}
	answers, err := s.answers.ListAnswersBySession(ctx, sessionID)
	if err != nil {
		logger.Get().Warn("Failed to load recorded answers", zap.String("session_id", sessionID), zap.Error(err))
		return player.State{}, false
	}

	positions := make(map[string]int, len(questions))
	for _, q := range questions {
		positions[q.QuestionID] = q.Index
	}

	state := player.State{Selections: map[int]string{}}
	found := false
	for _, a := range answers {
		if a.UserID != userID {
			continue
		}
		idx, ok := positions[a.QuestionID]
		if !ok {
			continue
		}
		if _, seen := state.Selections[idx]; !seen {
			state.Revealed = append(state.Revealed, idx)
		}
		state.Selections[idx] = a.ChoiceID
		state.Index = idx
		found = true
	}
	return state, found
}

// update opens the caller's player and applies move, which reports whether
// it changed anything. With a cache, reading the cursor, moving and writing
// it back run as one HUpdate, so concurrent requests from the same viewer
// each land. A cache failure degrades to an unsaved move.
func (s *sessionService) update(ctx context.Context, sessionID string, move func(p *player.Player) (bool, error)) (*player.Player, error) {
	questions, err := s.LoadQuestions(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var p *player.Player
		var moveErr error
		key := cache.CursorKey(sessionID, auth.UserID(ctx))
		err := s.cache.HUpdate(ctx, key, s.cfg.Cache.CursorTTL, func(fields map[string]string) (map[string]string, error) {
			p, moveErr = s.openPlayer(ctx, sessionID, questions, fields)
			if moveErr != nil {
				return nil, moveErr
			}
			var changed bool
			changed, moveErr = move(p)
			if moveErr != nil || !changed {
				return nil, moveErr
			}
			return p.Snapshot().Fields(), nil
		})
		if moveErr != nil {
			return nil, moveErr
		}
		if err != nil {
			logger.Get().Warn("Failed to update player cursor", zap.String("session_id", sessionID), zap.Error(err))
		}
		if p != nil {
			return p, nil
		}
	}

	p, err := s.openPlayer(ctx, sessionID, questions, nil)
	if err != nil {
		return nil, err
	}
	if _, err := move(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *sessionService) step(ctx context.Context, sessionID string, move func(p *player.Player) bool) (player.View, error) {
	p, err := s.update(ctx, sessionID, func(p *player.Player) (bool, error) {
		return move(p), nil
	})
	if err != nil {
		return player.View{}, err
	}
	return p.View(), nil
}

func (s *sessionService) View(ctx context.Context, sessionID string) (player.View, error) {
	return s.step(ctx, sessionID, func(*player.Player) bool { return false })
}

func (s *sessionService) Next(ctx context.Context, sessionID string) (player.View, error) {
	return s.step(ctx, sessionID, func(p *player.Player) bool { return p.Next() })
}

func (s *sessionService) Prev(ctx context.Context, sessionID string) (player.View, error) {
	return s.step(ctx, sessionID, func(p *player.Player) bool { return p.Prev() })
}

func (s *sessionService) Seek(ctx context.Context, sessionID string, index int) (player.View, error) {
	return s.step(ctx, sessionID, func(p *player.Player) bool {
		before := p.Index()
		return p.Seek(index) != before
	})
}

func (s *sessionService) Reveal(ctx context.Context, sessionID string) (player.View, error) {
	return s.step(ctx, sessionID, func(p *player.Player) bool {
		if p.Revealed() {
			return false
		}
		p.Reveal()
		return true
	})
}

// Answer scores choiceID against the current question. The answer is stored
// only for authenticated callers.
func (s *sessionService) Answer(ctx context.Context, sessionID, choiceID string) (*AnswerOutcome, error) {
	var result player.Result
	p, err := s.update(ctx, sessionID, func(p *player.Player) (bool, error) {
		var err error
		result, err = p.Select(choiceID)
		return err == nil, err
	})
	if err != nil {
		if errors.Is(err, player.ErrUnknownChoice) {
			return nil, domain.NewInvalidChoiceError(choiceID)
		}
		return nil, err
	}

	outcome := &AnswerOutcome{Result: result, View: p.View()}

	userID := auth.UserID(ctx)
	if userID == "" {
		return outcome, nil
	}
	answer := &domain.Answer{
		SessionID:  sessionID,
		QuestionID: result.QuestionID,
		ChoiceID:   result.ChoiceID,
		UserID:     userID,
		IsCorrect:  result.IsCorrect,
	}
	if err := s.answers.SaveAnswer(ctx, answer); err != nil {
		logger.Get().Error("Failed to record answer",
			zap.String("session_id", sessionID),
			zap.String("question_id", result.QuestionID),
			zap.Error(err),
		)
		return outcome, nil
	}
	outcome.Recorded = true
	return outcome, nil
}
