package domain

import "context"

// CatalogRepository reads the chapter/module reference data.
type CatalogRepository interface {
	// ListChapters returns chapters ordered by sort order.
	ListChapters(ctx context.Context) ([]Chapter, error)

	// GetChapterBySlug returns (nil, nil) when no chapter has that slug.
	GetChapterBySlug(ctx context.Context, slug string) (*Chapter, error)

	// ListModulesByChapter returns the chapter's modules ordered by sort order.
	ListModulesByChapter(ctx context.Context, chapterID string) ([]Module, error)

	// GetModule returns (nil, nil) when the module does not exist.
	GetModule(ctx context.Context, moduleID string) (*Module, error)
}

// QuestionRepository selects questions matching filter criteria.
type QuestionRepository interface {
	// FindMatchingIDs returns the ids of every question matching criteria,
	// in a stable order. Selection order is decided by the caller.
	FindMatchingIDs(ctx context.Context, criteria SessionCriteria) ([]string, error)

	// CountMatching returns len(FindMatchingIDs) without transferring ids.
	CountMatching(ctx context.Context, criteria SessionCriteria) (int, error)
}

// SessionRepository persists sessions and their ordered question links.
type SessionRepository interface {
	// CreateSession inserts the session and one link per question id, indexed
	// 0..N-1 in the given order.
	CreateSession(ctx context.Context, session *Session, questionIDs []string) error

	// GetSession returns (nil, nil) when the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// GetSessionQuestions loads the ordered questions with their choices in
	// one query. An unknown session yields an empty slice.
	GetSessionQuestions(ctx context.Context, sessionID string) ([]SessionQuestion, error)
}

// AnswerRepository records scored choices.
type AnswerRepository interface {
	SaveAnswer(ctx context.Context, answer *Answer) error
	ListAnswersBySession(ctx context.Context, sessionID string) ([]Answer, error)
}

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	// GetProfileByUserID returns (nil, nil) when the user has no profile row.
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
