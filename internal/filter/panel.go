// Package filter implements the qbank filter panel: the chapter, module,
// year, difficulty and "unseen" selection a session is built from.
package filter

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"medqbank/internal/domain"
	"medqbank/internal/logger"

	"go.uber.org/zap"
)

// queryAll is the select value meaning "no constraint".
const queryAll = "all"

type ChapterLoader interface {
	ListChapters(ctx context.Context) ([]domain.Chapter, error)
}

type ModuleLoader interface {
	ListModules(ctx context.Context, chapterID string) ([]domain.Module, error)
}

type SessionStarter interface {
	CreateSession(ctx context.Context, criteria domain.SessionCriteria) (*domain.Session, error)
}

type QuestionCounter interface {
	CountMatching(ctx context.Context, criteria domain.SessionCriteria) (int, error)
}

// Panel is safe for concurrent use. Module loads are keyed by chapter: each
// chapter change bumps a generation counter and cancels the load in flight,
// and a load that finishes for an older generation is discarded.
type Panel struct {
	mu sync.Mutex

	loader ModuleLoader
	bank   domain.Bank

	chapters       []domain.Chapter
	chaptersLoaded bool

	chapterID string
	moduleID  string
	modules   []domain.Module
	loadErr   error

	year       *int
	difficulty *int
	unseenOnly bool
	count      int

	generation uint64
	cancel     context.CancelFunc
}

func NewPanel(bank domain.Bank, loader ModuleLoader) *Panel {
	return &Panel{bank: bank, loader: loader, modules: []domain.Module{}, chapters: []domain.Chapter{}}
}

// ApplyQuery sets the initial selection from query-string values without
// fetching anything. Call Refresh afterwards to load the module list.
// The year is neither parsed nor kept for banks without year filtering.
func (p *Panel) ApplyQuery(values url.Values) error {
	var errs domain.ValidationErrors

	p.mu.Lock()
	defer p.mu.Unlock()

	var year *int
	if p.bank.AllowsYearFilter() {
		var err *domain.ValidationError
		year, err = parseOptionalInt(values.Get("year"), "year", domain.MinYear, domain.MaxYear)
		if err != nil {
			errs = append(errs, *err)
		}
	}
	difficulty, err := parseOptionalInt(values.Get("difficulty"), "difficulty", int(domain.MinDifficulty), int(domain.MaxDifficulty))
	if err != nil {
		errs = append(errs, *err)
	}
	if len(errs) > 0 {
		return errs
	}

	p.chapterID = values.Get("chapter")
	p.moduleID = values.Get("module")
	if p.chapterID == "" {
		p.moduleID = ""
	}
	p.year = year
	p.difficulty = difficulty
	p.unseenOnly = values.Get("unseen") == "1"
	return nil
}

func parseOptionalInt(raw, field string, min, max int) (*int, *domain.ValidationError) {
	if raw == "" || raw == queryAll {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr := domain.NewInvalidFormatError(field, raw)
		return nil, &verr
	}
	if v < min || v > max {
		verr := domain.NewOutOfRangeError(field, v, min, max)
		return nil, &verr
	}
	return &v, nil
}

// LoadChapters reads the chapter list once per panel. A failed read is
// logged and leaves the list empty.
func (p *Panel) LoadChapters(ctx context.Context, loader ChapterLoader) {
	p.mu.Lock()
	if p.chaptersLoaded {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	chapters, err := loader.ListChapters(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		logger.Get().Warn("Failed to load chapters for filter panel", zap.Error(err))
		p.chapters = []domain.Chapter{}
		return
	}
	p.chapters = chapters
	p.chaptersLoaded = true
}

// SelectChapter clears the module selection and loads the modules of
// chapterID. An empty id clears the list without a fetch.
func (p *Panel) SelectChapter(ctx context.Context, chapterID string) {
	p.loadModules(ctx, chapterID, false)
}

// Refresh reloads the modules of the current chapter, keeping the selected
// module when it still belongs to it.
func (p *Panel) Refresh(ctx context.Context) {
	p.mu.Lock()
	chapterID := p.chapterID
	p.mu.Unlock()
	p.loadModules(ctx, chapterID, true)
}

func (p *Panel) loadModules(ctx context.Context, chapterID string, keepModule bool) {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.chapterID = chapterID
	p.modules = []domain.Module{}
	p.loadErr = nil
	if !keepModule || chapterID == "" {
		p.moduleID = ""
	}
	if chapterID == "" {
		p.mu.Unlock()
		return
	}
	loadCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	modules, err := p.loader.ListModules(loadCtx, chapterID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		// A newer selection owns the state; its own load is responsible for it.
		cancel()
		return
	}
	cancel()
	p.cancel = nil

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Get().Warn("Failed to load modules for filter panel",
				zap.String("chapter_id", chapterID),
				zap.Error(err),
			)
		}
		p.loadErr = err
		return
	}
	if modules == nil {
		modules = []domain.Module{}
	}
	p.modules = modules

	if p.moduleID != "" && !containsModule(modules, p.moduleID) {
		p.moduleID = ""
	}
}

func containsModule(modules []domain.Module, id string) bool {
	for _, m := range modules {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Close cancels any module load still in flight.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Panel) SetBank(bank domain.Bank) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bank = bank
}

func (p *Panel) Bank() domain.Bank {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bank
}

// YearEnabled reports whether the year control applies to the current bank.
func (p *Panel) YearEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bank.AllowsYearFilter()
}

// SelectModule picks a module of the loaded list; "" clears it.
func (p *Panel) SelectModule(moduleID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if moduleID == "" {
		p.moduleID = ""
		return nil
	}
	if p.chapterID == "" {
		return domain.NewInvalidInputError("select a chapter before a module")
	}
	if !containsModule(p.modules, moduleID) {
		return domain.NewNotFoundError("module not found in the selected chapter").
			WithContext("module_id", moduleID)
	}
	p.moduleID = moduleID
	return nil
}

// SetYear stores the year even when the bank ignores it, so switching back
// to a bank with year filtering restores it. nil means all years. Banks
// without year filtering never reject a year: an out-of-range one is dropped.
func (p *Panel) SetYear(year *int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if year != nil && (*year < domain.MinYear || *year > domain.MaxYear) {
		if !p.bank.AllowsYearFilter() {
			p.year = nil
			return nil
		}
		return domain.ValidationErrors{domain.NewOutOfRangeError("year", *year, domain.MinYear, domain.MaxYear)}
	}
	p.year = year
	return nil
}

func (p *Panel) SetDifficulty(difficulty *int) error {
	if difficulty != nil && !domain.Difficulty(*difficulty).Valid() {
		return domain.ValidationErrors{domain.NewOutOfRangeError("difficulty", *difficulty, int(domain.MinDifficulty), int(domain.MaxDifficulty))}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.difficulty = difficulty
	return nil
}

func (p *Panel) SetUnseenOnly(unseen bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unseenOnly = unseen
}

// SetCount sets the requested session size; 0 lets the service decide.
func (p *Panel) SetCount(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count = count
}

func (p *Panel) Modules() []domain.Module {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Module, len(p.modules))
	copy(out, p.modules)
	return out
}

func (p *Panel) Chapters() []domain.Chapter {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Chapter, len(p.chapters))
	copy(out, p.chapters)
	return out
}

// LoadError is the error of the last module load, if it failed.
func (p *Panel) LoadError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Criteria builds the session criteria of the current selection. The year
// is left out for banks that don't filter by year.
func (p *Panel) Criteria() domain.SessionCriteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteriaLocked()
}

func (p *Panel) criteriaLocked() domain.SessionCriteria {
	c := domain.SessionCriteria{
		Bank:       p.bank,
		ChapterID:  p.chapterID,
		ModuleID:   p.moduleID,
		Difficulty: copyInt(p.difficulty),
		UnseenOnly: p.unseenOnly,
		Count:      p.count,
	}
	if p.bank.AllowsYearFilter() {
		c.Year = copyInt(p.year)
	}
	return c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// StartSession materialises a session from the current selection.
func (p *Panel) StartSession(ctx context.Context, starter SessionStarter) (*domain.Session, error) {
	return starter.CreateSession(ctx, p.Criteria())
}

// CountMatching previews how many questions the current selection matches.
func (p *Panel) CountMatching(ctx context.Context, counter QuestionCounter) (int, error) {
	return counter.CountMatching(ctx, p.Criteria())
}

// State is a read-only copy of the panel for rendering.
type State struct {
	Bank        domain.Bank
	YearEnabled bool
	Chapters    []domain.Chapter
	Modules     []domain.Module
	ChapterID   string
	ModuleID    string
	Year        *int
	Difficulty  *int
	UnseenOnly  bool
	LoadError   error
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	chapters := make([]domain.Chapter, len(p.chapters))
	copy(chapters, p.chapters)
	modules := make([]domain.Module, len(p.modules))
	copy(modules, p.modules)
	return State{
		Bank:        p.bank,
		YearEnabled: p.bank.AllowsYearFilter(),
		Chapters:    chapters,
		Modules:     modules,
		ChapterID:   p.chapterID,
		ModuleID:    p.moduleID,
		Year:        copyInt(p.year),
		Difficulty:  copyInt(p.difficulty),
		UnseenOnly:  p.unseenOnly,
		LoadError:   p.loadErr,
	}
}
