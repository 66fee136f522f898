package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"medqbank/cmd/seed_initial_data/internal/seedmodels"
	"medqbank/internal/adapter"
	"medqbank/internal/cache"
	"medqbank/internal/config"
	"medqbank/internal/database"
	"medqbank/internal/domain"
	"medqbank/internal/dto"
	"medqbank/internal/logger"
	"medqbank/internal/repository"
	"medqbank/internal/service"
	"medqbank/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const defaultSeedFile = "config/seed_data/initial_qbank.json"

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFile := flag.String("file", defaultSeedFile, "path of the JSON seed file")
	tokenUser := flag.String("token-user", "", "print a development access token for this user id (a new uuid when set to \"new\")")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the development token")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if *tokenUser != "" {
		if err := printDevToken(cfg, *tokenUser, *tokenTTL); err != nil {
			log.Fatal("Failed to sign development token", zap.Error(err))
		}
		return
	}

	ctx := context.Background()
	log.Info("Starting initial data seeding process...")
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", *seedFile))
	byteValue, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	var chapters []seedmodels.SeedChapter
	if err := json.Unmarshal(byteValue, &chapters); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("chapters_loaded", len(chapters)))

	var seeded []seededChapter
	for i, ch := range chapters {
		chapterID, err := seedChapter(ctx, db, log, ch, i)
		if err != nil {
			log.Error("Error seeding chapter, transaction rolled back", zap.String("chapter", ch.Slug), zap.Error(err))
			continue
		}
		seeded = append(seeded, seededChapter{Slug: ch.Slug, ID: chapterID})
	}

	// The API caches the catalog; a running instance would keep serving the
	// old chapter list until the TTL expires.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, catalog cache not invalidated", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	}
	catalog := service.NewCatalogService(repository.NewCatalogDatabaseAdapter(db), cacheAdapter, cfg)
	invalidateSeeded(ctx, catalog, seeded, log)

	log.Info("Initial data seeding process completed.")
}

type seededChapter struct {
	Slug string
	ID   string
}

type catalogInvalidator interface {
	InvalidateChapter(ctx context.Context, slug, chapterID string) error
}

// invalidateSeeded drops the cached catalog entries of every committed
// chapter. Failures are logged; the seeded data itself is already stored.
func invalidateSeeded(ctx context.Context, catalog catalogInvalidator, seeded []seededChapter, log *zap.Logger) int {
	invalidated := 0
	for _, ch := range seeded {
		if err := catalog.InvalidateChapter(ctx, ch.Slug, ch.ID); err != nil {
			log.Warn("Failed to invalidate cached chapter", zap.String("chapter", ch.Slug), zap.Error(err))
			continue
		}
		invalidated++
	}
	return invalidated
}

// printDevToken mints a token the API accepts, for local testing without the
// hosted auth backend.
func printDevToken(cfg *config.Config, userID string, ttl time.Duration) error {
	if userID == "new" {
		userID = uuid.NewString()
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("token user must be a uuid: %w", err)
	}
	now := time.Now()
	claims := &dto.AuthClaims{
		Role: "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    cfg.Auth.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if cfg.Auth.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Auth.Audience}
	}
	token, err := service.SignToken(cfg.Auth.JWTSecret, claims)
	if err != nil {
		return err
	}
	fmt.Printf("user_id: %s\ntoken: %s\n", userID, token)
	return nil
}

// seedChapter upserts one chapter and its modules in a single transaction.
// Questions are only inserted into modules that have none yet, so running the
// seeder twice doesn't duplicate them.
func seedChapter(ctx context.Context, db *sqlx.DB, log *zap.Logger, ch seedmodels.SeedChapter, sortOrder int) (chapterID string, err error) {
	log.Info("Processing chapter", zap.String("slug", ch.Slug))
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction for chapter %s: %w", ch.Slug, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = cErr
		} else {
			log.Info("Committed chapter", zap.String("slug", ch.Slug))
		}
	}()

	chapterID, err = ensureChapter(ctx, tx, ch, sortOrder)
	if err != nil {
		return "", err
	}

	for i, m := range ch.Modules {
		moduleID, err := ensureModule(ctx, tx, chapterID, m, i)
		if err != nil {
			return "", err
		}

		var existing int
		if err := tx.GetContext(ctx, &existing, tx.Rebind(`SELECT COUNT(*) FROM qbank_questions WHERE module_id = ?`), moduleID); err != nil {
			return "", fmt.Errorf("failed to count questions of module %s: %w", m.Slug, err)
		}
		if existing > 0 {
			log.Info("Module already has questions, skipping", zap.String("module", m.Slug), zap.Int("questions", existing))
			continue
		}

		for _, q := range m.Questions {
			if err := insertQuestion(ctx, tx, moduleID, q); err != nil {
				return "", fmt.Errorf("failed to insert question %q: %w", firstN(q.Stem, 30), err)
			}
		}
		log.Info("Seeded module", zap.String("module", m.Slug), zap.Int("questions", len(m.Questions)))
	}
	return chapterID, nil
}

func ensureChapter(ctx context.Context, tx *sqlx.Tx, ch seedmodels.SeedChapter, sortOrder int) (string, error) {
	var id string
	err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM chapters WHERE slug = ?`), ch.Slug)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("error checking chapter %s: %w", ch.Slug, err)
	}

	id = uuid.NewString()
	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO chapters (id, slug, title, description, sort_order) VALUES (?, ?, ?, ?, ?)`),
		id, ch.Slug, ch.Title, ch.Description, sortOrder)
	if err != nil {
		return "", fmt.Errorf("failed to save chapter %s: %w", ch.Slug, err)
	}
	return id, nil
}

func ensureModule(ctx context.Context, tx *sqlx.Tx, chapterID string, m seedmodels.SeedModule, sortOrder int) (string, error) {
	var id string
	err := tx.GetContext(ctx, &id, tx.Rebind(`SELECT id FROM modules WHERE chapter_id = ? AND slug = ?`), chapterID, m.Slug)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("error checking module %s: %w", m.Slug, err)
	}

	id = uuid.NewString()
	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO modules (id, slug, title, description, chapter_id, year_min, year_max, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, m.Slug, m.Title, m.Description, chapterID, util.IntPtrToNullInt64(m.YearMin), util.IntPtrToNullInt64(m.YearMax), sortOrder)
	if err != nil {
		return "", fmt.Errorf("failed to save module %s: %w", m.Slug, err)
	}
	return id, nil
}

func insertQuestion(ctx context.Context, tx *sqlx.Tx, moduleID string, q seedmodels.SeedQuestion) error {
	bank, err := domain.ParseBank(q.Bank)
	if err != nil {
		return err
	}
	if !domain.Difficulty(q.Difficulty).Valid() {
		return fmt.Errorf("difficulty %d out of range", q.Difficulty)
	}

	questionID := uuid.NewString()
	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO qbank_questions (id, bank, module_id, stem, explanation, difficulty, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		questionID, string(bank), moduleID, q.Stem, q.Explanation, q.Difficulty, time.Now().UTC())
	if err != nil {
		return err
	}

	insertChoice := tx.Rebind(`INSERT INTO qbank_choices (id, question_id, label, is_correct, sort_order) VALUES (?, ?, ?, ?, ?)`)
	for i, c := range q.Choices {
		correct := 0
		if c.IsCorrect {
			correct = 1
		}
		if _, err := tx.ExecContext(ctx, insertChoice, uuid.NewString(), questionID, c.Label, correct, i); err != nil {
			return err
		}
	}
	return nil
}
