package history

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"study-quiz/internal/quiz"
)

const DefaultPath = "quiz_history.db"

// Round is a finished round as stored on disk.
type Round struct {
	ID             uuid.UUID
	Score          int
	CorrectCount   int
	QuestionCount  int
	WeakCategory   string
	Recommendation string
	FinishedAt     time.Time
	WrongAnswers   []quiz.WrongAnswer
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			round_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			correct_count INTEGER NOT NULL,
			question_count INTEGER NOT NULL,
			weak_category TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			finished_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wrong_answers (
			round_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			category TEXT NOT NULL,
			PRIMARY KEY (round_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_finished_at ON rounds(finished_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRound stores summary under a fresh id and returns the stored row.
func (s *Store) RecordRound(ctx context.Context, summary quiz.RoundSummary) (Round, error) {
	round := Round{
		ID:             uuid.New(),
		Score:          summary.Score,
		CorrectCount:   summary.CorrectCount,
		QuestionCount:  summary.QuestionCount,
		WeakCategory:   summary.Recommendation.Category,
		Recommendation: summary.Recommendation.Text,
		FinishedAt:     s.now(),
		WrongAnswers:   summary.WrongAnswers,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Round{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO rounds (round_id, score, correct_count, question_count, weak_category, recommendation, finished_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		round.ID.String(),
		round.Score,
		round.CorrectCount,
		round.QuestionCount,
		round.WeakCategory,
		round.Recommendation,
		round.FinishedAt.UnixNano(),
	)
	if err != nil {
		return Round{}, err
	}

	for idx, wrong := range round.WrongAnswers {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO wrong_answers (round_id, position, question, correct_answer, category) VALUES (?, ?, ?, ?, ?)`,
			round.ID.String(),
			idx,
			wrong.QuestionText,
			wrong.CorrectAnswer,
			wrong.Category,
		); err != nil {
			return Round{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Round{}, err
	}
	return round, nil
}

// RecentRounds returns up to limit rounds, newest first.
func (s *Store) RecentRounds(ctx context.Context, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT round_id, score, correct_count, question_count, weak_category, recommendation, finished_at_unix
		 FROM rounds
		 ORDER BY finished_at_unix DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}

	rounds := make([]Round, 0)
	for rows.Next() {
		var (
			round          Round
			rawID          string
			finishedAtUnix int64
		)
		if err := rows.Scan(&rawID, &round.Score, &round.CorrectCount, &round.QuestionCount, &round.WeakCategory, &round.Recommendation, &finishedAtUnix); err != nil {
			_ = rows.Close()
			return nil, err
		}
		round.ID, err = uuid.Parse(rawID)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		round.FinishedAt = time.Unix(0, finishedAtUnix).UTC()
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for idx := range rounds {
		wrong, err := s.wrongAnswers(ctx, rounds[idx].ID)
		if err != nil {
			return nil, err
		}
		rounds[idx].WrongAnswers = wrong
	}

	return rounds, nil
}

// CategoryMisses totals wrong answers per category across every stored round.
func (s *Store) CategoryMisses(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM wrong_answers GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	misses := make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		misses[category] = count
	}
	return misses, rows.Err()
}

func (s *Store) wrongAnswers(ctx context.Context, roundID uuid.UUID) ([]quiz.WrongAnswer, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question, correct_answer, category
		 FROM wrong_answers
		 WHERE round_id = ?
		 ORDER BY position ASC`,
		roundID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wrong := make([]quiz.WrongAnswer, 0)
	for rows.Next() {
		var item quiz.WrongAnswer
		if err := rows.Scan(&item.QuestionText, &item.CorrectAnswer, &item.Category); err != nil {
			return nil, err
		}
		wrong = append(wrong, item)
	}
	return wrong, rows.Err()
}
