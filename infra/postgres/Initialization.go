package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	createQuestionsTable = `
		CREATE TABLE IF NOT EXISTS questions (
			id SERIAL PRIMARY KEY,
			category VARCHAR(100) NOT NULL,
			question_text TEXT NOT NULL,
			image_path VARCHAR(255),
			option_a VARCHAR(255) NOT NULL,
			option_b VARCHAR(255) NOT NULL,
			option_c VARCHAR(255) NOT NULL,
			option_d VARCHAR(255) NOT NULL,
			correct_answer CHAR(1) NOT NULL CHECK (correct_answer IN ('a', 'b', 'c', 'd')),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	createIndexes = `
		CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category);`

	// Seeded only into an empty table.
	insertSampleQuestions = `
		INSERT INTO questions (category, question_text, image_path, option_a, option_b, option_c, option_d, correct_answer)
		SELECT * FROM (VALUES
			('Science', 'Which animal produces milk?', NULL, 'Chicken', 'Cow', 'Cat', 'Fish', 'b'),
			('Science', 'Which animal is known as the king of the jungle?', NULL, 'Elephant', 'Giraffe', 'Lion', 'Zebra', 'c')
		) AS seed
		WHERE NOT EXISTS (SELECT 1 FROM questions);`
)

type Repository struct {
	db *sql.DB
}

func NewRepository(connString string) (*Repository, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Pool tuning
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	zap.L().Info("Connected to PostgreSQL successfully")

	if err := initDB(db); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Repository{db: db}, nil
}

// initDB creates the schema and seeds the sample questions.
func initDB(db *sql.DB) error {
	tables := []struct {
		name  string
		query string
	}{
		{"questions", createQuestionsTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create '%s' table: %w", table.name, err)
		}
		zap.L().Info("Table created", zap.String("table", table.name))
	}

	if _, err := db.Exec(createIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	if _, err := db.Exec(insertSampleQuestions); err != nil {
		return fmt.Errorf("failed to insert sample questions: %w", err)
	}

	zap.L().Info("Database initialized successfully")
	return nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
