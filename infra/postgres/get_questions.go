package postgres

import (
	"context"
	"fmt"

	"quiz-service/domain"
)

const selectQuestionsByCategory = `
	SELECT id, category, question_text, COALESCE(image_path, ''),
	       option_a, option_b, option_c, option_d, LOWER(correct_answer)
	FROM questions
	WHERE category = $1
	ORDER BY id`

// GetQuestionsByCategory returns every question of category. An unknown
// category yields an empty slice, not an error.
func (r *Repository) GetQuestionsByCategory(ctx context.Context, category string) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, selectQuestionsByCategory, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(
			&q.ID,
			&q.Category,
			&q.Text,
			&q.ImagePath,
			&q.OptionA,
			&q.OptionB,
			&q.OptionC,
			&q.OptionD,
			&q.CorrectAnswer,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return questions, nil
}

// GetCategories lists the categories that have at least one question.
func (r *Repository) GetCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM questions ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
