package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SaveQuiz upserts the quiz for a room. A room holds at most one quiz;
// saving again replaces it.
func (p *Postgres) SaveQuiz(ctx context.Context, roomCode string, questions []QuizQuestion) error {
	blob, err := json.Marshal(questions)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO quizzes (room_code, quiz_data)
		VALUES ($1, $2)
		ON CONFLICT (room_code)
		DO UPDATE SET quiz_data = EXCLUDED.quiz_data, updated_at = NOW()
	`, roomCode, blob)
	if err != nil {
		return err
	}
	p.log.Info("quiz.saved", "room", roomCode, "questions", len(questions))
	return nil
}

// GetQuiz fetches the quiz stored for a room
func (p *Postgres) GetQuiz(ctx context.Context, roomCode string) (Quiz, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, room_code, quiz_data, created_at, updated_at
		FROM quizzes
		WHERE room_code = $1
	`, roomCode)

	var q Quiz
	var blob []byte
	if err := row.Scan(&q.ID, &q.RoomCode, &blob, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal(blob, &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}
