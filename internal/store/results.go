package store

import "context"

// SaveResult records a quiz submission
func (p *Postgres) SaveResult(ctx context.Context, r Result) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO results (user_id, room_code, score, total_questions, answers)
		VALUES ($1, $2, $3, $4, $5)
	`, r.UserID, r.RoomCode, r.Score, r.TotalQuestions, r.Answers)
	if err != nil {
		return err
	}
	p.log.Info("result.saved", "user", r.UserID, "room", r.RoomCode, "score", r.Score)
	return nil
}

// ListResults returns all submissions for a room, newest first
func (p *Postgres) ListResults(ctx context.Context, roomCode string) ([]Result, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, user_id, room_code, score, total_questions, answers, created_at
		FROM results
		WHERE room_code = $1
		ORDER BY created_at DESC
	`, roomCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.UserID, &r.RoomCode, &r.Score, &r.TotalQuestions, &r.Answers, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
