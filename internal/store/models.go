package store

import (
	"encoding/json"
	"time"
)

// QuizQuestion is one multiple-choice question. CorrectAnswer indexes
// into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type Quiz struct {
	ID        string
	RoomCode  string
	Questions []QuizQuestion
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result is one user's submission for a room's quiz. Answers is kept
// opaque, the shape is owned by the client.
type Result struct {
	ID             string
	UserID         string
	RoomCode       string
	Score          int
	TotalQuestions int
	Answers        json.RawMessage
	CreatedAt      time.Time
}

type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
