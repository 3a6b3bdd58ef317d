package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/S-Dhruv/codingAssistant/internal/store"
)

// QuizStore is the slice of the store the quiz API needs.
type QuizStore interface {
	SaveQuiz(ctx context.Context, roomCode string, questions []store.QuizQuestion) error
	GetQuiz(ctx context.Context, roomCode string) (store.Quiz, error)
	SaveResult(ctx context.Context, r store.Result) error
}

type QuizCache interface {
	Get(ctx context.Context, roomCode string) ([]store.QuizQuestion, bool)
	Set(ctx context.Context, roomCode string, qs []store.QuizQuestion)
	Invalidate(ctx context.Context, roomCode string)
}

type QuizAPI struct {
	DB    QuizStore
	Cache QuizCache // optional
}

type apiResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type saveQuizReq struct {
	RoomCode string               `json:"roomCode"`
	QuizData []store.QuizQuestion `json:"quizData"`
}

type getQuizReq struct {
	RoomCode string `json:"roomCode"`
}

type getQuizResp struct {
	Success  bool                 `json:"success"`
	QuizData []store.QuizQuestion `json:"quizData"`
}

type resultReq struct {
	UserID         string          `json:"userId"`
	RoomCode       string          `json:"roomCode"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Answers        json.RawMessage `json:"answers"`
}

// Save validates and upserts a room's quiz
func (a *QuizAPI) Save(w http.ResponseWriter, r *http.Request) {
	var req saveQuizReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomCode == "" || req.QuizData == nil {
		writeJSONStatus(w, http.StatusBadRequest, apiResp{Success: false, Message: "Invalid JSON format"})
		return
	}
	if err := validateQuestions(req.QuizData); err != nil {
		writeJSONStatus(w, http.StatusBadRequest, apiResp{Success: false, Message: "Invalid question format"})
		return
	}

	if err := a.DB.SaveQuiz(r.Context(), req.RoomCode, req.QuizData); err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, apiResp{Success: false, Message: "Server error"})
		return
	}
	if a.Cache != nil {
		a.Cache.Invalidate(r.Context(), req.RoomCode)
	}
	writeJSON(w, apiResp{Success: true, Message: "Quiz saved successfully!"})
}

// Get returns the quiz for a room, cache first
func (a *QuizAPI) Get(w http.ResponseWriter, r *http.Request) {
	var req getQuizReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomCode == "" {
		writeJSONStatus(w, http.StatusBadRequest, apiResp{Success: false, Message: "Invalid JSON format"})
		return
	}

	if a.Cache != nil {
		if qs, ok := a.Cache.Get(r.Context(), req.RoomCode); ok {
			writeJSON(w, getQuizResp{Success: true, QuizData: qs})
			return
		}
	}

	q, err := a.DB.GetQuiz(r.Context(), req.RoomCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONStatus(w, http.StatusNotFound, apiResp{Success: false, Message: "Quiz not found"})
			return
		}
		writeJSONStatus(w, http.StatusInternalServerError, apiResp{Success: false, Message: "Error fetching quiz"})
		return
	}

	if a.Cache != nil {
		a.Cache.Set(r.Context(), req.RoomCode, q.Questions)
	}
	writeJSON(w, getQuizResp{Success: true, QuizData: q.Questions})
}

// Results stores a quiz submission
func (a *QuizAPI) Results(w http.ResponseWriter, r *http.Request) {
	var req resultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.RoomCode == "" {
		writeJSONStatus(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON format"})
		return
	}

	err := a.DB.SaveResult(r.Context(), store.Result{
		UserID:         req.UserID,
		RoomCode:       req.RoomCode,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Answers:        req.Answers,
	})
	if err != nil {
		writeJSONStatus(w, http.StatusInternalServerError, map[string]string{"message": "Error saving results"})
		return
	}
	writeJSON(w, map[string]string{"message": "Results saved successfully!"})
}

// validateQuestions enforces the quiz shape: non-empty prompt, at least
// two options, correct answer inside the option range.
func validateQuestions(qs []store.QuizQuestion) error {
	for _, q := range qs {
		if q.Question == "" {
			return errors.New("empty question")
		}
		if len(q.Options) < 2 {
			return errors.New("too few options")
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return errors.New("correct answer out of range")
		}
	}
	return nil
}
