package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-Dhruv/codingAssistant/internal/store"
)

type fakeQuizStore struct {
	quizzes map[string][]store.QuizQuestion
	results []store.Result
	fail    bool
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: map[string][]store.QuizQuestion{}}
}

func (f *fakeQuizStore) SaveQuiz(_ context.Context, roomCode string, qs []store.QuizQuestion) error {
	if f.fail {
		return errors.New("boom")
	}
	f.quizzes[roomCode] = qs
	return nil
}

func (f *fakeQuizStore) GetQuiz(_ context.Context, roomCode string) (store.Quiz, error) {
	qs, ok := f.quizzes[roomCode]
	if !ok {
		return store.Quiz{}, store.ErrNotFound
	}
	return store.Quiz{RoomCode: roomCode, Questions: qs}, nil
}

func (f *fakeQuizStore) SaveResult(_ context.Context, r store.Result) error {
	if f.fail {
		return errors.New("boom")
	}
	f.results = append(f.results, r)
	return nil
}

type fakeCache struct {
	data        map[string][]store.QuizQuestion
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]store.QuizQuestion{}} }

func (f *fakeCache) Get(_ context.Context, roomCode string) ([]store.QuizQuestion, bool) {
	qs, ok := f.data[roomCode]
	return qs, ok
}
func (f *fakeCache) Set(_ context.Context, roomCode string, qs []store.QuizQuestion) {
	f.data[roomCode] = qs
}
func (f *fakeCache) Invalidate(_ context.Context, roomCode string) {
	f.invalidated = append(f.invalidated, roomCode)
	delete(f.data, roomCode)
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestSaveQuizStoresAndInvalidatesCache(t *testing.T) {
	db := newFakeQuizStore()
	cache := newFakeCache()
	api := &QuizAPI{DB: db, Cache: cache}

	w := postJSON(t, api.Save, `{
		"roomCode": "ABC123",
		"quizData": [
			{"question": "2+2?", "options": ["3", "4"], "correctAnswer": 1}
		]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, db.quizzes["ABC123"], 1)
	assert.Equal(t, []string{"ABC123"}, cache.invalidated)
}

func TestSaveQuizRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"missing room", `{"quizData": []}`},
		{"missing quiz", `{"roomCode": "R"}`},
		{"one option", `{"roomCode": "R", "quizData": [{"question": "q", "options": ["a"], "correctAnswer": 0}]}`},
		{"answer out of range", `{"roomCode": "R", "quizData": [{"question": "q", "options": ["a", "b"], "correctAnswer": 2}]}`},
		{"negative answer", `{"roomCode": "R", "quizData": [{"question": "q", "options": ["a", "b"], "correctAnswer": -1}]}`},
		{"empty question", `{"roomCode": "R", "quizData": [{"question": "", "options": ["a", "b"], "correctAnswer": 0}]}`},
		{"answer not a number", `{"roomCode": "R", "quizData": [{"question": "q", "options": ["a", "b"], "correctAnswer": "0"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &QuizAPI{DB: newFakeQuizStore()}
			w := postJSON(t, api.Save, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetQuizReadsThroughCache(t *testing.T) {
	db := newFakeQuizStore()
	db.quizzes["R"] = []store.QuizQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: 0}}
	cache := newFakeCache()
	api := &QuizAPI{DB: db, Cache: cache}

	// miss -> db -> cache fill
	w := postJSON(t, api.Get, `{"roomCode": "R"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, cache.data, "R")

	// hit -> served even if db forgets the quiz
	delete(db.quizzes, "R")
	w = postJSON(t, api.Get, `{"roomCode": "R"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp getQuizResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.QuizData, 1)
}

func TestGetQuizNotFound(t *testing.T) {
	api := &QuizAPI{DB: newFakeQuizStore()}
	w := postJSON(t, api.Get, `{"roomCode": "nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResultsSaved(t *testing.T) {
	db := newFakeQuizStore()
	api := &QuizAPI{DB: db}

	w := postJSON(t, api.Results, `{
		"userId": "u1", "roomCode": "R", "score": 3,
		"totalQuestions": 5, "answers": [1, 0, 2, 2, 1]
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, db.results, 1)
	assert.Equal(t, "u1", db.results[0].UserID)
	assert.Equal(t, 3, db.results[0].Score)
	assert.JSONEq(t, `[1, 0, 2, 2, 1]`, string(db.results[0].Answers))
}

func TestResultsRejectsMissingIdentity(t *testing.T) {
	api := &QuizAPI{DB: newFakeQuizStore()}
	w := postJSON(t, api.Results, `{"score": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
