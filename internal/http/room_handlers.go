package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"log/slog"

	"github.com/S-Dhruv/codingAssistant/internal/mail"
)

type RoomAPI struct {
	Mail mail.Sender
	Log  *slog.Logger
}

type sendCodeReq struct {
	RoomCode string `json:"roomCode"`
	Email    string `json:"email"`
}

// SendCode mails a room code to the given address
func (a *RoomAPI) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.RoomCode == "" || !strings.Contains(req.Email, "@") {
		writeJSONStatus(w, http.StatusBadRequest, map[string]string{"message": "roomCode and email required"})
		return
	}

	if err := a.Mail.SendRoomCode(req.Email, req.RoomCode); err != nil {
		a.Log.Error("mail.send", "to", req.Email, "err", err)
		writeJSONStatus(w, http.StatusInternalServerError, map[string]string{"message": "Error sending email"})
		return
	}
	writeJSON(w, map[string]string{"message": "Email sent successfully"})
}
