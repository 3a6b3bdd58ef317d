package mail

import (
	"fmt"
	"net"
	"net/smtp"

	"log/slog"

	"github.com/S-Dhruv/codingAssistant/internal/app"
)

// Sender delivers room-code invitations. Split out as an interface so
// HTTP handlers can be tested without a mail server.
type Sender interface {
	SendRoomCode(to, roomCode string) error
}

// SMTP sends mail through an authenticated SMTP relay.
type SMTP struct {
	addr string // host:port
	user string
	pass string
	from string
	log  *slog.Logger
}

func NewSMTP(cfg app.Config, log *slog.Logger) *SMTP {
	return &SMTP{
		addr: cfg.SMTPAddr,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
		log:  log,
	}
}

// SendRoomCode mails the room code to a single recipient
func (s *SMTP) SendRoomCode(to, roomCode string) error {
	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		return fmt.Errorf("smtp addr: %w", err)
	}

	msg := buildRoomCodeMail(s.from, to, roomCode)
	auth := smtp.PlainAuth("", s.user, s.pass, host)
	if err := smtp.SendMail(s.addr, auth, s.from, []string{to}, msg); err != nil {
		return err
	}
	s.log.Info("mail.sent", "to", to, "room", roomCode)
	return nil
}

// buildRoomCodeMail renders the invitation as an HTML message
func buildRoomCodeMail(from, to, roomCode string) []byte {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4F46E5;">Welcome to CodeCollab!</h2>
  <p>Here is your room code to join the collaborative coding session:</p>
  <div style="background-color: #1F2937; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #fff; margin: 0;">Room Code: %s</h3>
  </div>
  <p>You can use this code to join the room and start coding with your team.</p>
  <p>Happy coding!</p>
</div>`, roomCode)

	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Your Room Code for CodeCollab\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}
