// Package mailer sends outbound email. Delivery is best effort and always
// asynchronous relative to the HTTP response.
package mailer

import (
	"errors"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/KNehe/swimmy/internal/worker"
)

type Mailer interface {
	Send(to []string, subject, body string) error
}

type SMTPMailer struct {
	Addr string
	From string
}

func NewSMTP(addr, from string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from}
}

func (m *SMTPMailer) Send(to []string, subject, body string) error {
	msg := "From: " + m.From + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n"
	return smtp.SendMail(m.Addr, nil, m.From, to, []byte(msg))
}

// Dispatcher queues sends on the worker pool. Failures are logged, never
// returned to the request path.
type Dispatcher struct {
	m  Mailer
	wp *worker.Pool
}

func NewDispatcher(m Mailer, wp *worker.Pool) *Dispatcher {
	return &Dispatcher{m: m, wp: wp}
}

// Dispatch enqueues a send. The only caller-visible failure is a full
// queue; delivery errors after that point are logged and dropped.
func (d *Dispatcher) Dispatch(to []string, subject, body string) error {
	ok := d.wp.TrySubmit(func() {
		if err := d.m.Send(to, subject, body); err != nil {
			slog.Error("mail send failed", "to", to, "err", err)
			return
		}
		slog.Info("mail sent", "to", to)
	})
	if !ok {
		return errors.New("mail queue full")
	}
	return nil
}
