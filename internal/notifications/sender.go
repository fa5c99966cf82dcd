package notifications

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender интерфейс отправки писем
type Sender interface {
	Send(to string, subject string, body string) error
}

// SMTPSender отправляет письма через SMTP без аутентификации
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender создает отправителя писем
func NewSMTPSender(host, port, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", strings.TrimSpace(host), strings.TrimSpace(port)),
		from: strings.TrimSpace(from),
	}
}

// Send отправляет письмо получателю
func (s *SMTPSender) Send(to string, subject string, body string) error {
	msg := buildMessage(s.from, to, subject, body)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// buildMessage собирает минимальное RFC 5322 письмо в формате text/plain
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
