package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail through an SMTP relay such as Mailpit.
type SMTPMailer struct {
	addr string
	from string
	send sendFunc
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, send: smtp.SendMail}
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to string, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := welcomeMessage(to, name)
	if err := m.send(m.addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

func welcomeMessage(to, name string) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Welcome, " + name + "!\r\n")
	b.WriteString("\r\n")
	b.WriteString("Your account was created successfully.\r\n")
	return []byte(b.String())
}
