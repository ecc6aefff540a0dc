package main

import (
	"fmt"
	"io"

	"github.com/go-gomail/gomail"

	"freightbill/internal/config"
)

// ---------------------------------------------------------------------------
// Email
// ---------------------------------------------------------------------------

// Attachment is a generated file held in memory.
type Attachment struct {
	Filename string
	Data     []byte
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

func newDialer(cfg *config.Config) *gomail.Dialer {
	return gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
}

// newMessage builds the bill mail with the attachments streamed from memory.
func newMessage(cfg *config.Config, subject string, attachments ...Attachment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.Email.From)
	msg.SetHeader("To", cfg.Email.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", "Please find the bill attached.<br>")

	for _, a := range attachments {
		data := a.Data
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return msg
}

// sendEmail mails the attachments through s.
func sendEmail(cfg *config.Config, s sender, subject string, attachments ...Attachment) error {
	if err := s.DialAndSend(newMessage(cfg, subject, attachments...)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
