package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// IsConfigured reports whether outgoing mail can be sent.
func IsConfigured() bool {
	return env.GetEnv("SMTP_HOST", "") != ""
}

// SendWelcome greets a newly registered student. Failures are logged by
// SendMail; callers treat this as best effort.
func SendWelcome(to, name string) error {
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p><p>Bienvenue sur Jàngatub ! Retrouve les épreuves, corrigés et quiz de ton niveau.</p>",
		name,
	)
	return SendMail(to, "Bienvenue sur Jàngatub", body)
}

// SendSubscriptionReceipt confirms an activated premium subscription.
func SendSubscriptionReceipt(to, name, plan string) error {
	body := fmt.Sprintf(
		"<p>Bonjour %s,</p><p>Ton abonnement Premium (%s) est actif. Bonne révision !</p>",
		name, plan,
	)
	return SendMail(to, "Ton abonnement Premium est actif", body)
}
