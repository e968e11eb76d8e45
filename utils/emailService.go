package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"tix/config"
	"tix/models"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Ticket Desk <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// NotifyNewTicket mails the support inbox about a freshly created ticket.
// Best effort: called from a goroutine, failures are logged only.
func NotifyNewTicket(ticket *models.Ticket) {
	inbox := config.AppConfig.SupportInbox
	if inbox == "" || config.AppConfig.EmailSender == "" {
		return
	}

	subject := fmt.Sprintf("Nuevo ticket #%d: %s", ticket.ID, ticket.Title)
	body := fmt.Sprintf(`
		<html>
		<body style="font-family: Arial, sans-serif;">
			<h2>Nuevo ticket</h2>
			<p><b>ID:</b> #%d</p>
			<p><b>Tipo:</b> %s</p>
			<p><b>Titulo:</b> %s</p>
			<p><b>Skin:</b> %s</p>
			<p><b>Mensaje:</b> %s</p>
			<p><b>Fecha:</b> %s</p>
		</body>
		</html>`,
		ticket.ID, ticket.Type, ticket.Title, ticket.Skin, ticket.Message, ticket.Date,
	)

	if err := SendEmail([]string{inbox}, subject, body); err != nil {
		log.Printf("Failed to notify support inbox about ticket %d: %v", ticket.ID, err)
	}
}
