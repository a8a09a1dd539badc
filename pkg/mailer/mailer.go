package mailer

import (
	"fmt"
	"net/smtp"

	"taskboard-go/configs"
)

// Send bisa diganti saat testing agar tidak mengirim email sungguhan.
var Send = send

func send(cfg configs.Config, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		cfg.SMTPFrom, to, subject, body)
	return smtp.SendMail(addr, nil, cfg.SMTPFrom, []string{to}, []byte(msg))
}

// SendPasswordReset mengirim link reset password ke user.
func SendPasswordReset(cfg configs.Config, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", cfg.FrontendURL, token)
	body := "Click here to reset your password: " + link
	return Send(cfg, to, "Password Reset Link", body)
}
