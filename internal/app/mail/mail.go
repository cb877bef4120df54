package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"

	"bidding/internal/app/config"
)

// Client отправляет транзакционные письма через SMTP
type Client struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Client {
	return &Client{cfg: cfg}
}

const resetSubject = "Bidding App - Password Reset"

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; line-height: 1.5; color: #333;">
  <div style="background-color: #4CAF50; padding: 20px; text-align: center; color: white;">
    <h1>Password Reset OTP</h1>
  </div>
  <div style="padding: 20px;">
    <p>Hello,</p>
    <p>Your Password Reset code is:</p>
    <h1 style="font-size: 36px; color: #4CAF50; text-align: center;">{{.Code}}</h1>
    <p>Enter this code on the verification page to reset your Password.</p>
    <p>This code will expire in <b>24 Hours</b> for security reasons.</p>
    <p>If you did not create an account with us, please ignore this email.</p>
    <br />
    <p>Best regards,</p>
    <p>Bidding App</p>
  </div>
</div>`))

func resetBody(code string) (string, error) {
	var buf bytes.Buffer
	err := resetTemplate.Execute(&buf, struct{ Code string }{Code: code})
	if err != nil {
		return "", fmt.Errorf("failed to render reset template: %w", err)
	}
	return buf.String(), nil
}

// SendResetOTP отправляет пользователю одноразовый код сброса пароля
func (c *Client) SendResetOTP(to, code string) error {
	body, err := resetBody(code)
	if err != nil {
		return err
	}
	return c.send(to, resetSubject, body)
}

// send доставляет HTML-письмо по SMTP.
// Соединение ограничено таймаутом из конфигурации, чтобы зависший
// почтовый сервер не держал запрос
func (c *Client) send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	conn, err := net.DialTimeout("tcp", addr, c.cfg.Timeout)
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(c.cfg.Timeout))

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	if c.cfg.Username != "" {
		auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err = client.Mail(c.cfg.From); err != nil {
		return err
	}
	if err = client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}

	msg := buildMessage(c.cfg, to, subject, htmlBody)
	if _, err = w.Write([]byte(msg)); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func buildMessage(cfg config.SMTPConfig, to, subject, htmlBody string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s <%s>\r\n", cfg.FromName, cfg.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}
