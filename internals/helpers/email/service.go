// Package email mengirim email transaksional (kode verifikasi) lewat SMTP.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"stamet_backend/internals/helpers/logger"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
	AppName  string
}

type Service struct {
	config Config
	server string
	auth   smtp.Auth
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewService(config Config) *Service {
	if config.AppName == "" {
		config.AppName = "Stasiun Meteorologi"
	}
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &Service{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
		send:   smtp.SendMail,
	}
}

func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Port != "" && s.config.From != ""
}

// SendHTMLEmail mengirim satu email HTML (multipart dengan fallback teks).
func (s *Service) SendHTMLEmail(to []string, subject, htmlBody, textBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	boundary := fmt.Sprintf("stamet-%d", time.Now().UnixNano())

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "%s\r\n\r\n", textBody)

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n\r\n")
	fmt.Fprintf(&msg, "%s\r\n\r\n", htmlBody)
	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	return s.send(s.server, s.auth, s.config.From, to, msg.Bytes())
}

type VerificationData struct {
	AppName  string
	UserName string
	Code     string
	Minutes  int
}

// SendVerificationCode mengirim kode 6 digit. Tanpa konfigurasi SMTP,
// kode hanya ditulis ke log level debug.
func (s *Service) SendVerificationCode(to, userName, code string, validFor time.Duration) error {
	data := VerificationData{
		AppName:  s.config.AppName,
		UserName: userName,
		Code:     code,
		Minutes:  int(validFor.Minutes()),
	}

	if !s.IsConfigured() {
		logger.Warn().Str("to", to).Msg("smtp belum dikonfigurasi, email verifikasi tidak dikirim")
		logger.Debug().Str("to", to).Str("code", code).Msg("kode verifikasi")
		return nil
	}

	html, err := renderTemplate(verificationEmailTemplate, data)
	if err != nil {
		return fmt.Errorf("render verification template: %w", err)
	}
	text := fmt.Sprintf("Kode verifikasi %s Anda: %s (berlaku %d menit).", data.AppName, code, data.Minutes)
	subject := fmt.Sprintf("Kode verifikasi akun %s", data.AppName)
	return s.SendHTMLEmail([]string{to}, subject, html, text)
}

func renderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Verifikasi akun {{.AppName}}</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>{{.AppName}}</h2>
    <p>Halo {{.UserName}},</p>
    <p>Gunakan kode berikut untuk memverifikasi akun layanan data Anda:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
    <p>Kode berlaku {{.Minutes}} menit dan hanya dapat dipakai satu kali.</p>
    <p style="font-size: 12px; color: #666;">Abaikan email ini jika Anda tidak merasa mendaftar.</p>
</body>
</html>`
