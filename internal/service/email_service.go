package service

import (
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"sort"
	"strings"

	"ekoi-website/internal/config"
)

type EmailService struct {
	config *config.Config
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type emailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (s *EmailService) Enabled() bool {
	if s == nil || s.config == nil || !s.config.EnableEmail {
		return false
	}
	cfg := s.resolveConfig()
	return cfg.Host != "" && cfg.Username != "" && cfg.Password != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if s == nil || !s.Enabled() {
		return errors.New("email service is disabled or not configured")
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("email recipient is required")
	}

	cfg := s.resolveConfig()

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	return s.send(addr, auth, cfg.From, []string{to}, buildMessage(cfg.From, to, subject, body))
}

func buildMessage(from, to, subject, body string) []byte {
	headers := map[string]string{
		"From":         headerValue(from),
		"To":           headerValue(to),
		"Subject":      mime.QEncoding.Encode("utf-8", headerValue(subject)),
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(headers[key])
		builder.WriteString("\r\n")
	}

	builder.WriteString("\r\n")
	builder.WriteString(body)

	return []byte(builder.String())
}

// headerValue folds CR and LF into spaces so a value can never start a new
// header line.
func headerValue(value string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(value))
}

func (s *EmailService) resolveConfig() emailConfig {
	result := emailConfig{Port: "587"}
	if s == nil || s.config == nil {
		return result
	}

	result.Host = strings.TrimSpace(s.config.SMTPHost)
	result.Port = strings.TrimSpace(s.config.SMTPPort)
	result.Username = strings.TrimSpace(s.config.SMTPUsername)
	result.Password = strings.TrimSpace(s.config.SMTPPassword)
	result.From = strings.TrimSpace(s.config.SMTPFrom)

	if result.Port == "" {
		result.Port = "587"
	}
	if result.From == "" && result.Host != "" {
		result.From = "noreply@" + result.Host
	}

	return result
}
