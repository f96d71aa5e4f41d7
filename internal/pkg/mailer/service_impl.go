package mailer

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
)

type impl struct {
	cfg SMTPConfig
}

type SMTPConfig struct {
	Host       string
	Port       string
	Username   string
	Password   string
	Encryption string // "tls" usa STARTTLS + AUTH LOGIN
	Address    string // remetente
}

var (
	instance                Service
	once                    sync.Once
	initErr                 error
	ErrMailerNotInitialized = errors.New("mailer not initialized")
	ErrInvalidRecipient     = errors.New("invalid recipient")
)

// loginAuth implementa AUTH LOGIN, exigido pelo Office 365.
type loginAuth struct {
	username, password string
}

func LoginAuth(username, password string) smtp.Auth {
	return &loginAuth{username, password}
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	return "LOGIN", []byte{}, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch string(fromServer) {
	case "Username:":
		return []byte(a.username), nil
	case "Password:":
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unknown challenge from server: %q", fromServer)
	}
}

func New(cfg SMTPConfig) (Service, error) {
	once.Do(func() {
		if cfg.Host == "" || cfg.Port == "" || cfg.Username == "" ||
			cfg.Password == "" || cfg.Address == "" {
			initErr = errors.New("missing required SMTP configuration")
			return
		}
		instance = &impl{cfg: cfg}
	})

	return instance, initErr
}

// Use retorna a instância (pode ser nil quando o SMTP não está configurado).
func Use() Service { return instance }

func (m *impl) SendRaw(to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || !strings.Contains(to, "@") {
		return ErrInvalidRecipient
	}

	msg := buildMessage(m.cfg.Address, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	var err error
	if m.cfg.Encryption == "tls" {
		err = m.sendWithStartTLS(addr, to, msg)
	} else {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		err = smtp.SendMail(addr, auth, m.cfg.Address, []string{to}, msg)
	}
	if err != nil {
		slog.Error("erro ao enviar email",
			slog.String("component", "MAILER"),
			slog.String("addr", addr),
			slog.Any("error", err),
		)
		return fmt.Errorf("erro ao enviar email via %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	subject = strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)
	return []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-version: 1.0;\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
			body,
	)
}

func (m *impl) sendWithStartTLS(addr, to string, msg []byte) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial error: %w", err)
	}
	defer c.Close()

	if err = c.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello error: %w", err)
	}
	if err = c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
		return fmt.Errorf("smtp starttls error: %w", err)
	}
	if err = c.Auth(LoginAuth(m.cfg.Username, m.cfg.Password)); err != nil {
		return fmt.Errorf("smtp auth error: %w", err)
	}
	if err = c.Mail(m.cfg.Address); err != nil {
		return fmt.Errorf("smtp mail error: %w", err)
	}
	if err = c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt error: %w", err)
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data error: %w", err)
	}
	if _, err = wc.Write(msg); err != nil {
		_ = wc.Close()
		return fmt.Errorf("smtp write error: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("smtp close data error: %w", err)
	}

	// a mensagem já foi aceita; falha no QUIT é irrelevante
	_ = c.Quit()
	return nil
}

func (m *impl) SendTemplate(to, subject string, tpl string, data interface{}) error {
	body, err := Render(tpl, data)
	if err != nil {
		return err
	}
	return m.SendRaw(to, subject, body)
}

// Render executa o template HTML com escape automático dos dados.
func Render(tpl string, data interface{}) (string, error) {
	t, err := template.New("email").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
