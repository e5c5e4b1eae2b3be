package smtpmail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers login-link emails over plain SMTP. Sends are
// blocking and made inline within the request.
type Mailer struct {
	host     string
	port     int
	useTLS   bool
	username string
	password string
	from     *mail.Address

	timeout time.Duration
}

func New(host string, port int, useTLS bool, username, password, defaultSender string) (*Mailer, error) {
	if host == "" {
		return nil, errors.New("mail server host not set")
	}
	from, err := mail.ParseAddress(defaultSender)
	if err != nil {
		return nil, fmt.Errorf("invalid default sender %q: %w", defaultSender, err)
	}

	return &Mailer{
		host:     host,
		port:     port,
		useTLS:   useTLS,
		username: username,
		password: password,
		from:     from,
		timeout:  10 * time.Second,
	}, nil
}

func (m *Mailer) SendLoginLink(ctx context.Context, toEmail, loginURL string) error {
	msg := m.buildMessage(toEmail, loginURL)

	client, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect to mail server: %w", err)
	}
	defer client.Close()

	if m.username != "" {
		if ok, _ := client.Extension("AUTH"); !ok {
			return errors.New("mail server does not support AUTH")
		}
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.from.Address); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}

func (m *Mailer) dial(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	dialer := &net.Dialer{Timeout: m.timeout}

	var (
		conn net.Conn
		err  error
	)
	if m.useTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: m.host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	return smtp.NewClient(conn, m.host)
}

func (m *Mailer) buildMessage(toEmail, loginURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from.String())
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	b.WriteString("Subject: Your sign-in link\r\n")
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Click the link below to sign in:\r\n\r\n")
	b.WriteString(loginURL + "\r\n\r\n")
	b.WriteString("The link expires in 24 hours. If you did not request it, ignore this email.\r\n")
	return b.String()
}
