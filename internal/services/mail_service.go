package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"moments/internal/models/response_models"
	"moments/pkg/utils"
)

const ChannelEmail = "email"

type MailServiceInterface interface {
	Notifier
	SendActivityMail(ctx context.Context, activity response_models.ActivityResponse) error
}

// SMTPConfig holds SMTP credentials and branding.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string
	FromName   string
	Recipients []string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool // fail if STARTTLS is not offered
	AppName    string
}

// Enabled reports whether the account credentials needed to send are present.
func (c SMTPConfig) Enabled() bool {
	return c.Username != "" && c.Password != "" && len(c.Recipients) > 0
}

// mailTransport delivers an already rendered message.
type mailTransport func(ctx context.Context, cfg SMTPConfig, to []string, msg []byte) error

type smtpMailService struct {
	cfg       SMTPConfig
	htmlTpl   *template.Template
	textTpl   *texttemplate.Template
	transport mailTransport
	now       func() time.Time
}

func NewSMTPMailService(cfg SMTPConfig) (MailServiceInterface, error) {
	htmlTpl, err := template.New("activityHTML").Parse(activityHTMLTemplate)
	if err != nil {
		return nil, err
	}
	textTpl, err := texttemplate.New("activityText").Parse(activityTextTemplate)
	if err != nil {
		return nil, err
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.AppName == "" {
		cfg.AppName = "Moments"
	}

	return &smtpMailService{
		cfg:       cfg,
		htmlTpl:   htmlTpl,
		textTpl:   textTpl,
		transport: smtpTransport,
		now:       time.Now,
	}, nil
}

// ------------------- Public API -------------------

func (s *smtpMailService) Channel() string { return ChannelEmail }

func (s *smtpMailService) Notify(ctx context.Context, activity response_models.ActivityResponse) (string, error) {
	if err := s.SendActivityMail(ctx, activity); err != nil {
		return "", err
	}
	return fmt.Sprintf("email sent to %d recipients", len(s.cfg.Recipients)), nil
}

func (s *smtpMailService) SendActivityMail(ctx context.Context, activity response_models.ActivityResponse) error {
	if !s.cfg.Enabled() {
		return utils.ErrChannelDisabled
	}

	subject := ActivityMailSubject(activity)
	html, text, err := s.renderEmail(newActivityEmailData(activity, s.cfg.AppName, s.now()))
	if err != nil {
		return err
	}
	msg := s.buildMessage(subject, html, text)
	return s.transport(ctx, s.cfg, s.cfg.Recipients, msg)
}

// ActivityMailSubject is the subject line announcing a new activity.
func ActivityMailSubject(activity response_models.ActivityResponse) string {
	return "New Activity Added: " + activity.Title
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title        string
	Description  string
	Address      string
	Labels       string
	Date         string
	AyoubRating  int
	MedinaRating int
	Moment       string
	AppName      string
	Year         int
}

func newActivityEmailData(activity response_models.ActivityResponse, appName string, now time.Time) EmailData {
	return EmailData{
		Title:        activity.Title,
		Description:  activity.Description,
		Address:      activity.Address,
		Labels:       strings.Join(activity.Labels, ", "),
		Date:         humanDate(activity.Date),
		AyoubRating:  activity.AyoubRating,
		MedinaRating: activity.MedinaRating,
		Moment:       activity.Moment,
		AppName:      appName,
		Year:         now.Year(),
	}
}

// humanDate renders YYYY-MM-DD as "Saturday, June 7, 2025"; anything else passes through.
func humanDate(value string) string {
	t, err := time.Parse(utils.DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format("Monday, January 2, 2006")
}

const activityHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 16px; overflow: hidden; box-shadow: 0 20px 60px rgba(0, 0, 0, 0.08); }
    .header { padding: 24px 32px; border-bottom: 1px solid rgba(0, 0, 0, 0.06); font-weight: 700; color: #db2777; text-transform: uppercase; letter-spacing: 0.5px; }
    .hero { padding: 32px; }
    h2 { margin: 0 0 8px; font-size: 20px; color: #475569; }
    h3 { margin: 0 0 20px; font-size: 26px; }
    p { margin: 0 0 14px; line-height: 1.6; color: #334155; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; background: #f8fafc; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h2>🌟 New Activity Added!</h2>
      <h3>{{.Title}}</h3>
      {{if .Description}}<p><strong>Description:</strong> {{.Description}}</p>{{end}}
      {{if .Address}}<p><strong>Location:</strong> 📍 {{.Address}}</p>{{end}}
      {{if .Labels}}<p><strong>Labels:</strong> 🏷️ {{.Labels}}</p>{{end}}
      {{if .Date}}<p><strong>Date:</strong> 📅 {{.Date}}</p>{{end}}
      <p><strong>Ratings:</strong> ⭐ Ayoub {{.AyoubRating}}/10 · Medina {{.MedinaRating}}/10</p>
      {{if .Moment}}<p><strong>Moment:</strong> {{.Moment}}</p>{{end}}
      <p>Check out the full details in the {{.AppName}} app!</p>
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const activityTextTemplate = `New Activity Added!

{{.Title}}
{{if .Description}}
Description: {{.Description}}{{end}}{{if .Address}}
Location: {{.Address}}{{end}}{{if .Labels}}
Labels: {{.Labels}}{{end}}{{if .Date}}
Date: {{.Date}}{{end}}
Ratings: Ayoub {{.AyoubRating}}/10, Medina {{.MedinaRating}}/10{{if .Moment}}
Moment: {{.Moment}}{{end}}

Check out the full details in the {{.AppName}} app!
{{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(subject, htmlBody, textBody string) []byte {
	now := s.now()
	boundary := fmt.Sprintf("mixed_%d", now.UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", strings.Join(s.cfg.Recipients, ", "))
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", now.Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("UTF-8", name), s.cfg.From)
}

// ------------------- SMTP Send -------------------

func smtpTransport(ctx context.Context, cfg SMTPConfig, to []string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var conn net.Conn
	var err error
	if cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			tlsCfg := &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(cfg.From); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err = c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
