package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/dtroode/kameti-auth/internal/model"
)

const (
	textOTPTemplate = `{{if .UserName}}Hi {{.UserName}}, {{end}}{{.Lead}} {{.Code}}. It will expire in {{.Minutes}} {{if eq .Minutes 1}}minute{{else}}minutes{{end}}.`
	htmlOTPTemplate = `<p>{{if .UserName}}Hi {{.UserName}}, {{end}}{{.Lead}} <b>{{.Code}}</b>. It will expire in {{.Minutes}} {{if eq .Minutes 1}}minute{{else}}minutes{{end}}.</p>`
)

type purposeCopy struct {
	subject string
	lead    string
}

var copies = map[model.Purpose]purposeCopy{
	model.PurposeSignup:         {subject: "Signup OTP", lead: "your OTP for signup is"},
	model.PurposeLogin:          {subject: "Login OTP", lead: "Your OTP for login is"},
	model.PurposeForgotPassword: {subject: "Password Reset OTP", lead: "Your OTP for password reset is"},
}

type otpData struct {
	UserName string
	Lead     string
	Code     string
	Minutes  int
}

var _ model.OTPComposer = (*Templates)(nil)

// Templates renders purpose-specific OTP emails.
type Templates struct {
	text *template.Template
	html *htmltemplate.Template
}

func NewTemplates() *Templates {
	return &Templates{
		text: template.Must(template.New("otp.txt").Parse(textOTPTemplate)),
		html: htmltemplate.Must(htmltemplate.New("otp.html").Parse(htmlOTPTemplate)),
	}
}

func (t *Templates) ComposeOTP(purpose model.Purpose, code, userName string, ttl time.Duration) (model.Message, error) {
	c, ok := copies[purpose]
	if !ok {
		return model.Message{}, fmt.Errorf("no template for otp purpose %q", purpose)
	}

	data := otpData{
		Lead:    c.lead,
		Code:    code,
		Minutes: minutes(ttl),
	}
	if purpose == model.PurposeSignup {
		data.UserName = userName
		if userName == "" {
			data.Lead = "Your OTP for signup is"
		}
	}

	var text, html bytes.Buffer
	if err := t.text.Execute(&text, data); err != nil {
		return model.Message{}, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := t.html.Execute(&html, data); err != nil {
		return model.Message{}, fmt.Errorf("failed to render html body: %w", err)
	}

	return model.Message{
		Subject: c.subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

// minutes rounds ttl up to whole minutes, never below one.
func minutes(ttl time.Duration) int {
	m := int((ttl + time.Minute - 1) / time.Minute)
	if m < 1 {
		return 1
	}
	return m
}
