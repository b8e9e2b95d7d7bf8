// file: internals/features/integrations/email/templates.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	helper "coursedesk_backend/internals/helpers"
)

// html/template escapes every interpolated value for its HTML context.
var templates = template.Must(template.New("email").Funcs(template.FuncMap{
	"money": helper.FormatCents,
}).Parse(`
{{define "layout_start"}}<!doctype html><html><body style="font-family:Arial,sans-serif;color:#1f2933;line-height:1.5">{{end}}
{{define "layout_end"}}<p style="color:#7b8794;font-size:12px">Questions? Just reply to this email.</p></body></html>{{end}}

{{define "enrollment_confirmation"}}{{template "layout_start"}}
<h2>You're enrolled, {{.StudentName}}!</h2>
<p>Thanks for registering for <strong>{{.ClassTitle}}</strong> ({{.ClassCode}}).</p>
{{if .StartDate}}<p>Class starts on <strong>{{.StartDate}}</strong>{{if .Location}} at {{.Location}}{{end}}.</p>{{end}}
<p>Registration fee received: <strong>{{money .AmountCents}}</strong>.</p>
{{if .Installments}}<p>Your tuition is split into two installments:</p>
<table cellpadding="6" style="border-collapse:collapse">
<tr><th align="left">Invoice</th><th align="left">Amount</th><th align="left">Due</th></tr>
{{range .Installments}}<tr><td>#{{.InvoiceNumber}}</td><td>{{money .AmountCents}}</td><td>{{.DueDate}}</td></tr>
{{end}}</table>{{end}}
{{if .ReceiptURL}}<p><a href="{{.ReceiptURL}}">View your receipt</a></p>{{end}}
{{template "layout_end"}}{{end}}

{{define "payment_receipt"}}{{template "layout_start"}}
<h2>Payment received</h2>
<p>Hi {{.StudentName}}, we received your payment of <strong>{{money .AmountCents}}</strong> for {{.ClassTitle}}.</p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{if .ReceiptURL}}<p><a href="{{.ReceiptURL}}">View your receipt</a></p>{{end}}
{{template "layout_end"}}{{end}}

{{define "past_due_reminder"}}{{template "layout_start"}}
<h2>Payment reminder</h2>
<p>Hi {{.StudentName}}, our records show that {{.Description}} for <strong>{{.ClassTitle}}</strong> was due on <strong>{{.DueDate}}</strong>.</p>
<p>Amount outstanding: <strong>{{money .AmountCents}}</strong>{{if .InvoiceNumber}} (invoice #{{.InvoiceNumber}}){{end}}.</p>
<p>If you have already paid, please disregard this message.</p>
{{template "layout_end"}}{{end}}
`))

type InstallmentRow struct {
	InvoiceNumber int64
	AmountCents   int64
	DueDate       string
}

type EnrollmentConfirmationData struct {
	StudentName  string
	ClassTitle   string
	ClassCode    string
	StartDate    string
	Location     string
	AmountCents  int64
	ReceiptURL   string
	Installments []InstallmentRow
}

type PaymentReceiptData struct {
	StudentName string
	ClassTitle  string
	AmountCents int64
	Description string
	ReceiptURL  string
}

type PastDueReminderData struct {
	StudentName   string
	ClassTitle    string
	Description   string
	DueDate       string
	AmountCents   int64
	InvoiceNumber int64
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func EnrollmentConfirmation(to string, d EnrollmentConfirmationData) (Message, error) {
	html, err := render("enrollment_confirmation", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: "Enrollment confirmed: " + d.ClassTitle, HTML: html}, nil
}

func PaymentReceipt(to string, d PaymentReceiptData) (Message, error) {
	html, err := render("payment_receipt", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: "Payment received: " + d.ClassTitle, HTML: html}, nil
}

func PastDueReminder(to string, d PastDueReminderData) (Message, error) {
	html, err := render("past_due_reminder", d)
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: "Payment reminder: " + d.ClassTitle, HTML: html}, nil
}
