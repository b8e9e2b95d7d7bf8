// file: internals/features/checkout/dto/checkout_dto.go
package dto

import "strings"

type CreateIntentRequest struct {
	ClassCode string `json:"class_code" validate:"required,max=32"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
}

func (r *CreateIntentRequest) Normalize() {
	r.ClassCode = strings.ToUpper(strings.TrimSpace(r.ClassCode))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Phone = strings.TrimSpace(r.Phone)
}

type CreateIntentResponse struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	ClassCode       string `json:"class_code"`
	ClassTitle      string `json:"class_title"`
}

type WebhookAck struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id"`
	Outcome   string `json:"outcome"`
	Duplicate bool   `json:"duplicate,omitempty"`
}
