// file: internals/features/checkout/service/metadata.go
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// PaymentIntent metadata keys. Stripe echoes them back on every event.
const (
	MetaPurpose          = "purpose"
	MetaClassID          = "class_id"
	MetaClassCode        = "class_code"
	MetaStudentEmail     = "student_email"
	MetaStudentFirstName = "student_first_name"
	MetaStudentLastName  = "student_last_name"
	MetaStudentPhone     = "student_phone"

	PurposeRegistrationFee = "registration_fee"
)

var (
	// ErrNotCheckout marks PaymentIntents created outside this checkout.
	ErrNotCheckout = errors.New("payment intent was not created by checkout")
	ErrBadMetadata = errors.New("payment intent metadata is incomplete")
)

type CheckoutMeta struct {
	ClassID   uuid.UUID
	ClassCode string
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

func (m CheckoutMeta) Encode() map[string]string {
	out := map[string]string{
		MetaPurpose:          PurposeRegistrationFee,
		MetaClassID:          m.ClassID.String(),
		MetaClassCode:        m.ClassCode,
		MetaStudentEmail:     m.Email,
		MetaStudentFirstName: m.FirstName,
		MetaStudentLastName:  m.LastName,
	}
	if m.Phone != "" {
		out[MetaStudentPhone] = m.Phone
	}
	return out
}

func DecodeMeta(md map[string]string) (CheckoutMeta, error) {
	if md[MetaPurpose] != PurposeRegistrationFee {
		return CheckoutMeta{}, ErrNotCheckout
	}
	id, err := uuid.Parse(strings.TrimSpace(md[MetaClassID]))
	if err != nil {
		return CheckoutMeta{}, ErrBadMetadata
	}
	m := CheckoutMeta{
		ClassID:   id,
		ClassCode: strings.TrimSpace(md[MetaClassCode]),
		Email:     strings.ToLower(strings.TrimSpace(md[MetaStudentEmail])),
		FirstName: strings.TrimSpace(md[MetaStudentFirstName]),
		LastName:  strings.TrimSpace(md[MetaStudentLastName]),
		Phone:     strings.TrimSpace(md[MetaStudentPhone]),
	}
	if m.Email == "" || m.FirstName == "" {
		return CheckoutMeta{}, ErrBadMetadata
	}
	return m, nil
}

func (m CheckoutMeta) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}
