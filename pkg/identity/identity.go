// Package identity verifies visitors before a session begins.
//
// Only a simulated provider exists: it checks input formats and then always
// succeeds. A real provider would satisfy the same interfaces.
package identity

import (
	"context"
	"errors"
	"regexp"
)

// Method names a sign-in flow.
type Method string

const (
	OTP    Method = "otp"
	Google Method = "google"
)

var (
	ErrInvalidPhone  = errors.New("phone number must be 10 digits")
	ErrInvalidCode   = errors.New("one-time code must be 6 digits")
	ErrUnknownMethod = errors.New("unknown sign-in method")
)

// Credentials carries whatever a sign-in method needs.
type Credentials struct {
	Method Method
	Phone  string
	Code   string
}

// Identity is a verified visitor.
type Identity struct {
	DisplayName string `json:"displayName"`
	Method      Method `json:"method"`
}

// Verifier checks credentials and names the visitor.
type Verifier interface {
	Verify(ctx context.Context, c Credentials) (Identity, error)
}

// CodeSender dispatches a one-time code to a phone number.
type CodeSender interface {
	SendCode(ctx context.Context, phone string) error
}

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

// ValidatePhone reports whether phone is a 10-digit mobile number.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateCode reports whether code is a 6-digit one-time code.
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return ErrInvalidCode
	}
	return nil
}

// Simulated accepts any well-formed credentials.
type Simulated struct {
	OTPName    string
	GoogleName string
}

// NewSimulated returns the default simulated provider.
func NewSimulated() *Simulated {
	return &Simulated{OTPName: "Pickle Lover", GoogleName: "Achar Fan"}
}

// SendCode validates phone. No message is sent.
func (s *Simulated) SendCode(ctx context.Context, phone string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ValidatePhone(phone)
}

// Verify validates c and returns a fixed display name per method.
func (s *Simulated) Verify(ctx context.Context, c Credentials) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	switch c.Method {
	case OTP:
		if err := ValidatePhone(c.Phone); err != nil {
			return Identity{}, err
		}
		if err := ValidateCode(c.Code); err != nil {
			return Identity{}, err
		}
		return Identity{DisplayName: s.OTPName, Method: OTP}, nil
	case Google:
		return Identity{DisplayName: s.GoogleName, Method: Google}, nil
	}
	return Identity{}, ErrUnknownMethod
}
