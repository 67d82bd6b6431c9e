package models

import (
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const MinContactMessageLength = 50

// ContactInput is the public contact form. Website is the honeypot and is
// never shown to people.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"max=10000"`
	Website string `json:"website"`
}

func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// IsBot reports whether the honeypot was filled in.
func (in *ContactInput) IsBot() bool {
	return strings.TrimSpace(in.Website) != ""
}

func (in *ContactInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if utf8.RuneCountInString(in.Message) < MinContactMessageLength {
		return errs.NewMessageTooShortError(MinContactMessageLength)
	}
	return nil
}

// ToMessage builds the row stored for a valid submission.
func (in *ContactInput) ToMessage() *ContactMessage {
	return &ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		Status:  MessageStatusNew,
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Normalize() {
	in.Email = strings.TrimSpace(in.Email)
}

func (in *LoginInput) Validate() error {
	return validateStruct(in)
}
