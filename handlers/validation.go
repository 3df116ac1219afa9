// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/mail"
	"salestrack-server/commons"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

const (
	nameMinLength = 3
	nameMaxLength = 20
)

func validateName(field, value string) error {
	value = strings.TrimSpace(value)
	if len([]rune(value)) < nameMinLength || len([]rune(value)) > nameMaxLength {
		return fmt.Errorf("%s must be between %d and %d characters", field, nameMinLength, nameMaxLength)
	}
	for _, r := range value {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' && r != ' ' {
			return fmt.Errorf("%s may only contain letters", field)
		}
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("email field is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("email address is not valid")
	}
	return email, nil
}

// validatePhone parses and reformats the number to E.164. National
// numbers are interpreted against DEFAULT_PHONE_REGION.
func validatePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", fmt.Errorf("phone field is required")
	}
	region := commons.GetEnv("DEFAULT_PHONE_REGION", "US")
	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", fmt.Errorf("phone number is not valid")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("phone number is not valid")
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
