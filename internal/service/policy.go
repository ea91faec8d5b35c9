package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 8

// PasswordPolicy decides whether a user-chosen password is acceptable.
//
// The dictionary rule is a best-effort heuristic: a password is rejected when
// a word within one edit of it (or of its letters-only skeleton) occurs in it.
// It catches "Passw0rd!" style mutations but is not a strength guarantee.
type PasswordPolicy struct {
	dict *Dictionary
}

func NewPasswordPolicy(dict *Dictionary) *PasswordPolicy {
	if dict == nil {
		dict = NewDictionary()
	}
	return &PasswordPolicy{dict: dict}
}

func (p *PasswordPolicy) IsSafe(password string) bool {
	return p.Check(password) == nil
}

// Check returns nil for an acceptable password, otherwise an error wrapping
// ErrWeakPassword that names the first rule violated.
func (p *PasswordPolicy) Check(password string) error {
	if err := checkComposition(password, MinPasswordLength); err != nil {
		return err
	}
	if p.nearDictionary(strings.ToLower(password)) {
		return fmt.Errorf("%w: password is too close to a dictionary word", ErrWeakPassword)
	}
	return nil
}

func (p *PasswordPolicy) nearDictionary(lower string) bool {
	for _, s := range p.dict.Suggest(lower) {
		if strings.Contains(lower, s) {
			return true
		}
	}

	skeleton := lettersOnly(lower)
	if len(skeleton) >= 4 && p.dict.Contains(skeleton) {
		return true
	}
	if len(skeleton) >= 5 && len(p.dict.Suggest(skeleton)) > 0 {
		return true
	}
	return false
}

// checkComposition enforces length and the four character classes.
func checkComposition(password string, minLength int) error {
	if utf8.RuneCountInString(password) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrWeakPassword, minLength)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	switch {
	case !upper:
		return fmt.Errorf("%w: password must contain an uppercase letter", ErrWeakPassword)
	case !lower:
		return fmt.Errorf("%w: password must contain a lowercase letter", ErrWeakPassword)
	case !digit:
		return fmt.Errorf("%w: password must contain a digit", ErrWeakPassword)
	case !special:
		return fmt.Errorf("%w: password must contain a special character", ErrWeakPassword)
	}
	return nil
}

func lettersOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
