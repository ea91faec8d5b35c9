package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"
)

const (
	GeneratedPasswordLength = 12

	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()-_=+"
	allChars     = lowerChars + upperChars + digitChars + specialChars
)

var wordToken = regexp.MustCompile(`\w+`)

// PasswordGenerator produces random passwords that satisfy the composition
// rules and contain no dictionary word as a token.
type PasswordGenerator struct {
	dict   *Dictionary
	random io.Reader
}

func NewPasswordGenerator(dict *Dictionary) *PasswordGenerator {
	if dict == nil {
		dict = NewDictionary()
	}
	return &PasswordGenerator{dict: dict, random: rand.Reader}
}

// Generate returns the first acceptable candidate. maxAttempts <= 0 fails
// without trying.
func (g *PasswordGenerator) Generate(maxAttempts int) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := g.candidate()
		if err != nil {
			return "", err
		}
		if g.acceptable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, maxAttempts)
}

func (g *PasswordGenerator) candidate() (string, error) {
	chars := make([]byte, 0, GeneratedPasswordLength)
	for _, class := range []string{lowerChars, upperChars, digitChars, specialChars} {
		c, err := g.pick(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < GeneratedPasswordLength {
		c, err := g.pick(allChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for i := len(chars) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return string(chars), nil
}

func (g *PasswordGenerator) acceptable(candidate string) bool {
	if checkComposition(candidate, MinPasswordLength) != nil {
		return false
	}
	for _, token := range wordToken.FindAllString(candidate, -1) {
		if g.dict.Check(token) || g.dict.Check(capitalize(strings.ToLower(token))) {
			return false
		}
	}
	return true
}

func (g *PasswordGenerator) pick(set string) (byte, error) {
	i, err := g.intn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func (g *PasswordGenerator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
