package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"a@b.c",
		"patient@example.com",
		"first.last@sub.domain.org",
	}
	for _, email := range valid {
		assert.True(t, validEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@nodot",
		"user.example.com",
	}
	for _, email := range invalid {
		assert.False(t, validEmail(email), email)
	}
}
