package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmailNormalizesCase(t *testing.T) {
	cases := []struct {
		raw      string
		expected Email
	}{
		{raw: "test@test.test", expected: Email("test@test.test")},
		{raw: "Test@Test.Test", expected: Email("test@test.test")},
		{raw: "  ALICE@EXAMPLE.COM ", expected: Email("alice@example.com")},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, NewEmail(c.raw))
	}
}

func TestOptionalString(t *testing.T) {
	opt := NewOptional("value", false)
	assert.Equal(t, "[-]", opt.String())

	opt = NewOptional("value", true)
	assert.Equal(t, "[value]", opt.String())
}
