package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsString(t *testing.T) {
	t.Setenv("SPEERNOTE_TEST_STRING", "  value  ")
	assert.Equal(t, "value", GetEnvAsString("SPEERNOTE_TEST_STRING", "default"))

	t.Setenv("SPEERNOTE_TEST_STRING", "   ")
	assert.Equal(t, "default", GetEnvAsString("SPEERNOTE_TEST_STRING", "default"))

	assert.Equal(t, "default", GetEnvAsString("SPEERNOTE_TEST_UNSET", "default"))
}

func TestGetEnvAsNumbers(t *testing.T) {
	t.Setenv("SPEERNOTE_TEST_NUMBER", "42")
	assert.Equal(t, 42, GetEnvAsInt("SPEERNOTE_TEST_NUMBER", 1))
	assert.Equal(t, int64(42), GetEnvAsInt64("SPEERNOTE_TEST_NUMBER", 1))
	assert.Equal(t, uint64(42), GetEnvAsUint64("SPEERNOTE_TEST_NUMBER", 1))

	t.Setenv("SPEERNOTE_TEST_NUMBER", "-1")
	assert.Equal(t, uint64(7), GetEnvAsUint64("SPEERNOTE_TEST_NUMBER", 7))

	t.Setenv("SPEERNOTE_TEST_NUMBER", "forty-two")
	assert.Equal(t, 1, GetEnvAsInt("SPEERNOTE_TEST_NUMBER", 1))
	assert.Equal(t, int64(1), GetEnvAsInt64("SPEERNOTE_TEST_NUMBER", 1))
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"90s", 90 * time.Second},
		{"1h", time.Hour},
		{"1000", 1000 * time.Second},
		{"soon", time.Minute},
		{"", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("SPEERNOTE_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, GetEnvAsDuration("SPEERNOTE_TEST_DURATION", time.Minute))
		})
	}
}
