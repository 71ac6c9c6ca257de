package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrAuthExpired", ErrAuthExpired},
		{"ErrMissingColumns", ErrMissingColumns},
		{"ErrEmptySheet", ErrEmptySheet},
		{"ErrRowNotFound", ErrRowNotFound},
		{"ErrInvalidDate", ErrInvalidDate},
		{"ErrRemoteUnavailable", ErrRemoteUnavailable},
		{"ErrRemoteRejected", ErrRemoteRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrAuthExpired_Message(t *testing.T) {
	assert.Equal(t, "credentials invalid, re-authenticate", ErrAuthExpired.Error())
}

func TestMissingColumnsError(t *testing.T) {
	err := &MissingColumnsError{Missing: []string{"Content", "Publish Date"}}

	assert.Equal(t, "missing required columns: Content, Publish Date", err.Error())
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	wrapped := fmt.Errorf("list pending: %w", err)
	var mc *MissingColumnsError
	assert.True(t, errors.As(wrapped, &mc))
	assert.Equal(t, []string{"Content", "Publish Date"}, mc.Missing)
}

func TestRemoteError(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		err := Rejected("blog %s not found", "b1")
		assert.True(t, errors.Is(err, ErrRemoteRejected))
		assert.False(t, errors.Is(err, ErrRemoteUnavailable))
		assert.Equal(t, "remote service rejected request: blog b1 not found", err.Error())
	})

	t.Run("unavailable", func(t *testing.T) {
		err := Unavailable("timeout")
		assert.True(t, errors.Is(err, ErrRemoteUnavailable))
	})

	t.Run("empty message uses kind", func(t *testing.T) {
		err := &RemoteError{Kind: ErrRemoteUnavailable}
		assert.Equal(t, ErrRemoteUnavailable.Error(), err.Error())
	})
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("resolve: %w", ErrAuthExpired), ReasonAuthExpired},
		{&MissingColumnsError{Missing: []string{"Title"}}, ReasonMissingColumns},
		{Unavailable("x"), ReasonRemoteUnavailable},
		{Rejected("x"), ReasonRemoteRejected},
		{ErrInvalidDate, ReasonInvalidDate},
		{ErrInvalidInput, ReasonInvalidInput},
		{ErrEmptySheet, ReasonEmptySheet},
		{ErrRowNotFound, ReasonRowNotFound},
		{ErrNotFound, ReasonNotFound},
		{errors.New("boom"), ReasonInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Reason(tt.err), "error: %v", tt.err)
	}
}
