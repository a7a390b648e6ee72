package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedOTP(t *testing.T) {
	ctx := context.Background()
	s := NewSimulated()

	require.NoError(t, s.SendCode(ctx, "9876543210"))
	assert.ErrorIs(t, s.SendCode(ctx, "98765"), ErrInvalidPhone)
	assert.ErrorIs(t, s.SendCode(ctx, "98765432ab"), ErrInvalidPhone)

	id, err := s.Verify(ctx, Credentials{Method: OTP, Phone: "9876543210", Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, Identity{DisplayName: "Pickle Lover", Method: OTP}, id)

	_, err = s.Verify(ctx, Credentials{Method: OTP, Phone: "9876543210", Code: "12345"})
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = s.Verify(ctx, Credentials{Method: OTP, Phone: "1", Code: "123456"})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestSimulatedGoogle(t *testing.T) {
	id, err := NewSimulated().Verify(context.Background(), Credentials{Method: Google})
	require.NoError(t, err)
	assert.Equal(t, "Achar Fan", id.DisplayName)
}

func TestSimulatedUnknownMethod(t *testing.T) {
	_, err := NewSimulated().Verify(context.Background(), Credentials{Method: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestSimulatedHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulated().Verify(ctx, Credentials{Method: Google})
	assert.ErrorIs(t, err, context.Canceled)
}
