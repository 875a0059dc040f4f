package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKvStatus_RoundTrip(t *testing.T) {
	for _, status := range []KvStatus{
		KvStatusOk, KvStatusBadRequest, KvStatusNotFound,
		KvStatusPreconditionFailed, KvStatusPayloadTooLarge,
		KvStatusTooManyRequests, KvStatusInternalError,
	} {
		t.Run(status.String(), func(t *testing.T) {
			text, err := status.MarshalText()
			require.NoError(t, err)

			var parsed KvStatus
			require.NoError(t, parsed.UnmarshalText(text))
			assert.Equal(t, status, parsed)
		})
	}
}

func TestKvStatus_Unknown(t *testing.T) {
	var status KvStatus
	err := status.UnmarshalText([]byte("teapot"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teapot")
}
