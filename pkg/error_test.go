package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_String(t *testing.T) {
	tests := []struct {
		region Region
		want   string
	}{
		{RegionMemory, "memory"},
		{RegionIdentification, "identification"},
		{Region(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.region.String())
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	errs := []error{ErrTransport, ErrAddress, ErrConnection, ErrPort}

	for i, err1 := range errs {
		require.NotNil(t, err1, "error %d is nil", i)
		for j, err2 := range errs {
			if i != j {
				assert.False(t, errors.Is(err1, err2), "error %d and %d are equal", i, j)
			}
		}
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("arbitration lost")
	var err error = &TransportError{Op: "write", Addr: 0x55, Err: cause}

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrAddress)
	assert.Equal(t, "write 0x55: arbitration lost", err.Error())

	var te *TransportError
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &te)
	assert.Same(t, cause, te.Err)
}

func TestAddressError(t *testing.T) {
	var err error = &AddressError{Region: RegionIdentification, Offset: 30, Length: 3, Limit: 32}

	assert.ErrorIs(t, err, ErrAddress)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, "address out of bounds: identification offset 30 length 3 exceeds 32", err.Error())
}
