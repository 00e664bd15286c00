package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalStamp(t *testing.T) {
	tests := []struct {
		name  string
		stamp int64
	}{
		{"zero", 0},
		{"typical millis", 1700000000000},
		{"max", math.MaxInt64},
		{"min", math.MinInt64},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalStamp(tt.stamp)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalStamp(data)
			require.NoError(t, err)
			assert.Equal(t, tt.stamp, decoded)
		})
	}
}

func TestMarshalStamp_Varint(t *testing.T) {
	// zigzag: 1000 -> 2000 = 0xd0 0x0f
	assert.Equal(t, []byte{0xd0, 0x0f}, MarshalStamp(1000))
	assert.Equal(t, []byte{0x00}, MarshalStamp(0))
	assert.Len(t, MarshalStamp(1700000000000), 6)
}

func TestUnmarshalStamp_Invalid(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalStamp([]byte{})
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("unterminated varint", func(t *testing.T) {
		data := MarshalStamp(1700000000000)
		_, err := UnmarshalStamp(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := UnmarshalStamp(append(MarshalStamp(1000), 0x01))
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.NotErrorIs(t, err, ErrTruncatedData)
	})
}
