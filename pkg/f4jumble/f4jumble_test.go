package f4jumble

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMessage(seed int64, n int) []byte {
	msg := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(msg)
	return msg
}

func TestInverseRestoresInput(t *testing.T) {
	for _, n := range []int{48, 49, 127, 128, 129, 1000, MaxLength} {
		msg := randomMessage(int64(n), n)

		jumbled, err := Jumble(msg)
		require.NoError(t, err, "length %d", n)
		require.Len(t, jumbled, n)
		assert.False(t, bytes.Equal(msg, jumbled), "length %d: jumble must change the message", n)

		restored, err := Unjumble(jumbled)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(msg, restored), "length %d: round trip mismatch", n)
	}
}

func TestApplyInPlace(t *testing.T) {
	msg := randomMessage(1, 200)
	buf := append([]byte(nil), msg...)

	require.NoError(t, Apply(buf, false))
	jumbled, err := Jumble(msg)
	require.NoError(t, err)
	assert.Equal(t, jumbled, buf)

	require.NoError(t, Apply(buf, true))
	assert.Equal(t, msg, buf)
}

func TestLengthBounds(t *testing.T) {
	for _, n := range []int{0, 1, MinLength - 1, MaxLength + 1} {
		_, err := Jumble(make([]byte, n))
		var le *LengthError
		require.True(t, errors.As(err, &le), "length %d", n)
		assert.Equal(t, n, le.Length)

		_, err = Unjumble(make([]byte, n))
		assert.Error(t, err)
	}

	_, err := Jumble(make([]byte, MinLength))
	assert.NoError(t, err)
}

func TestDeterministic(t *testing.T) {
	msg := randomMessage(7, 300)
	a, err := Jumble(msg)
	require.NoError(t, err)
	b, err := Jumble(msg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTailChangeAltersHead(t *testing.T) {
	msg := randomMessage(9, 300)
	a, err := Jumble(msg)
	require.NoError(t, err)

	msg[len(msg)-1] ^= 0x01
	b, err := Jumble(msg)
	require.NoError(t, err)

	assert.NotEqual(t, a[:16], b[:16])
	assert.NotEqual(t, a[len(a)-16:], b[len(b)-16:])
}

func TestJumbleDoesNotModifyInput(t *testing.T) {
	msg := randomMessage(3, 64)
	orig := append([]byte(nil), msg...)
	_, err := Jumble(msg)
	require.NoError(t, err)
	assert.Equal(t, orig, msg)
}
