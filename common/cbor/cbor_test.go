package cbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutOfMem(t *testing.T) {
	require := require.New(t)

	var f []byte
	err := Unmarshal([]byte("\x9b\x00\x00000000"), &f)
	require.Error(err, "Invalid CBOR input should fail")
}

func TestCanonicalEncoding(t *testing.T) {
	require := require.New(t)

	a := map[string]uint64{"modulus": 2147483648, "seed": 1, "multiplier": 1103515245}
	b := map[string]uint64{"seed": 1, "multiplier": 1103515245, "modulus": 2147483648}
	require.Equal(Marshal(a), Marshal(b), "map key order must not affect encoding")

	var out map[string]uint64
	require.NoError(Unmarshal(Marshal(a), &out))
	require.Equal(a, out)

	require.NoError(Unmarshal(nil, &out), "nil input is a no-op")
}
