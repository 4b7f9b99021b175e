package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSemVer(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		s        string
		expected Version
		valid    bool
	}{
		{"1.2.3", Version{1, 2, 3}, true},
		{"v0.10.0", Version{0, 10, 0}, true},
		{"v1.0.0-rc1", Version{1, 0, 0}, true},
		{"v1.0.1+dirty", Version{1, 0, 1}, true},
		{"(devel)", Version{}, false},
		{"1.2", Version{}, false},
		{"1.2.70000", Version{}, false},
		{"", Version{}, false},
	} {
		v, err := ParseSemVer(tc.s)
		if tc.valid {
			require.NoError(err, "ParseSemVer(%s)", tc.s)
			require.Equal(tc.expected, v, "ParseSemVer(%s)", tc.s)
		} else {
			require.Error(err, "ParseSemVer(%s)", tc.s)
		}
	}
}

func TestVersion(t *testing.T) {
	require := require.New(t)

	v := Version{Major: 1, Minor: 2, Patch: 3}
	require.Equal("1.2.3", v.String())
	require.Equal(Version{Major: 1, Minor: 2}, v.MajorMinor())
	require.NotEmpty(SoftwareVersion)
}
