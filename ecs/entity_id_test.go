package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityIDRoundTrip(t *testing.T) {
	for _, tc := range []struct{ index, version uint32 }{
		{0, 0},
		{1, 1},
		{MaxIndex, 0},
		{0, MaxVersion},
		{MaxIndex, MaxVersion},
		{12345, 678},
	} {
		id := JoinEntityID(tc.index, tc.version)
		require.Equal(t, tc.index, id.Index(), "index round-trip for %+v", tc)
		require.Equal(t, tc.version, id.Version(), "version round-trip for %+v", tc)
	}
}

func TestUpgradeBumpsVersionModulo(t *testing.T) {
	id := JoinEntityID(7, 3)
	require.Equal(t, JoinEntityID(7, 4), Upgrade(id))

	atMax := JoinEntityID(7, MaxVersion)
	require.Equal(t, JoinEntityID(7, 0), Upgrade(atMax), "version wraps modulo 2^VersionBits")
}

func TestUpgradePreservesIndex(t *testing.T) {
	for v := uint32(0); v < 5; v++ {
		id := JoinEntityID(99, v)
		require.Equal(t, uint32(99), Upgrade(id).Index())
	}
}

func TestEntityIndexerIgnoresVersion(t *testing.T) {
	a := JoinEntityID(42, 0)
	b := JoinEntityID(42, 5)
	require.Equal(t, entityIndexer(a), entityIndexer(b))
}
