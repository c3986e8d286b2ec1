package did

import (
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(seed byte) []byte {
	key := make([]byte, fullVerkeyBytes)
	for i := range key {
		key[i] = seed + byte(i)*7
	}
	return key
}

func TestIsSelfCertified(t *testing.T) {
	key := testKey(11)
	verkey := base58.Encode(key)
	require.True(t, IsFullVerkey(verkey), "fixture must be a full verkey")
	id := base58.Encode(key[:16])

	t.Run("bare identifier derived from verkey", func(t *testing.T) {
		assert.True(t, IsSelfCertified(id, verkey))
	})

	t.Run("qualified identifier derived from verkey", func(t *testing.T) {
		assert.True(t, IsSelfCertified("did:sov:"+id, verkey))
		assert.True(t, IsSelfCertified("did:indy:sovrin:staging:"+id, verkey))
	})

	t.Run("identifier of another key", func(t *testing.T) {
		other := base58.Encode(testKey(99)[:16])
		assert.False(t, IsSelfCertified(other, verkey))
	})

	t.Run("abbreviated verkey", func(t *testing.T) {
		abbreviated := "~" + base58.Encode(key[16:])
		require.True(t, IsAbbreviatedVerkey(abbreviated))
		assert.True(t, IsSelfCertified(id, abbreviated))
	})

	t.Run("malformed verkey", func(t *testing.T) {
		assert.False(t, IsSelfCertified(id, "not-a-key"))
		assert.False(t, IsSelfCertified(id, ""))
	})
}

func TestUnqualified(t *testing.T) {
	assert.Equal(t, "WgWxqztrNooG92RXvxSTWv", Unqualified("did:sov:WgWxqztrNooG92RXvxSTWv"))
	assert.Equal(t, "WgWxqztrNooG92RXvxSTWv", Unqualified("did:indy:bcovrin:test:WgWxqztrNooG92RXvxSTWv"))
	assert.Equal(t, "WgWxqztrNooG92RXvxSTWv", Unqualified("WgWxqztrNooG92RXvxSTWv"))
}
