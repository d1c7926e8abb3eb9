package keys

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStringStable(t *testing.T) {
	assert.Equal(t, FromString("host-a"), FromString("host-a"))
	assert.NotEqual(t, FromString("host-a"), FromString("host-b"))
}

func TestFromIPCanonicalizesV4(t *testing.T) {
	v4 := net.ParseIP("10.0.0.1").To4()
	mapped := net.ParseIP("10.0.0.1").To16()

	assert.Equal(t, FromIP(v4), FromIP(mapped))
	assert.NotEqual(t, FromIP(v4), FromIP(net.ParseIP("10.0.0.2")))
}
