// Package keys derives the uint64 node keys the sketch consumes from the
// identifiers that actually appear on the wire. The mapping must be stable
// across processes and restarts so that probe and replay tooling agree on
// which node an address denotes; murmur3 with a fixed seed gives that
// without any shared state.
package keys

import (
	"net"

	"github.com/spaolacci/murmur3"
)

const seed = 0x9747b28c

// FromString maps an arbitrary identifier to a node key.
func FromString(id string) uint64 {
	return murmur3.Sum64WithSeed([]byte(id), seed)
}

// FromIP maps an IP address to a node key. IPv4 addresses are canonicalized
// to their 4-byte form so that v4 and v4-in-v6 spellings collide on purpose.
func FromIP(ip net.IP) uint64 {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	return murmur3.Sum64WithSeed(ip, seed)
}
