package probe

import (
	"fmt"
	"net"
	"time"

	"MidasFlow/internal/keys"
	"MidasFlow/internal/model"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
)

const (
	snapshotLen int32 = 1600
	promiscuous       = true
)

// Capture turns live traffic on one interface into a stream of events: one
// event per IP packet, keyed on the source and destination addresses.
// Capture timestamps are bucketed into ticks of the configured width,
// anchored at the first packet seen so ticks start at 1.
type Capture struct {
	handle       *pcap.Handle
	tickInterval time.Duration
	epoch        time.Time
}

// NewCapture opens the interface for live capture.
func NewCapture(iface string, tickInterval time.Duration) (*Capture, error) {
	if tickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", tickInterval)
	}
	handle, err := pcap.OpenLive(iface, snapshotLen, promiscuous, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", iface, err)
	}
	return &Capture{handle: handle, tickInterval: tickInterval}, nil
}

// Run decodes packets and hands one event per IP packet to the handler
// until the capture handle is closed. Non-IP packets are skipped.
func (c *Capture) Run(handler EventHandler) {
	source := gopacket.NewPacketSource(c.handle, c.handle.LinkType())
	for packet := range source.Packets() {
		e, err := c.eventFromPacket(packet)
		if err != nil {
			continue
		}
		handler(e)
	}
}

// Close stops the capture.
func (c *Capture) Close() {
	c.handle.Close()
}

func (c *Capture) eventFromPacket(packet gopacket.Packet) (model.Event, error) {
	ts := packet.Metadata().Timestamp
	if c.epoch.IsZero() {
		c.epoch = ts
	}

	switch layer := packet.NetworkLayer().(type) {
	case *layers.IPv4:
		return c.event(layer.SrcIP, layer.DstIP, ts), nil
	case *layers.IPv6:
		return c.event(layer.SrcIP, layer.DstIP, ts), nil
	default:
		return model.Event{}, fmt.Errorf("not an IP packet")
	}
}

func (c *Capture) event(src, dst net.IP, ts time.Time) model.Event {
	return model.Event{
		Source:   keys.FromIP(src),
		Dest:     keys.FromIP(dst),
		Tick:     c.tick(ts),
		Observed: ts,
	}
}

func (c *Capture) tick(ts time.Time) uint64 {
	elapsed := ts.Sub(c.epoch)
	if elapsed < 0 {
		elapsed = 0
	}
	return uint64(elapsed/c.tickInterval) + 1
}
