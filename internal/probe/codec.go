package probe

import (
	"encoding/binary"
	"fmt"
	"time"

	"MidasFlow/internal/model"
)

// Wire form of one event: Source, Dest, Tick and the observation time as
// unix nanoseconds, all big endian. Fixed width keeps the hot path free of
// allocation-heavy serialization.
const eventWireSize = 32

// Marshal encodes an event into its wire form.
func Marshal(e *model.Event) []byte {
	buf := make([]byte, eventWireSize)
	binary.BigEndian.PutUint64(buf[0:8], e.Source)
	binary.BigEndian.PutUint64(buf[8:16], e.Dest)
	binary.BigEndian.PutUint64(buf[16:24], e.Tick)
	binary.BigEndian.PutUint64(buf[24:32], uint64(e.Observed.UnixNano()))
	return buf
}

// Unmarshal decodes an event from its wire form.
func Unmarshal(data []byte) (model.Event, error) {
	if len(data) != eventWireSize {
		return model.Event{}, fmt.Errorf("invalid event payload: got %d bytes, want %d", len(data), eventWireSize)
	}
	return model.Event{
		Source:   binary.BigEndian.Uint64(data[0:8]),
		Dest:     binary.BigEndian.Uint64(data[8:16]),
		Tick:     binary.BigEndian.Uint64(data[16:24]),
		Observed: time.Unix(0, int64(binary.BigEndian.Uint64(data[24:32]))),
	}, nil
}
