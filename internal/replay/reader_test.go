package replay

import (
	"strings"
	"testing"

	"MidasFlow/internal/keys"
	"MidasFlow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) ([]model.Event, error) {
	t.Helper()
	out := make(chan model.Event, 16)
	err := NewReader(strings.NewReader(input)).ReadEvents(out)
	close(out)

	var events []model.Event
	for e := range out {
		events = append(events, e)
	}
	return events, err
}

func TestReadEvents(t *testing.T) {
	events, err := readAll(t, "1,2,1\n1,2,2\n3,4,2\n")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, uint64(1), events[0].Source)
	assert.Equal(t, uint64(2), events[0].Dest)
	assert.Equal(t, uint64(1), events[0].Tick)
	assert.Equal(t, uint64(2), events[2].Tick)
}

func TestReadEventsHashesNamedNodes(t *testing.T) {
	events, err := readAll(t, "host-a,host-b,1\n")
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, keys.FromString("host-a"), events[0].Source)
	assert.Equal(t, keys.FromString("host-b"), events[0].Dest)
}

func TestReadEventsRejectsBadTime(t *testing.T) {
	_, err := readAll(t, "1,2,not-a-tick\n")
	require.Error(t, err)
}
