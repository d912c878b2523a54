package locator

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navicoHandle(t *testing.T, l *Locator) ioprovider.Handle {
	t.Helper()
	for _, sh := range l.sockets {
		if sh.group.brand == model.Navico {
			return sh.handle
		}
	}
	t.Fatal("no navico socket")
	return 0
}

func TestLocator_SendsProbesOnDueInterval(t *testing.T) {
	io := ioprovider.NewMock()
	l, err := New(io, []net.IP{net.ParseIP("192.168.1.10")})
	require.NoError(t, err)

	io.SetNowMs(0)
	l.Poll(0)
	assert.NotEmpty(t, io.AllSent())

	sentAfterFirst := len(io.AllSent())
	l.Poll(500) // before the 1s interval elapses, no new probes
	assert.Len(t, io.AllSent(), sentAfterFirst)

	l.Poll(1000)
	assert.Greater(t, len(io.AllSent()), sentAfterFirst)
}

func TestLocator_DiscoversAndDedupsNavicoBeacon(t *testing.T) {
	io := ioprovider.NewMock()
	l, err := New(io, []net.IP{net.ParseIP("192.168.1.10")})
	require.NoError(t, err)

	h := navicoHandle(t, l)
	data := make([]byte, 18)
	data[0] = 0x02 // single-range
	data[1] = 0xB2 // HALO
	copy(data[2:10], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	putU16(data[10:12], 6878)
	putU16(data[12:14], 6879)
	putU16(data[14:16], 6880)
	source := &net.UDPAddr{IP: net.ParseIP("192.168.1.50"), Port: 6878}
	io.QueueUDPRecv(h, data, source)

	changed := l.Poll(0)
	assert.True(t, changed)
	events := l.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.Discovered, events[0].Kind)
	assert.Equal(t, model.Navico, events[0].Discovery.Brand)

	// Same beacon again: no new event.
	io.QueueUDPRecv(h, data, source)
	changed = l.Poll(2000)
	assert.False(t, changed)
	assert.Empty(t, l.DrainEvents())
}

func TestLocator_AddressChangeReEmits(t *testing.T) {
	io := ioprovider.NewMock()
	l, err := New(io, []net.IP{net.ParseIP("192.168.1.10")})
	require.NoError(t, err)

	h := navicoHandle(t, l)
	data := make([]byte, 18)
	data[0] = 0x02
	data[1] = 0xB2
	copy(data[2:10], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	putU16(data[10:12], 6878)
	putU16(data[12:14], 6879)
	putU16(data[14:16], 6880)
	source1 := &net.UDPAddr{IP: net.ParseIP("192.168.1.50"), Port: 6878}
	io.QueueUDPRecv(h, data, source1)
	l.Poll(0)
	l.DrainEvents()

	source2 := &net.UDPAddr{IP: net.ParseIP("192.168.1.99"), Port: 6878}
	io.QueueUDPRecv(h, data, source2)
	changed := l.Poll(2000)
	assert.True(t, changed)
	events := l.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.AddressChanged, events[0].Kind)
}

func TestLocator_SilenceBeyondTimeoutEmitsLost(t *testing.T) {
	io := ioprovider.NewMock()
	l, err := New(io, []net.IP{net.ParseIP("192.168.1.10")})
	require.NoError(t, err)
	l.SetLostTimeoutMs(5000)

	h := navicoHandle(t, l)
	data := make([]byte, 18)
	data[0] = 0x02
	data[1] = 0xB2
	copy(data[2:10], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	putU16(data[10:12], 6878)
	putU16(data[12:14], 6879)
	putU16(data[14:16], 6880)
	source := &net.UDPAddr{IP: net.ParseIP("192.168.1.50"), Port: 6878}
	io.QueueUDPRecv(h, data, source)

	l.Poll(0)
	key := l.DrainEvents()[0].Discovery.Key

	// Well within the timeout: no Lost yet.
	changed := l.Poll(4000)
	assert.False(t, changed)
	assert.Empty(t, l.DrainEvents())

	// Past the silence window: Lost fires and the entry is dropped.
	changed = l.Poll(5001)
	assert.True(t, changed)
	events := l.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.Lost, events[0].Kind)
	assert.Equal(t, key, events[0].Key)

	// A fresh beacon after Lost re-emits Discovered, not a silent dedup.
	io.QueueUDPRecv(h, data, source)
	changed = l.Poll(5100)
	assert.True(t, changed)
	events = l.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.Discovered, events[0].Kind)
}

func TestLocator_ShutdownClosesAllSockets(t *testing.T) {
	io := ioprovider.NewMock()
	l, err := New(io, []net.IP{net.ParseIP("192.168.1.10")})
	require.NoError(t, err)
	handles := make([]ioprovider.Handle, len(l.sockets))
	for i, sh := range l.sockets {
		handles[i] = sh.handle
	}
	l.Shutdown()
	for _, h := range handles {
		assert.True(t, io.IsClosed(h))
	}
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
