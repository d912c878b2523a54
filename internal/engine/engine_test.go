package engine

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func navicoBeacon() []byte {
	data := make([]byte, 18)
	data[0] = 0x02 // single-range
	data[1] = 0xB2 // HALO
	copy(data[2:10], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	putU16(data[10:12], 6878)
	putU16(data[12:14], 6879)
	putU16(data[14:16], 6880)
	return data
}

func TestEngine_DiscoversInstantiatesAndTearsDownOnLost(t *testing.T) {
	io := ioprovider.NewMock()
	e, err := New(io, []net.IP{net.ParseIP("192.168.1.10")}, nil)
	require.NoError(t, err)
	e.loc.SetLostTimeoutMs(5000)

	// Beacon sockets are created in beaconGroups order (Furuno, Navico,
	// Raymarine, Garmin); with one interface, Navico's is handle 2.
	const navicoLocatorHandle = ioprovider.Handle(2)
	source := &net.UDPAddr{IP: net.ParseIP("192.168.1.50"), Port: 6878}
	io.QueueUDPRecv(navicoLocatorHandle, navicoBeacon(), source)

	e.Poll(io, 0)

	radars := e.ListRadars()
	require.Len(t, radars, 1)
	key := radars[0]
	assert.Equal(t, "Navico-0102030405060708", key)

	events := e.DrainDiscoveryEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.Discovered, events[0].Kind)

	manifest, err := e.GetCapabilities(key)
	require.NoError(t, err)
	assert.Equal(t, model.Navico, manifest.Make)

	_, err = e.GetState(key)
	require.NoError(t, err)

	// Silence past the timeout: Lost fires and the radar is torn down.
	e.Poll(io, 5001)
	events = e.DrainDiscoveryEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.Lost, events[0].Kind)
	assert.Empty(t, e.ListRadars())
}

func TestEngine_UnknownRadarIDReturnsRadarNotFound(t *testing.T) {
	io := ioprovider.NewMock()
	e, err := New(io, []net.IP{net.ParseIP("192.168.1.10")}, nil)
	require.NoError(t, err)

	_, err = e.GetState("no-such-radar")
	require.Error(t, err)
	cerr, ok := err.(*core.ControlError)
	require.True(t, ok)
	assert.Equal(t, core.RadarNotFound, cerr.Kind)

	_, err = e.GetCapabilities("no-such-radar")
	assert.Error(t, err)
	_, err = e.GetTargets("no-such-radar")
	assert.Error(t, err)
	assert.Error(t, e.SetGuardZone("no-such-radar", core.GuardZone{}))
}

func TestEngine_ShutdownClearsAllManagedRadars(t *testing.T) {
	io := ioprovider.NewMock()
	e, err := New(io, []net.IP{net.ParseIP("192.168.1.10")}, nil)
	require.NoError(t, err)

	source := &net.UDPAddr{IP: net.ParseIP("192.168.1.50"), Port: 6878}
	io.QueueUDPRecv(ioprovider.Handle(2), navicoBeacon(), source)
	e.Poll(io, 0)
	require.Len(t, e.ListRadars(), 1)

	e.Shutdown(io)
	assert.Empty(t, e.ListRadars())
}
