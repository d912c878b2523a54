package furuno

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiscovery() model.Discovery {
	return model.Discovery{
		Key:   "Furuno-FR12345",
		Brand: model.Furuno,
		Model: "UNKNOWN",
		Addrs: model.SocketAddrs{Command: &net.UDPAddr{IP: net.ParseIP("10.0.0.20"), Port: 10011}},
		Serial: "FR12345",
	}
}

// TestScenarioS2_RangeSetAfterLogin reproduces spec.md scenario S2: after a
// successful login and $N96 model reply, set_control(range, 5556) emits
// "$S1,5556" and a subsequent "$S1,5556" report updates state.
func TestScenarioS2_RangeSetAfterLogin(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Furuno, "UNKNOWN")
	c := New(testDiscovery(), info)

	_, err := c.Poll(io, 0) // create + connect
	require.NoError(t, err)
	io.SetTCPConnected(c.handle)
	_, err = c.Poll(io, 0) // TCPConnected observed -> sends login
	require.NoError(t, err)

	_, err = c.Poll(io, 0) // sends $N96 query
	require.NoError(t, err)
	_, err = c.Poll(io, 0) // waits for the $N96 reply
	require.NoError(t, err)

	io.QueueTCPLine(c.handle, "$N96,DRS4D-NXT")
	_, err = c.Poll(io, 0) // reads $N96 reply
	require.NoError(t, err)
	assert.Equal(t, "DRS4D-NXT", c.discovery.Model)
	assert.Equal(t, core.Connected, c.conn.Phase)

	value := 5556.0
	err = c.SetControl(io, "range", core.ControlValue{Number: &value})
	require.NoError(t, err)
	sent := io.TCPSentBytes(c.handle)
	assert.Contains(t, string(sent), "$S1,5556")

	io.QueueTCPLine(c.handle, "$S1,5556")
	changed, err := c.Poll(io, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 5556.0, *c.State().Controls["range"].Number)
}

func TestSetControl_NotConnectedYieldsControllerNotAvailable(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Furuno, "UNKNOWN")
	c := New(testDiscovery(), info)
	err := c.SetControl(io, "range", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}

func TestMissedN96LeavesModelUnknown(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Furuno, "UNKNOWN")
	c := New(testDiscovery(), info)

	_, _ = c.Poll(io, 0)
	io.SetTCPConnected(c.handle)
	_, _ = c.Poll(io, 0)
	_, _ = c.Poll(io, 0) // model query
	_, _ = c.Poll(io, 0) // no reply queued

	_, _ = c.Poll(io, 500) // still within the grace window
	assert.Equal(t, "UNKNOWN", c.discovery.Model)
	assert.Equal(t, core.Connecting, c.conn.Phase)

	_, err := c.Poll(io, modelQueryGraceMs+1) // grace window elapsed, proceeds UNKNOWN
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", c.discovery.Model)
	assert.Equal(t, core.Connected, c.conn.Phase)
}
