package navico

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
	addr := func(p int) *net.UDPAddr { return &net.UDPAddr{IP: net.ParseIP("10.0.0.5"), Port: p} }
	return model.Discovery{
		Key:   "Navico-DEADBEEF",
		Brand: model.Navico,
		Model: "HALO24",
		Addrs: model.SocketAddrs{Report: addr(6679), Data: addr(6680), Command: addr(6681)},
		Serial: "DEADBEEF",
	}
}

func TestPoll_ConnectsThenSendsKeepAlive(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Navico, "HALO24")
	c := New(testDiscovery(), info)

	io.SetNowMs(0)
	changed, err := c.Poll(io, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, core.Connected, c.Connection().Phase)
	assert.NotEmpty(t, io.AllSent())
}

func TestSetControl_GainEncodesAndSends(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Navico, "HALO24")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)

	value := 50.0
	err = c.SetControl(io, "gain", core.ControlValue{Mode: "manual", Number: &value})
	require.NoError(t, err)

	sent := io.SentDatagrams(c.a.cmdHandle)
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, []byte{0x06, 0xC1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, last.Data)
}

func TestSetControl_DisconnectedYieldsControllerNotAvailable(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Navico, "HALO24")
	c := New(testDiscovery(), info)

	err := c.SetControl(io, "gain", core.ControlValue{Number: floatPtr(10)})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}

func TestDrainReports_AppliesControlUpdates(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Navico, "HALO24")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)

	report := []byte{0x01, 0x00, 0x04} // status: transmit
	io.QueueUDPRecv(c.a.reportHandle, report, &net.UDPAddr{IP: net.ParseIP("10.0.0.5"), Port: 6679})

	changed, err := c.Poll(io, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, core.PowerTransmit, c.State().Power)
}

func floatPtr(f float64) *float64 { return &f }
