package raymarine

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	protoraymarine "github.com/dirkwa/mayara/internal/protocol/raymarine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiscovery() model.Discovery {
	addr := func(p int) *net.UDPAddr { return &net.UDPAddr{IP: net.ParseIP("10.0.0.30"), Port: p} }
	return model.Discovery{
		Key:   "Raymarine-RM1",
		Brand: model.Raymarine,
		Model: "Quantum",
		Addrs: model.SocketAddrs{Report: addr(5800), Data: addr(5801), Command: addr(5802)},
		Serial: "RM1",
	}
}

func TestSetControl_QuantumGainSendsExpectedBytes(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Raymarine, "Quantum")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)

	value := 50.0
	err = c.SetControl(io, "gain", core.ControlValue{Number: &value})
	require.NoError(t, err)

	sent := io.SentDatagrams(c.cmdHandle)
	require.Len(t, sent, 1)
	assert.Equal(t, byte(0x28), sent[0].Data[2])
}

func TestSetControl_UnidentifiedVariantIsControllerNotAvailable(t *testing.T) {
	io := ioprovider.NewMock()
	d := testDiscovery()
	d.Model = "some-unseen-model"
	info := model.Lookup(model.Raymarine, d.Model)
	c := New(d, info)
	_, _ = c.Poll(io, 0)
	err := c.SetControl(io, "gain", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}

func TestPoll_DecodesReportIntoState(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Raymarine, "Quantum")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)

	value := 40.0
	payload, err := protoraymarine.EncodeControl(protoraymarine.VariantQuantum, "gain", core.ControlValue{Number: &value})
	require.NoError(t, err)
	io.QueueUDPRecv(c.reportHandle, payload, &net.UDPAddr{IP: net.ParseIP("10.0.0.30"), Port: 5800})

	changed, err := c.Poll(io, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	require.NotNil(t, c.State().Controls["gain"].Number)
}
