package garmin

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	protogarmin "github.com/dirkwa/mayara/internal/protocol/garmin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiscovery() model.Discovery {
	return model.Discovery{
		Key:   "Garmin-SERIALX",
		Brand: model.Garmin,
		Model: "UNKNOWN",
		Addrs: model.SocketAddrs{
			Report:  protogarmin.ReportMulticastAddr,
			Data:    protogarmin.ReportMulticastAddr,
			Command: &net.UDPAddr{IP: net.ParseIP("10.0.0.40"), Port: protogarmin.CommandPort},
		},
	}
}

// TestScenarioS3_GainTripletSentAfterVariantDetected reproduces spec.md
// scenario S3: once an xHD radar has emitted reports, set_control(gain,
// manual, 50) sends the two 12-byte gain packets byte-for-byte.
func TestScenarioS3_GainTripletSentAfterVariantDetected(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Garmin, "UNKNOWN")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)

	powerReport := protogarmin.Packet{PacketType: 0x0901, Length: 4, Value: 2}
	io.QueueUDPRecv(c.reportHandle, powerReport.Encode(), &net.UDPAddr{IP: net.ParseIP("10.0.0.40"), Port: 50100})
	changed, err := c.Poll(io, 50)
	require.NoError(t, err)
	assert.True(t, changed)

	value := 50.0
	err = c.SetControl(io, "gain", core.ControlValue{Mode: "manual", Number: &value})
	require.NoError(t, err)
	sent := io.SentDatagrams(c.cmdHandle)
	require.Len(t, sent, 2)
	assert.Equal(t, []byte{0x24, 0x09, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, sent[0].Data)
	assert.Equal(t, []byte{0x25, 0x09, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x32, 0x00, 0x00, 0x00}, sent[1].Data)
}

func TestSetControl_VariantUnknownIsControllerNotAvailable(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Lookup(model.Garmin, "UNKNOWN")
	c := New(testDiscovery(), info)
	_, err := c.Poll(io, 0)
	require.NoError(t, err)
	err = c.SetControl(io, "gain", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}
