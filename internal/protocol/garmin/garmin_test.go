package garmin

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioS3_GainTripletMatchesSpecExactly reproduces spec.md scenario
// S3 byte-for-byte: set_control(gain, manual, 50) on an xHD radar emits
// 24 09 00 00 04 00 00 00 00 00 00 00 then 25 09 00 00 04 00 00 00 32 00 00 00.
func TestScenarioS3_GainTripletMatchesSpecExactly(t *testing.T) {
	value := 50.0
	packets, err := EncodeControl(VariantXHD, "gain", core.ControlValue{Mode: "manual", Number: &value})
	require.NoError(t, err)
	require.Len(t, packets, 2)

	modePacket := packets[0].Encode()
	valuePacket := packets[1].Encode()

	assert.Equal(t, []byte{0x24, 0x09, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, modePacket)
	assert.Equal(t, []byte{0x25, 0x09, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x32, 0x00, 0x00, 0x00}, valuePacket)
}

func TestDecodePacket_RoundTrip(t *testing.T) {
	p := Packet{PacketType: 0x0924, Length: 4, Value: 0}
	decoded, err := DecodePacket(p.Encode())
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecoder_GainPairReassembles(t *testing.T) {
	value := 50.0
	packets, err := EncodeControl(VariantXHD, "gain", core.ControlValue{Mode: "manual", Number: &value})
	require.NoError(t, err)

	d := NewDecoder(VariantXHD)
	update, err := d.Decode(packets[0])
	require.NoError(t, err)
	assert.Nil(t, update) // mode packet alone yields no update yet

	update, err = d.Decode(packets[1])
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, "gain", update.ControlID)
	assert.Equal(t, "manual", update.Value.Mode)
	assert.Equal(t, 50.0, *update.Value.Number)
}

func TestVariantForPacketType(t *testing.T) {
	assert.Equal(t, VariantXHD, VariantForPacketType(0x0924))
	assert.Equal(t, VariantHD, VariantForPacketType(0x02B2))
	assert.Equal(t, VariantUnknown, VariantForPacketType(0xFFFF))
}

func TestEncodeControl_UnknownVariantIsControllerNotAvailable(t *testing.T) {
	_, err := EncodeControl(VariantUnknown, "gain", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}

func TestDiscoverFromPacket(t *testing.T) {
	source := &net.UDPAddr{IP: net.ParseIP("10.0.0.40"), Port: 50100}
	d := DiscoverFromPacket(Packet{PacketType: 0x0924, Value: 0}, source)
	assert.Equal(t, model.Garmin, d.Brand)
	assert.Equal(t, 50101, d.Addrs.Command.Port)
	assert.Equal(t, "UNKNOWN", d.Model)
}
