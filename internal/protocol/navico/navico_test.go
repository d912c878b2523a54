package navico

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncodeControl_GainMatchesSpecExample reproduces scenario S1 verbatim:
// set_control(gain, manual, 50) must produce 06 C1 00 00 00 00 00 00 00 00 80.
func TestEncodeControl_GainMatchesSpecExample(t *testing.T) {
	value := 50.0
	got, err := EncodeControl("gain", core.ControlValue{Mode: "manual", Number: &value})
	require.NoError(t, err)
	want := []byte{0x06, 0xC1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}
	assert.Equal(t, want, got)
}

func TestEncodeControl_UnknownControlNotFound(t *testing.T) {
	_, err := EncodeControl("doesNotExist", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControlNotFound, ce.Kind)
}

func TestDecodeBeacon_HaloDualRange(t *testing.T) {
	data := make([]byte, 24)
	data[0] = tagDualRange
	data[1] = 0xB2
	copy(data[2:10], []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77})
	putU16(data[10:12], 6100)
	putU16(data[12:14], 6101)
	putU16(data[14:16], 6102)
	putU16(data[18:20], 6200)
	putU16(data[20:22], 6201)
	putU16(data[22:24], 6202)

	addr := &net.UDPAddr{IP: net.ParseIP("10.0.0.50"), Port: 6878}
	d, err := DecodeBeacon(data, addr)
	require.NoError(t, err)
	assert.Equal(t, model.Navico, d.Brand)
	assert.Equal(t, "HALO24", d.Model)
	require.NotNil(t, d.AddrsB)
	assert.Equal(t, 6200, d.AddrsB.Report.Port)
}

func TestDecodeBeacon_TooShort(t *testing.T) {
	_, err := DecodeBeacon([]byte{0x01, 0x02}, &net.UDPAddr{})
	var pe *core.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, core.TooShort, pe.Kind)
}

func TestDecodeReport_StatusAndControls(t *testing.T) {
	status := []byte{reportStatus, 0x00, 0x04}
	updates, err := DecodeReport(status)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "power", updates[0].ControlID)
	assert.Equal(t, string(core.PowerTransmit), updates[0].Value.Enum)

	controls := make([]byte, 12)
	controls[0] = reportControls
	putU32(controls[2:6], 1852)
	controls[6] = 0x00
	controls[7] = 128
	controls[8] = 0x01
	controls[9] = 64
	controls[10] = 32
	updates, err = DecodeReport(controls)
	require.NoError(t, err)
	require.Len(t, updates, 4)
	assert.Equal(t, "range", updates[0].ControlID)
	assert.Equal(t, "manual", updates[1].Value.Mode)
	assert.Equal(t, "auto", updates[2].Value.Mode)
}

func TestDecodeReport_UnknownTypeIsUnknownVariant(t *testing.T) {
	_, err := DecodeReport([]byte{0xFE, 0x00})
	var pe *core.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, core.UnknownVariant, pe.Kind)
}

func TestDecodeSpoke_UnpacksNibblesAndHeading(t *testing.T) {
	info := model.Info{SpokesPerRevolution: 2048}
	data := make([]byte, frameHeaderLen+spokeHeaderLen+2)
	data[0] = 0x01
	data[1] = 1 // spoke count
	putU16(data[2:4], 4) // pixelBytes
	putU16(data[4:6], 10) // angle
	putU32(data[6:10], 1852) // range
	putU16(data[10:12], 0xFFFF) // no heading
	data[12] = 0x12
	data[13] = 0x34

	spokes, err := DecodeSpoke("navico-1", data, info, 1000, false)
	require.NoError(t, err)
	require.Len(t, spokes, 1)
	s := spokes[0]
	assert.Equal(t, 10, s.AngleIndex)
	assert.False(t, s.HasHeading)
	assert.Equal(t, []byte{0x02 * 17, 0x01 * 17, 0x04 * 17, 0x03 * 17}, s.Intensity)
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
