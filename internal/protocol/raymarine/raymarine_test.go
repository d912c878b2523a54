package raymarine

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeControl_QuantumPrefixMatchesSpec(t *testing.T) {
	value := 50.0
	got, err := EncodeControl(VariantQuantum, "gain", core.ControlValue{Number: &value})
	require.NoError(t, err)
	opcode := quantumOpcodes["gain"]
	want := []byte{byte(opcode), byte(opcode >> 8), 0x28, 0x00, 0x00, 128}
	assert.Equal(t, want, got)
}

func TestEncodeControl_RDPrefixMatchesSpec(t *testing.T) {
	value := 50.0
	got, err := EncodeControl(VariantRD, "gain", core.ControlValue{Number: &value})
	require.NoError(t, err)
	lead := rdLeadBytes["gain"]
	want := append([]byte{0x00, 0xC1}, lead...)
	want = append(want, 128, 0x00)
	assert.Equal(t, want, got)
}

func TestEncodeControl_WrongVariantIsControllerNotAvailable(t *testing.T) {
	_, err := EncodeControl(VariantUnknown, "gain", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControllerNotAvailable, ce.Kind)
}

func TestQuantumReportRoundTrip(t *testing.T) {
	value := 50.0
	encoded, err := EncodeControl(VariantQuantum, "gain", core.ControlValue{Number: &value})
	require.NoError(t, err)
	update, err := DecodeReport(VariantQuantum, encoded)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, "gain", update.ControlID)
	assert.InDelta(t, 50.0, *update.Value.Number, 1.0)
}

func TestVariantForModel(t *testing.T) {
	assert.Equal(t, VariantQuantum, VariantForModel("Quantum"))
	assert.Equal(t, VariantRD, VariantForModel("RD424"))
	assert.Equal(t, VariantUnknown, VariantForModel("unheard-of"))
}

func TestDecodeBeacon(t *testing.T) {
	data := make([]byte, 16)
	copy(data[0:8], []byte("RM000123"))
	data[8] = 0x01 // Quantum
	putU16(data[9:11], 5800)
	putU16(data[11:13], 5801)
	putU16(data[13:15], 5802)
	addr := &net.UDPAddr{IP: net.ParseIP("10.0.0.30"), Port: 5800}
	d, err := DecodeBeacon(data, addr)
	require.NoError(t, err)
	assert.Equal(t, model.Raymarine, d.Brand)
	assert.Equal(t, "Quantum", d.Model)
	assert.Equal(t, 5802, d.Addrs.Command.Port)
}

func putU16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
