package furuno

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioS2_RangeSetRoundTrip reproduces spec.md scenario S2 verbatim:
// set_control(range, 5556) emits "$S1,5556"; a subsequent "$S1,5556" report
// line decodes back to a range control update of 5556.
func TestScenarioS2_RangeSetRoundTrip(t *testing.T) {
	value := 5556.0
	line, err := EncodeControl("range", core.ControlValue{Number: &value})
	require.NoError(t, err)
	assert.Equal(t, "$S1,5556", line)

	update, modelName, err := DecodeLine("$S1,5556")
	require.NoError(t, err)
	assert.Equal(t, "", modelName)
	require.NotNil(t, update)
	assert.Equal(t, "range", update.ControlID)
	assert.Equal(t, 5556.0, *update.Value.Number)
}

func TestDecodeLine_ModelIdentification(t *testing.T) {
	update, modelName, err := DecodeLine("$N96,DRS4D-NXT")
	require.NoError(t, err)
	assert.Nil(t, update)
	assert.Equal(t, "DRS4D-NXT", modelName)
}

func TestDecodeLine_UnknownTag(t *testing.T) {
	_, _, err := DecodeLine("$ZZ,1")
	var pe *core.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, core.UnknownVariant, pe.Kind)
}

func TestDecodeBeaconReply(t *testing.T) {
	addr := &net.UDPAddr{IP: net.ParseIP("10.0.0.20"), Port: 10010}
	d, err := DecodeBeaconReply([]byte("FURUNORADAR,FR12345,10011\r\n"), addr)
	require.NoError(t, err)
	assert.Equal(t, model.Furuno, d.Brand)
	assert.Equal(t, "UNKNOWN", d.Model)
	assert.Equal(t, "FR12345", d.Serial)
	assert.Equal(t, 10011, d.Addrs.Command.Port)
}

func TestEncodeControl_UnknownControlNotFound(t *testing.T) {
	_, err := EncodeControl("doesNotExist", core.ControlValue{})
	var ce *core.ControlError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.ControlNotFound, ce.Kind)
}
