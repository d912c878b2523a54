package spoke

import (
	"net"
	"testing"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	spokes []core.Spoke
}

func (c *collector) OnSpoke(s core.Spoke) {
	c.spokes = append(c.spokes, s)
}

func furunoFrame(angle uint16, pixels []byte) []byte {
	buf := make([]byte, 8+len(pixels))
	buf[0] = byte(angle >> 8)
	buf[1] = byte(angle)
	buf[6] = 0xFF
	buf[7] = 0xFF // no heading
	copy(buf[8:], pixels)
	return buf
}

func TestReceiver_DecodesAndForwardsWithoutDownsampling(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Info{SpokesPerRevolution: 2048, MaxSpokeLength: 512}
	r := New("furuno-1", model.Furuno, info, model.SocketAddrs{Data: &net.UDPAddr{IP: net.ParseIP("10.0.0.1"), Port: 10012}}, 1)
	require.NoError(t, r.Connect(io))

	c := &collector{}
	r.AddConsumer(c)

	io.QueueUDPRecv(r.handle, furunoFrame(100, []byte{1, 2, 3}), &net.UDPAddr{})
	changed := r.Poll(io, 0)
	assert.True(t, changed)
	require.Len(t, c.spokes, 1)
	assert.Equal(t, 100, c.spokes[0].AngleIndex)
}

func TestReceiver_DownsamplesKSpokesByMax(t *testing.T) {
	io := ioprovider.NewMock()
	info := model.Info{SpokesPerRevolution: 2048, MaxSpokeLength: 512}
	r := New("furuno-1", model.Furuno, info, model.SocketAddrs{Data: &net.UDPAddr{IP: net.ParseIP("10.0.0.1"), Port: 10012}}, 4)
	require.NoError(t, r.Connect(io))

	c := &collector{}
	r.AddConsumer(c)

	io.QueueUDPRecv(r.handle, furunoFrame(0, []byte{10, 20}), &net.UDPAddr{})
	io.QueueUDPRecv(r.handle, furunoFrame(1, []byte{50, 5}), &net.UDPAddr{})
	io.QueueUDPRecv(r.handle, furunoFrame(2, []byte{3, 60}), &net.UDPAddr{})
	io.QueueUDPRecv(r.handle, furunoFrame(3, []byte{1, 1}), &net.UDPAddr{})

	r.Poll(io, 0)
	require.Len(t, c.spokes, 1)
	assert.Equal(t, []byte{50, 60}, c.spokes[0].Intensity)
	assert.Equal(t, 512, r.EffectiveSpokesPerRevolution())
}
