// Package spoke implements spec.md §4.7's per-radar spoke receiver: owns a
// UDP socket on the radar's data address, decodes incoming packets via
// internal/protocol, and fans normalized Spokes out to every registered
// consumer (trail store, ARPA tracker, guard-zone processors, outbound
// stream). Grounded in the teacher's internal/lidar/pipeline package, which
// plays the identical "decode once, fan out to N downstream stages" role
// for LIDAR frames.
package spoke

import (
	"net"

	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/dirkwa/mayara/internal/mtlog"
	"github.com/dirkwa/mayara/internal/protocol/furuno"
	"github.com/dirkwa/mayara/internal/protocol/garmin"
	"github.com/dirkwa/mayara/internal/protocol/navico"
	"github.com/dirkwa/mayara/internal/protocol/raymarine"
)

// Consumer receives every normalized spoke a Receiver decodes.
type Consumer interface {
	OnSpoke(s core.Spoke)
}

// Receiver owns one radar's data socket (spec.md §4.7: "One per managed
// radar").
type Receiver struct {
	radarID string
	brand   model.Brand
	info    model.Info
	addr    model.SocketAddrs

	handle        ioprovider.Handle
	downsampleK   int
	dopplerActive bool

	consumers []Consumer
	accum     map[int]*accumState
}

type accumState struct {
	count     int
	spoke     core.Spoke
	haveSpoke bool
}

// New builds a receiver for one radar. downsampleK <= 1 disables
// down-sampling (spec.md §4.7: "the reduction factor is a fixed property
// of a given spoke stream").
func New(radarID string, brand model.Brand, info model.Info, addr model.SocketAddrs, downsampleK int) *Receiver {
	if downsampleK < 1 {
		downsampleK = 1
	}
	return &Receiver{
		radarID:     radarID,
		brand:       brand,
		info:        info,
		addr:        addr,
		downsampleK: downsampleK,
		accum:       make(map[int]*accumState),
	}
}

// AddConsumer registers a downstream fan-out target.
func (r *Receiver) AddConsumer(c Consumer) {
	r.consumers = append(r.consumers, c)
}

// SetDopplerActive toggles HALO Doppler pixel remapping (spec.md §3:
// "remapped... when Doppler mode is active").
func (r *Receiver) SetDopplerActive(active bool) {
	r.dopplerActive = active
}

// Connect opens and, if applicable, multicast-joins the data socket.
func (r *Receiver) Connect(io ioprovider.Provider) error {
	opts := ioprovider.UDPOptions{Reuse: true}
	if r.addr.Data != nil {
		opts.BindAddr = &net.UDPAddr{Port: r.addr.Data.Port}
	}
	h, err := io.UDPCreate(opts)
	if err != nil {
		return err
	}
	if r.addr.Data != nil && r.addr.Data.IP.IsMulticast() {
		if err := io.UDPJoinMulticast(h, r.addr.Data.IP, nil); err != nil {
			mtlog.Warnf("spoke: join multicast for %s: %v", r.radarID, err)
		}
	}
	r.handle = h
	return nil
}

// Poll drains and decodes all pending packets, forwarding normalized
// spokes (after down-sampling) to every registered consumer.
func (r *Receiver) Poll(io ioprovider.Provider, nowMs int64) bool {
	changed := false
	buf := make([]byte, 8192)
	for {
		n, _, err := io.UDPRecvFrom(r.handle, buf)
		if err != nil {
			break
		}
		spokes, decErr := r.decode(buf[:n], nowMs)
		if decErr != nil {
			mtlog.Debugf("spoke: decode (%s): %v", r.radarID, decErr)
			continue
		}
		for _, s := range spokes {
			r.forward(s)
			changed = true
		}
	}
	return changed
}

func (r *Receiver) decode(data []byte, nowMs int64) ([]core.Spoke, error) {
	switch r.brand {
	case model.Navico:
		return navico.DecodeSpoke(r.radarID, data, r.info, nowMs, r.dopplerActive)
	case model.Furuno:
		s, err := furuno.DecodeSpoke(r.radarID, data, r.info, nowMs)
		if err != nil {
			return nil, err
		}
		return []core.Spoke{s}, nil
	case model.Raymarine:
		s, err := raymarine.DecodeSpoke(r.radarID, data, r.info, nowMs)
		if err != nil {
			return nil, err
		}
		return []core.Spoke{s}, nil
	case model.Garmin:
		s, err := garmin.DecodeSpoke(r.radarID, data, r.info, nowMs)
		if err != nil {
			return nil, err
		}
		return []core.Spoke{s}, nil
	default:
		return nil, core.NewParseError(core.UnknownVariant, "spoke: unknown brand")
	}
}

// forward applies down-sampling (combine K consecutive spokes per angle
// bucket pixel-wise by max) before fanning out to consumers.
func (r *Receiver) forward(s core.Spoke) {
	if r.downsampleK <= 1 {
		r.emit(s)
		return
	}
	bucket := s.AngleIndex / r.downsampleK
	st, ok := r.accum[bucket]
	if !ok {
		st = &accumState{}
		r.accum[bucket] = st
	}
	if !st.haveSpoke {
		st.spoke = s
		st.spoke.AngleIndex = bucket
		st.haveSpoke = true
	} else {
		maxInto(st.spoke.Intensity, s.Intensity)
		st.spoke.TimestampMs = s.TimestampMs
	}
	st.count++
	if st.count >= r.downsampleK {
		r.emit(st.spoke)
		st.count = 0
		st.haveSpoke = false
	}
}

func maxInto(dst, src []byte) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		if src[i] > dst[i] {
			dst[i] = src[i]
		}
	}
}

func (r *Receiver) emit(s core.Spoke) {
	for _, c := range r.consumers {
		c.OnSpoke(s)
	}
}

// Shutdown closes the data socket.
func (r *Receiver) Shutdown(io ioprovider.Provider) {
	_ = io.Close(r.handle)
}

// EffectiveSpokesPerRevolution reports the client-visible spoke count after
// down-sampling (spec.md §4.7: "the radar's capability manifest reports
// spokes_per_revolution / K").
func (r *Receiver) EffectiveSpokesPerRevolution() int {
	return r.info.SpokesPerRevolution / r.downsampleK
}
