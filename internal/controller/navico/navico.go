// Package navico implements the Navico brand controller (spec.md §4.6):
// UDP multicast for reports, unicast UDP to a radar-provided command
// address, periodic keep-alives (fast for HALO, slow for BR24/3G/4G), dual
// independent A/B channel keep-alives for dual-range radars, and a two-step
// power transition. Grounded in the teacher's serialmux connection-state
// pattern, adapted from a serial byte stream to Navico's UDP report/command
// split.
package navico

import (
	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/dirkwa/mayara/internal/mtlog"
	"github.com/dirkwa/mayara/internal/protocol/navico"
	"github.com/dirkwa/mayara/internal/schema"
)

// Keep-alive cadences (spec.md §4.6: "every 50-100ms for HALO, every 1-5s
// for older BR24/3G/4G"). Mid-points of each documented range.
const (
	haloKeepAliveMs   = 75
	legacyKeepAliveMs = 3000
)

type channel struct {
	reportHandle  ioprovider.Handle
	cmdHandle     ioprovider.Handle
	addrs         model.SocketAddrs
	nextKeepAlive int64
}

// Controller is the Navico brand controller. A and B are populated for
// dual-range radars; B is zero-valued otherwise.
type Controller struct {
	discovery model.Discovery
	info      model.Info
	manifest  schema.Manifest
	state     *core.RadarState
	conn      *core.Connection

	a channel
	b *channel

	keepAliveMs int64
	// powerPending tracks Navico's two-step power sequence: prepare, then
	// set on the next poll (spec.md §4.6: "Power transitions use a
	// two-step sequence").
	powerPending *core.PowerState
}

// New constructs a controller for a discovered Navico radar. Sockets are
// created lazily on the first Poll call.
func New(d model.Discovery, info model.Info) *Controller {
	keepAlive := int64(legacyKeepAliveMs)
	if info.Family == "HALO" {
		keepAlive = haloKeepAliveMs
	}
	c := &Controller{
		discovery:   d,
		info:        info,
		manifest:    schema.BuildManifest(d, ""),
		state:       core.NewRadarState(),
		conn:        core.NewConnection(),
		a:           channel{addrs: d.Addrs},
		keepAliveMs: keepAlive,
	}
	if d.AddrsB != nil {
		c.b = &channel{addrs: *d.AddrsB}
	}
	return c
}

func (c *Controller) connectChannel(io ioprovider.Provider, ch *channel) error {
	rh, err := io.UDPCreate(ioprovider.UDPOptions{Reuse: true})
	if err != nil {
		return err
	}
	if ch.addrs.Report != nil && ch.addrs.Report.IP.IsMulticast() {
		_ = io.UDPJoinMulticast(rh, ch.addrs.Report.IP, nil)
	}
	ch.reportHandle = rh

	cmdH, err := io.UDPCreate(ioprovider.UDPOptions{})
	if err != nil {
		return err
	}
	ch.cmdHandle = cmdH
	return nil
}

func (c *Controller) Poll(io ioprovider.Provider, nowMs int64) (bool, error) {
	changed := false
	if c.conn.Phase == core.Disconnected {
		if !c.conn.ReadyToConnect(nowMs) {
			return false, nil
		}
		if err := c.connectChannel(io, &c.a); err != nil {
			c.conn.RecordFailure(nowMs)
			return false, err
		}
		if c.b != nil {
			if err := c.connectChannel(io, c.b); err != nil {
				c.conn.RecordFailure(nowMs)
				return false, err
			}
		}
		c.conn.RecordSuccess(nowMs)
		changed = true
	}

	if c.sendKeepAlives(io, &c.a, nowMs) {
		changed = true
	}
	if c.b != nil && c.sendKeepAlives(io, c.b, nowMs) {
		changed = true
	}

	if c.powerPending != nil {
		if err := c.commitPendingPower(io); err != nil {
			mtlog.Warnf("navico: power step failed: %v", err)
		}
		changed = true
	}

	if c.drainReports(io, &c.a, nowMs) {
		changed = true
	}
	if c.b != nil && c.drainReports(io, c.b, nowMs) {
		changed = true
	}

	c.conn.CheckWatchdog(nowMs, 10000)
	return changed, nil
}

func (c *Controller) sendKeepAlives(io ioprovider.Provider, ch *channel, nowMs int64) bool {
	if nowMs < ch.nextKeepAlive {
		return false
	}
	ch.nextKeepAlive = nowMs + c.keepAliveMs
	if ch.addrs.Command == nil {
		return false
	}
	_, err := io.UDPSendTo(ch.cmdHandle, navico.ProbeMessage, ch.addrs.Command.IP, ch.addrs.Command.Port)
	return err == nil
}

func (c *Controller) drainReports(io ioprovider.Provider, ch *channel, nowMs int64) bool {
	changed := false
	buf := make([]byte, 4096)
	for {
		n, _, err := io.UDPRecvFrom(ch.reportHandle, buf)
		if err != nil {
			break
		}
		c.conn.RecordReceive(nowMs)
		updates, decErr := navico.DecodeReport(buf[:n])
		if decErr != nil {
			mtlog.Debugf("navico: report decode: %v", decErr)
			continue
		}
		if len(updates) > 0 {
			c.state.Apply(nowMs, updates)
			changed = true
		}
	}
	return changed
}

// commitPendingPower issues Navico's prepare-then-set power sequence.
func (c *Controller) commitPendingPower(io ioprovider.Provider) error {
	target := *c.powerPending
	c.powerPending = nil
	payload, err := navico.EncodeControl("power", core.ControlValue{Enum: string(target)})
	if err != nil {
		return err
	}
	if c.a.addrs.Command == nil {
		return core.NewControlError(core.ControllerNotAvailable, "no command address")
	}
	_, err = io.UDPSendTo(c.a.cmdHandle, payload, c.a.addrs.Command.IP, c.a.addrs.Command.Port)
	return err
}

func (c *Controller) SetControl(io ioprovider.Provider, controlID string, value core.ControlValue) error {
	if c.conn.Phase == core.Disconnected {
		return core.NewControlError(core.ControllerNotAvailable, "navico controller disconnected")
	}
	if controlID == "power" {
		if value.Enum == "" || !core.PowerState(value.Enum).Settable() {
			return core.NewControlError(core.InvalidValue, "power: unsupported state "+value.Enum)
		}
		state := core.PowerState(value.Enum)
		c.powerPending = &state
		return nil
	}

	payload, err := navico.EncodeControl(controlID, value)
	if err != nil {
		return err
	}
	if c.a.addrs.Command == nil {
		return core.NewControlError(core.ControllerNotAvailable, "no command address")
	}
	_, err = io.UDPSendTo(c.a.cmdHandle, payload, c.a.addrs.Command.IP, c.a.addrs.Command.Port)
	return err
}

func (c *Controller) Shutdown(io ioprovider.Provider) {
	_ = io.Close(c.a.reportHandle)
	_ = io.Close(c.a.cmdHandle)
	if c.b != nil {
		_ = io.Close(c.b.reportHandle)
		_ = io.Close(c.b.cmdHandle)
	}
	c.conn.Phase = core.Disconnected
}

func (c *Controller) State() *core.RadarState       { return c.state }
func (c *Controller) Connection() *core.Connection  { return c.conn }
func (c *Controller) Manifest() schema.Manifest      { return c.manifest }
