// Package raymarine implements the Raymarine brand controller (spec.md
// §4.6): UDP, with the command-prefix variant (Quantum vs RD) selected at
// runtime once the model is identified. Grounded in the teacher's
// serialmux connection-state pattern, adapted to UDP report/command
// sockets; the Quantum/RD dispatch mirrors the teacher's per-device
// variant tables in serialmux.
package raymarine

import (
	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/dirkwa/mayara/internal/mtlog"
	"github.com/dirkwa/mayara/internal/protocol/raymarine"
	"github.com/dirkwa/mayara/internal/schema"
)

type Controller struct {
	discovery model.Discovery
	info      model.Info
	manifest  schema.Manifest
	state     *core.RadarState
	conn      *core.Connection
	variant   raymarine.Variant

	reportHandle ioprovider.Handle
	cmdHandle    ioprovider.Handle
}

func New(d model.Discovery, info model.Info) *Controller {
	return &Controller{
		discovery: d,
		info:      info,
		manifest:  schema.BuildManifest(d, ""),
		state:     core.NewRadarState(),
		conn:      core.NewConnection(),
		variant:   raymarine.VariantForModel(d.Model),
	}
}

func (c *Controller) Poll(io ioprovider.Provider, nowMs int64) (bool, error) {
	changed := false
	if c.conn.Phase == core.Disconnected {
		if !c.conn.ReadyToConnect(nowMs) {
			return false, nil
		}
		rh, err := io.UDPCreate(ioprovider.UDPOptions{Reuse: true})
		if err != nil {
			c.conn.RecordFailure(nowMs)
			return false, err
		}
		if c.discovery.Addrs.Report != nil && c.discovery.Addrs.Report.IP.IsMulticast() {
			_ = io.UDPJoinMulticast(rh, c.discovery.Addrs.Report.IP, nil)
		}
		c.reportHandle = rh
		cmdH, err := io.UDPCreate(ioprovider.UDPOptions{})
		if err != nil {
			c.conn.RecordFailure(nowMs)
			return false, err
		}
		c.cmdHandle = cmdH
		c.conn.RecordSuccess(nowMs)
		changed = true
	}

	buf := make([]byte, 4096)
	for {
		n, _, err := io.UDPRecvFrom(c.reportHandle, buf)
		if err != nil {
			break
		}
		c.conn.RecordReceive(nowMs)
		update, decErr := raymarine.DecodeReport(c.variant, buf[:n])
		if decErr != nil {
			mtlog.Debugf("raymarine: report decode: %v", decErr)
			continue
		}
		if update != nil {
			c.state.Apply(nowMs, []core.ControlUpdate{*update})
			changed = true
		}
	}

	c.conn.CheckWatchdog(nowMs, 10000)
	return changed, nil
}

func (c *Controller) SetControl(io ioprovider.Provider, controlID string, value core.ControlValue) error {
	if c.conn.Phase == core.Disconnected {
		return core.NewControlError(core.ControllerNotAvailable, "raymarine controller disconnected")
	}
	if controlID == "power" && !core.PowerState(value.Enum).Settable() {
		return core.NewControlError(core.InvalidValue, "power: unsupported state "+value.Enum)
	}
	payload, err := raymarine.EncodeControl(c.variant, controlID, value)
	if err != nil {
		return err
	}
	if c.discovery.Addrs.Command == nil {
		return core.NewControlError(core.ControllerNotAvailable, "no command address")
	}
	_, err = io.UDPSendTo(c.cmdHandle, payload, c.discovery.Addrs.Command.IP, c.discovery.Addrs.Command.Port)
	return err
}

func (c *Controller) Shutdown(io ioprovider.Provider) {
	_ = io.Close(c.reportHandle)
	_ = io.Close(c.cmdHandle)
	c.conn.Phase = core.Disconnected
}

func (c *Controller) State() *core.RadarState      { return c.state }
func (c *Controller) Connection() *core.Connection { return c.conn }
func (c *Controller) Manifest() schema.Manifest     { return c.manifest }
