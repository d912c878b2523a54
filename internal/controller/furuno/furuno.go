// Package furuno implements the Furuno brand controller (spec.md §4.6): TCP
// to the radar's command port, a login sequence, then an ASCII
// command/report line stream. Grounded directly in the teacher's serial.go
// (a line-oriented connection state machine over a persistent stream),
// adapted from a local serial port to a TCP socket.
package furuno

import (
	"github.com/dirkwa/mayara/internal/core"
	"github.com/dirkwa/mayara/internal/ioprovider"
	"github.com/dirkwa/mayara/internal/model"
	"github.com/dirkwa/mayara/internal/mtlog"
	"github.com/dirkwa/mayara/internal/protocol/furuno"
	"github.com/dirkwa/mayara/internal/schema"
)

type loginPhase int

const (
	awaitingSocket loginPhase = iota
	awaitingTCPConnect
	loginNotStarted
	loginSent
	modelQuerySent
	loginDone
)

// Controller is the Furuno brand controller. Model stays "UNKNOWN" (and
// the extended control set unavailable) if the $N96 reply is missed
// because another client was already connected (spec.md §4.6).
type Controller struct {
	discovery model.Discovery
	info      model.Info
	manifest  schema.Manifest
	state     *core.RadarState
	conn      *core.Connection

	handle ioprovider.Handle
	login  loginPhase

	// modelQueryDeadlineMs bounds how long to wait for the $N96 reply
	// before giving up and proceeding with model UNKNOWN (spec.md §4.6:
	// "if it misses the initial reply... model stays UNKNOWN").
	modelQueryDeadlineMs int64
}

// modelQueryGraceMs is how long the controller waits for a $N96 reply
// before concluding another client already captured it.
const modelQueryGraceMs = 2000

func New(d model.Discovery, info model.Info) *Controller {
	return &Controller{
		discovery: d,
		info:      info,
		manifest:  schema.BuildManifest(d, ""),
		state:     core.NewRadarState(),
		conn:      core.NewConnection(),
	}
}

func (c *Controller) Poll(io ioprovider.Provider, nowMs int64) (bool, error) {
	changed := false

	if c.conn.Phase == core.Disconnected {
		if !c.conn.ReadyToConnect(nowMs) {
			return false, nil
		}
		if c.discovery.Addrs.Command == nil {
			c.conn.RecordFailure(nowMs)
			return false, core.NewControlError(core.ControllerNotAvailable, "no command address")
		}
		h, err := io.TCPCreate()
		if err != nil {
			c.conn.RecordFailure(nowMs)
			return false, err
		}
		c.handle = h
		c.conn.Phase = core.Connecting
		c.login = awaitingTCPConnect
		changed = true
	}

	if c.conn.Phase == core.Connecting {
		if c.login == awaitingTCPConnect {
			state, err := io.TCPConnect(c.handle, c.discovery.Addrs.Command.IP, c.discovery.Addrs.Command.Port)
			if err != nil {
				c.conn.RecordFailure(nowMs)
				return changed, err
			}
			switch state {
			case ioprovider.TCPConnected:
				c.login = loginNotStarted
			case ioprovider.TCPFailed:
				c.conn.RecordFailure(nowMs)
				return changed, nil
			default:
				return changed, nil // still connecting; retry next poll
			}
		}
		if c.driveLogin(io, nowMs) {
			c.conn.RecordSuccess(nowMs)
			changed = true
		}
		return changed, nil
	}

	if c.drainLines(io, nowMs) {
		changed = true
	}
	c.conn.CheckWatchdog(nowMs, 15000)
	return changed, nil
}

// driveLogin sends the fixed credential sequence then queries $N96.
// Returns true once login is complete (model known or timed out UNKNOWN).
func (c *Controller) driveLogin(io ioprovider.Provider, nowMs int64) bool {
	switch c.login {
	case loginNotStarted:
		for _, line := range furuno.LoginSequence {
			_, _ = io.TCPSend(c.handle, []byte(line+"\r\n"))
		}
		c.login = loginSent
		return false
	case loginSent:
		_, _ = io.TCPSend(c.handle, []byte(furuno.ModelQuery+"\r\n"))
		c.login = modelQuerySent
		c.modelQueryDeadlineMs = nowMs + modelQueryGraceMs
		return false
	case modelQuerySent:
		line, err := io.TCPRecvLine(c.handle, 0)
		if err != nil {
			if nowMs < c.modelQueryDeadlineMs {
				return false // still waiting, not yet timed out
			}
			// Missed the reply (possibly another client holds it):
			// proceed with model UNKNOWN rather than blocking forever
			// (spec.md §4.6).
			c.login = loginDone
			return true
		}
		_, modelName, decErr := furuno.DecodeLine(line)
		if decErr == nil && modelName != "" {
			c.info = model.Lookup(model.Furuno, modelName)
			c.discovery.Model = modelName
			c.manifest = schema.BuildManifest(c.discovery, "")
		}
		c.login = loginDone
		return true
	default:
		return true
	}
}

func (c *Controller) drainLines(io ioprovider.Provider, nowMs int64) bool {
	changed := false
	for {
		line, err := io.TCPRecvLine(c.handle, 0)
		if err != nil {
			break
		}
		c.conn.RecordReceive(nowMs)
		update, modelName, decErr := furuno.DecodeLine(line)
		if decErr != nil {
			mtlog.Debugf("furuno: line decode: %v", decErr)
			continue
		}
		if modelName != "" && c.discovery.Model == "UNKNOWN" {
			c.info = model.Lookup(model.Furuno, modelName)
			c.discovery.Model = modelName
			c.manifest = schema.BuildManifest(c.discovery, "")
			changed = true
		}
		if update != nil {
			c.state.Apply(nowMs, []core.ControlUpdate{*update})
			changed = true
		}
	}
	return changed
}

func (c *Controller) SetControl(io ioprovider.Provider, controlID string, value core.ControlValue) error {
	if c.conn.Phase != core.Connected && c.conn.Phase != core.Active {
		return core.NewControlError(core.ControllerNotAvailable, "furuno controller not connected")
	}
	if controlID == "power" && !core.PowerState(value.Enum).Settable() {
		return core.NewControlError(core.InvalidValue, "power: unsupported state "+value.Enum)
	}
	line, err := furuno.EncodeControl(controlID, value)
	if err != nil {
		return err
	}
	_, err = io.TCPSend(c.handle, []byte(line+"\r\n"))
	return err
}

func (c *Controller) Shutdown(io ioprovider.Provider) {
	_ = io.Close(c.handle)
	c.conn.Phase = core.Disconnected
}

func (c *Controller) State() *core.RadarState      { return c.state }
func (c *Controller) Connection() *core.Connection { return c.conn }
func (c *Controller) Manifest() schema.Manifest     { return c.manifest }
