// Package protocol implements the protocol engine (C7): frame parsing,
// command dispatch, and response encoding over the link's command and
// response endpoints. A busy flag gives the single-in-flight discipline
// §4.7 requires; concurrent callers drop a command rather than queue it
// or report BUSY, matching the source's (preserved) behaviour.
package protocol

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/errcode"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// handlerFunc implements one command. It returns the response payload and
// status; handlers never write past ResponseBufferSize themselves — the
// engine owns the scratch buffer and truncation is the engine's bug to
// catch, not theirs.
type handlerFunc func(e *Engine, data []byte) ([]byte, types.StatusCode)

// Engine is the owned protocol-engine value; it holds no package-level
// state (§9 rearchitecture note, same as Scheduler and Store).
type Engine struct {
	Store  Store
	Config Config
	Clock  Clock
	Link   Link

	// DeviceName, FirmwareVersion, and HardwareVersion feed GetDeviceInfo.
	// The link advertisement name (C8) is built separately and does not
	// use them.
	DeviceName      string
	FirmwareVersion string
	HardwareVersion string

	// ResetFn performs the actual device reset (process exit, watchdog
	// trigger, or similar); nil is a no-op, useful in tests.
	ResetFn func()
	// TimeSyncFn triggers an external time sync; fire-and-forget per the
	// concurrency model's bounded, non-blocking wait.
	TimeSyncFn func()
	// SwitchFn reports the physical switch's current state for
	// GetSwitchStatus.
	SwitchFn func() bool

	bootAt          time.Time
	sensorReadCount uint32

	mu    sync.Mutex
	creds types.LinkCredentials

	busy atomic.Bool

	handlers map[types.CommandID]handlerFunc
}

// New constructs an Engine. bootAt should be the time the device started,
// used for uptime reporting.
func New(bootAt time.Time) *Engine {
	e := &Engine{bootAt: bootAt}
	e.handlers = map[types.CommandID]handlerFunc{
		types.CmdGetSensorData:    handleGetSensorData,
		types.CmdGetSystemStatus:  handleGetSystemStatus,
		types.CmdSetPlantProfile:  handleSetPlantProfile,
		types.CmdSystemReset:      handleSystemReset,
		types.CmdGetDeviceInfo:    handleGetDeviceInfo,
		types.CmdGetTimeData:      handleGetTimeData,
		types.CmdGetSwitchStatus:  handleGetSwitchStatus,
		types.CmdGetPlantProfile:  handleGetPlantProfile,
		types.CmdSetLinkConfig:    handleSetLinkConfig,
		types.CmdGetLinkConfig:    handleGetLinkConfig,
		types.CmdLinkConnect:      handleLinkConnect,
		types.CmdGetTimezone:      handleGetTimezone,
		types.CmdSyncTime:         handleSyncTime,
		types.CmdLinkDisconnect:   handleLinkDisconnect,
		types.CmdSaveLinkConfig:   handleSaveLinkConfig,
		types.CmdSavePlantProfile: handleSavePlantProfile,
		types.CmdSetTimezone:      handleSetTimezone,
		types.CmdSaveTimezone:     handleSaveTimezone,
	}
	return e
}

// HandleCommand parses raw, dispatches it, and returns the encoded
// response frame. If another command is already in flight, raw is
// silently dropped and HandleCommand returns nil — there is nothing to
// notify, per §4.7's "drop rather than BUSY" contract.
func (e *Engine) HandleCommand(raw []byte) []byte {
	if !e.busy.CompareAndSwap(false, true) {
		return nil
	}
	defer e.busy.Store(false)

	var buf [types.ResponseBufferSize]byte

	frame, err := types.ParseCommandFrame(raw)
	if err != nil {
		resp := types.ResponseFrame{Status: types.StatusInvalidParameter}
		out, _ := resp.Encode(buf[:])
		return out
	}

	handler, ok := e.handlers[frame.Command]
	if !ok {
		resp := types.ResponseFrame{ResponseTo: frame.Command, Sequence: frame.Sequence, Status: types.StatusInvalidCommand}
		out, _ := resp.Encode(buf[:])
		return out
	}

	data, status := handler(e, frame.Data)
	resp := types.ResponseFrame{ResponseTo: frame.Command, Sequence: frame.Sequence, Status: status, Data: data}
	out, err := resp.Encode(buf[:])
	if err != nil {
		resp = types.ResponseFrame{ResponseTo: frame.Command, Sequence: frame.Sequence, Status: types.StatusError}
		out, _ = resp.Encode(buf[:])
	}
	return out
}

func (e *Engine) uptime() time.Duration {
	if e.bootAt.IsZero() {
		return 0
	}
	return time.Since(e.bootAt)
}

func (e *Engine) activeCredentials() types.LinkCredentials {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creds
}

func (e *Engine) setActiveCredentials(c types.LinkCredentials) {
	e.mu.Lock()
	e.creds = c
	e.mu.Unlock()
}

func codeToStatus(c errcode.Code) types.StatusCode {
	switch c {
	case errcode.OK:
		return types.StatusSuccess
	case errcode.InvalidArgument, errcode.SizeMismatch:
		return types.StatusInvalidParameter
	case errcode.Busy:
		return types.StatusBusy
	case errcode.NotFound:
		return types.StatusError
	default:
		return types.StatusError
	}
}
