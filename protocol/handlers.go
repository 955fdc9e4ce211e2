package protocol

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/errcode"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

func handleGetSensorData(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	sample, err := e.Store.GetLatestMinute()
	if err != nil {
		return nil, types.StatusError
	}
	atomic.AddUint32(&e.sensorReadCount, 1)
	data, err := sample.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return data, types.StatusSuccess
}

func handleGetSystemStatus(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	status := types.SystemStatus{
		UptimeSec:   uint32(e.uptime().Seconds()),
		HeapFreeB:   0, // no heap introspection on this target; reported by link host in future
		HeapMinB:    0,
		TaskCount:   uint32(runtime.NumGoroutine()),
		CurrentTime: uint32(e.Clock.Now().Unix),
		Linked:      e.Link != nil && e.Link.IsConnected(),
		Subscribed:  false,
	}
	data, err := status.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return data, types.StatusSuccess
}

func handleSetPlantProfile(e *Engine, data []byte) ([]byte, types.StatusCode) {
	var p types.PlantProfile
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, types.StatusInvalidParameter
	}
	// §4.7's command table: SetPlantProfile both persists and activates,
	// unlike SetLinkConfig which only applies live.
	if err := e.Config.SaveProfile(p); err != nil {
		return nil, codeToStatus(errcode.Of(err))
	}
	return nil, types.StatusSuccess
}

func handleSystemReset(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if e.ResetFn != nil {
		time.AfterFunc(500*time.Millisecond, e.ResetFn)
	}
	return nil, types.StatusSuccess
}

func handleGetDeviceInfo(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	info := types.DeviceInfo{
		Name:         e.DeviceName,
		FirmwareVer:  e.FirmwareVersion,
		HardwareVer:  e.HardwareVersion,
		UptimeSec:    uint32(e.uptime().Seconds()),
		ReadingCount: atomic.LoadUint32(&e.sensorReadCount),
	}
	data, err := info.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return data, types.StatusSuccess
}

func handleGetTimeData(e *Engine, data []byte) ([]byte, types.StatusCode) {
	var req types.CalendarRequest
	if err := req.UnmarshalBinary(data); err != nil {
		return nil, types.StatusInvalidParameter
	}
	sample, err := e.Store.GetAtMinute(req.ToTimestamp())
	if err != nil {
		return nil, types.StatusError
	}
	resp := types.CalendarResponse{
		CalendarRequest: req,
		AirTempC:        sample.AirTempC,
		AirHumidityPct:  sample.AirHumidityPct,
		Lux:             sample.Lux,
		SoilMoisture:    sample.Soil.Moisture,
	}
	out, err := resp.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return out, types.StatusSuccess
}

func handleGetSwitchStatus(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	var on byte
	if e.SwitchFn != nil && e.SwitchFn() {
		on = 1
	}
	return []byte{on}, types.StatusSuccess
}

func handleGetPlantProfile(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	p, err := e.Config.ActiveProfile()
	if err != nil {
		return nil, types.StatusError
	}
	data, err := p.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return data, types.StatusSuccess
}

func handleSetLinkConfig(e *Engine, data []byte) ([]byte, types.StatusCode) {
	var c types.LinkCredentials
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, types.StatusInvalidParameter
	}
	e.setActiveCredentials(c)
	if e.Link != nil {
		e.Link.ApplyCredentials(c)
	}
	return nil, types.StatusSuccess
}

func handleGetLinkConfig(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	c := e.activeCredentials()
	masked := types.LinkCredentials{SSID: c.SSID, Password: c.MaskedSecret()}
	data, err := masked.MarshalBinary()
	if err != nil {
		return nil, types.StatusError
	}
	return data, types.StatusSuccess
}

func handleLinkConnect(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if e.Link == nil {
		return nil, types.StatusNotSupported
	}
	creds := e.activeCredentials()
	if e.Link.IsConnected() && e.Link.ConnectedSSID() == creds.SSID {
		return nil, types.StatusSuccess
	}
	if err := e.Link.Connect(); err != nil {
		return nil, types.StatusError
	}
	return nil, types.StatusSuccess
}

func handleGetTimezone(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	return []byte(e.Clock.Timezone()), types.StatusSuccess
}

func handleSyncTime(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if e.TimeSyncFn != nil {
		go e.TimeSyncFn()
	}
	return nil, types.StatusSuccess
}

func handleLinkDisconnect(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if e.Link == nil {
		return nil, types.StatusNotSupported
	}
	e.Link.Disconnect()
	return nil, types.StatusSuccess
}

func handleSaveLinkConfig(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if err := e.Config.SaveLinkCredentials(e.activeCredentials()); err != nil {
		return nil, codeToStatus(errcode.Of(err))
	}
	return nil, types.StatusSuccess
}

func handleSavePlantProfile(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	p, err := e.Config.ActiveProfile()
	if err != nil {
		return nil, types.StatusError
	}
	if err := e.Config.SaveProfile(p); err != nil {
		return nil, codeToStatus(errcode.Of(err))
	}
	return nil, types.StatusSuccess
}

func handleSetTimezone(e *Engine, data []byte) ([]byte, types.StatusCode) {
	if len(data) < 1 || len(data) > 64 {
		return nil, types.StatusInvalidParameter
	}
	if err := e.Clock.SetTimezone(string(data)); err != nil {
		return nil, types.StatusInvalidParameter
	}
	return nil, types.StatusSuccess
}

func handleSaveTimezone(e *Engine, _ []byte) ([]byte, types.StatusCode) {
	if err := e.Config.SaveTimezone(e.Clock.Timezone()); err != nil {
		return nil, codeToStatus(errcode.Of(err))
	}
	return nil, types.StatusSuccess
}
