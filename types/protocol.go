package types

import (
	"encoding/binary"
	"fmt"
)

// CommandID selects a protocol-engine handler. Values are part of the
// compatibility surface and must not be renumbered.
type CommandID uint8

const (
	CmdGetSensorData  CommandID = 0x01
	CmdGetSystemStatus CommandID = 0x02
	CmdSetPlantProfile CommandID = 0x03
	CmdSystemReset     CommandID = 0x05
	CmdGetDeviceInfo   CommandID = 0x06
	CmdGetTimeData     CommandID = 0x0A
	CmdGetSwitchStatus CommandID = 0x0B
	CmdGetPlantProfile CommandID = 0x0C
	CmdSetLinkConfig   CommandID = 0x0D
	CmdGetLinkConfig   CommandID = 0x0E
	CmdLinkConnect     CommandID = 0x0F
	CmdGetTimezone     CommandID = 0x10
	CmdSyncTime        CommandID = 0x11
	CmdLinkDisconnect  CommandID = 0x12
	CmdSaveLinkConfig  CommandID = 0x13
	CmdSavePlantProfile CommandID = 0x14
	CmdSetTimezone     CommandID = 0x15
	CmdSaveTimezone    CommandID = 0x16
)

// StatusCode is the response frame's outcome taxonomy.
type StatusCode uint8

const (
	StatusSuccess          StatusCode = 0
	StatusError            StatusCode = 1
	StatusInvalidCommand   StatusCode = 2
	StatusInvalidParameter StatusCode = 3
	StatusBusy             StatusCode = 4
	StatusNotSupported     StatusCode = 5
)

// CommandHeaderSize is the fixed portion of a command frame:
// command_id(1) + sequence_num(1) + data_length(2).
const CommandHeaderSize = 4

// ResponseHeaderSize is the fixed portion of a response frame:
// response_id(1) + status_code(1) + sequence_num(1) + data_length(2).
const ResponseHeaderSize = 5

// ResponseBufferSize is the single fixed response scratch region. Every
// handler's encoded payload plus header must fit inside it.
const ResponseBufferSize = 256

// CommandFrame is a parsed command frame; Data aliases the caller's buffer
// and must not be retained past the call that produced it.
type CommandFrame struct {
	Command  CommandID
	Sequence uint8
	Data     []byte
}

// ParseCommandFrame validates and decodes a raw command frame per §4.7's
// universal validation rule: short frames and length mismatches are
// rejected before any handler sees them.
func ParseCommandFrame(raw []byte) (CommandFrame, error) {
	if len(raw) < CommandHeaderSize {
		return CommandFrame{}, fmt.Errorf("frame shorter than header (%d < %d)", len(raw), CommandHeaderSize)
	}
	dataLen := int(binary.LittleEndian.Uint16(raw[2:4]))
	if len(raw)-CommandHeaderSize != dataLen {
		return CommandFrame{}, fmt.Errorf("data_length %d disagrees with received %d bytes", dataLen, len(raw)-CommandHeaderSize)
	}
	return CommandFrame{
		Command:  CommandID(raw[0]),
		Sequence: raw[1],
		Data:     raw[CommandHeaderSize:],
	}, nil
}

// ResponseFrame is an outgoing response frame.
type ResponseFrame struct {
	ResponseTo CommandID
	Status     StatusCode
	Sequence   uint8
	Data       []byte
}

// Encode packs the response frame into its wire layout: header followed by
// Data. Callers supply dst sized ResponseBufferSize or larger.
func (r ResponseFrame) Encode(dst []byte) ([]byte, error) {
	total := ResponseHeaderSize + len(r.Data)
	if total > len(dst) {
		return nil, fmt.Errorf("response %d bytes exceeds buffer of %d", total, len(dst))
	}
	dst[0] = byte(r.ResponseTo)
	dst[1] = byte(r.Status)
	dst[2] = r.Sequence
	binary.LittleEndian.PutUint16(dst[3:5], uint16(len(r.Data)))
	copy(dst[5:total], r.Data)
	return dst[:total], nil
}

// SystemStatus is the 24-byte GetSystemStatus payload.
type SystemStatus struct {
	UptimeSec    uint32
	HeapFreeB    uint32
	HeapMinB     uint32
	TaskCount    uint32
	CurrentTime  uint32 // unix seconds
	Linked       bool
	Subscribed   bool
}

const SystemStatusWireSize = 4*5 + 1 + 1 + 2 // 24

func (s SystemStatus) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SystemStatusWireSize)
	binary.LittleEndian.PutUint32(buf[0:4], s.UptimeSec)
	binary.LittleEndian.PutUint32(buf[4:8], s.HeapFreeB)
	binary.LittleEndian.PutUint32(buf[8:12], s.HeapMinB)
	binary.LittleEndian.PutUint32(buf[12:16], s.TaskCount)
	binary.LittleEndian.PutUint32(buf[16:20], s.CurrentTime)
	buf[20] = boolByte(s.Linked)
	buf[21] = boolByte(s.Subscribed)
	// buf[22:24] padding, left zero
	return buf, nil
}

func (s *SystemStatus) UnmarshalBinary(buf []byte) error {
	if len(buf) != SystemStatusWireSize {
		return fmt.Errorf("system status: want %d bytes, got %d", SystemStatusWireSize, len(buf))
	}
	s.UptimeSec = binary.LittleEndian.Uint32(buf[0:4])
	s.HeapFreeB = binary.LittleEndian.Uint32(buf[4:8])
	s.HeapMinB = binary.LittleEndian.Uint32(buf[8:12])
	s.TaskCount = binary.LittleEndian.Uint32(buf[12:16])
	s.CurrentTime = binary.LittleEndian.Uint32(buf[16:20])
	s.Linked = buf[20] != 0
	s.Subscribed = buf[21] != 0
	return nil
}

// DeviceInfo is the 72-byte GetDeviceInfo payload.
type DeviceInfo struct {
	Name         string
	FirmwareVer  string
	HardwareVer  string
	UptimeSec    uint32
	ReadingCount uint32
}

const DeviceInfoWireSize = 32 + 16 + 16 + 4 + 4 // 72

func (d DeviceInfo) MarshalBinary() ([]byte, error) {
	buf := make([]byte, DeviceInfoWireSize)
	putFixedString(buf[0:32], d.Name)
	putFixedString(buf[32:48], d.FirmwareVer)
	putFixedString(buf[48:64], d.HardwareVer)
	binary.LittleEndian.PutUint32(buf[64:68], d.UptimeSec)
	binary.LittleEndian.PutUint32(buf[68:72], d.ReadingCount)
	return buf, nil
}

func (d *DeviceInfo) UnmarshalBinary(buf []byte) error {
	if len(buf) != DeviceInfoWireSize {
		return fmt.Errorf("device info: want %d bytes, got %d", DeviceInfoWireSize, len(buf))
	}
	d.Name = getFixedString(buf[0:32])
	d.FirmwareVer = getFixedString(buf[32:48])
	d.HardwareVer = getFixedString(buf[48:64])
	d.UptimeSec = binary.LittleEndian.Uint32(buf[64:68])
	d.ReadingCount = binary.LittleEndian.Uint32(buf[68:72])
	return nil
}

// CalendarRequest mirrors a packed POSIX struct tm: nine 32-bit integers,
// 36 bytes. Used as the GetTimeData request payload (minute precision;
// Sec/Weekday/YDay/IsDST are accepted but only Year..Minute participate in
// the minute-precision lookup).
type CalendarRequest struct {
	Sec, Min, Hour       int32
	MDay, Mon, Year      int32 // Year is the full year, not years-since-1900
	WDay, YDay, IsDST    int32
}

const CalendarWireSize = 4 * 9 // 36

func (c CalendarRequest) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CalendarWireSize)
	vals := [9]int32{c.Sec, c.Min, c.Hour, c.MDay, c.Mon, c.Year, c.WDay, c.YDay, c.IsDST}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf, nil
}

func (c *CalendarRequest) UnmarshalBinary(buf []byte) error {
	if len(buf) != CalendarWireSize {
		return fmt.Errorf("calendar request: want %d bytes, got %d", CalendarWireSize, len(buf))
	}
	var vals [9]int32
	for i := range vals {
		vals[i] = int32(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	c.Sec, c.Min, c.Hour = vals[0], vals[1], vals[2]
	c.MDay, c.Mon, c.Year = vals[3], vals[4], vals[5]
	c.WDay, c.YDay, c.IsDST = vals[6], vals[7], vals[8]
	return nil
}

// ToTimestamp narrows a calendar request to minute-precision lookup key.
func (c CalendarRequest) ToTimestamp() Timestamp {
	return Timestamp{
		Year:   int16(c.Year),
		Month:  uint8(c.Mon),
		Day:    uint8(c.MDay),
		Hour:   uint8(c.Hour),
		Minute: uint8(c.Min),
		Second: uint8(c.Sec),
	}
}

// CalendarResponse is the GetTimeData response: the calendar struct
// followed by four f32 fields (52 bytes total).
type CalendarResponse struct {
	CalendarRequest
	AirTempC       float32
	AirHumidityPct float32
	Lux            float32
	SoilMoisture   float32
}

const CalendarResponseWireSize = CalendarWireSize + 4*4 // 52

func (c CalendarResponse) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CalendarResponseWireSize)
	head, _ := c.CalendarRequest.MarshalBinary()
	copy(buf[0:CalendarWireSize], head)
	binary.LittleEndian.PutUint32(buf[36:40], f32bits(c.AirTempC))
	binary.LittleEndian.PutUint32(buf[40:44], f32bits(c.AirHumidityPct))
	binary.LittleEndian.PutUint32(buf[44:48], f32bits(c.Lux))
	binary.LittleEndian.PutUint32(buf[48:52], f32bits(c.SoilMoisture))
	return buf, nil
}

func (c *CalendarResponse) UnmarshalBinary(buf []byte) error {
	if len(buf) != CalendarResponseWireSize {
		return fmt.Errorf("calendar response: want %d bytes, got %d", CalendarResponseWireSize, len(buf))
	}
	if err := c.CalendarRequest.UnmarshalBinary(buf[0:CalendarWireSize]); err != nil {
		return err
	}
	c.AirTempC = f32frombits(binary.LittleEndian.Uint32(buf[36:40]))
	c.AirHumidityPct = f32frombits(binary.LittleEndian.Uint32(buf[40:44]))
	c.Lux = f32frombits(binary.LittleEndian.Uint32(buf[44:48]))
	c.SoilMoisture = f32frombits(binary.LittleEndian.Uint32(buf[48:52]))
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
