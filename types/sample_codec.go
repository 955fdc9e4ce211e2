package types

import (
	"encoding/binary"
	"fmt"
)

// SampleWireSize is the GetSensorData response payload size (60 bytes):
// packed timestamp(7) + lux/air-temp/air-humidity(12) + soil kind(1) +
// aggregate moisture(4) + 4 capacitive channels(16) + 4 soil-temp
// probes(16) + populated-probe count(1) + error flag(1) + data
// version(1) + 1 pad byte.
const SampleWireSize = 60

// MarshalBinary packs the composite sample into its 60-byte wire layout.
func (s Sample) MarshalBinary() ([]byte, error) {
	buf := make([]byte, SampleWireSize)
	i := 0

	binary.LittleEndian.PutUint16(buf[i:i+2], uint16(s.Timestamp.Year))
	i += 2
	buf[i] = s.Timestamp.Month
	i++
	buf[i] = s.Timestamp.Day
	i++
	buf[i] = s.Timestamp.Hour
	i++
	buf[i] = s.Timestamp.Minute
	i++
	buf[i] = s.Timestamp.Second
	i++

	binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(s.Lux))
	i += 4
	binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(s.AirTempC))
	i += 4
	binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(s.AirHumidityPct))
	i += 4

	buf[i] = byte(s.Soil.Kind)
	i++
	binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(s.Soil.Moisture))
	i += 4
	for _, c := range s.Soil.Channels {
		binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(c))
		i += 4
	}
	for _, t := range s.Soil.TempC {
		binary.LittleEndian.PutUint32(buf[i:i+4], f32bits(t))
		i += 4
	}
	buf[i] = s.Soil.TempN
	i++

	buf[i] = boolByte(s.Error)
	i++
	buf[i] = s.DataVersion
	i++
	// buf[i] is a trailing pad byte, left zero.

	return buf, nil
}

// UnmarshalBinary decodes a 60-byte buffer produced by MarshalBinary.
func (s *Sample) UnmarshalBinary(buf []byte) error {
	if len(buf) != SampleWireSize {
		return fmt.Errorf("sample: want %d bytes, got %d", SampleWireSize, len(buf))
	}
	i := 0

	s.Timestamp.Year = int16(binary.LittleEndian.Uint16(buf[i : i+2]))
	i += 2
	s.Timestamp.Month = buf[i]
	i++
	s.Timestamp.Day = buf[i]
	i++
	s.Timestamp.Hour = buf[i]
	i++
	s.Timestamp.Minute = buf[i]
	i++
	s.Timestamp.Second = buf[i]
	i++

	s.Lux = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
	i += 4
	s.AirTempC = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
	i += 4
	s.AirHumidityPct = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
	i += 4

	s.Soil.Kind = MoistureKind(buf[i])
	i++
	s.Soil.Moisture = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
	i += 4
	for c := 0; c < 4; c++ {
		s.Soil.Channels[c] = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
		i += 4
	}
	for c := 0; c < 4; c++ {
		s.Soil.TempC[c] = f32frombits(binary.LittleEndian.Uint32(buf[i : i+4]))
		i += 4
	}
	s.Soil.TempN = buf[i]
	i++

	s.Error = buf[i] != 0
	i++
	s.DataVersion = buf[i]

	return nil
}
