package types

import (
	"encoding/binary"
	"fmt"
)

// ProfileWireSize is the packed little-endian size of PlantProfile on the
// link and in persistent storage: name[32] + 5*f32 + i32 = 56 bytes.
const ProfileWireSize = 32 + 4*4 + 4 + 4

// CredentialsWireSize is ssid[32] + password[64] = 96 bytes.
const CredentialsWireSize = 32 + 64

// PlantProfile holds the tunable thresholds that parameterise the decision
// engine. Name travels in a 32-byte zero-padded field on the wire; a
// longer name is truncated to 32 bytes, and a 32-byte name has no NUL
// terminator.
type PlantProfile struct {
	Name           string
	DryThreshold   float32 // moisture units; >= this reading is "dry"
	WetThreshold   float32 // moisture units; <= this reading is "wet"
	DryDaysTrigger int32   // consecutive dry days before NEEDS_WATERING
	TempHigh       float32 // deg C
	TempLow        float32 // deg C
	WateringDelta  float32 // moisture-unit drop that counts as a watering event
}

// MarshalBinary packs the profile into the 56-byte wire/persisted layout.
func (p PlantProfile) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ProfileWireSize)
	putFixedString(buf[0:32], p.Name)
	binary.LittleEndian.PutUint32(buf[32:36], f32bits(p.DryThreshold))
	binary.LittleEndian.PutUint32(buf[36:40], f32bits(p.WetThreshold))
	binary.LittleEndian.PutUint32(buf[40:44], uint32(p.DryDaysTrigger))
	binary.LittleEndian.PutUint32(buf[44:48], f32bits(p.TempHigh))
	binary.LittleEndian.PutUint32(buf[48:52], f32bits(p.TempLow))
	binary.LittleEndian.PutUint32(buf[52:56], f32bits(p.WateringDelta))
	return buf, nil
}

// UnmarshalBinary decodes a 56-byte buffer produced by MarshalBinary.
func (p *PlantProfile) UnmarshalBinary(buf []byte) error {
	if len(buf) != ProfileWireSize {
		return fmt.Errorf("plant profile: want %d bytes, got %d", ProfileWireSize, len(buf))
	}
	p.Name = getFixedString(buf[0:32])
	p.DryThreshold = f32frombits(binary.LittleEndian.Uint32(buf[32:36]))
	p.WetThreshold = f32frombits(binary.LittleEndian.Uint32(buf[36:40]))
	p.DryDaysTrigger = int32(binary.LittleEndian.Uint32(buf[40:44]))
	p.TempHigh = f32frombits(binary.LittleEndian.Uint32(buf[44:48]))
	p.TempLow = f32frombits(binary.LittleEndian.Uint32(buf[48:52]))
	p.WateringDelta = f32frombits(binary.LittleEndian.Uint32(buf[52:56]))
	return nil
}

// LinkCredentials is the persisted SSID-like identifier and secret for the
// short-range wireless link.
type LinkCredentials struct {
	SSID     string
	Password string
}

// MarshalBinary packs credentials into the 96-byte wire/persisted layout.
func (c LinkCredentials) MarshalBinary() ([]byte, error) {
	buf := make([]byte, CredentialsWireSize)
	putFixedString(buf[0:32], c.SSID)
	putFixedString(buf[32:96], c.Password)
	return buf, nil
}

// UnmarshalBinary decodes a 96-byte buffer produced by MarshalBinary.
func (c *LinkCredentials) UnmarshalBinary(buf []byte) error {
	if len(buf) != CredentialsWireSize {
		return fmt.Errorf("link credentials: want %d bytes, got %d", CredentialsWireSize, len(buf))
	}
	c.SSID = getFixedString(buf[0:32])
	c.Password = getFixedString(buf[32:96])
	return nil
}

// MaskedSecret returns the first three characters of the stored secret
// followed by the literal "***", or the empty string if the secret itself
// is empty. This is the only form GetLinkConfig may return.
func (c LinkCredentials) MaskedSecret() string {
	if c.Password == "" {
		return ""
	}
	n := 3
	if len(c.Password) < n {
		n = len(c.Password)
	}
	return c.Password[:n] + "***"
}

// putFixedString writes s into dst, zero-padding (or truncating) to len(dst).
func putFixedString(dst []byte, s string) {
	for i := range dst {
		dst[i] = 0
	}
	n := copy(dst, s)
	_ = n
}

// getFixedString reads a NUL-terminated (or fully-populated) string out of
// a fixed-width field.
func getFixedString(src []byte) string {
	n := 0
	for n < len(src) && src[n] != 0 {
		n++
	}
	return string(src[:n])
}
