// Package types holds the wire and domain structs shared across the core:
// composite samples, the ring-store's two resolutions, the plant profile,
// link credentials, and the protocol's command/response frames.
package types

// Timestamp is a wall-clock reading with a monotonic ordering hint.
// Mono is a millisecond monotonic clock reading, populated even before the
// clock has been externally synchronised, so ordering comparisons remain
// meaningful while the calendar fields themselves are still epoch-relative.
// Unix is the same instant expressed as seconds since the Unix epoch, taken
// directly from the source time.Time rather than reconstructed from the
// calendar fields above, so it stays correct across the Clock's timezone.
type Timestamp struct {
	Year   int16
	Month  uint8 // 1..12
	Day    uint8 // 1..31
	Hour   uint8 // 0..23
	Minute uint8 // 0..59
	Second uint8 // 0..59
	Mono   int64
	Unix   int64
}

// SameMinute reports whether two timestamps address the same (y,m,d,h,mi)
// slot, i.e. minute-granularity equality.
func (t Timestamp) SameMinute(o Timestamp) bool {
	return t.Year == o.Year && t.Month == o.Month && t.Day == o.Day &&
		t.Hour == o.Hour && t.Minute == o.Minute
}

// SameDate reports whether two timestamps fall on the same calendar date.
func (t Timestamp) SameDate(o Timestamp) bool {
	return t.Year == o.Year && t.Month == o.Month && t.Day == o.Day
}

// DailyHash implements the source's "(month*31 + day) mod 30" daily slot
// hash. Dates more than 30 days apart can collide; documented, not fixed.
func (t Timestamp) DailyHash() int {
	return (int(t.Month)*31 + int(t.Day)) % 30
}

// Before reports t < o using the monotonic hint, not calendar fields, so
// comparisons stay correct across a clock regression.
func (t Timestamp) Before(o Timestamp) bool { return t.Mono < o.Mono }

// MoistureKind distinguishes the two soil-moisture probe families. Higher
// raw values mean drier soil for both kinds; only the unit differs.
type MoistureKind uint8

const (
	MoistureResistive  MoistureKind = iota // millivolts
	MoistureCapacitive                     // picofarads
)

// SoilData is the hardware-revision-dependent envelope for soil readings.
// It replaces the source's compile-time struct-layout variation with a
// single tagged shape: Channels/TempC/TempN are zero-valued when the
// hardware variant doesn't populate them, never omitted from the struct.
type SoilData struct {
	Kind     MoistureKind
	Moisture float32    // aggregate: raw mV, or mean of Channels for capacitive
	Channels [4]float32 // capacitive per-channel raw values; unused => 0
	TempC    [4]float32 // soil-temperature probes; unused slots => 0
	TempN    uint8      // number of populated TempC entries (0..4)
}

// Sample is one composite reading: the output of a single sampling tick.
type Sample struct {
	Timestamp      Timestamp
	Lux            float32
	AirTempC       float32
	AirHumidityPct float32
	Soil           SoilData
	Error          bool // at least one sub-sensor failed this tick
	DataVersion    uint8
}

// MinuteSlot is one entry of the 1440-deep minute ring.
type MinuteSlot struct {
	Sample Sample
	Valid  bool
}

// DateKey identifies a calendar date without time-of-day.
type DateKey struct {
	Year  int16
	Month uint8
	Day   uint8
}

// Equal reports whether k and o name the same calendar date.
func (k DateKey) Equal(o DateKey) bool { return k == o }

// DateOf extracts the DateKey from a Timestamp.
func DateOf(t Timestamp) DateKey { return DateKey{Year: t.Year, Month: t.Month, Day: t.Day} }

// CompleteSampleThreshold is the sample count (~20h at 60s/sample) at which
// a daily summary is marked Complete.
const CompleteSampleThreshold = 1200

// DailySummary is one entry of the 30-deep daily ring.
type DailySummary struct {
	Date DateKey

	SampleCount int

	MinTempC, AvgTempC, MaxTempC float32
	AvgHumidityPct               float32
	AvgLux                       float32

	MinSoilMoisture, AvgSoilMoisture, MaxSoilMoisture float32
	MinSoilTempC, AvgSoilTempC, MaxSoilTempC          float32

	Complete bool
}

// StoreStats is the status-characteristic payload reporting buffer
// occupancy; see the link adapter's store-status endpoint.
type StoreStats struct {
	MinuteValid   int
	MinuteWritten uint64 // monotonic write-index, for external diagnostics
	DailyValid    int
	OldestMinute  Timestamp
	NewestMinute  Timestamp
}
