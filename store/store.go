// Package store implements the time-indexed ring-buffer store (C4): a
// minute-granularity ring covering the last 24 hours and a
// day-granularity summary ring covering roughly the last 30 days. The
// store is the sole owner of both buffers (§3 "Ownership"); every other
// component only ever borrows read views or calls Insert.
//
// Concurrency follows §5: the store is read from the sampling, analysis,
// and link-host tasks. A single-writer/multi-reader mutex makes that
// synchronisation explicit, since a real-parallelism Go build cannot rely
// on the source's cooperative-scheduler assumption.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/errcode"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// MinuteCapacity is the fixed minute-ring depth: 24h * 60.
const MinuteCapacity = 1440

// DailyCapacity is the fixed daily-summary ring depth.
const DailyCapacity = 30

// Clock is the narrow view the store needs of C1, used only by
// GetRecentMinutes/cleanup to bound "now".
type Clock interface {
	Now() types.Timestamp
}

// Store is an owned value; there is no package-level singleton.
type Store struct {
	mu sync.RWMutex

	clock Clock

	minute   [MinuteCapacity]types.MinuteSlot
	writeIdx uint64 // monotonically advancing; index = writeIdx % MinuteCapacity

	daily [DailyCapacity]types.DailySummary
}

// New builds an empty Store bound to clock for "now"-relative queries.
func New(clock Clock) *Store {
	return &Store{clock: clock}
}

// findMinuteSlot returns the index of the valid slot matching ts at
// minute granularity, or -1. Callers must hold at least a read lock.
func (s *Store) findMinuteSlot(ts types.Timestamp) int {
	for i := range s.minute {
		if s.minute[i].Valid && s.minute[i].Sample.Timestamp.SameMinute(ts) {
			return i
		}
	}
	return -1
}

// Insert writes sample into the minute ring and recomputes the matching
// daily summary. A sample whose minute duplicates an already-stored
// minute overwrites that slot in place rather than duplicating it
// (invariant 1; the source's write-index-sequential insert does not do
// this — see DESIGN.md).
func (s *Store) Insert(sample types.Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.findMinuteSlot(sample.Timestamp); idx >= 0 {
		s.minute[idx] = types.MinuteSlot{Sample: sample, Valid: true}
	} else {
		idx := int(s.writeIdx % MinuteCapacity)
		s.minute[idx] = types.MinuteSlot{Sample: sample, Valid: true}
		s.writeIdx++
	}

	s.recomputeDailySummary(sample.Timestamp)
	return nil
}

// recomputeDailySummary scans the minute buffer for the date matching ts
// and rewrites that date's hashed daily slot. O(MinuteCapacity) per
// insert; acceptable at 1440 slots (§4.4).
func (s *Store) recomputeDailySummary(ts types.Timestamp) {
	date := types.DateOf(ts)

	var (
		count                     int
		sumTemp, sumHum, sumLux   float32
		sumSoil, sumSoilTemp      float32
		soilTempN                 int
		minTemp, maxTemp          float32
		minSoil, maxSoil          float32
		minSoilTemp, maxSoilTemp  float32
		first                     = true
	)

	for i := range s.minute {
		slot := s.minute[i]
		if !slot.Valid || types.DateOf(slot.Sample.Timestamp) != date {
			continue
		}
		sm := slot.Sample
		count++
		sumTemp += sm.AirTempC
		sumHum += sm.AirHumidityPct
		sumLux += sm.Lux
		sumSoil += sm.Soil.Moisture

		if first {
			minTemp, maxTemp = sm.AirTempC, sm.AirTempC
			minSoil, maxSoil = sm.Soil.Moisture, sm.Soil.Moisture
			first = false
		} else {
			if sm.AirTempC < minTemp {
				minTemp = sm.AirTempC
			}
			if sm.AirTempC > maxTemp {
				maxTemp = sm.AirTempC
			}
			if sm.Soil.Moisture < minSoil {
				minSoil = sm.Soil.Moisture
			}
			if sm.Soil.Moisture > maxSoil {
				maxSoil = sm.Soil.Moisture
			}
		}

		for p := 0; p < int(sm.Soil.TempN) && p < 4; p++ {
			t := sm.Soil.TempC[p]
			sumSoilTemp += t
			if soilTempN == 0 {
				minSoilTemp, maxSoilTemp = t, t
			} else {
				if t < minSoilTemp {
					minSoilTemp = t
				}
				if t > maxSoilTemp {
					maxSoilTemp = t
				}
			}
			soilTempN++
		}
	}

	if count == 0 {
		return
	}

	summary := types.DailySummary{
		Date:            date,
		SampleCount:     count,
		MinTempC:        minTemp,
		AvgTempC:        sumTemp / float32(count),
		MaxTempC:        maxTemp,
		AvgHumidityPct:  sumHum / float32(count),
		AvgLux:          sumLux / float32(count),
		MinSoilMoisture: minSoil,
		AvgSoilMoisture: sumSoil / float32(count),
		MaxSoilMoisture: maxSoil,
		Complete:        count >= types.CompleteSampleThreshold,
	}
	if soilTempN > 0 {
		summary.MinSoilTempC = minSoilTemp
		summary.AvgSoilTempC = sumSoilTemp / float32(soilTempN)
		summary.MaxSoilTempC = maxSoilTemp
	}

	hash := ts.DailyHash()
	// Overwrite-with-newer-date collision resolution: only refuse to
	// overwrite a slot that holds a *different, still-populated, newer*
	// date (§4.4). A slot already holding this same date is always
	// refreshed.
	existing := s.daily[hash]
	if existing.SampleCount == 0 || existing.Date == date || dateNewerOrEqual(date, existing.Date) {
		s.daily[hash] = summary
	}
}

// dateNewerOrEqual reports whether a is not older than b using a simple
// (year,month,day) lexical comparison; sufficient since both dates come
// from a clock that (outside of a >24h regression) only moves forward.
func dateNewerOrEqual(a, b types.DateKey) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	if a.Month != b.Month {
		return a.Month > b.Month
	}
	return a.Day >= b.Day
}

// GetLatestMinute returns the most recently written valid slot, i.e. the
// slot at (writeIdx-1) mod MinuteCapacity.
func (s *Store) GetLatestMinute() (types.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.writeIdx == 0 {
		return types.Sample{}, errcode.Wrap(errcode.NotFound, "store.GetLatestMinute", nil)
	}
	idx := int((s.writeIdx - 1) % MinuteCapacity)
	slot := s.minute[idx]
	if !slot.Valid {
		return types.Sample{}, errcode.Wrap(errcode.NotFound, "store.GetLatestMinute", nil)
	}
	return slot.Sample, nil
}

// GetAtMinute performs a linear scan for the slot matching ts at minute
// precision.
func (s *Store) GetAtMinute(ts types.Timestamp) (types.Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.findMinuteSlot(ts); idx >= 0 {
		return s.minute[idx].Sample, nil
	}
	return types.Sample{}, errcode.Wrap(errcode.NotFound, "store.GetAtMinute", nil)
}

// GetRecentMinutes returns every valid sample within the last `hours` of
// wall-clock time (1..24). Output order is not guaranteed (§4.4);
// out-of-order entries can occur after a clock regression, so callers
// that need ordering must sort.
func (s *Store) GetRecentMinutes(hours int) ([]types.Sample, error) {
	if hours < 1 || hours > 24 {
		return nil, errcode.Wrap(errcode.InvalidArgument, "store.GetRecentMinutes", nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.clock.Now()

	out := make([]types.Sample, 0, MinuteCapacity)
	for i := range s.minute {
		slot := s.minute[i]
		if !slot.Valid {
			continue
		}
		if withinHours(now, slot.Sample.Timestamp, hours) {
			out = append(out, slot.Sample)
		}
	}
	return out, nil
}

// withinHours reports whether ts is within the last `hours` hours of now,
// using calendar-minute arithmetic rather than the monotonic hint so that
// it means what §4.4 says ("now() - ts < hours") even across a fresh
// clock that has never advanced far in Mono terms.
func withinHours(now, ts types.Timestamp, hours int) bool {
	nowMin := minutesSinceEpochish(now)
	tsMin := minutesSinceEpochish(ts)
	delta := nowMin - tsMin
	return delta >= 0 && delta < int64(hours)*60
}

// minutesSinceEpochish converts t's calendar fields, read as UTC, to
// minutes since the Unix epoch. Month lengths and leap years are exact,
// so deltas stay correct across month and year boundaries.
func minutesSinceEpochish(t types.Timestamp) int64 {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Minute), 0, 0, time.UTC).Unix() / 60
}

// GetDailySummary returns the complete summary matching date, if any.
func (s *Store) GetDailySummary(date types.DateKey) (types.DailySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.daily {
		d := s.daily[i]
		if d.Complete && d.Date == date {
			return d, nil
		}
	}
	return types.DailySummary{}, errcode.Wrap(errcode.NotFound, "store.GetDailySummary", nil)
}

// GetRecentDailySummaries gathers every complete summary, sorts ascending
// by date, and returns the most recent n (1..30).
func (s *Store) GetRecentDailySummaries(n int) ([]types.DailySummary, error) {
	if n < 1 || n > DailyCapacity {
		return nil, errcode.Wrap(errcode.InvalidArgument, "store.GetRecentDailySummaries", nil)
	}

	s.mu.RLock()
	all := make([]types.DailySummary, 0, DailyCapacity)
	for i := range s.daily {
		if s.daily[i].Complete {
			all = append(all, s.daily[i])
		}
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return dateLess(all[i].Date, all[j].Date) })

	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func dateLess(a, b types.DateKey) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}

// GetStats reports buffer occupancy for the store-status characteristic.
func (s *Store) GetStats() types.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats types.StoreStats
	first := true
	for i := range s.minute {
		if !s.minute[i].Valid {
			continue
		}
		stats.MinuteValid++
		ts := s.minute[i].Sample.Timestamp
		if first {
			stats.OldestMinute, stats.NewestMinute = ts, ts
			first = false
			continue
		}
		if ts.Before(stats.OldestMinute) {
			stats.OldestMinute = ts
		}
		if stats.NewestMinute.Before(ts) {
			stats.NewestMinute = ts
		}
	}
	for i := range s.daily {
		if s.daily[i].Complete {
			stats.DailyValid++
		}
	}
	stats.MinuteWritten = s.writeIdx
	return stats
}

// Cleanup invalidates minute slots older than 24h and daily slots older
// than 30 days, relative to the clock's current time.
func (s *Store) Cleanup() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for i := range s.minute {
		if s.minute[i].Valid && !withinHours(now, s.minute[i].Sample.Timestamp, 24) {
			s.minute[i] = types.MinuteSlot{}
		}
	}
	for i := range s.daily {
		if s.daily[i].Complete && !withinDays(now, s.daily[i].Date, 30) {
			s.daily[i] = types.DailySummary{}
		}
	}
	return nil
}

func withinDays(now types.Timestamp, date types.DateKey, days int) bool {
	nowDays := minutesSinceEpochish(types.Timestamp{Year: now.Year, Month: now.Month, Day: now.Day}) / (24 * 60)
	dDays := minutesSinceEpochish(types.Timestamp{Year: date.Year, Month: date.Month, Day: date.Day}) / (24 * 60)
	delta := nowDays - dDays
	return delta >= 0 && delta < int64(days)
}

// ClearAll resets both buffers and indices.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.minute = [MinuteCapacity]types.MinuteSlot{}
	s.daily = [DailyCapacity]types.DailySummary{}
	s.writeIdx = 0
	return nil
}
