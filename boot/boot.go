// Package boot wires the nine components into the three long-running
// tasks §5 describes: a sampling task that reads sensors, an analysis
// task that classifies the plant's condition and drives the indicator,
// and a link-host task that serves the BLE GATT interface and publishes
// results to it. This mirrors the teacher's cmd/pico-hal-main split
// between component construction (New) and the running loop (Run),
// keeping main() itself a thin bring-up shim.
package boot

import (
	"context"
	"sort"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/rx178nwj/SoilMonitorRev2/bus"
	"github.com/rx178nwj/SoilMonitorRev2/clock"
	"github.com/rx178nwj/SoilMonitorRev2/config"
	"github.com/rx178nwj/SoilMonitorRev2/decision"
	"github.com/rx178nwj/SoilMonitorRev2/indicator"
	"github.com/rx178nwj/SoilMonitorRev2/link"
	"github.com/rx178nwj/SoilMonitorRev2/protocol"
	"github.com/rx178nwj/SoilMonitorRev2/scheduler"
	"github.com/rx178nwj/SoilMonitorRev2/store"
	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/fmtx"
	"github.com/rx178nwj/SoilMonitorRev2/x/ramp"
	"github.com/rx178nwj/SoilMonitorRev2/x/strx"
)

// defaultDeviceName is substituted for an empty Options.DeviceName.
const defaultDeviceName = "PlantMonitor"

// sampleQueueDepth and publishQueueDepth bound the inter-task channels.
// A full queue means the downstream task is behind; the upstream task
// drops rather than blocks, the same coalesce-away policy the scheduler
// already applies to overlapping ticks (§4.3).
const (
	sampleQueueDepth  = 4
	publishQueueDepth = 4
)

// linkHostInterval paces the store-status heartbeat notification and the
// ring store's retention cleanup sweep, which therefore runs every five
// minutes.
const linkHostInterval = 5 * time.Minute

// Options collects every external collaborator System needs. Fields left
// nil/zero take a safe host-testable default where one exists.
type Options struct {
	HardwareVariant types.HardwareVariant
	Adapters        scheduler.AdapterSet
	KV              config.KVStore
	Strip           indicator.Strip
	IndicatorScheme indicator.Scheme
	IndicatorTick   ramp.Tick
	BTAdapter       *bluetooth.Adapter

	DeviceName      string
	FirmwareVersion string

	ResetFn    func()
	TimeSyncFn func()
	SwitchFn   func() bool
}

// System owns every long-lived component. There is no package-level
// singleton; main constructs exactly one (§9 rearchitecture note, same
// discipline as Scheduler and Store).
type System struct {
	Clock     *clock.Clock
	Store     *store.Store
	Config    *config.Store
	Decision  *decision.Engine
	Indicator *indicator.Driver
	Scheduler *scheduler.Scheduler
	Protocol  *protocol.Engine
	Link      *link.Adapter
	Wifi      *link.WifiStation

	conn *bus.Connection

	sampleCh  chan types.Sample
	publishCh chan publishJob
}

type publishJob struct {
	sample types.Sample
	stats  types.StoreStats
}

// New constructs every component and wires their cross-dependencies, but
// starts nothing; call Run to begin the three tasks.
func New(b *bus.Bus, bootAt time.Time, opts Options) *System {
	clk := clock.New()
	st := store.New(clk)
	cfgStore := config.New(opts.KV, opts.HardwareVariant.Moisture)
	dec := decision.New()
	ind := indicator.New(opts.Strip, opts.IndicatorScheme, opts.IndicatorTick)
	wifi := link.NewWifiStation()
	conn := b.NewConnection("plant-monitor")

	eng := protocol.New(bootAt)
	eng.Store = st
	eng.Config = cfgStore
	eng.Clock = clk
	eng.Link = wifi
	eng.DeviceName = strx.Coalesce(opts.DeviceName, defaultDeviceName)
	eng.FirmwareVersion = opts.FirmwareVersion
	eng.HardwareVersion = hardwareVersionString(opts.HardwareVariant.HWVersion)
	eng.ResetFn = opts.ResetFn
	eng.TimeSyncFn = opts.TimeSyncFn
	eng.SwitchFn = opts.SwitchFn

	la := link.New(opts.BTAdapter, eng, conn)
	sched := scheduler.New(opts.Adapters, clk, st)

	sys := &System{
		Clock:     clk,
		Store:     st,
		Config:    cfgStore,
		Decision:  dec,
		Indicator: ind,
		Scheduler: sched,
		Protocol:  eng,
		Link:      la,
		Wifi:      wifi,
		conn:      conn,
		sampleCh:  make(chan types.Sample, sampleQueueDepth),
		publishCh: make(chan publishJob, publishQueueDepth),
	}
	sched.OnTick(sys.onTick)
	return sys
}

// onTick is the scheduler's TickObserver: the sampling task's only
// contact with the analysis task. A full queue drops the sample rather
// than blocking the sampling task's next tick.
func (s *System) onTick(sample types.Sample) {
	select {
	case s.sampleCh <- sample:
	default:
	}
}

// Run starts the sampling, analysis, and link-host tasks and blocks until
// ctx is cancelled. hwVersion2Digit and macLast4Hex feed the BLE
// advertisement name (§6).
func (s *System) Run(ctx context.Context, hwVersion2Digit, macLast4Hex string) error {
	go s.Scheduler.Run(ctx)
	go s.analysisTask(ctx)

	if err := s.Link.Start(hwVersion2Digit, macLast4Hex); err != nil {
		return err
	}

	s.linkHostTask(ctx)
	return nil
}

// analysisTask classifies each sample the sampling task produces and
// drives the indicator, handing the result to the link-host task rather
// than touching the BLE characteristics itself.
func (s *System) analysisTask(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sample := <-s.sampleCh:
			s.analyze(sample)
		}
	}
}

func (s *System) analyze(sample types.Sample) {
	profile, err := s.Config.ActiveProfile()
	if err != nil {
		return
	}

	recentMinutes, _ := s.Store.GetRecentMinutes(1)
	sort.Slice(recentMinutes, func(i, j int) bool {
		return recentMinutes[i].Timestamp.Before(recentMinutes[j].Timestamp)
	})

	dailyWindow := int(profile.DryDaysTrigger)
	if dailyWindow <= 0 {
		dailyWindow = 1
	}
	recentDailies, _ := s.Store.GetRecentDailySummaries(dailyWindow)

	condition := s.Decision.Classify(profile, sample, recentMinutes, recentDailies)
	_ = s.Indicator.Show(condition, profile, sample.Soil.Moisture)
	fmtx.Printf("[analysis] condition=%s soil=%d airC=%d\n", condition.String(), int32(sample.Soil.Moisture), int32(sample.AirTempC))

	job := publishJob{sample: sample, stats: s.Store.GetStats()}
	select {
	case s.publishCh <- job:
	default:
	}
}

// linkHostTask owns every write to the BLE characteristics: sample and
// store-status notifications from the analysis task's output, plus a
// periodic heartbeat that also drives the ring store's retention sweep.
func (s *System) linkHostTask(ctx context.Context) {
	heartbeat := time.NewTicker(linkHostInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.publishCh:
			s.Link.PublishSample(job.sample)
			s.Link.PublishStoreStatus(job.stats)
		case <-heartbeat.C:
			_ = s.Store.Cleanup()
			s.Link.PublishStoreStatus(s.Store.GetStats())
		}
	}
}

func hardwareVersionString(twoDigit uint8) string {
	major := twoDigit / 10
	minor := twoDigit % 10
	buf := [3]byte{'0' + byte(major)%10, '.', '0' + byte(minor)%10}
	return string(buf[:])
}
