// Package link implements the link adapter (C8): a Bluetooth Low Energy
// GATT server exposing the five logical endpoints over which the
// protocol engine (C7) is driven, plus the WiFi station abstraction that
// backs the protocol table's SetLinkConfig/LinkConnect family (§4.7,
// 0x0D-0x13) — a second, independent link used for external time sync
// and future telemetry, not the BLE control channel itself.
package link

import (
	"tinygo.org/x/bluetooth"

	"github.com/rx178nwj/SoilMonitorRev2/bus"
	"github.com/rx178nwj/SoilMonitorRev2/protocol"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Adapter owns the GATT service and routes command-characteristic writes
// into the protocol engine, writing the response and sensor-data
// characteristics and publishing the same payloads on the bus.
type Adapter struct {
	adapter *bluetooth.Adapter
	engine  *protocol.Engine
	conn    *bus.Connection

	latestSampleChar bluetooth.Characteristic
	storeStatusChar  bluetooth.Characteristic
	commandChar      bluetooth.Characteristic
	responseChar     bluetooth.Characteristic
	bulkTransferChar bluetooth.Characteristic
}

// New builds an Adapter bound to a protocol engine and a bus connection
// used for tick and response notifications.
func New(btAdapter *bluetooth.Adapter, engine *protocol.Engine, conn *bus.Connection) *Adapter {
	return &Adapter{adapter: btAdapter, engine: engine, conn: conn}
}

// mustParseUUID parses a UUID literal, panicking on error. Used only for
// the fixed characteristic/service UUID constants below, which are always
// valid.
func mustParseUUID(s string) bluetooth.UUID {
	uuid, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return uuid
}

// Start registers the GATT service and begins advertising under the
// device-name format §6 fixes: PlantMonitor_<HWVER2>_<LAST4HEXOFMAC>.
func (a *Adapter) Start(hwVersion2Digit string, macLast4Hex string) error {
	if err := a.adapter.Enable(); err != nil {
		return err
	}

	service := bluetooth.Service{
		UUID: mustParseUUID(ServiceUUID),
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &a.latestSampleChar,
				UUID:   mustParseUUID(LatestSampleCharUUID),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
			{
				Handle: &a.storeStatusChar,
				UUID:   mustParseUUID(StoreStatusCharUUID),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicWritePermission,
			},
			{
				Handle:     &a.commandChar,
				UUID:       mustParseUUID(CommandCharUUID),
				Flags:      bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: a.onCommandWrite,
			},
			{
				Handle: &a.responseChar,
				UUID:   mustParseUUID(ResponseCharUUID),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicNotifyPermission,
			},
			{
				Handle: &a.bulkTransferChar,
				UUID:   mustParseUUID(BulkTransferCharUUID),
				Flags:  bluetooth.CharacteristicReadPermission | bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicNotifyPermission,
			},
		},
	}
	if err := a.adapter.AddService(&service); err != nil {
		return err
	}

	name := "PlantMonitor_" + hwVersion2Digit + "_" + macLast4Hex
	adv := a.adapter.DefaultAdvertisement()
	if err := adv.Configure(bluetooth.AdvertisementOptions{LocalName: name}); err != nil {
		return err
	}
	return adv.Start()
}

// onCommandWrite drives the protocol engine from a command-characteristic
// write and pushes the encoded response onto the response characteristic,
// notifying subscribers (§4.7 "every response is delivered as a
// notification" when subscribed).
func (a *Adapter) onCommandWrite(client bluetooth.Connection, offset int, value []byte) {
	resp := a.engine.HandleCommand(value)
	if resp == nil {
		return
	}
	_, _ = a.responseChar.Write(resp)
	if a.conn != nil {
		a.conn.Publish(&bus.Message{Topic: bus.ResponseTopic, Payload: resp})
	}
}

// PublishSample updates the latest-sample characteristic and publishes
// the sample on bus.SampleTopic; the link-host task calls it for each
// sample the analysis task hands over.
func (a *Adapter) PublishSample(sample types.Sample) {
	data, err := sample.MarshalBinary()
	if err != nil {
		return
	}
	_, _ = a.latestSampleChar.Write(data)
	if a.conn != nil {
		a.conn.Publish(&bus.Message{Topic: bus.SampleTopic, Payload: sample})
	}
}

// PublishStoreStatus updates the store-status characteristic.
func (a *Adapter) PublishStoreStatus(stats types.StoreStats) {
	_, _ = a.storeStatusChar.Write(encodeStoreStats(stats))
}

func encodeStoreStats(s types.StoreStats) []byte {
	buf := make([]byte, 20)
	putUint32(buf[0:4], uint32(s.MinuteValid))
	putUint32(buf[4:8], uint32(s.MinuteWritten))
	putUint32(buf[8:12], uint32(s.DailyValid))
	putUint32(buf[12:16], uint32(s.OldestMinute.Mono))
	putUint32(buf[16:20], uint32(s.NewestMinute.Mono))
	return buf
}

func putUint32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}
