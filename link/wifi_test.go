package link

import (
	"errors"
	"testing"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

func TestWifiStationConnectWithoutRadio(t *testing.T) {
	w := NewWifiStation()
	w.ApplyCredentials(types.LinkCredentials{SSID: "greenhouse", Password: "hunter2"})

	if w.IsConnected() {
		t.Fatal("should not be connected before Connect")
	}
	if err := w.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !w.IsConnected() {
		t.Fatal("expected connected after Connect")
	}
	if w.ConnectedSSID() != "greenhouse" {
		t.Fatalf("got SSID %q", w.ConnectedSSID())
	}
}

func TestWifiStationApplyCredentialsResetsConnection(t *testing.T) {
	w := NewWifiStation()
	w.ApplyCredentials(types.LinkCredentials{SSID: "a", Password: "x"})
	_ = w.Connect()

	w.ApplyCredentials(types.LinkCredentials{SSID: "b", Password: "y"})
	if w.IsConnected() {
		t.Fatal("re-applying credentials should drop the connection")
	}
}

type failingRadio struct{}

func (failingRadio) Connect(ssid, password string) error { return errors.New("radio unavailable") }
func (failingRadio) Disconnect()                          {}

func TestWifiStationConnectPropagatesRadioError(t *testing.T) {
	w := NewWifiStation()
	w.Radio = failingRadio{}
	w.ApplyCredentials(types.LinkCredentials{SSID: "a", Password: "x"})

	if err := w.Connect(); err == nil {
		t.Fatal("expected radio error to propagate")
	}
	if w.IsConnected() {
		t.Fatal("should not be connected after a failed radio connect")
	}
}

func TestWifiStationDisconnect(t *testing.T) {
	w := NewWifiStation()
	w.ApplyCredentials(types.LinkCredentials{SSID: "a", Password: "x"})
	_ = w.Connect()
	w.Disconnect()
	if w.IsConnected() {
		t.Fatal("expected disconnected")
	}
	if w.ConnectedSSID() != "" {
		t.Fatalf("expected empty SSID when disconnected, got %q", w.ConnectedSSID())
	}
}
