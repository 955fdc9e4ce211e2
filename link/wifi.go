package link

import (
	"sync"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// WifiStation implements protocol.Link. It tracks connection state and
// applied credentials; actual radio control belongs to a board-specific
// driver external to this module (the same boundary that excludes
// chip-register drivers and the physical UART transport from scope —
// this module owns the state machine, not the antenna).
type WifiStation struct {
	mu        sync.Mutex
	creds     types.LinkCredentials
	connected bool

	// Radio is the optional real network driver. When nil, Connect
	// transitions to connected immediately, which is sufficient for
	// hosted tests.
	Radio interface {
		Connect(ssid, password string) error
		Disconnect()
	}
}

func NewWifiStation() *WifiStation { return &WifiStation{} }

func (w *WifiStation) ApplyCredentials(creds types.LinkCredentials) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.creds = creds
	w.connected = false
}

func (w *WifiStation) Connect() error {
	w.mu.Lock()
	creds := w.creds
	w.mu.Unlock()

	if w.Radio != nil {
		if err := w.Radio.Connect(creds.SSID, creds.Password); err != nil {
			return err
		}
	}

	w.mu.Lock()
	w.connected = true
	w.mu.Unlock()
	return nil
}

func (w *WifiStation) Disconnect() {
	if w.Radio != nil {
		w.Radio.Disconnect()
	}
	w.mu.Lock()
	w.connected = false
	w.mu.Unlock()
}

func (w *WifiStation) IsConnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *WifiStation) ConnectedSSID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return ""
	}
	return w.creds.SSID
}
