package protocol

import "github.com/rx178nwj/SoilMonitorRev2/types"

// Store is the narrow view the protocol engine needs of the ring store
// (C4). Kept small the way the teacher scopes cross-component interfaces.
type Store interface {
	GetLatestMinute() (types.Sample, error)
	GetAtMinute(ts types.Timestamp) (types.Sample, error)
	GetRecentMinutes(hours int) ([]types.Sample, error)
	GetRecentDailySummaries(n int) ([]types.DailySummary, error)
	GetStats() types.StoreStats
}

// Config is the narrow view of the profile & config store (C6).
type Config interface {
	LoadProfile() (types.PlantProfile, error)
	SaveProfile(types.PlantProfile) error
	UpdateActiveProfile(types.PlantProfile)
	ActiveProfile() (types.PlantProfile, error)
	LoadLinkCredentials() (types.LinkCredentials, error)
	SaveLinkCredentials(types.LinkCredentials) error
	LoadTimezone() (string, error)
	SaveTimezone(tz string) error
}

// Clock is the narrow view of C1 the protocol engine depends on.
type Clock interface {
	Now() types.Timestamp
	SetTimezone(tz string) error
	Timezone() string
}

// Link is the narrow view of the link adapter (C8) that commands
// 0x0D-0x13 operate on. Applying credentials is separate from persisting
// them (0x0D vs 0x13), matching the command table's split.
type Link interface {
	ApplyCredentials(creds types.LinkCredentials)
	Connect() error
	Disconnect()
	IsConnected() bool
	ConnectedSSID() string
}
