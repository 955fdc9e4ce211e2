// Package config implements the profile & config store (C6): persisted
// plant profile, link credentials, and timezone, backed by a KVStore
// abstraction over flash. Missing or corrupt blobs are handled per field
// per §4.6 — auto-recovered for the profile, surfaced as NotFound (or
// SizeMismatch for a wrong-size blob) for credentials.
package config

import (
	"sync"

	"github.com/rx178nwj/SoilMonitorRev2/errcode"
	"github.com/rx178nwj/SoilMonitorRev2/types"
)

const (
	keyProfile     = "profile"
	keyCredentials = "link_credentials"
	keyTimezone    = "timezone"
)

// DefaultTimezone is returned by LoadTimezone when none has been saved.
const DefaultTimezone = "UTC"

// Store is the owned config-service value; there is no package-level
// singleton (mirrors the scheduler's and store's ownership style).
type Store struct {
	mu sync.RWMutex

	kv     KVStore
	hwKind types.MoistureKind

	active types.PlantProfile
	loaded bool
}

// New constructs a Store. hwKind selects which factory-default profile is
// synthesised on first load.
func New(kv KVStore, hwKind types.MoistureKind) *Store {
	return &Store{kv: kv, hwKind: hwKind}
}

// LoadProfile returns the persisted profile, synthesising and persisting
// a factory default if the blob is missing, corrupt, or the wrong size.
func (s *Store) LoadProfile() (types.PlantProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.kv.Get(keyProfile)
	if ok && len(raw) == types.ProfileWireSize {
		var p types.PlantProfile
		if err := p.UnmarshalBinary(raw); err == nil {
			s.active = p
			s.loaded = true
			return p, nil
		}
	}

	def, err := factoryDefaultProfile(s.hwKind)
	if err != nil {
		return types.PlantProfile{}, errcode.Wrap(errcode.IoError, "config.LoadProfile", err)
	}
	if err := s.saveProfileLocked(def); err != nil {
		return types.PlantProfile{}, err
	}
	s.active = def
	s.loaded = true
	return def, nil
}

// SaveProfile persists profile atomically: a marshal failure never
// touches the stored blob.
func (s *Store) SaveProfile(profile types.PlantProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveProfileLocked(profile)
}

func (s *Store) saveProfileLocked(profile types.PlantProfile) error {
	raw, err := profile.MarshalBinary()
	if err != nil {
		return errcode.Wrap(errcode.InvalidArgument, "config.SaveProfile", err)
	}
	if err := s.kv.Set(keyProfile, raw); err != nil {
		return errcode.Wrap(errcode.IoError, "config.SaveProfile", err)
	}
	s.active = profile
	s.loaded = true
	return nil
}

// UpdateActiveProfile updates the in-memory copy only, without a flash
// write; SavePlantProfile (C7 0x14) is what persists it later.
func (s *Store) UpdateActiveProfile(profile types.PlantProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = profile
	s.loaded = true
}

// ActiveProfile returns the in-memory profile, loading it first if no
// call to LoadProfile has happened yet.
func (s *Store) ActiveProfile() (types.PlantProfile, error) {
	s.mu.RLock()
	loaded, active := s.loaded, s.active
	s.mu.RUnlock()
	if loaded {
		return active, nil
	}
	return s.LoadProfile()
}

// LoadLinkCredentials returns the persisted credentials. Unlike the
// profile, a missing or corrupt blob is not auto-defaulted: NotFound
// means "run provisioning", not "use factory settings", and a blob of the
// wrong size is reported as SizeMismatch.
func (s *Store) LoadLinkCredentials() (types.LinkCredentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.kv.Get(keyCredentials)
	if !ok {
		return types.LinkCredentials{}, errcode.Wrap(errcode.NotFound, "config.LoadLinkCredentials", nil)
	}
	if len(raw) != types.CredentialsWireSize {
		return types.LinkCredentials{}, errcode.Wrap(errcode.SizeMismatch, "config.LoadLinkCredentials", nil)
	}
	var c types.LinkCredentials
	if err := c.UnmarshalBinary(raw); err != nil {
		return types.LinkCredentials{}, errcode.Wrap(errcode.NotFound, "config.LoadLinkCredentials", err)
	}
	return c, nil
}

// SaveLinkCredentials persists credentials atomically.
func (s *Store) SaveLinkCredentials(creds types.LinkCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := creds.MarshalBinary()
	if err != nil {
		return errcode.Wrap(errcode.InvalidArgument, "config.SaveLinkCredentials", err)
	}
	if err := s.kv.Set(keyCredentials, raw); err != nil {
		return errcode.Wrap(errcode.IoError, "config.SaveLinkCredentials", err)
	}
	return nil
}

// LoadTimezone returns the persisted timezone string, or DefaultTimezone
// if none has been saved.
func (s *Store) LoadTimezone() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.kv.Get(keyTimezone)
	if !ok || len(raw) == 0 {
		return DefaultTimezone, nil
	}
	return string(raw), nil
}

// SaveTimezone persists the timezone string.
func (s *Store) SaveTimezone(tz string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(keyTimezone, []byte(tz)); err != nil {
		return errcode.Wrap(errcode.IoError, "config.SaveTimezone", err)
	}
	return nil
}
