package config

import (
	"fmt"

	"github.com/andreyvit/tinyjson"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Embedded factory-default profiles, one per moisture-sensor hardware
// variant, keyed the way the teacher's embeddedConfigs map keys presets by
// device ID (services/config/defaultconfigs.go). Populated at build time;
// edited by hand here since there is no code-generation step for it yet.
const defaultProfileResistive = `{
  "name": "Succulent Plant",
  "dry_thr": 2500,
  "wet_thr": 1000,
  "dry_days": 3,
  "temp_high": 35,
  "temp_low": 10,
  "watering_delta": 300
}`

const defaultProfileCapacitive = `{
  "name": "Succulent Plant",
  "dry_thr": 2500,
  "wet_thr": 1000,
  "dry_days": 3,
  "temp_high": 35,
  "temp_low": 10,
  "watering_delta": 600
}`

var embeddedProfiles = map[types.MoistureKind][]byte{
	types.MoistureResistive:  []byte(defaultProfileResistive),
	types.MoistureCapacitive: []byte(defaultProfileCapacitive),
}

// factoryDefaultProfile synthesises the profile documented in §4.6: a
// succulent-tuned preset whose watering delta varies by hardware variant,
// since capacitive sensors read a wider raw range across the same wet/dry
// span than resistive ones.
func factoryDefaultProfile(kind types.MoistureKind) (types.PlantProfile, error) {
	raw, ok := embeddedProfiles[kind]
	if !ok {
		raw = embeddedProfiles[types.MoistureResistive]
	}

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return types.PlantProfile{}, fmt.Errorf("config: embedded profile is not a JSON object")
	}

	return types.PlantProfile{
		Name:          jsonString(m, "name"),
		DryThreshold:  jsonFloat32(m, "dry_thr"),
		WetThreshold:  jsonFloat32(m, "wet_thr"),
		DryDaysTrigger: int32(jsonFloat32(m, "dry_days")),
		TempHigh:      jsonFloat32(m, "temp_high"),
		TempLow:       jsonFloat32(m, "temp_low"),
		WateringDelta: jsonFloat32(m, "watering_delta"),
	}, nil
}

func jsonString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func jsonFloat32(m map[string]any, key string) float32 {
	f, _ := m[key].(float64)
	return float32(f)
}
