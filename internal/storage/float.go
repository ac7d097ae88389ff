package storage

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Float is a float64 that survives JSON when it is not finite: NaN and
// the infinities are written as the strings "NaN", "+Inf" and "-Inf".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type Vec [3]Float

func toVec(v mgl64.Vec3) Vec { return Vec{Float(v[0]), Float(v[1]), Float(v[2])} }

func toFloatMap(m map[string]float64) map[string]Float {
	if m == nil {
		return nil
	}
	out := make(map[string]Float, len(m))
	for k, v := range m {
		out[k] = Float(v)
	}
	return out
}

func fromFloatMap(m map[string]Float) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

type metadataAlias RunMetadata

// MarshalJSON keeps a degenerate run's NaN or infinite drift and metrics.
func (m RunMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		metadataAlias
		EnergyDrift Float            `json:"energy_drift"`
		Metrics     map[string]Float `json:"metrics"`
	}{
		metadataAlias: metadataAlias(m),
		EnergyDrift:   Float(m.EnergyDrift),
		Metrics:       toFloatMap(m.Metrics),
	})
}

func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	aux := struct {
		*metadataAlias
		EnergyDrift Float            `json:"energy_drift"`
		Metrics     map[string]Float `json:"metrics"`
	}{metadataAlias: (*metadataAlias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.EnergyDrift = float64(aux.EnergyDrift)
	m.Metrics = fromFloatMap(aux.Metrics)
	return nil
}
