package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

type BodyTrack struct {
	Mass       float64 `json:"mass"`
	Positions  []Vec   `json:"positions"`
	Velocities []Vec   `json:"velocities"`
}

type ExportData struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Gravity     float64          `json:"gravity"`
	Steps       int              `json:"steps"`
	EnergyDrift Float            `json:"energy_drift"`
	Ticks       []int            `json:"ticks"`
	Bodies      [2]BodyTrack     `json:"bodies"`
	Separation  []Float          `json:"separation"`
	Metrics     map[string]Float `json:"metrics"`
}

func NewExportData(meta *RunMetadata, snaps []sim.Snapshot) ExportData {
	data := ExportData{
		ID:          meta.ID,
		Name:        meta.Name,
		Gravity:     meta.Gravity,
		Steps:       meta.Steps,
		EnergyDrift: Float(meta.EnergyDrift),
		Ticks:       make([]int, len(snaps)),
		Separation:  make([]Float, len(snaps)),
		Metrics:     toFloatMap(meta.Metrics),
	}

	for i := range data.Bodies {
		data.Bodies[i] = BodyTrack{
			Mass:       meta.Masses[i],
			Positions:  make([]Vec, len(snaps)),
			Velocities: make([]Vec, len(snaps)),
		}
	}

	for i, s := range snaps {
		data.Ticks[i] = s.Tick
		data.Separation[i] = Float(physics.Separation(s.Bodies[0], s.Bodies[1]))
		for j, b := range s.Bodies {
			data.Bodies[j].Positions[i] = toVec(b.Position)
			data.Bodies[j].Velocities[i] = toVec(b.Velocity)
		}
	}

	return data
}

func ExportJSON(path string, meta *RunMetadata, snaps []sim.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, snaps)
}

func WriteJSON(w io.Writer, meta *RunMetadata, snaps []sim.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, snaps))
}
