package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/binstar/internal/physics"
	"github.com/san-kum/binstar/internal/sim"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Ticks       int                `json:"ticks"`
	SampleEvery int                `json:"sample_every"`
	Gravity     float64            `json:"gravity"`
	Masses      [2]float64         `json:"masses"`
	Radii       [2]float64         `json:"radii"`
	Colors      [2]color.RGBA      `json:"colors"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Errors      []string           `json:"errors,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

var stateHeader = []string{
	"tick",
	"a_x", "a_y", "a_z", "a_vx", "a_vy", "a_vz",
	"b_x", "b_y", "b_z", "b_vx", "b_vy", "b_vz",
}

// Save writes <id>/metadata.json and <id>/states.csv under the base
// directory and returns the run id.
func (s *Store) Save(name string, cfg sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Ticks:       cfg.Ticks,
		SampleEvery: cfg.SampleEvery,
		Gravity:     cfg.G,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	if len(result.Snapshots) > 0 {
		first := result.Snapshots[0]
		meta.Masses = [2]float64{first.Bodies[0].Mass, first.Bodies[1].Mass}
		meta.Radii = [2]float64{first.Bodies[0].Radius, first.Bodies[1].Radius}
		meta.Colors = [2]color.RGBA{first.Bodies[0].Color, first.Bodies[1].Color}
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := s.Init(); err != nil {
		return "", err
	}
	// Files go to a hidden staging directory that is renamed into place,
	// so a failed save leaves nothing for List to find.
	tmpDir, err := os.MkdirTemp(s.baseDir, "."+runID+"-")
	if err != nil {
		return "", err
	}
	committed := false
	defer func() {
		if !committed {
			os.RemoveAll(tmpDir)
		}
	}()

	if err := writeFile(filepath.Join(tmpDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeFile(filepath.Join(tmpDir, "states.csv"), func(w io.Writer) error {
		return WriteStates(w, result.Snapshots)
	}); err != nil {
		return "", fmt.Errorf("write states: %w", err)
	}

	if err := os.Chmod(tmpDir, 0755); err != nil {
		return "", err
	}
	if err := os.Rename(tmpDir, runDir); err != nil {
		return "", err
	}
	committed = true

	return runID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteStates writes snapshots as CSV rows with a header line.
func WriteStates(out io.Writer, snaps []sim.Snapshot) error {
	w := csv.NewWriter(out)

	if err := w.Write(stateHeader); err != nil {
		return err
	}

	for _, snap := range snaps {
		row := make([]string, 0, len(stateHeader))
		row = append(row, strconv.Itoa(snap.Tick))
		for _, b := range snap.Bodies {
			for _, v := range b.Position {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			for _, v := range b.Velocity {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads the snapshots of a run. Masses, radii and colors come from the
// run metadata; malformed rows are skipped.
func (s *Store) LoadStates(runID string) ([]sim.Snapshot, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Snapshot{}, nil
	}

	snaps := make([]sim.Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		snap, ok := parseRow(record)
		if !ok {
			continue
		}
		for i := range snap.Bodies {
			snap.Bodies[i].Mass = meta.Masses[i]
			snap.Bodies[i].Radius = meta.Radii[i]
			snap.Bodies[i].Color = meta.Colors[i]
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}

func parseRow(record []string) (sim.Snapshot, bool) {
	var snap sim.Snapshot
	if len(record) != len(stateHeader) {
		return snap, false
	}

	tick, err := strconv.Atoi(record[0])
	if err != nil {
		return snap, false
	}
	snap.Tick = tick

	vals := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return snap, false
		}
		vals[i] = v
	}

	for i := range snap.Bodies {
		off := i * 6
		snap.Bodies[i] = physics.Body{}
		copy(snap.Bodies[i].Position[:], vals[off:off+3])
		copy(snap.Bodies[i].Velocity[:], vals[off+3:off+6])
	}

	return snap, true
}
