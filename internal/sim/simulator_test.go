package sim

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/binstar/internal/physics"
)

func testPair() (physics.Body, physics.Body) {
	a := *physics.NewBody(mgl64.Vec3{-10, 0, 0}, mgl64.Vec3{0, 0, -0.5}, 1e10, 5, color.RGBA{255, 0, 0, 255})
	b := *physics.NewBody(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{0, 0, 0.5}, 1e10, 5, color.RGBA{0, 0, 255, 255})
	return a, b
}

type countingMetric struct {
	n int
}

func (c *countingMetric) Name() string       { return "count" }
func (c *countingMetric) Observe(s Snapshot) { c.n++ }
func (c *countingMetric) Value() float64     { return float64(c.n) }
func (c *countingMetric) Reset()             { c.n = 0 }

type recorder struct {
	ticks []int
}

func (r *recorder) OnStep(s Snapshot) { r.ticks = append(r.ticks, s.Tick) }

func TestSimulatorRun(t *testing.T) {
	a, b := testPair()
	s := New()
	cfg := Config{Ticks: 100, SampleEvery: 1, G: physics.DefaultG, ValidateState: true}

	result, err := s.Run(context.Background(), a, b, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Snapshots) != 101 {
		t.Errorf("expected 101 snapshots, got %d", len(result.Snapshots))
	}
	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}

	want0, want1 := a, b
	for i := 0; i < 100; i++ {
		want0, want1 = physics.StepPair(want0, want1, physics.DefaultG)
	}
	final := result.Final()
	if final.Bodies[0].Position != want0.Position || final.Bodies[1].Position != want1.Position {
		t.Error("expected run to match repeated StepPair")
	}
}

func TestSimulatorSampling(t *testing.T) {
	a, b := testPair()
	cfg := Config{Ticks: 25, SampleEvery: 10, G: physics.DefaultG}

	result, err := New().Run(context.Background(), a, b, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []int{0, 10, 20, 25}
	if len(result.Snapshots) != len(want) {
		t.Fatalf("expected %d snapshots, got %d", len(want), len(result.Snapshots))
	}
	for i, tick := range want {
		if result.Snapshots[i].Tick != tick {
			t.Errorf("snapshot %d: expected tick %d, got %d", i, tick, result.Snapshots[i].Tick)
		}
	}
}

func TestSimulatorMetricsAndObservers(t *testing.T) {
	a, b := testPair()
	s := New()
	m := &countingMetric{}
	r := &recorder{}
	s.AddMetric(m)
	s.AddObserver(r)

	result, err := s.Run(context.Background(), a, b, Config{Ticks: 10, G: physics.DefaultG})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Metrics["count"] != 11 {
		t.Errorf("expected 11 observations, got %v", result.Metrics["count"])
	}
	if len(r.ticks) != 11 || r.ticks[0] != 0 || r.ticks[10] != 10 {
		t.Errorf("unexpected observed ticks %v", r.ticks)
	}
}

func TestSimulatorInvalidInput(t *testing.T) {
	a, b := testPair()
	s := New()

	if _, err := s.Run(context.Background(), a, b, Config{Ticks: 0, G: 1}); err == nil {
		t.Error("expected error for zero ticks")
	}
	if _, err := s.Run(context.Background(), a, b, Config{Ticks: 1, G: 0}); err == nil {
		t.Error("expected error for zero gravity")
	}

	b.Position = a.Position
	if _, err := s.Run(context.Background(), a, b, Config{Ticks: 1, G: 1}); !errors.Is(err, physics.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}

	a2, b2 := testPair()
	b2.Mass = -1
	if _, err := s.Run(context.Background(), a2, b2, Config{Ticks: 1, G: 1}); !errors.Is(err, physics.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
}

func TestSimulatorStopsOnNonFinite(t *testing.T) {
	// With G=1 and unit masses both bodies land exactly on the origin
	// after one tick; the next step divides zero by zero.
	a := physics.Body{Position: mgl64.Vec3{-1, 0, 0}, Velocity: mgl64.Vec3{0.75, 0, 0}, Mass: 1}
	b := physics.Body{Position: mgl64.Vec3{1, 0, 0}, Velocity: mgl64.Vec3{-0.75, 0, 0}, Mass: 1}

	result, err := New().Run(context.Background(), a, b, Config{Ticks: 50, G: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}

	var simErr *SimulationError
	if !errors.As(result.Errors[0], &simErr) {
		t.Fatalf("expected *SimulationError, got %T", result.Errors[0])
	}
	if simErr.Tick != 2 {
		t.Errorf("expected failure at tick 2, got %d", simErr.Tick)
	}
	if result.Final().Tick != 1 {
		t.Errorf("expected last good snapshot at tick 1, got %d", result.Final().Tick)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	a, b := testPair()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Run(ctx, a, b, Config{Ticks: 1000, G: physics.DefaultG})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithCallback(t *testing.T) {
	a, b := testPair()
	var ticks []int

	err := New().RunWithCallback(context.Background(), a, b, Config{Ticks: 5, G: physics.DefaultG}, func(s Snapshot) bool {
		ticks = append(ticks, s.Tick)
		return true
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(ticks) != 6 || ticks[5] != 5 {
		t.Errorf("unexpected ticks %v", ticks)
	}

	calls := 0
	err = New().RunWithCallback(context.Background(), a, b, Config{Ticks: 100, G: physics.DefaultG}, func(s Snapshot) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected callback to stop after 3 calls, got %d", calls)
	}
}

func TestEnsembleRun(t *testing.T) {
	a, b := testPair()
	jobs := make([]Job, 4)
	for i := range jobs {
		jobs[i] = Job{Name: "job", A: a, B: b, Config: Config{Ticks: 10 * (i + 1), G: physics.DefaultG}}
	}

	e := NewEnsemble(func() []Metric { return []Metric{&countingMetric{}} })
	results, err := e.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	for i, r := range results {
		want := float64(10*(i+1) + 1)
		if r.Metrics["count"] != want {
			t.Errorf("job %d: expected %v observations, got %v", i, want, r.Metrics["count"])
		}
	}
}

func TestEnsembleJobMetrics(t *testing.T) {
	a, b := testPair()
	own := []*countingMetric{{}, {}}
	jobs := []Job{
		{Name: "short", A: a, B: b, Config: Config{Ticks: 5, G: physics.DefaultG}, Metrics: []Metric{own[0]}},
		{Name: "long", A: a, B: b, Config: Config{Ticks: 12, G: physics.DefaultG}, Metrics: []Metric{own[1]}},
	}

	if _, err := NewEnsemble(nil).Run(context.Background(), jobs); err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if got := own[0].Value(); got != 6 {
		t.Errorf("expected 6 observations on the short job, got %v", got)
	}
	if got := own[1].Value(); got != 13 {
		t.Errorf("expected 13 observations on the long job, got %v", got)
	}
}

func TestEnsembleError(t *testing.T) {
	a, b := testPair()
	jobs := []Job{
		{Name: "ok", A: a, B: b, Config: Config{Ticks: 5, G: physics.DefaultG}},
		{Name: "bad", A: a, B: b, Config: Config{Ticks: 0, G: physics.DefaultG}},
	}

	if _, err := NewEnsemble(nil).Run(context.Background(), jobs); err == nil {
		t.Error("expected ensemble error")
	}
}

func BenchmarkSimulatorRun(b *testing.B) {
	x, y := testPair()
	s := New()
	cfg := Config{Ticks: 1000, SampleEvery: 100, G: physics.DefaultG}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.Run(context.Background(), x, y, cfg)
	}
}
