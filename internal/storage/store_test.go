package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/subsim/internal/config"
	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/sim"
)

func testResult() *sim.Result {
	readings := func(drag float64) []physics.Reading {
		return []physics.Reading{
			{Name: "Propellor", Kind: physics.TorqueReading, Value: mgl64.Vec3{20, 0, 0}},
			{Name: "Drag", Kind: physics.ForceReading, Value: mgl64.Vec3{-drag, 0, 0}},
			{Name: "north fin lift", Kind: physics.ForceReading, Value: mgl64.Vec3{0, 0.125, 0}},
		}
	}
	return &sim.Result{
		Samples: []sim.Sample{
			{Time: 0, Readings: readings(0)},
			{
				Time:            1.0 / 60,
				Position:        mgl64.Vec3{0.01, 0, -0.002},
				Velocity:        mgl64.Vec3{0.7, 0, 0.07},
				AngularVelocity: mgl64.Vec3{0.14, 0, 0},
				Roll:            0.0023,
				Pitch:           -1e-5,
				Yaw:             0.1,
				PitchAoA:        0.2,
				YawAoA:          -0.3,
				RollAoA:         1.5,
				Readings:        readings(0.3),
			},
		},
		Metrics:    map[string]float64{"peak_drag": 0.3},
		Dt:         1.0 / 60,
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.DefaultConfig()
	cfg.Integrator = "euler"
	result := testResult()

	runID, err := st.Save("cruise", cfg, result)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "cruise_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "cruise", meta.Preset)
	assert.Equal(t, "euler", meta.Integrator)
	assert.Equal(t, 1, meta.Steps)
	assert.Equal(t, 0.3, meta.Metrics["peak_drag"])

	loadedCfg, err := st.LoadConfig(runID)
	require.NoError(t, err)
	assert.Equal(t, cfg, loadedCfg)

	samples, err := st.LoadSamples(runID)
	require.NoError(t, err)
	assert.Equal(t, result.Samples, samples)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := st.Save("cruise", config.DefaultConfig(), testResult())
	require.NoError(t, err)
	second, err := st.Save("rolled", config.DefaultConfig(), testResult())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("missing")
	assert.Error(t, err)
	_, err = st.LoadSamples("missing")
	assert.Error(t, err)
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := NewRunID("cruise"), NewRunID("cruise")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(NewRunID(""), "run_"))
}

func TestCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testResult().Samples))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "time,x,y,z,vx,vy,vz"))
	assert.Contains(t, header, "torque:Propellor:x")
	assert.Contains(t, header, "force:north fin lift:z")
}

func TestCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	samples, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestCSVMismatchedReadings(t *testing.T) {
	samples := testResult().Samples
	samples[1].Readings = samples[1].Readings[:1]

	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, samples))
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short header", "time,x\n0,1\n"},
		{"bad number", strings.Join(kinematicColumns, ",") + "\n" + strings.Repeat("1,", 15) + "oops\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestExportJSON(t *testing.T) {
	result := testResult()
	meta := RunMetadata{ID: "cruise_1", Preset: "cruise", Steps: 1}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, result.Samples))

	var decoded ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cruise_1", decoded.Metadata.ID)
	require.Len(t, decoded.Samples, 2)
	assert.Equal(t, result.Samples[1].Velocity, decoded.Samples[1].Velocity)
	assert.Equal(t, "Drag", decoded.Samples[1].Readings[1].Name)
}
