package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/subsim/internal/physics"
	"github.com/san-kum/subsim/internal/sim"
)

var kinematicColumns = []string{
	"time",
	"x", "y", "z",
	"vx", "vy", "vz",
	"wx", "wy", "wz",
	"roll", "pitch", "yaw",
	"pitch_aoa", "yaw_aoa", "roll_aoa",
}

var axes = [3]string{"x", "y", "z"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// readingColumn is "<kind>:<name>:<axis>", e.g. "force:Drag:x".
func readingColumn(r physics.Reading, axis int) string {
	return fmt.Sprintf("%s:%s:%s", r.Kind, r.Name, axes[axis])
}

// WriteCSV writes one row per sample. Reading columns follow the
// readings of the first sample.
func WriteCSV(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)

	header := append([]string{}, kinematicColumns...)
	if len(samples) > 0 {
		for _, r := range samples[0].Readings {
			for a := range axes {
				header = append(header, readingColumn(r, a))
			}
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := make([]string, 0, len(header))
		row = append(row, formatFloat(s.Time))
		for _, v := range []mgl64.Vec3{s.Position, s.Velocity, s.AngularVelocity} {
			row = append(row, formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
		}
		for _, v := range []float64{s.Roll, s.Pitch, s.Yaw, s.PitchAoA, s.YawAoA, s.RollAoA} {
			row = append(row, formatFloat(v))
		}
		for _, r := range s.Readings {
			row = append(row, formatFloat(r.Value[0]), formatFloat(r.Value[1]), formatFloat(r.Value[2]))
		}
		if len(row) != len(header) {
			return fmt.Errorf("sample at t=%g has %d columns, header has %d", s.Time, len(row), len(header))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type readingSlot struct {
	name string
	kind physics.ReadingKind
}

// ReadCSV parses what WriteCSV wrote. Reading positions are not stored.
func ReadCSV(in io.Reader) ([]sim.Sample, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header")
	}

	header := records[0]
	if len(header) < len(kinematicColumns) || (len(header)-len(kinematicColumns))%3 != 0 {
		return nil, fmt.Errorf("malformed header with %d columns", len(header))
	}
	var slots []readingSlot
	for i := len(kinematicColumns); i < len(header); i += 3 {
		parts := strings.SplitN(header[i], ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed reading column %q", header[i])
		}
		kind := physics.ForceReading
		if parts[0] == physics.TorqueReading.String() {
			kind = physics.TorqueReading
		}
		slots = append(slots, readingSlot{name: parts[1], kind: kind})
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line+2, header[j], err)
			}
			vals[j] = v
		}

		s := sim.Sample{
			Time:            vals[0],
			Position:        mgl64.Vec3{vals[1], vals[2], vals[3]},
			Velocity:        mgl64.Vec3{vals[4], vals[5], vals[6]},
			AngularVelocity: mgl64.Vec3{vals[7], vals[8], vals[9]},
			Roll:            vals[10],
			Pitch:           vals[11],
			Yaw:             vals[12],
			PitchAoA:        vals[13],
			YawAoA:          vals[14],
			RollAoA:         vals[15],
		}
		for k, slot := range slots {
			base := len(kinematicColumns) + 3*k
			s.Readings = append(s.Readings, physics.Reading{
				Name:  slot.name,
				Kind:  slot.kind,
				Value: mgl64.Vec3{vals[base], vals[base+1], vals[base+2]},
			})
		}
		samples = append(samples, s)
	}
	return samples, nil
}

type ExportData struct {
	Metadata RunMetadata  `json:"metadata"`
	Samples  []sim.Sample `json:"samples"`
}

func ExportJSON(out io.Writer, meta RunMetadata, samples []sim.Sample) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: meta, Samples: samples})
}

func ExportMetadata(out io.Writer, meta RunMetadata) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
