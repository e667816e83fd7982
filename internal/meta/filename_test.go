package meta

import (
	"errors"
	"testing"
)

func TestParse_ReferenceFilename(t *testing.T) {
	md, err := Parse("p1.0MeV_9x1.E+06_ptel.j3")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if md.Species != 'p' {
		t.Errorf("Expected species 'p', got %q", md.Species)
	}
	if md.StartEnergy != 1000.0 {
		t.Errorf("Expected start energy 1000 keV, got %v", md.StartEnergy)
	}
	if md.NSteps != 9 {
		t.Errorf("Expected 9 steps, got %d", md.NSteps)
	}
	if md.EventsPerStep != 1_000_000 {
		t.Errorf("Expected 1000000 events per step, got %d", md.EventsPerStep)
	}
	if md.TelescopeType != "ptel" {
		t.Errorf("Expected telescope type ptel, got %q", md.TelescopeType)
	}
	if md.JobID != 3 {
		t.Errorf("Expected job id 3, got %d", md.JobID)
	}
	if md.EnergyToken != "p1.0MeV" {
		t.Errorf("Expected energy token p1.0MeV, got %q", md.EnergyToken)
	}
}

func TestParse_EnergyUnits(t *testing.T) {
	tests := []struct {
		name string
		want float64 // keV
	}{
		{"p2.0keV_5x100_ptel.j1", 2.0},
		{"p1.0MeV_5x100_ptel.j1", 1000.0},
		{"e3.0GeV_5x100_etel.j1", 3e6},
		// "0eV" denotes plain eV: raw value 500 scales to 0.5 keV
		{"p5000eV_5x100_ptel.j1", 0.5},
		// unit match is case-insensitive
		{"p2.0KEV_5x100_ptel.j1", 2.0},
	}

	for _, tt := range tests {
		md, err := Parse(tt.name)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.name, err)
			continue
		}
		if md.StartEnergy != tt.want {
			t.Errorf("Parse(%q): start energy = %v, want %v", tt.name, md.StartEnergy, tt.want)
		}
	}
}

func TestParse_EventsPerStepTruncation(t *testing.T) {
	md, err := Parse("p1.0MeV_9x2.5E+03_ptel.j3")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if md.EventsPerStep != 2500 {
		t.Errorf("Expected 2500 events per step, got %d", md.EventsPerStep)
	}
}

func TestParse_MalformedFilename(t *testing.T) {
	tests := []string{
		"noseparators",
		"a_b_c",                     // 3 tokens
		"p1.0MeV_9x1.E+06_ptel_j.3", // 5 tokens
		"p1.0MeV_zx100_ptel.j3",     // non-numeric step count
		"p1.0MeV_9x1.E+06_ptel",     // no job sub-token
	}

	for _, name := range tests {
		if _, err := Parse(name); !errors.Is(err, ErrMalformedFilename) {
			t.Errorf("Parse(%q): expected ErrMalformedFilename, got %v", name, err)
		}
	}
}

func TestParse_UnrecognizedEnergyUnit(t *testing.T) {
	_, err := Parse("p1.0TeV_9x100_ptel.j3")
	if !errors.Is(err, ErrUnrecognizedEnergyUnit) {
		t.Errorf("Expected ErrUnrecognizedEnergyUnit, got %v", err)
	}
}
