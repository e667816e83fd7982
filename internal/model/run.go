package model

// RunMetadata holds the simulation run parameters mined from a source
// filename. It is constructed fresh for every file and never reused
// across files.
type RunMetadata struct {
	Species       byte    `json:"species"`         // particle species code (p, e, ...)
	TelescopeType string  `json:"telescope_type"`  // detector configuration (ptel, etel, ...)
	JobID         int     `json:"job_id"`          // simulation run identifier
	StartEnergy   float64 `json:"start_energy"`    // start energy, normalized to keV
	NSteps        int     `json:"n_steps"`         // number of energy steps
	EventsPerStep int     `json:"events_per_step"` // simulated events per step
	EnergyToken   string  `json:"energy_token"`    // verbatim species/energy token, e.g. "p1.0MeV"
}

// BlockDescriptor locates one sentinel-delimited data segment inside the
// ASCII log. Offsets point at the byte immediately after the sentinel line.
type BlockDescriptor struct {
	StartLine   int   `json:"start_line"`
	StopLine    int   `json:"stop_line"`
	StartOffset int64 `json:"start_offset"`
	StopOffset  int64 `json:"stop_offset"`
}

// Length returns the number of event rows between the sentinel pair.
func (b BlockDescriptor) Length() int {
	return b.StopLine - b.StartLine - 1
}

// Valid reports whether the block contains at least one event row.
func (b BlockDescriptor) Valid() bool {
	return b.Length() > 0
}
