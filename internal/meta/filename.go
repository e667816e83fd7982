// Package meta derives run parameters from structured source filenames.
//
// A valid basename splits into exactly four tokens on the separators
// '_' and 'x', e.g. "p1.0MeV_9x1.E+06_ptel.j3":
//
//	token 1: species code + start energy + unit suffix ("p1.0MeV")
//	token 2: number of energy steps ("9")
//	token 3: events per step, float notation allowed ("1.E+06")
//	token 4: telescope type and job id ("ptel.j3")
package meta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/gfconv/internal/model"
)

var (
	// ErrMalformedFilename indicates the basename does not split into the
	// four expected metadata tokens.
	ErrMalformedFilename = errors.New("malformed filename")

	// ErrUnrecognizedEnergyUnit indicates an energy suffix outside the
	// closed unit set.
	ErrUnrecognizedEnergyUnit = errors.New("unrecognized energy unit")
)

// unitScale maps the 3-character energy suffix (lowercased) to its scale
// factor relative to keV. The "0eV" suffix denotes plain eV.
var unitScale = map[string]float64{
	"kev": 1,
	"mev": 1e3,
	"gev": 1e6,
	"0ev": 1e-3,
}

// tokenSep matches the fixed pair of filename separators.
func tokenSep(r rune) bool {
	return r == '_' || r == 'x'
}

// Parse mines run metadata from a source file basename. It returns a
// fresh RunMetadata per call; nothing is retained between invocations.
func Parse(basename string) (*model.RunMetadata, error) {
	tokens := strings.FieldsFunc(basename, tokenSep)
	if len(tokens) != 4 {
		return nil, fmt.Errorf("%w: %q splits into %d tokens, want 4", ErrMalformedFilename, basename, len(tokens))
	}

	md := &model.RunMetadata{EnergyToken: tokens[0]}

	// Token 1: species code is the first character, the remainder is the
	// start energy with a 3-character unit suffix.
	if len(tokens[0]) < 4 {
		return nil, fmt.Errorf("%w: species/energy token %q too short", ErrMalformedFilename, tokens[0])
	}
	md.Species = tokens[0][0]
	energy := tokens[0][1:]

	unit := strings.ToLower(energy[len(energy)-3:])
	scale, ok := unitScale[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q in token %q", ErrUnrecognizedEnergyUnit, energy[len(energy)-3:], tokens[0])
	}
	val, err := strconv.ParseFloat(energy[:len(energy)-3], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: energy value in %q: %v", ErrMalformedFilename, tokens[0], err)
	}
	md.StartEnergy = val * scale

	// Token 2: step count.
	md.NSteps, err = strconv.Atoi(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("%w: step count %q: %v", ErrMalformedFilename, tokens[1], err)
	}

	// Token 3: events per step, written in float notation and truncated.
	events, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: events per step %q: %v", ErrMalformedFilename, tokens[2], err)
	}
	md.EventsPerStep = int(events)

	// Token 4: telescope type and job id, separated by a dot. The job id
	// is the final sub-token with its single-character prefix stripped.
	sub := strings.Split(tokens[3], ".")
	if len(sub) < 2 {
		return nil, fmt.Errorf("%w: telescope/job token %q has no job id", ErrMalformedFilename, tokens[3])
	}
	md.TelescopeType = sub[0]

	job := sub[len(sub)-1]
	if len(job) < 2 {
		return nil, fmt.Errorf("%w: job id token %q too short", ErrMalformedFilename, job)
	}
	md.JobID, err = strconv.Atoi(job[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: job id %q: %v", ErrMalformedFilename, job, err)
	}

	return md, nil
}
