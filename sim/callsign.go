// sim/callsign.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strings"

	"github.com/mmp/atctrainer/rand"
)

var callsignPrefixes = []string{
	"ADO", "APJ", "JJP", "JTA", "SNJ", "AAL", "AAR", "ABL", "ACA", "AIC", "AFL", "AFR", "AHK",
	"ALK", "ANG", "ANZ", "AMU", "AUA", "BAW", "CAL", "CCA", "CES", "CQH", "CLX", "CHH", "CPA",
	"CSH", "CSN", "CSZ", "DAL", "DKH", "DLH", "EVA", "ETD", "FDX", "FIN", "FJI", "GIA", "GTI",
	"HVN", "ITY", "JJA", "KAL", "KLM", "MAS", "MGL", "MSR", "PAL", "PAC", "PIA", "QFA", "RNA",
	"SAS", "SIA", "SJX", "SWR", "THA", "THT", "THY", "UAE", "UAL", "UPS", "UZB", "TZP",
}

var aircraftTypes = []string{"A320", "B738", "B772"}

// generateCallsign returns an unused airline callsign. After a handful of
// collisions it falls back to a sequential ACnnn callsign.
func (s *Sim) generateCallsign() string {
	n := s.seq
	s.seq++

	for range 10 {
		cs := rand.SampleSlice(s.rand, callsignPrefixes) + fmt.Sprintf("%03d", 100+s.rand.Intn(900))
		if s.lookup(cs) == -1 {
			return cs
		}
	}

	for {
		cs := fmt.Sprintf("AC%03d", n)
		if s.lookup(cs) == -1 {
			return cs
		}
		n++
	}
}

// normalizeCallsign upper-cases the given callsign and checks that it
// is made up of letters and digits.
func normalizeCallsign(cs string) (string, error) {
	cs = strings.ToUpper(strings.TrimSpace(cs))
	if cs == "" || len(cs) > 8 {
		return "", ErrIllegalCallsign
	}
	for _, ch := range cs {
		if !(ch >= 'A' && ch <= 'Z') && !(ch >= '0' && ch <= '9') {
			return "", ErrIllegalCallsign
		}
	}
	return cs, nil
}
