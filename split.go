// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spacematch

import (
	"fmt"

	"github.com/someonegg/spacematch/ident"
)

// Minimum piece sizes for subdivision, by the split's current density.
const (
	subsplitLowDensityMin  = 40
	subsplitHighDensityMin = 60
)

// Split converts the rental space into its originating split.
func (r *RentalSpace) Split(ids ident.Generator) *Split {
	return &Split{
		Base:                newBase(ids.New(PrefixSplit)),
		Name:                r.Name,
		Address:             r.Address,
		Surface:             r.Surface,
		NbWorkstations:      r.NbWorkstations,
		PricePerWorkstation: r.PricePerWorkstation,
		OfficeID:            r.ID,
		OwnerID:             r.OwnerID,
	}
}

func (s *Split) Price() int64 {
	return s.NbWorkstations * s.PricePerWorkstation
}

// MinSubsplit returns the smallest piece this split may be cut into, or
// false if it cannot be subdivided at all.
func (s *Split) MinSubsplit() (int64, bool) {
	unit := int64(subsplitHighDensityMin)
	if s.NbWorkstations*densityLowArea < s.Surface*densityStations {
		unit = subsplitLowDensityMin
	}
	if s.NbWorkstations > 2*unit {
		return unit, true
	}
	return 0, false
}

// MaxSubsplit returns the largest piece this split may be cut into.
func (s *Split) MaxSubsplit() (int64, bool) {
	unit, ok := s.MinSubsplit()
	if !ok {
		return 0, false
	}
	return s.NbWorkstations - unit, true
}

func (s *Split) CanBeSubsplit(n int64) bool {
	unit, ok := s.MinSubsplit()
	return ok && n >= unit && n <= s.NbWorkstations-unit
}

// Subsplit cuts the split into a piece of exactly n workstations and the
// remainder. Surfaces are apportioned with truncating division.
// It panics unless CanBeSubsplit(n).
func (s *Split) Subsplit(ids ident.Generator, n int64) (piece, rest *Split) {
	if !s.CanBeSubsplit(n) {
		panic(fmt.Sprintf("spacematch: split %s (%d workstations) cannot be subsplit at %d",
			s.ID, s.NbWorkstations, n))
	}
	return s.piece(ids, n), s.piece(ids, s.NbWorkstations-n)
}

func (s *Split) piece(ids ident.Generator, n int64) *Split {
	return &Split{
		Base:                newBase(ids.New(PrefixSplit)),
		Name:                s.Name,
		Address:             s.Address,
		Surface:             s.Surface * n / s.NbWorkstations,
		NbWorkstations:      n,
		PricePerWorkstation: s.PricePerWorkstation,
		OfficeID:            s.OfficeID,
		OwnerID:             s.OwnerID,
	}
}
