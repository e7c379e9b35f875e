// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spacematch

import (
	"fmt"
	"math"

	"github.com/someonegg/spacematch/ident"
)

type greedyMatcher struct {
	ids      ident.Generator
	subsplit bool
	verbose  bool
}

// GreedyMatcher returns the two-round (year 1, year 2) greedy matcher.
// With subsplit set, splits may be cut to fit a request exactly.
func GreedyMatcher(ids ident.Generator, subsplit, verbose bool) Matcher {
	return greedyMatcher{ids, subsplit, verbose}
}

// Run matches users against rental spaces held in plain slices.
func Run(ids ident.Generator, users []*User, spaces []*RentalSpace, subsplit bool) Matchings {
	return GreedyMatcher(ids, subsplit, false).Match(newSliceStorage(users, spaces))
}

func (m greedyMatcher) Match(storage Storage) Matchings {
	var requesting []*User
	for _, user := range storage.Users() {
		if user.WorkspaceRequest != nil {
			requesting = append(requesting, user)
		}
	}
	spaces := storage.RentalSpaces()

	unmatched := make(map[string]bool, len(requesting))
	for _, user := range requesting {
		unmatched[user.ID] = true
	}

	var matchings Matchings
	matchings.Year1Contracts = m.round(1, requesting, spaces, unmatched)

	survivors := make([]*User, 0, len(unmatched))
	for _, user := range requesting {
		if !unmatched[user.ID] {
			continue
		}
		survivor, ok := storage.User(user.ID)
		if !ok {
			panic(fmt.Sprintf("spacematch: unmatched user %s missing from storage", user.ID))
		}
		survivors = append(survivors, survivor)
	}
	matchings.Year2Contracts = m.round(2, survivors, spaces, unmatched)

	matchings.PercentageOfMatchedUsers = matchedPercentage(len(unmatched), len(requesting))
	if m.verbose {
		fmt.Println("requesting:", len(requesting), "unmatched:", len(unmatched),
			"matched:", matchings.PercentageOfMatchedUsers, "%")
	}
	return matchings
}

// round runs one greedy pass over candidates with a freshly built split
// pool, removing every matched user from unmatched.
func (m greedyMatcher) round(year int, candidates []*User, spaces []*RentalSpace, unmatched map[string]bool) []*Contract {
	pool := newSplitPool(m.ids, spaces)
	contracts := make([]*Contract, 0, len(candidates))

	if m.verbose {
		fmt.Println("year", year, "candidates:", len(candidates), "splits:", len(pool.splits))
	}

	for _, user := range candidates {
		contract := m.matchUser(pool, user)
		if contract == nil {
			if m.verbose {
				fmt.Println("  ", user.ID, "unmatched")
			}
			continue
		}
		delete(unmatched, user.ID)
		contracts = append(contracts, contract)
	}

	return contracts
}

func (m greedyMatcher) matchUser(pool *splitPool, user *User) *Contract {
	req := user.WorkspaceRequest

	if split := pool.smallestFit(req, m.subsplit); split != nil {
		pool.take(split.ID)
		if m.verbose {
			fmt.Println("  ", user.ID, "request:", req.NbWorkstations, "budget:", req.Budget,
				"->", split.ID, split.NbWorkstations, split.Price())
		}
		return m.contract(split, user)
	}

	if !m.subsplit {
		return nil
	}

	split := pool.largestSubsplittable(req.NbWorkstations)
	if split == nil {
		return nil
	}
	pool.take(split.ID)
	piece, rest := split.Subsplit(m.ids, req.NbWorkstations)
	pool.put(rest)
	if m.verbose {
		fmt.Println("  ", user.ID, "request:", req.NbWorkstations, "budget:", req.Budget,
			"->", split.ID, split.NbWorkstations, "split:", piece.ID, piece.Price(), "rest:", rest.ID)
	}
	// The subdivided piece is not checked against the budget.
	return m.contract(piece, user)
}

func (m greedyMatcher) contract(split *Split, guest *User) *Contract {
	return &Contract{
		Base:           newBase(m.ids.New(PrefixContract)),
		SplitID:        split.ID,
		OfficeID:       split.OfficeID,
		HostID:         split.OwnerID,
		GuestID:        guest.ID,
		NbWorkstations: split.NbWorkstations,
		Price:          split.Price(),
	}
}

func matchedPercentage(unmatched, requesting int) int {
	if requesting == 0 {
		return 100
	}
	ratio := float32(unmatched) / float32(requesting)
	return int(math.Round(float64((1 - ratio) * 100)))
}

// splitPool holds the splits available within one round.
type splitPool struct {
	splits map[string]*Split
}

func newSplitPool(ids ident.Generator, spaces []*RentalSpace) *splitPool {
	p := &splitPool{splits: make(map[string]*Split, len(spaces))}
	for _, space := range spaces {
		p.put(space.Split(ids))
	}
	return p
}

func (p *splitPool) put(s *Split) {
	p.splits[s.ID] = s
}

func (p *splitPool) take(id string) *Split {
	s, ok := p.splits[id]
	if !ok {
		panic(fmt.Sprintf("spacematch: split %s is not available", id))
	}
	delete(p.splits, id)
	return s
}

// smallestFit returns the available split with the fewest workstations that
// covers the request within budget. When subsplit is set, splits that could
// be cut to the requested size are left for subdivision.
// Ties go to the smaller split id.
func (p *splitPool) smallestFit(req *WorkspaceRequest, subsplit bool) *Split {
	var best *Split
	for _, s := range p.splits {
		if subsplit && s.CanBeSubsplit(req.NbWorkstations) {
			continue
		}
		if s.NbWorkstations < req.NbWorkstations || s.Price() > req.Budget {
			continue
		}
		if best == nil ||
			s.NbWorkstations < best.NbWorkstations ||
			s.NbWorkstations == best.NbWorkstations && s.ID < best.ID {
			best = s
		}
	}
	return best
}

// largestSubsplittable returns the available split with the most
// workstations that can be cut at n. Ties go to the smaller split id.
func (p *splitPool) largestSubsplittable(n int64) *Split {
	var best *Split
	for _, s := range p.splits {
		if !s.CanBeSubsplit(n) {
			continue
		}
		if best == nil ||
			s.NbWorkstations > best.NbWorkstations ||
			s.NbWorkstations == best.NbWorkstations && s.ID < best.ID {
			best = s
		}
	}
	return best
}

type sliceStorage struct {
	users  []*User
	spaces []*RentalSpace
	index  map[string]*User
}

func newSliceStorage(users []*User, spaces []*RentalSpace) *sliceStorage {
	index := make(map[string]*User, len(users))
	for _, user := range users {
		index[user.ID] = user
	}
	return &sliceStorage{users, spaces, index}
}

func (s *sliceStorage) Users() []*User               { return s.users }
func (s *sliceStorage) RentalSpaces() []*RentalSpace { return s.spaces }

func (s *sliceStorage) User(id string) (*User, bool) {
	user, ok := s.index[id]
	return user, ok
}
