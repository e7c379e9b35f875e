// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage keeps users and rental spaces in memory for the matcher.
package storage

import (
	"math/rand"

	sm "github.com/someonegg/spacematch"
	"github.com/someonegg/spacematch/ident"
)

// ObjectStorage is a keyed in-memory collection. Listing follows insertion
// order; re-adding an id replaces the record in place.
// It is not safe for concurrent use.
type ObjectStorage struct {
	users    map[string]*sm.User
	userIDs  []string
	spaces   map[string]*sm.RentalSpace
	spaceIDs []string
}

func New() *ObjectStorage {
	return &ObjectStorage{
		users:  make(map[string]*sm.User),
		spaces: make(map[string]*sm.RentalSpace),
	}
}

func (s *ObjectStorage) AddUser(user *sm.User) {
	if _, ok := s.users[user.ID]; !ok {
		s.userIDs = append(s.userIDs, user.ID)
	}
	s.users[user.ID] = user
}

func (s *ObjectStorage) AddRentalSpace(space *sm.RentalSpace) {
	if _, ok := s.spaces[space.ID]; !ok {
		s.spaceIDs = append(s.spaceIDs, space.ID)
	}
	s.spaces[space.ID] = space
}

func (s *ObjectStorage) User(id string) (*sm.User, bool) {
	user, ok := s.users[id]
	return user, ok
}

func (s *ObjectStorage) RentalSpace(id string) (*sm.RentalSpace, bool) {
	space, ok := s.spaces[id]
	return space, ok
}

func (s *ObjectStorage) Users() []*sm.User {
	users := make([]*sm.User, len(s.userIDs))
	for i, id := range s.userIDs {
		users[i] = s.users[id]
	}
	return users
}

func (s *ObjectStorage) RentalSpaces() []*sm.RentalSpace {
	spaces := make([]*sm.RentalSpace, len(s.spaceIDs))
	for i, id := range s.spaceIDs {
		spaces[i] = s.spaces[id]
	}
	return spaces
}

// Merge copies every record of other into s.
func (s *ObjectStorage) Merge(other *ObjectStorage) {
	for _, user := range other.Users() {
		s.AddUser(user)
	}
	for _, space := range other.RentalSpaces() {
		s.AddRentalSpace(space)
	}
}

// Example builds a demo fleet: ten hosts, three 160-workstation spaces
// owned by randomly chosen hosts, and ten users asking for 10 to 55
// workstations with a large budget.
func Example(ids ident.Generator, r *rand.Rand) (*ObjectStorage, error) {
	s := New()

	hosts := make([]*sm.User, 0, 10)
	for i := 0; i < 10; i++ {
		host, err := sm.NewUser(ids, sm.AddUserRequest{FirstName: "John", LastName: "Doe"})
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
		s.AddUser(host)
	}

	for _, nb := range []int64{160, 160, 160} {
		req := sm.AddRentalSpaceRequest{
			Name:                "Rental Space",
			Address:             "123 Main St",
			Surface:             30000,
			NbWorkstations:      nb,
			PricePerWorkstation: 400,
		}
		space, err := sm.NewRentalSpace(ids, req, hosts[r.Intn(len(hosts))].ID)
		if err != nil {
			return nil, err
		}
		s.AddRentalSpace(space)
	}

	for nb := int64(10); nb <= 55; nb += 5 {
		user, err := sm.NewUser(ids, sm.AddUserRequest{
			FirstName: "John",
			LastName:  "Doe",
			WorkspaceRequest: &sm.WorkspaceRequest{
				NbWorkstations: nb,
				Budget:         1000000000,
			},
		})
		if err != nil {
			return nil, err
		}
		s.AddUser(user)
	}

	return s, nil
}

var _ sm.Storage = (*ObjectStorage)(nil)
