// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spacematch allocates shared office workspace: rental spaces are
// matched against users requesting workstations within a budget, with
// optional subdivision of spaces into independently allocatable splits.
package spacematch

import "time"

// Identifier prefixes.
const (
	PrefixUser     = "usr"
	PrefixOffice   = "ofc"
	PrefixSplit    = "spl"
	PrefixContract = "agr"
)

type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func newBase(id string) Base {
	return Base{ID: id, CreatedAt: time.Now().UTC()}
}

type WorkspaceRequest struct {
	NbWorkstations int64 `json:"nb_workstations" validate:"gt=0"`
	Budget         int64 `json:"budget" validate:"gte=0"`
}

type User struct {
	Base
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	WorkspaceRequest *WorkspaceRequest `json:"workspace_request,omitempty"` // nil for pure hosts
}

type RentalSpace struct {
	Base
	Name                string `json:"name"`
	Address             string `json:"address"`
	Surface             int64  `json:"surface"`
	NbWorkstations      int64  `json:"nb_workstations"`
	PricePerWorkstation int64  `json:"price_per_workstation"`
	OwnerID             string `json:"owner_id"`
}

// Split is an allocatable piece of a rental space. Splits only live for
// the duration of one matching round.
type Split struct {
	Base
	Name                string
	Address             string
	Surface             int64
	NbWorkstations      int64
	PricePerWorkstation int64
	OfficeID            string // the originating rental space, kept through subdivisions
	OwnerID             string
}

type Contract struct {
	Base
	SplitID        string `json:"split_id"`
	OfficeID       string `json:"office_id"`
	HostID         string `json:"host_id"`
	GuestID        string `json:"guest_id"`
	NbWorkstations int64  `json:"nb_workstations"`
	Price          int64  `json:"price"`
}

type Matchings struct {
	Year1Contracts           []*Contract `json:"year_1_contracts"`
	Year2Contracts           []*Contract `json:"year_2_contracts"`
	PercentageOfMatchedUsers int         `json:"percentage_of_matched_users"`
}

// Storage is the read side of the record store the engine works from.
type Storage interface {
	Users() []*User
	RentalSpaces() []*RentalSpace
	User(id string) (*User, bool)
}

type Matcher interface {
	Match(storage Storage) Matchings
}
