// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"

	sm "github.com/someonegg/spacematch"
	"github.com/someonegg/spacematch/ident"
	"github.com/someonegg/spacematch/storage"
)

type Data struct {
	Users        []*UserRecord        `json:"users"`
	RentalSpaces []*RentalSpaceRecord `json:"rental_spaces"`
}

type UserRecord struct {
	Ref string `json:"ref"`
	sm.AddUserRequest
}

type RentalSpaceRecord struct {
	sm.AddRentalSpaceRequest
	Owner string `json:"owner"` // UserRecord.Ref
}

type Summary struct {
	Users        int `json:"users"`
	RentalSpaces int `json:"rental_spaces"`
	Year1        int `json:"year_1"`
	Year2        int `json:"year_2"`
	Matched      int `json:"matched_pct"`
}

type matchOptions struct {
	DataFile   string
	Example    bool
	Subsplit   bool
	OutputFile string
	Seed       int64
	Sequential bool
	Verbose    bool
}

func newIDs(sequential bool) ident.Generator {
	if sequential {
		return ident.Padded(4)
	}
	return ident.UUID()
}

func doMatch(ctx context.Context, opts matchOptions) error {
	ids := newIDs(opts.Sequential)

	var (
		store *storage.ObjectStorage
		err   error
	)
	if opts.Example {
		store, err = storage.Example(ids, rand.New(rand.NewSource(opts.Seed)))
		if err != nil {
			return fmt.Errorf("generate example data failed: %w", err)
		}
	} else {
		store, err = loadData(opts.DataFile, ids)
		if err != nil {
			return fmt.Errorf("load data file failed: %w", err)
		}
	}

	matchings := sm.GreedyMatcher(ids, opts.Subsplit, opts.Verbose).Match(store)

	summ := Summary{
		Users:        len(store.Users()),
		RentalSpaces: len(store.RentalSpaces()),
		Year1:        len(matchings.Year1Contracts),
		Year2:        len(matchings.Year2Contracts),
		Matched:      matchings.PercentageOfMatchedUsers,
	}
	fmt.Fprintf(os.Stderr, "%+v\n", summ)

	if opts.OutputFile == "" {
		return encode(os.Stdout, matchings)
	}
	if err := writeJSON(opts.OutputFile, matchings); err != nil {
		return fmt.Errorf("write matchings file failed: %w", err)
	}
	return nil
}

func doExample(ctx context.Context, outputFile string, seed int64, sequential bool) error {
	store, err := storage.Example(newIDs(sequential), rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("generate example data failed: %w", err)
	}
	if err := writeJSON(outputFile, toData(store)); err != nil {
		return fmt.Errorf("write data file failed: %w", err)
	}
	return nil
}

func loadData(file string, ids ident.Generator) (*storage.ObjectStorage, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var d Data

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&d); err != nil {
		return nil, err
	}

	return d.build(ids)
}

// build creates every record through the validating constructors.
func (d *Data) build(ids ident.Generator) (*storage.ObjectStorage, error) {
	store := storage.New()
	refs := make(map[string]string, len(d.Users))

	for i, rec := range d.Users {
		if rec.Ref != "" {
			if _, ok := refs[rec.Ref]; ok {
				return nil, fmt.Errorf("user %d: duplicate ref %q", i, rec.Ref)
			}
		}
		user, err := sm.NewUser(ids, rec.AddUserRequest)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
		if rec.Ref != "" {
			refs[rec.Ref] = user.ID
		}
		store.AddUser(user)
	}

	for i, rec := range d.RentalSpaces {
		owner, ok := refs[rec.Owner]
		if !ok {
			return nil, fmt.Errorf("rental space %d: unknown owner %q", i, rec.Owner)
		}
		space, err := sm.NewRentalSpace(ids, rec.AddRentalSpaceRequest, owner)
		if err != nil {
			return nil, fmt.Errorf("rental space %d: %w", i, err)
		}
		store.AddRentalSpace(space)
	}

	return store, nil
}

func toData(store *storage.ObjectStorage) *Data {
	d := &Data{}
	for _, user := range store.Users() {
		d.Users = append(d.Users, &UserRecord{
			Ref: user.ID,
			AddUserRequest: sm.AddUserRequest{
				FirstName:        user.FirstName,
				LastName:         user.LastName,
				WorkspaceRequest: user.WorkspaceRequest,
			},
		})
	}
	for _, space := range store.RentalSpaces() {
		d.RentalSpaces = append(d.RentalSpaces, &RentalSpaceRecord{
			AddRentalSpaceRequest: sm.AddRentalSpaceRequest{
				Name:                space.Name,
				Address:             space.Address,
				Surface:             space.Surface,
				NbWorkstations:      space.NbWorkstations,
				PricePerWorkstation: space.PricePerWorkstation,
			},
			Owner: space.OwnerID,
		})
	}
	return d
}

func encode(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "   ")
	return encoder.Encode(v)
}

func writeJSON(file string, v interface{}) error {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0644)
}
