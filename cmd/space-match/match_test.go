// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sm "github.com/someonegg/spacematch"
	"github.com/someonegg/spacematch/ident"
)

const sampleData = `{
   "users": [
      {"ref": "alice", "first_name": "Alice", "last_name": "Host"},
      {"ref": "bob", "first_name": "Bob", "last_name": "Guest",
       "workspace_request": {"nb_workstations": 50, "budget": 1000000}}
   ],
   "rental_spaces": [
      {"name": "Loft", "address": "1 Main St", "surface": 200,
       "nb_workstations": 100, "price_per_workstation": 400, "owner": "alice"}
   ]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
	return file
}

func TestLoadData(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		store, err := loadData(writeFile(t, sampleData), ident.Sequence())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		users := store.Users()
		if len(users) != 2 || users[0].ID != "usr-1" || users[1].WorkspaceRequest == nil {
			t.Fatalf("Unexpected users %+v", users)
		}
		spaces := store.RentalSpaces()
		if len(spaces) != 1 || spaces[0].OwnerID != "usr-1" || spaces[0].ID != "ofc-1" {
			t.Fatalf("Unexpected spaces %+v", spaces)
		}
	})

	tests := []struct {
		name    string
		content string
		wantErr string
		invalid bool
	}{
		{
			"DensityViolation",
			`{"users": [{"ref": "a", "first_name": "A", "last_name": "B"}],
			  "rental_spaces": [{"surface": 70, "nb_workstations": 100, "price_per_workstation": 400, "owner": "a"}]}`,
			"rental space 0", true,
		},
		{
			"InvalidUser",
			`{"users": [{"ref": "a", "first_name": "A"}]}`,
			"user 0", true,
		},
		{
			"UnknownOwner",
			`{"users": [], "rental_spaces": [{"surface": 300, "nb_workstations": 100, "price_per_workstation": 400, "owner": "x"}]}`,
			`unknown owner "x"`, false,
		},
		{
			"DuplicateRef",
			`{"users": [{"ref": "a", "first_name": "A", "last_name": "B"}, {"ref": "a", "first_name": "C", "last_name": "D"}]}`,
			`duplicate ref "a"`, false,
		},
		{
			"UnknownField",
			`{"users": [], "offices": []}`,
			"unknown field", false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadData(writeFile(t, tt.content), ident.Sequence())
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
			if errors.Is(err, sm.ErrValidation) != tt.invalid {
				t.Errorf("Expected ErrValidation=%v, got %v", tt.invalid, err)
			}
		})
	}

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := loadData(filepath.Join(t.TempDir(), "none.json"), ident.Sequence()); err == nil {
			t.Error("Expected error")
		}
	})
}

func TestDoExample(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data.json")
	if err := doExample(context.Background(), file, 3, true); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	store, err := loadData(file, ident.Sequence())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(store.Users()) != 20 || len(store.RentalSpaces()) != 3 {
		t.Errorf("Expected 20 users 3 spaces, got %d %d", len(store.Users()), len(store.RentalSpaces()))
	}
}

func TestDoMatch(t *testing.T) {
	readMatchings := func(t *testing.T, file string) sm.Matchings {
		t.Helper()
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		var m sm.Matchings
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode %s: %v", file, err)
		}
		return m
	}

	t.Run("DataFileWithSubsplit", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "matchings.json")
		err := doMatch(context.Background(), matchOptions{
			DataFile:   writeFile(t, sampleData),
			Subsplit:   true,
			OutputFile: out,
			Sequential: true,
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		m := readMatchings(t, out)
		if len(m.Year1Contracts) != 1 || m.Year1Contracts[0].NbWorkstations != 50 {
			t.Fatalf("Expected one 50-workstation contract, got %+v", m.Year1Contracts)
		}
		if m.Year1Contracts[0].HostID != "usr-0001" || m.Year1Contracts[0].GuestID != "usr-0002" {
			t.Errorf("Unexpected parties %s -> %s", m.Year1Contracts[0].HostID, m.Year1Contracts[0].GuestID)
		}
		if m.PercentageOfMatchedUsers != 100 {
			t.Errorf("Expected 100%%, got %d", m.PercentageOfMatchedUsers)
		}
	})

	t.Run("Example", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "matchings.json")
		err := doMatch(context.Background(), matchOptions{
			Example:    true,
			OutputFile: out,
			Seed:       1,
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		m := readMatchings(t, out)
		if m.PercentageOfMatchedUsers != 60 {
			t.Errorf("Expected 60%%, got %d", m.PercentageOfMatchedUsers)
		}
	})

	t.Run("BadDataFile", func(t *testing.T) {
		err := doMatch(context.Background(), matchOptions{DataFile: writeFile(t, "{")})
		if err == nil || !strings.Contains(err.Error(), "load data file failed") {
			t.Errorf("Expected load failure, got %v", err)
		}
	})
}
