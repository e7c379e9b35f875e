// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ident mints prefixed identifiers such as "usr-<uuid>".
package ident

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	New(prefix string) string
}

type uuidGenerator struct{}

// UUID returns a generator of "<prefix>-<random uuid v4>" identifiers.
func UUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence returns a generator of "<prefix>-<n>" identifiers, n counting
// from 1 per prefix. The output is deterministic, which tests rely on.
func Sequence() Generator {
	return &sequence{next: make(map[string]int)}
}

type sequence struct {
	mu   sync.Mutex
	next map[string]int
}

func (s *sequence) New(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next[prefix]++
	return prefix + "-" + strconv.Itoa(s.next[prefix])
}

// Padded returns a sequence generator whose counters are zero padded to
// width digits, so that lexicographic and numeric order agree.
func Padded(width int) Generator {
	return &padded{seq: sequence{next: make(map[string]int)}, width: width}
}

type padded struct {
	seq   sequence
	width int
}

func (p *padded) New(prefix string) string {
	p.seq.mu.Lock()
	defer p.seq.mu.Unlock()

	p.seq.next[prefix]++
	n := strconv.Itoa(p.seq.next[prefix])
	for len(n) < p.width {
		n = "0" + n
	}
	return prefix + "-" + n
}
