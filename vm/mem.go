// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// MaxCells is the maximum memory size in cells. Addresses at or above MaxCells
// are out of bounds, with or without a limit.
const MaxCells = 1 << 28

// Memory is the address space of an Instance. It behaves as an array of
// MaxCells zero cells: reads past the end return 0 and writes past the end grow
// the underlying slice.
//
// If a limit is set, addresses at or above it are out of bounds, as in a
// fixed size memory.
type Memory struct {
	cells []Cell
	limit int
}

// NewMemory returns a new Memory initialized with a copy of image.
func NewMemory(image []Cell) *Memory {
	return &Memory{cells: slices.Clone(image)}
}

// Len returns the number of cells actually allocated.
func (m *Memory) Len() int { return len(m.cells) }

// Cells returns the allocated cells. Value changes will be reflected in
// memory, but re-slicing will not affect it.
func (m *Memory) Cells() []Cell { return m.cells }

// Limit returns the memory size limit, 0 if only bound by MaxCells.
func (m *Memory) Limit() int { return m.limit }

// SetLimit sets the memory size limit in cells. A limit of 0 disables it. It
// fails if cells beyond the new limit are already allocated.
func (m *Memory) SetLimit(limit int) error {
	if limit < 0 || limit > MaxCells {
		return errors.Errorf("invalid memory limit %d", limit)
	}
	if limit > 0 && limit < len(m.cells) {
		return errors.Errorf("memory limit %d smaller than image size %d", limit, len(m.cells))
	}
	m.limit = limit
	return nil
}

func (m *Memory) check(addr Cell) error {
	if addr < 0 || addr >= MaxCells || m.limit > 0 && addr >= Cell(m.limit) {
		return errors.Wrapf(ErrOutOfBounds, "address %d", addr)
	}
	return nil
}

// Load returns the value stored at addr.
func (m *Memory) Load(addr Cell) (Cell, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	if addr >= Cell(len(m.cells)) {
		return 0, nil
	}
	return m.cells[addr], nil
}

// Store stores v at addr, growing memory as needed.
func (m *Memory) Store(addr, v Cell) error {
	if err := m.check(addr); err != nil {
		return err
	}
	if n := int(addr) + 1; n > len(m.cells) {
		m.cells = append(m.cells, make([]Cell, n-len(m.cells))...)
	}
	m.cells[addr] = v
	return nil
}

// Read resolves the value of parameter p: Position and Relative parameters are
// loaded from memory, Immediate ones are returned as is. base is the relative
// base.
func (m *Memory) Read(p Param, base Cell) (Cell, error) {
	switch p.Mode {
	case Position:
		return m.Load(p.Value)
	case Immediate:
		return p.Value, nil
	case Relative:
		return m.Load(p.Value + base)
	}
	return 0, errors.Wrapf(ErrInvalidOpcode, "bad parameter mode %d", p.Mode)
}

// Write stores v at the address designated by parameter p. Writing through an
// Immediate parameter fails with ErrInvalidWriteTarget.
func (m *Memory) Write(p Param, base, v Cell) error {
	switch p.Mode {
	case Position:
		return m.Store(p.Value, v)
	case Immediate:
		return errors.Wrapf(ErrInvalidWriteTarget, "immediate %d", p.Value)
	case Relative:
		return m.Store(p.Value+base, v)
	}
	return errors.Wrapf(ErrInvalidOpcode, "bad parameter mode %d", p.Mode)
}
