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
	"context"
	"io"

	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the scheduling state of an Instance.
type State int

// Instance states.
const (
	Runnable  State = iota // ready to step
	Suspended                // waiting for input
	Halted                   // executed a halt instruction
	Faulted                  // stopped on an error
)

func (s State) String() string {
	switch s {
	case Runnable:
		return "runnable"
	case Suspended:
		return "suspended"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// TraceFunc is the function prototype for instruction trace hooks. It is
// called before each instruction is executed, with i.PC pointing to it.
type TraceFunc func(i *Instance, in *Instruction)

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int    // Program Counter
	RelBase  Cell   // Relative base register
	Mem      Memory // Memory
	state    State
	err      error
	input    []Cell
	insCount int64
	maxSteps int64
	trace    TraceFunc
	ctx      context.Context
}

// Option interface
type Option func(*Instance) error

// Input queues the given values as program input.
func Input(v ...Cell) Option {
	return func(i *Instance) error { i.PushInput(v...); return nil }
}

// MemLimit limits memory to size cells. Any access at or beyond that limit
// faults with ErrOutOfBounds. The default is 0, no limit.
func MemLimit(size int) Option {
	return func(i *Instance) error {
		return i.Mem.SetLimit(size)
	}
}

// StepLimit makes the instance fault with ErrStepLimit after executing n
// instructions. The default is 0, no limit.
func StepLimit(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("invalid step limit %d", n)
		}
		i.maxSteps = n
		return nil
	}
}

// Poke writes the given values to memory, starting at address addr, before
// the program is run.
func Poke(addr Cell, v ...Cell) Option {
	return func(i *Instance) error {
		for k, c := range v {
			if err := i.Mem.Store(addr+Cell(k), c); err != nil {
				return errors.Wrap(err, "poke failed")
			}
		}
		return nil
	}
}

// Trace sets fn as the instruction trace hook.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// PollInterval is the number of instructions between two checks of the
// context set with the Context option.
const PollInterval = 1 << 12

// Context makes the instance fault with the context's error once ctx is done.
// ctx is checked every PollInterval instructions, starting with the first one.
func Context(ctx context.Context) Option {
	return func(i *Instance) error { i.ctx = ctx; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The program is copied into the instance memory, so the same program slice
// can safely be used to create several instances.
//
// Options will be set by calling SetOptions.
func New(program []Cell, opts ...Option) (*Instance, error) {
	i := &Instance{Mem: *NewMemory(program)}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// PushInput appends the given values to the input queue. A Suspended instance
// becomes Runnable again.
func (i *Instance) PushInput(v ...Cell) {
	i.input = append(i.input, v...)
	if i.state == Suspended && len(i.input) > 0 {
		i.state = Runnable
	}
}

// Pending returns the input values not consumed yet. Note that value changes
// will be reflected in the instance's queue, but re-slicing will not affect it.
func (i *Instance) Pending() []Cell {
	return i.input
}

// State returns the current state of the instance.
func (i *Instance) State() State {
	return i.state
}

// Err returns the error that caused the instance to fault, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the current memory contents to the specified io.Writer, in
// program text format.
func (i *Instance) Dump(w io.Writer) error {
	return Write(w, i.Mem.Cells())
}
