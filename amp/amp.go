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

package amp

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var (
	// ErrPhases is returned when a phase list is empty or contains duplicates.
	ErrPhases = errors.New("invalid phase settings")
	// ErrStalled is returned when an amplifier waits for input without having
	// produced any output.
	ErrStalled = errors.New("amplifier stalled")
	// ErrNoOutput is returned by RunSerial when an amplifier halts without
	// output.
	ErrNoOutput = errors.New("amplifier produced no output")
)

func checkPhases(phases []vm.Cell) error {
	if len(phases) == 0 {
		return errors.Wrap(ErrPhases, "empty phase list")
	}
	seen := make(map[vm.Cell]struct{}, len(phases))
	for _, p := range phases {
		if _, ok := seen[p]; ok {
			return errors.Wrapf(ErrPhases, "duplicate phase %d", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// newAmp returns a new instance loaded with program, with phase as its first
// input value.
func newAmp(program []vm.Cell, phase vm.Cell, opts []vm.Option, in ...vm.Cell) (*vm.Instance, error) {
	o := make([]vm.Option, 0, len(opts)+1)
	o = append(o, vm.Input(append([]vm.Cell{phase}, in...)...))
	return vm.New(program, append(o, opts...)...)
}

// Network is a ring of amplifiers.
type Network struct {
	Amps   []*vm.Instance
	Signal vm.Cell // last signal produced
}

// NewNetwork returns a new feedback network with one amplifier per phase
// setting. All amplifiers run the same program and are configured with the
// given options.
func NewNetwork(program, phases []vm.Cell, opts ...vm.Option) (*Network, error) {
	if err := checkPhases(phases); err != nil {
		return nil, err
	}
	n := &Network{Amps: make([]*vm.Instance, len(phases))}
	for k, p := range phases {
		i, err := newAmp(program, p, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "amplifier %d", k)
		}
		n.Amps[k] = i
	}
	return n, nil
}

// Run runs the network until completion and returns the last signal produced.
//
// The initial signal 0 is fed to the first amplifier. Amplifiers are then run
// in turn, each one receiving the last output of the previous one. The run
// ends when the last amplifier halts, or when any amplifier halts without
// producing output.
func (n *Network) Run() (vm.Cell, error) {
	for {
		for k, a := range n.Amps {
			a.PushInput(n.Signal)
			out, st, err := a.RunUntilSuspend()
			if err != nil {
				return n.Signal, errors.Wrapf(err, "amplifier %d", k)
			}
			if len(out) > 0 {
				n.Signal = out[len(out)-1]
			}
			switch {
			case st == vm.Halted && (len(out) == 0 || k == len(n.Amps)-1):
				return n.Signal, nil
			case st == vm.Suspended && len(out) == 0:
				return n.Signal, errors.Wrapf(ErrStalled, "amplifier %d at pc %d", k, a.PC)
			}
		}
	}
}

// RunFeedback runs program in a feedback network configured with the given
// phase settings and returns the final signal.
func RunFeedback(program, phases []vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	n, err := NewNetwork(program, phases, opts...)
	if err != nil {
		return 0, err
	}
	return n.Run()
}

// RunSerial runs program once per phase setting, in sequence. Each amplifier
// reads its phase setting then the previous amplifier's output (0 for the
// first one). It returns the last output of the last amplifier.
func RunSerial(program, phases []vm.Cell, opts ...vm.Option) (vm.Cell, error) {
	if err := checkPhases(phases); err != nil {
		return 0, err
	}
	var signal vm.Cell
	for k, p := range phases {
		i, err := newAmp(program, p, opts, signal)
		if err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", k)
		}
		out, st, err := i.RunUntilSuspend()
		if err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", k)
		}
		if len(out) == 0 {
			if st == vm.Suspended {
				return 0, errors.Wrapf(ErrStalled, "amplifier %d at pc %d", k, i.PC)
			}
			return 0, errors.Wrapf(ErrNoOutput, "amplifier %d", k)
		}
		signal = out[len(out)-1]
	}
	return signal, nil
}
