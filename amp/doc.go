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

// Package amp runs chains of Intcode machines where the output of each machine
// is fed to the input of the next one.
//
// In a feedback network, the last machine's output is fed back to the first
// machine, and the machines are run in turn until they halt. Machines are
// multiplexed on the calling goroutine: each one runs until it needs more
// input, and hands its last output to the next machine.
//
// MaxSignal searches all permutations of a set of phase settings for the one
// that yields the highest output signal. Permutations are evaluated
// concurrently.
package amp
