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
	"context"
	"sync"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// RunFunc runs a program with the given phase settings and returns the
// resulting signal. RunFeedback and RunSerial are RunFuncs.
type RunFunc func(program, phases []vm.Cell, opts ...vm.Option) (vm.Cell, error)

// Result is the outcome of a MaxSignal search.
type Result struct {
	Signal vm.Cell
	Phases []vm.Cell
}

// better reports whether r should replace best. Ties go to the lexically
// smallest phase list.
func (r *Result) better(best *Result) bool {
	if best.Phases == nil || r.Signal > best.Signal {
		return true
	}
	return r.Signal == best.Signal && slices.Compare(r.Phases, best.Phases) < 0
}

// Permute calls fn for every permutation of set, generated in place with Heap's
// algorithm. fn must not retain its argument. Permute stops at the first error
// returned by fn and returns it.
func Permute(set []vm.Cell, fn func([]vm.Cell) error) error {
	c := make([]int, len(set))
	if err := fn(set); err != nil {
		return err
	}
	for k := 1; k < len(set); {
		if c[k] >= k {
			c[k] = 0
			k++
			continue
		}
		if k&1 == 0 {
			set[0], set[k] = set[k], set[0]
		} else {
			set[c[k]], set[k] = set[k], set[c[k]]
		}
		if err := fn(set); err != nil {
			return err
		}
		c[k]++
		k = 1
	}
	return nil
}

// MaxSignal runs program with every permutation of phases and returns the
// highest signal along with the phase settings that produced it. Up to workers
// permutations are evaluated concurrently; if workers <= 0, there is no limit.
//
// The first error returned by run cancels the search. Machines are created
// with a vm.Context option so that running networks stop as well.
func MaxSignal(ctx context.Context, program, phases []vm.Cell, run RunFunc, workers int, opts ...vm.Option) (Result, error) {
	if err := checkPhases(phases); err != nil {
		return Result{}, err
	}
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	var (
		mu   sync.Mutex
		best Result
	)
	// running networks stop when the search is canceled
	opts = append(opts[:len(opts):len(opts)], vm.Context(gctx))
	err := Permute(slices.Clone(phases), func(p []vm.Cell) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p = slices.Clone(p)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := run(program, p, opts...)
			if err != nil {
				return errors.Wrapf(err, "phases %v", p)
			}
			r := Result{s, p}
			mu.Lock()
			if r.better(&best) {
				best = r
			}
			mu.Unlock()
			return nil
		})
		return nil
	})
	if gerr := g.Wait(); gerr != nil {
		return Result{}, gerr
	}
	if err != nil {
		return Result{}, err
	}
	// the group context is done once Wait returns
	if err = ctx.Err(); err != nil {
		return Result{}, err
	}
	return best, nil
}
