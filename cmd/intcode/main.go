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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/db47h/intcode/amp"
	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// cellList is a comma separated list of values. Values from repeated flags are
// appended.
type cellList []vm.Cell

func (l *cellList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for k, v := range *l {
		s[k] = strconv.FormatInt(int64(v), 10)
	}
	return strings.Join(s, ",")
}

func (l *cellList) Set(s string) error {
	v, err := parseCells(s)
	if err != nil {
		return err
	}
	*l = append(*l, v...)
	return nil
}

func (l *cellList) Get() interface{} { return *l }

type poke struct {
	addr vm.Cell
	v    []vm.Cell
}

// pokeList is a list of addr=value[,value...] memory patches.
type pokeList []poke

func (p *pokeList) String() string { return "" }

func (p *pokeList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return errors.Errorf("expected addr=value, got %q", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(s[:i]), 0, 64)
	if err != nil {
		return errors.Wrap(err, "bad address")
	}
	v, err := parseCells(s[i+1:])
	if err != nil {
		return err
	}
	if len(v) == 0 {
		return errors.Errorf("no value for address %d", addr)
	}
	*p = append(*p, poke{vm.Cell(addr), v})
	return nil
}

func (p *pokeList) Get() interface{} { return *p }

type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	image   string
	source  bool
	input   cellList
	set     pokeList
	phases  cellList
	search  cellList
	serial  bool
	workers int
	size    int
	steps   int64
	ascii   bool
	trace   bool
	dump    bool
	disasm  bool
	debug   bool

	// instance being run, for diagnostics
	i *vm.Instance
}

func (a *app) parseFlags(args []string) error {
	f := flag.NewFlagSet("intcode", flag.ContinueOnError)
	f.SetOutput(a.stderr)
	f.StringVar(&a.image, "image", "", "Load program from file `filename` (or first argument)")
	f.BoolVar(&a.source, "asm", false, "program file is assembly source")
	f.Var(&a.input, "input", "comma separated `values` to queue as input (can be specified multiple times)")
	f.Var(&a.set, "set", "patch memory at `addr=value[,value...]` before running (can be specified multiple times)")
	f.Var(&a.phases, "phases", "run an amplifier network with the given comma separated phase `settings`")
	f.BoolVar(&a.serial, "serial", false, "run amplifiers in series instead of a feedback loop")
	f.Var(&a.search, "search", "find the permutation of phase `settings` that yields the highest signal")
	f.IntVar(&a.workers, "workers", 0, "max number of concurrent networks for -search (0 = no limit)")
	f.IntVar(&a.size, "size", 0, "memory size limit in cells (0 = unlimited)")
	f.Int64Var(&a.steps, "steps", 0, "max number of instructions per machine (0 = unlimited)")
	f.BoolVar(&a.ascii, "ascii", false, "ASCII input and output")
	f.BoolVar(&a.trace, "trace", false, "trace execution to stderr")
	f.BoolVar(&a.dump, "dump", false, "dump memory image upon exit")
	f.BoolVar(&a.disasm, "disasm", false, "disassemble program and exit")
	f.BoolVar(&a.debug, "debug", false, "enable debug diagnostics")
	if err := f.Parse(args); err != nil {
		return err
	}
	if a.image == "" {
		a.image = f.Arg(0)
	}
	if a.image == "" {
		return errors.New("no program file specified")
	}
	if a.phases != nil && a.search != nil {
		return errors.New("-phases and -search are mutually exclusive")
	}
	if a.trace && a.search != nil {
		return errors.New("-trace cannot be used with -search")
	}
	return nil
}

func (a *app) load() ([]vm.Cell, error) {
	if !a.source {
		return vm.Load(a.image)
	}
	f, err := os.Open(a.image)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(a.image, f)
}

// options returns the machine options common to all modes.
func (a *app) options(ctx context.Context) []vm.Option {
	opts := []vm.Option{vm.Context(ctx)}
	if a.size > 0 {
		opts = append(opts, vm.MemLimit(a.size))
	}
	if a.steps > 0 {
		opts = append(opts, vm.StepLimit(a.steps))
	}
	for _, p := range a.set {
		opts = append(opts, vm.Poke(p.addr, p.v...))
	}
	if a.trace {
		opts = append(opts, vm.Trace(traceTo(a.stderr)))
	}
	return opts
}

func (a *app) main(ctx context.Context, args []string) error {
	if err := a.parseFlags(args); err != nil {
		return err
	}
	prog, err := a.load()
	if err != nil {
		return err
	}
	switch {
	case a.disasm:
		return asm.DisassembleAll(prog, 0, a.stdout)
	case a.phases != nil:
		run := amp.RunFeedback
		if a.serial {
			run = amp.RunSerial
		}
		s, err := run(prog, a.phases, a.options(ctx)...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, s)
		return err
	case a.search != nil:
		run := amp.RunFeedback
		if a.serial {
			run = amp.RunSerial
		}
		r, err := amp.MaxSignal(ctx, prog, a.search, run, a.workers, a.options(ctx)...)
		if err != nil {
			return err
		}
		p := cellList(r.Phases)
		_, err = fmt.Fprintf(a.stdout, "%d %s\n", r.Signal, &p)
		return err
	}
	return a.run(ctx, prog)
}

// diagnose writes err to stderr, with a stack trace and the state of the
// faulting machine in debug mode.
func (a *app) diagnose(err error) {
	if !a.debug {
		fmt.Fprintf(a.stderr, "\n%v\n", err)
		return
	}
	fmt.Fprintf(a.stderr, "\n%+v\n", err)
	i := a.i
	if i == nil {
		// amplifier faults only carry the PC
		var f *vm.Fault
		if errors.As(err, &f) {
			fmt.Fprintf(a.stderr, "PC: %v\n", f.PC)
		}
		return
	}
	var b strings.Builder
	if _, e := asm.Disassemble(i.Mem.Cells(), i.PC, &b); e != nil {
		b.WriteString("?")
	}
	fmt.Fprintf(a.stderr, "PC: %v (%s), RB: %v, State: %v, Steps: %v\n", i.PC, b.String(), i.RelBase, i.State(), i.InstructionCount())
	if l := i.Mem.Limit(); l > 0 {
		fmt.Fprintf(a.stderr, "Memory: %d cells, limit %d\n", i.Mem.Len(), l)
	} else {
		fmt.Fprintf(a.stderr, "Memory: %d cells\n", i.Mem.Len())
	}
}

func atExit(a *app, err error) {
	switch errors.Cause(err) {
	case nil, io.EOF, flag.ErrHelp:
		return
	}
	a.diagnose(err)
	os.Exit(1)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		// a second interrupt terminates the program
		<-ctx.Done()
		stop()
	}()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	atExit(a, a.main(ctx, os.Args[1:]))
}
