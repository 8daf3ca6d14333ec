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

package vm_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"golang.org/x/exp/slices"
)

type C []vm.Cell

func setup(code C, opts ...vm.Option) *vm.Instance {
	i, err := vm.New(code, opts...)
	if err != nil {
		panic(err)
	}
	return i
}

func runProgram(code C, input ...vm.Cell) (C, *vm.Instance, error) {
	i := setup(code, vm.Input(input...))
	out, err := i.Run()
	return out, i, err
}

func assemble(t testing.TB, name, code string) C {
	t.Helper()
	img, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func check(t *testing.T, testName string, i *vm.Instance, out, expected C) bool {
	t.Helper()
	if i.State() != vm.Halted {
		t.Errorf("%s: expected halted state, got %v (err: %v)", testName, i.State(), i.Err())
		return false
	}
	if !slices.Equal(out, expected) {
		t.Errorf("%s: Output error: expected %d, got %d", testName, expected, out)
		return false
	}
	return true
}

var tests = [...]struct {
	name   string
	code   string
	input  C
	output C
}{
	{"halt", "halt", nil, nil},
	{"out", "out 42; halt", nil, C{42}},
	{"in", "in @x; out @x; halt; x: .dat 0", C{-7}, C{-7}},
	{"add", "add 2, -3, @x; out @x; halt; x: .dat 0", nil, C{-1}},
	{"mul", "mul @x, 5, @x; out @x; halt; x: .dat 3", nil, C{15}},
	{"lt", "lt 1, 2, @x; out @x; lt 2, 1, @x; out @x; lt 2, 2, @x; out @x; halt; x: .dat 0", nil, C{1, 0, 0}},
	{"eq", "eq 1, 2, @x; out @x; eq 5, 5, @x; out @x; halt; x: .dat 7", nil, C{0, 1}},
	{"jt", "jt 0, fail; jt 2, ok; fail: out 0; halt; ok: out 1; halt", nil, C{1}},
	{"jf", "jf 3, fail; jf 0, ok; fail: out 0; halt; ok: out 1; halt", nil, C{1}},
	{"jump position", "jt 1, @target; out 0; halt; target: .dat ok; ok: out 1; halt", nil, C{1}},
	{"arb", "arb x; out rb+0; arb -1; out rb+1; halt; x: .dat 9", nil, C{9, 9}},
	{"relative write", "arb 100; add 20, 22, rb+5; out @105; halt", nil, C{42}},
	{"relative in", "arb 10; in rb-1; out @9; halt", C{5}, C{5}},
	{"loop", `
		// count down from 3
	loop:	out @n
		add @n, -1, @n
		jt @n, loop
		halt
	n:	.dat 3`, nil, C{3, 2, 1}},
	{"self modifying", `
			// patch the halt below into an immediate out
		add 104, 0, @patch
	patch:	.dat 99, 77
		halt`, nil, C{77}},
}

func TestCore(t *testing.T) {
	for _, test := range tests {
		img := assemble(t, test.name, test.code)
		out, i, err := runProgram(img, test.input...)
		if err != nil {
			t.Errorf("%s: %+v", test.name, err)
			continue
		}
		if !check(t, test.name, i, out, test.output) {
			var b bytes.Buffer
			b.WriteString(test.name)
			b.WriteString(":\n")
			asm.DisassembleAll(img, 0, &b)
			t.Log(b.String())
		}
	}
}

// memory results of simple add/mul programs.
func TestCore_memory(t *testing.T) {
	data := []struct {
		prog, mem C
	}{
		{C{1, 0, 0, 0, 99}, C{2, 0, 0, 0, 99}},
		{C{2, 3, 0, 3, 99}, C{2, 3, 0, 6, 99}},
		{C{2, 4, 4, 5, 99, 0}, C{2, 4, 4, 5, 99, 9801}},
		{C{1, 1, 1, 4, 99, 5, 6, 0, 99}, C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{C{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, C{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{C{1002, 4, 3, 4, 33}, C{1002, 4, 3, 4, 99}},
		{C{1101, 100, -1, 4, 0}, C{1101, 100, -1, 4, 99}},
	}
	for _, d := range data {
		_, i, err := runProgram(d.prog)
		if err != nil {
			t.Errorf("%v: %v", d.prog, err)
			continue
		}
		if got := C(i.Mem.Cells()); !slices.Equal(got, d.mem) {
			t.Errorf("%v: expected memory %v, got %v", d.prog, d.mem, got)
		}
	}
}

// [1,a,b,c,99] leaves mem[a] + mem[b] in mem[c].
func TestCore_addProperty(t *testing.T) {
	for a := vm.Cell(0); a < 7; a++ {
		for b := vm.Cell(0); b < 7; b++ {
			for c := vm.Cell(5); c < 7; c++ {
				prog := C{1, a, b, c, 99, 17, -4}
				want := prog[a] + prog[b]
				_, i, err := runProgram(prog)
				if err != nil {
					t.Fatalf("%v: %v", prog, err)
				}
				if got, _ := i.Mem.Load(c); got != want {
					t.Errorf("%v: mem[%d] = %d, expected %d", prog, c, got, want)
				}
			}
		}
	}
	// result cell 0
	_, i, _ := runProgram(C{1, 5, 6, 0, 99, 20, 22})
	if v, _ := i.Mem.Load(0); v != 42 {
		t.Errorf("mem[0] = %d, expected 42", v)
	}
}

// comparison and jump programs reading one input.
func TestCore_compare(t *testing.T) {
	prog := map[string]C{
		"eq8 position":  {3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8},
		"lt8 position":  {3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8},
		"eq8 immediate": {3, 3, 1108, -1, 8, 3, 4, 3, 99},
		"lt8 immediate": {3, 3, 1107, -1, 8, 3, 4, 3, 99},
		"nz position":   {3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9},
		"nz immediate":  {3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1},
		"cmp8": {3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
			1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
			999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99},
	}
	data := []struct {
		name string
		in   vm.Cell
		out  vm.Cell
	}{
		{"eq8 position", 8, 1}, {"eq8 position", 7, 0},
		{"lt8 position", 7, 1}, {"lt8 position", 8, 0},
		{"eq8 immediate", 8, 1}, {"eq8 immediate", 9, 0},
		{"lt8 immediate", -3, 1}, {"lt8 immediate", 12, 0},
		{"nz position", 0, 0}, {"nz position", 5, 1},
		{"nz immediate", 0, 0}, {"nz immediate", -5, 1},
		{"cmp8", 7, 999}, {"cmp8", 8, 1000}, {"cmp8", 9, 1001},
	}
	for _, d := range data {
		out, _, err := runProgram(prog[d.name], d.in)
		if err != nil {
			t.Errorf("%s(%d): %v", d.name, d.in, err)
			continue
		}
		if !slices.Equal(out, C{d.out}) {
			t.Errorf("%s(%d): expected [%d], got %v", d.name, d.in, d.out, out)
		}
	}
}

// A relative access after adjusting the base by k hits the same cell as a
// position access at offset k.
func TestCore_relative(t *testing.T) {
	const target = 20
	for k := vm.Cell(-5); k <= 15; k++ {
		rel := make(C, target+1)
		copy(rel, C{109, k, 204, target - k, 99})
		rel[target] = 1000 + k
		pos := make(C, target+1)
		copy(pos, C{109, k, 4, target, 99})
		pos[target] = 1000 + k

		ro, _, err := runProgram(rel)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		po, _, err := runProgram(pos)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if !slices.Equal(ro, po) || !slices.Equal(ro, C{1000 + k}) {
			t.Errorf("k=%d: relative %v, position %v", k, ro, po)
		}

		// same for writes
		rw := C{109, k, 21101, 3, 4, target - k, 4, target, 99}
		pw := C{109, k, 1101, 3, 4, target, 4, target, 99}
		ro, ri, err := runProgram(rw)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		po, pi, err := runProgram(pw)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if !slices.Equal(ro, C{7}) || !slices.Equal(po, C{7}) || ri.Mem.Len() != pi.Mem.Len() {
			t.Errorf("k=%d: relative write %v, position write %v", k, ro, po)
		}
	}
}

func TestCore_quine(t *testing.T) {
	prog := C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	out, _, err := runProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out, prog) {
		t.Errorf("Expected %v\nGot %v", prog, out)
	}
}

func TestCore_largeValues(t *testing.T) {
	out, _, err := runProgram(C{1102, 34915192, 34915192, 7, 4, 7, 99, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || len(fmt.Sprint(out[0])) != 16 || out[0] != 1219070632396864 {
		t.Errorf("Expected a 16 digit value, got %v", out)
	}
	out, _, err = runProgram(C{104, 1125899906842624, 99})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out, C{1125899906842624}) {
		t.Errorf("Expected [1125899906842624], got %v", out)
	}
}

var fib = `
	// output the first n fibonacci numbers, n read from input
	in @n
loop:	out @a
	add @a, @b, @t
	add @b, 0, @a
	add @t, 0, @b
	add @n, -1, @n
	jt @n, loop
	halt
n:	.dat 0
a:	.dat 0
b:	.dat 1
t:	.dat 0
`

func TestCore_fib(t *testing.T) {
	out, _, err := runProgram(assemble(t, "fib", fib), 10)
	if err != nil {
		t.Fatal(err)
	}
	if expected := (C{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}); !slices.Equal(out, expected) {
		t.Errorf("Expected %v, got %v", expected, out)
	}
}

func Benchmark_Fib(b *testing.B) {
	img := assemble(b, "fib", fib)
	for c := 0; c < b.N; c++ {
		i := setup(img, vm.Input(90))
		if _, err := i.Run(); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Quine(b *testing.B) {
	prog := C{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	for c := 0; c < b.N; c++ {
		i := setup(prog)
		if _, err := i.Run(); err != nil {
			b.Fatal(err)
		}
	}
}
