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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

const relBase = "rb"

type labelSite struct {
	pos     scanner.Position
	address int
}

type fixup struct {
	labelSite
	name string
}

type operand struct {
	pos   scanner.Position
	mode  vm.Mode
	v     vm.Cell
	label string
}

type parser struct {
	i      []vm.Cell
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]labelSite
	uses   []fixup
	err    error

	// one token look-ahead
	tok    rune
	text   string
	pos    scanner.Position
	unread bool
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 256)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) errorf(pos scanner.Position, format string, args ...interface{}) {
	if p.err == nil {
		p.err = errors.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
	}
}

func (p *parser) next() rune {
	if p.unread {
		p.unread = false
		return p.tok
	}
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.pos = p.s.Position
	return p.tok
}

func (p *parser) back() {
	p.unread = true
}

func (p *parser) token() string {
	switch p.tok {
	case scanner.EOF:
		return "EOF"
	case '\n':
		return "newline"
	}
	return strconv.Quote(p.text)
}

func (p *parser) int() vm.Cell {
	n, err := strconv.ParseInt(p.text, 0, 64)
	if err != nil {
		p.errorf(p.pos, "bad integer %s", p.text)
	}
	return vm.Cell(n)
}

func (p *parser) define(name string, pos scanner.Position) {
	if name == relBase {
		p.errorf(pos, "%s is a reserved name", name)
		return
	}
	if l, ok := p.labels[name]; ok {
		p.errorf(pos, "label redefinition: %s, previous definition here: %s", name, l.pos)
		return
	}
	p.labels[name] = labelSite{pos, p.pc}
}

// value parses an integer, character or label.
func (p *parser) value(o *operand, tok rune) {
	switch tok {
	case '-':
		if p.next() != scanner.Int {
			p.errorf(p.pos, "expected integer after '-', got %s", p.token())
			return
		}
		o.v = -p.int()
	case scanner.Int:
		o.v = p.int()
	case scanner.Char:
		s, err := strconv.Unquote(p.text)
		if r := []rune(s); err != nil || len(r) != 1 {
			p.errorf(p.pos, "bad character literal %s", p.text)
		} else {
			o.v = vm.Cell(r[0])
		}
	case scanner.Ident:
		if p.text == relBase {
			p.errorf(p.pos, "unexpected %s", relBase)
			return
		}
		o.label = p.text
	default:
		p.errorf(p.pos, "expected value, got %s", p.token())
	}
}

func (p *parser) operand() (o operand) {
	tok := p.next()
	o.pos = p.pos
	switch {
	case tok == '@':
		o.mode = vm.Position
		p.value(&o, p.next())
	case tok == scanner.Ident && p.text == relBase:
		o.mode = vm.Relative
		switch t := p.next(); t {
		case '+', '-':
			if p.next() != scanner.Int {
				p.errorf(p.pos, "expected integer offset, got %s", p.token())
				return o
			}
			o.v = p.int()
			if t == '-' {
				o.v = -o.v
			}
		default:
			p.back()
		}
	default:
		o.mode = vm.Immediate
		p.value(&o, tok)
	}
	return o
}

// emit writes an operand value, recording label uses for later resolution.
func (p *parser) emit(o operand) {
	if o.label != "" {
		p.uses = append(p.uses, fixup{labelSite{o.pos, p.pc}, o.label})
	}
	p.write(o.v)
}

func (p *parser) endStatement() {
	switch p.next() {
	case '\n', ';':
	case scanner.EOF:
		p.back()
	default:
		p.errorf(p.pos, "expected end of statement, got %s", p.token())
	}
}

// writesLast returns true if the last parameter of op is a destination.
func writesLast(op vm.Opcode) bool {
	switch op {
	case vm.OpAdd, vm.OpMul, vm.OpIn, vm.OpLessThan, vm.OpEquals:
		return true
	}
	return false
}

func (p *parser) instruction() {
	op, ok := opcodeIndex[strings.ToLower(p.text)]
	if !ok {
		p.errorf(p.pos, "unknown instruction %s", p.text)
		return
	}
	var (
		args  [vm.MaxParams]operand
		modes [vm.MaxParams]vm.Mode
		n     = op.Arity()
	)
	for k := 0; k < n; k++ {
		if k > 0 && p.next() != ',' {
			p.back()
		}
		args[k] = p.operand()
		if p.err != nil {
			return
		}
		modes[k] = args[k].mode
		if k == n-1 && writesLast(op) && modes[k] == vm.Immediate {
			p.errorf(args[k].pos, "%s: immediate destination operand", op)
			return
		}
	}
	p.write(vm.Encode(op, modes[:n]...))
	for k := 0; k < n; k++ {
		p.emit(args[k])
	}
	p.endStatement()
}

func (p *parser) directive() {
	if p.next() != scanner.Ident {
		p.errorf(p.pos, "expected directive name, got %s", p.token())
		return
	}
	pos := p.pos
	switch p.text {
	case "dat", "data":
		for {
			tok := p.next()
			switch tok {
			case '\n', ';':
				return
			case scanner.EOF:
				p.back()
				return
			case ',':
				continue
			case scanner.String:
				s, err := strconv.Unquote(p.text)
				if err != nil {
					p.errorf(p.pos, "bad string literal %s", p.text)
					return
				}
				for k := 0; k < len(s); k++ {
					p.write(vm.Cell(s[k]))
				}
				continue
			}
			o := operand{pos: p.pos, mode: vm.Immediate}
			p.value(&o, tok)
			if p.err != nil {
				return
			}
			p.emit(o)
		}
	case "org":
		if p.next() != scanner.Int {
			p.errorf(p.pos, ".org: expected address, got %s", p.token())
			return
		}
		v := p.int()
		if v < 0 {
			p.errorf(p.pos, ".org: negative address %d", v)
			return
		}
		p.pc = int(v)
		p.endStatement()
	default:
		p.errorf(pos, "unknown directive .%s", p.text)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Cell, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errorf(s.Pos(), "%s", msg)
	}
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanChars | scanner.ScanStrings | scanner.ScanComments | scanner.SkipComments
	p.s.Whitespace = 1<<'\t' | 1<<'\r' | 1<<' '
	p.s.Filename = name

	for tok := p.next(); p.err == nil && tok != scanner.EOF; tok = p.next() {
		switch tok {
		case '\n', ';':
		case '.':
			p.directive()
		case scanner.Ident:
			if p.s.Peek() == ':' {
				p.s.Next()
				p.define(p.text, p.pos)
				continue
			}
			p.instruction()
		default:
			p.errorf(p.pos, "unexpected %s", p.token())
		}
	}

	// resolve labels
	for _, u := range p.uses {
		if p.err != nil {
			break
		}
		l, ok := p.labels[u.name]
		if !ok {
			p.errorf(u.pos, "undefined label %s", u.name)
			break
		}
		p.i[u.address] += vm.Cell(l.address)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.i[:p.end], nil
}
