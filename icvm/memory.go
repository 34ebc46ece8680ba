package icvm

import "slices"

// MaxMemory is the largest number of words a Memory will hold.
// Writes at or above it fail with ErrAddressTooLarge.
const MaxMemory = 1 << 24

// Memory is the address space of a single VM.
// Reads past the end return 0. Writes past the end grow the memory, filling
// the gap with zeros, up to MaxMemory words.
type Memory struct {
	words []Word
}

// NewMemory returns a Memory holding a copy of code.
func NewMemory(code []Word) Memory {
	return Memory{words: slices.Clone(code)}
}

func (m *Memory) Len() int {
	return len(m.words)
}

func (m *Memory) Get(addr Word) (Word, error) {
	if addr < 0 {
		return 0, ErrNegativeAddress{Addr: addr}
	}
	if addr >= Word(len(m.words)) {
		return 0, nil
	}
	return m.words[addr], nil
}

func (m *Memory) Set(addr, x Word) error {
	if addr < 0 {
		return ErrNegativeAddress{Addr: addr}
	}
	if addr >= MaxMemory {
		return ErrAddressTooLarge{Addr: addr}
	}
	if addr >= Word(len(m.words)) {
		n := len(m.words)
		m.words = slices.Grow(m.words, int(addr)+1-n)
		m.words = m.words[:addr+1]
		clear(m.words[n:])
	}
	m.words[addr] = x
	return nil
}

// Words returns a copy of the contents of memory.
func (m *Memory) Words() []Word {
	return slices.Clone(m.words)
}
