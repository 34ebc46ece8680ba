// package intcode defines the word type and program encoding shared by the
// Intcode virtual machine and the tools built on it.
package intcode

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lukechampine.com/blake3"
)

// Word is the unit of memory, of input, and of output.
type Word = int64

const (
	WordBits  = 64
	WordBytes = WordBits / 8

	// IDSize is the size of a ProgramID in bytes.
	IDSize = 32
	// Base64Alphabet is used when encoding IDs as base64 strings.
	// It is a URL and filepath safe encoding, which maintains ordering.
	Base64Alphabet = "-0123456789" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + "_" + "abcdefghijklmnopqrstuvwxyz"
)

// ProgramID identifies the initial contents of a program.
type ProgramID [IDSize]byte

var enc = base64.NewEncoding(Base64Alphabet).WithPadding(base64.NoPadding)

func (id ProgramID) String() string {
	return enc.EncodeToString(id[:])
}

func (id ProgramID) IsZero() bool {
	return id == (ProgramID{})
}

func (a ProgramID) Compare(b ProgramID) int {
	return bytes.Compare(a[:], b[:])
}

func (id ProgramID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ProgramID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseProgramID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseProgramID decodes the output of ProgramID.String
func ParseProgramID(x string) (ProgramID, error) {
	if enc.DecodedLen(len(x)) != IDSize {
		return ProgramID{}, fmt.Errorf("intcode: program id has wrong length %d", len(x))
	}
	var id ProgramID
	if _, err := enc.Decode(id[:], []byte(x)); err != nil {
		return ProgramID{}, err
	}
	return id, nil
}

// Hash calculates the ProgramID of code.
func Hash(code []Word) (ret ProgramID) {
	h := blake3.New(IDSize, nil)
	var buf [WordBytes]byte
	for _, w := range code {
		binary.LittleEndian.PutUint64(buf[:], uint64(w))
		h.Write(buf[:])
	}
	h.Sum(ret[:0])
	return ret
}

// Parse reads a comma separated list of signed integers.
// Whitespace around each element is ignored.
func Parse(data []byte) ([]Word, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.New("intcode: empty program")
	}
	parts := strings.Split(text, ",")
	code := make([]Word, 0, len(parts))
	for i, part := range parts {
		w, err := strconv.ParseInt(strings.TrimSpace(part), 10, WordBits)
		if err != nil {
			return nil, fmt.Errorf("intcode: word %d: %w", i, err)
		}
		code = append(code, w)
	}
	return code, nil
}

// Format is the inverse of Parse
func Format(code []Word) string {
	var sb strings.Builder
	for i, w := range code {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(w, 10))
	}
	return sb.String()
}

// Clone returns a copy of code which does not alias it.
func Clone(code []Word) []Word {
	return append([]Word(nil), code...)
}
