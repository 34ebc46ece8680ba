package intcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tcs := []struct {
		Name string
		In   string
		Out  []Word
		Err  bool
	}{
		{Name: "Single", In: "99", Out: []Word{99}},
		{Name: "Newline", In: "1,0,0,0,99\n", Out: []Word{1, 0, 0, 0, 99}},
		{Name: "Spaces", In: " 1, -2 ,3 ", Out: []Word{1, -2, 3}},
		{Name: "Large", In: "104,1125899906842624,99", Out: []Word{104, 1125899906842624, 99}},
		{Name: "Empty", In: "  \n", Err: true},
		{Name: "Junk", In: "1,x,3", Err: true},
		{Name: "TrailingComma", In: "1,2,", Err: true},
	}
	for _, tc := range tcs {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			code, err := Parse([]byte(tc.In))
			if tc.Err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.Out, code)
		})
	}
}

func TestFormat(t *testing.T) {
	code := []Word{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}
	s := Format(code)
	require.Equal(t, "3,9,8,9,10,9,4,9,99,-1,8", s)
	code2, err := Parse([]byte(s))
	require.NoError(t, err)
	require.Equal(t, code, code2)
}

func TestHash(t *testing.T) {
	a := Hash([]Word{1, 0, 0, 0, 99})
	b := Hash([]Word{1, 0, 0, 0, 99})
	c := Hash([]Word{2, 0, 0, 0, 99})
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.False(t, a.IsZero())
	require.NotEqual(t, Hash(nil), Hash([]Word{0}))
}

func TestProgramID(t *testing.T) {
	id := Hash([]Word{104, 7, 99})
	id2, err := ParseProgramID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, id2)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	var id3 ProgramID
	require.NoError(t, json.Unmarshal(data, &id3))
	require.Equal(t, id, id3)

	_, err = ParseProgramID("abc")
	require.Error(t, err)
}

func TestProgramIDOrder(t *testing.T) {
	// the encoding preserves byte order
	a := ProgramID{1}
	b := ProgramID{2}
	require.Equal(t, -1, a.Compare(b))
	require.Less(t, a.String(), b.String())
}

func TestClone(t *testing.T) {
	code := []Word{1, 2, 3}
	c := Clone(code)
	c[0] = 100
	require.Equal(t, Word(1), code[0])
}
