package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeMovePayload_Cell(t *testing.T) {
	cases := []struct {
		name  string
		index string
		cell  int
		ok    bool
	}{
		{name: "number", index: `4`, cell: 4, ok: true},
		{name: "numeric string", index: `"7"`, cell: 7, ok: true},
		{name: "zero", index: `0`, cell: 0, ok: true},
		{name: "negative number still parses", index: `-1`, cell: -1, ok: true},
		{name: "fractional number", index: `1.5`, ok: false},
		{name: "non-numeric string", index: `"upper-left"`, ok: false},
		{name: "null", index: `null`, ok: false},
		{name: "object", index: `{"cell":1}`, ok: false},
		{name: "missing", index: ``, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a make_move payload with this index representation
			payload := MakeMovePayload{RoomName: "arena", Index: json.RawMessage(tc.index)}

			// When: parsing the cell
			cell, ok := payload.Cell()

			// Then: only integers, as number or string, are accepted
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.cell, cell)
			}
		})
	}
}
