package storage

import (
	"testing"
	"time"

	"github.com/poiesic/hanap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("juan dela cruz")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	death, _ := core.Date(2001, 7, 3)
	birth, _ := core.Date(1931, 2, 14)

	tests := []struct {
		name   string
		record *core.Record
	}{
		{
			name: "complete record",
			record: &core.Record{
				Id:           7,
				PlotId:       12,
				FirstName:    "Juan",
				MiddleName:   "Santos",
				LastName:     "Dela Cruz",
				DateOfBirth:  birth,
				DateOfDeath:  death,
				PlotNumber:   "A-12",
				PlotType:     core.PlotTypeFamily,
				CemeteryId:   1,
				CemeteryName: "Manila North Cemetery",
				Vector:       []float32{0.25, -0.5, 1},
				InsertedAt:   now,
				UpdatedAt:    now,
			},
		},
		{
			name: "unknown dates and no vector",
			record: &core.Record{
				Id:         8,
				FirstName:  "José",
				LastName:   "Rizal",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := UnmarshalRecord(MarshalRecord(tt.record))
			require.NoError(t, err)
			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.DisplayName(), decoded.DisplayName())
			assert.True(t, tt.record.DateOfBirth.Equal(decoded.DateOfBirth))
			assert.True(t, tt.record.DateOfDeath.Equal(decoded.DateOfDeath))
			assert.Equal(t, tt.record.DateOfDeath.IsZero(), decoded.DateOfDeath.IsZero())
			assert.Equal(t, tt.record.PlotNumber, decoded.PlotNumber)
			assert.Equal(t, tt.record.CemeteryName, decoded.CemeteryName)
			assert.Equal(t, tt.record.Vector, decoded.Vector)
			assert.True(t, tt.record.InsertedAt.Equal(decoded.InsertedAt))
		})
	}
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	_, err := UnmarshalRecord([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
