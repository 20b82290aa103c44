package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSnapshot() Snapshot {
	return Snapshot{
		ID:    "0_test/0",
		Table: DefaultTable,
		Columns: []Column{
			{Name: "id", Type: ColumnInteger},
			{Name: "humidity", Type: ColumnText},
			{Name: "hum", Type: ColumnDouble},
		},
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		wantErr bool
	}{
		{name: "valid snapshot with duplicate-meaning columns", mutate: func(s *Snapshot) {}},
		{name: "empty table", mutate: func(s *Snapshot) { s.Table = "" }, wantErr: true},
		{name: "no columns", mutate: func(s *Snapshot) { s.Columns = nil }, wantErr: true},
		{
			name:    "duplicate column name",
			mutate:  func(s *Snapshot) { s.Columns = append(s.Columns, Column{Name: "hum", Type: ColumnText}) },
			wantErr: true,
		},
		{
			name:    "invalid column type",
			mutate:  func(s *Snapshot) { s.Columns[1].Type = ColumnType(9) },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSchema)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSnapshotSameColumns(t *testing.T) {
	s := testSnapshot()

	assert.True(t, s.SameColumns([]Column{
		{Name: "id", Type: ColumnInteger},
		{Name: "humidity", Type: ColumnText},
		{Name: "hum", Type: ColumnDouble},
	}))
	assert.False(t, s.SameColumns([]Column{
		{Name: "id", Type: ColumnInteger},
		{Name: "hum", Type: ColumnDouble},
		{Name: "humidity", Type: ColumnText},
	}), "order matters")
	assert.False(t, s.SameColumns([]Column{
		{Name: "id", Type: ColumnInteger},
		{Name: "humidity", Type: ColumnDouble},
		{Name: "hum", Type: ColumnDouble},
	}), "type matters")
	assert.False(t, s.SameColumns(s.Columns[:2]))
}

func TestSnapshotColumnLookup(t *testing.T) {
	s := testSnapshot()

	c, ok := s.Column("humidity")
	assert.True(t, ok)
	assert.Equal(t, ColumnText, c.Type)

	_, ok = s.Column("weather")
	assert.False(t, ok)

	assert.Equal(t, []string{"id", "humidity", "hum"}, s.ColumnNames())
}
