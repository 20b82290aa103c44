package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		in      string
		want    ColumnType
		wantErr bool
	}{
		{in: "integer", want: ColumnInteger},
		{in: "INTEGER", want: ColumnInteger},
		{in: " double ", want: ColumnDouble},
		{in: "Text", want: ColumnText},
		{in: "DATE", want: ColumnDate},
		{in: "doubel", wantErr: true},
		{in: "", wantErr: true},
		{in: "varchar(20)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColumnType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrSchema)
				assert.Equal(t, ColumnInvalid, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnTypeRendering(t *testing.T) {
	assert.Equal(t, "double", ColumnDouble.String())
	assert.Equal(t, "DOUBLE", ColumnDouble.SQL())
	assert.Equal(t, "ColumnType(42)", ColumnType(42).String())
	assert.False(t, ColumnInvalid.Valid())
	assert.True(t, ColumnDate.Valid())
}

func TestColumnJSON(t *testing.T) {
	data, err := json.Marshal(Column{Name: "humidity", Type: ColumnText})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"humidity","type":"text"}`, string(data))

	_, err = json.Marshal(Column{Name: "humidity"})
	assert.Error(t, err)
}

func TestColumnValidate(t *testing.T) {
	tests := []struct {
		name    string
		col     Column
		wantErr bool
	}{
		{name: "valid", col: Column{Name: "felt_temp", Type: ColumnDouble}},
		{name: "leading underscore", col: Column{Name: "_id", Type: ColumnInteger}},
		{name: "empty name", col: Column{Name: "", Type: ColumnText}, wantErr: true},
		{name: "space in name", col: Column{Name: "felt temp", Type: ColumnText}, wantErr: true},
		{name: "leading digit", col: Column{Name: "1st", Type: ColumnText}, wantErr: true},
		{name: "quote in name", col: Column{Name: `x"y`, Type: ColumnText}, wantErr: true},
		{name: "unset type", col: Column{Name: "hum"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.col.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSchema)
				return
			}
			assert.NoError(t, err)
		})
	}
}
