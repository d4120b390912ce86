package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "Inteiro", raw: "42", want: 42},
		{name: "Float integral", raw: "10.0", want: 10},
		{name: "Com espaços", raw: " 7 ", want: 7},
		{name: "Float fracionário", raw: "10.5", wantErr: true},
		{name: "Texto", raw: "abc", wantErr: true},
		{name: "Infinito", raw: "inf", wantErr: true},
		{name: "Acima do limite de int64", raw: "1e30", wantErr: true},
		{name: "Abaixo do limite de int64", raw: "-1e30", wantErr: true},
		{name: "Limite exato de float64", raw: "9223372036854775808", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalFloat(t *testing.T) {
	assert.Nil(t, ParseOptionalFloat(nil))
	assert.Nil(t, ParseOptionalFloat(strPtr("caro")))
	assert.Equal(t, 1234.5, *ParseOptionalFloat(strPtr("1,234.5")))
	assert.Equal(t, 50.0, *ParseOptionalFloat(strPtr(" 50 ")))
	assert.Nil(t, ParseOptionalFloat(strPtr("1,5")), "vírgula decimal é ambígua")
	assert.Nil(t, ParseOptionalFloat(strPtr("1,500")))
}

func TestParseOptionalTime(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want *time.Time
	}{
		{name: "Nulo", raw: nil, want: nil},
		{name: "Inválido vira nulo", raw: strPtr("ontem"), want: nil},
		{name: "Data e hora", raw: strPtr("2015-06-02 05:02:12"), want: ptrTime(time.Date(2015, 6, 2, 5, 2, 12, 0, time.UTC))},
		{name: "RFC3339", raw: strPtr("2015-06-02T05:02:12Z"), want: ptrTime(time.Date(2015, 6, 2, 5, 2, 12, 0, time.UTC))},
		{name: "timestamptz do PostgreSQL", raw: strPtr("2015-06-01 10:00:00+00"), want: ptrTime(time.Date(2015, 6, 1, 10, 0, 0, 0, time.UTC))},
		{name: "timestamptz com fração e fuso", raw: strPtr("2015-06-01 10:00:00.123+02"), want: ptrTime(time.Date(2015, 6, 1, 8, 0, 0, 123000000, time.UTC))},
		{name: "timestamptz com T", raw: strPtr("2015-06-01T10:00:00-03"), want: ptrTime(time.Date(2015, 6, 1, 13, 0, 0, 0, time.UTC))},
		{name: "Fuso com minutos", raw: strPtr("2015-06-01 10:00:00+05:30"), want: ptrTime(time.Date(2015, 6, 1, 4, 30, 0, 0, time.UTC))},
		{name: "Apenas data", raw: strPtr("1990-12-31"), want: ptrTime(time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC))},
		{name: "Data com barras", raw: strPtr("31/12/1990"), want: ptrTime(time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptionalTime(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "esperado %s, obtido %s", tt.want, got)
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestParseOptionalText(t *testing.T) {
	assert.Nil(t, ParseOptionalText(nil))
	assert.Equal(t, "123", *ParseOptionalText(strPtr("123.0")))
	assert.Equal(t, "123", *ParseOptionalText(strPtr("123")))
	assert.Equal(t, "A-1", *ParseOptionalText(strPtr("A-1")))
	assert.Equal(t, "12.5", *ParseOptionalText(strPtr("12.5")))
}

func TestTable_NullMarkers(t *testing.T) {
	table := NewTable("events", []string{" VisitorID ", "transactionid"})
	table.AppendRow([]string{"1", "NaN"})
	table.AppendRow([]string{"2", ""})
	table.AppendRow([]string{"3"})
	table.AppendRow([]string{"4", "<NA>"})

	assert.True(t, table.Has("visitorid"))
	assert.Equal(t, 4, table.Len())
	for i := 0; i < table.Len(); i++ {
		assert.Nil(t, table.Value(i, "transactionid"))
	}
	assert.Equal(t, "1", *table.Value(0, "visitorid"))
	assert.Nil(t, table.Value(0, "itemid"))
	assert.Nil(t, table.Value(10, "visitorid"))
}
