package reprice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepriceCommand_Metadata(t *testing.T) {
	assert.Equal(t, "reprice", Cmd.Use)
	assert.Contains(t, Cmd.Short, "Redistribute")
	assert.Contains(t, Cmd.Long, "proportionally")
	assert.NotNil(t, Cmd.Run)
}

func TestRepriceCommand_Flags(t *testing.T) {
	setFlag := Cmd.Flags().Lookup("set")
	require.NotNil(t, setFlag)
	assert.Equal(t, "s", setFlag.Shorthand)
	assert.Contains(t, setFlag.Usage, "CATEGORY=AMOUNT")
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    map[string]string
		wantErr bool
	}{
		{
			name:    "single override",
			entries: []string{"CLEANING=1200.00"},
			want:    map[string]string{"CLEANING": "1200"},
		},
		{
			name:    "lowercase category is upper-cased",
			entries: []string{"drywall=3500"},
			want:    map[string]string{"DRYWALL": "3500"},
		},
		{
			name:    "category name containing an equals-adjacent amount",
			entries: []string{"WATER EXTRACTION & REMEDIATION=987.65"},
			want:    map[string]string{"WATER EXTRACTION & REMEDIATION": "987.65"},
		},
		{
			name:    "multiple overrides",
			entries: []string{"CLEANING=100", "DOORS=250.50"},
			want:    map[string]string{"CLEANING": "100", "DOORS": "250.5"},
		},
		{
			name:    "missing separator",
			entries: []string{"CLEANING"},
			wantErr: true,
		},
		{
			name:    "missing category name",
			entries: []string{"=100"},
			wantErr: true,
		},
		{
			name:    "unparseable amount",
			entries: []string{"CLEANING=abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOverrides(tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for name, amount := range tt.want {
				assert.True(t, got[name].Equal(decimal.RequireFromString(amount)),
					"override %s: want %s, got %s", name, amount, got[name])
			}
		})
	}
}
