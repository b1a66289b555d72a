package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estlin/paperbill/internal/model"
)

func TestParseItemSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    model.RawItem
		wantErr bool
	}{
		{
			name: "simple",
			spec: "Floor tile:2:150",
			want: model.RawItem{Description: "Floor tile", Quantity: "2", Rate: "150"},
		},
		{
			name: "description may contain colons",
			spec: "Labour: site prep:1:80.50",
			want: model.RawItem{Description: "Labour: site prep", Quantity: "1", Rate: "80.50"},
		},
		{
			name: "fields are trimmed",
			spec: "Grout: 3 : 12.25",
			want: model.RawItem{Description: "Grout", Quantity: "3", Rate: "12.25"},
		},
		{name: "too few fields", spec: "Grout:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItemSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-06-15", "date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), got)

	got, err = parseDate("", "date")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseDate("15/06/2025", "date")
	assert.ErrorContains(t, err, "--date")
}
