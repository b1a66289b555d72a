package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func docsWithNumbers(numbers ...string) []Document {
	docs := make([]Document, len(numbers))
	for i, n := range numbers {
		docs[i] = Document{Number: n}
	}
	return docs
}

func TestNextEstimateNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{name: "empty store starts at 0001", numbers: nil, want: "0001"},
		{name: "takes the maximum, not the last", numbers: []string{"0002", "0007", "0003"}, want: "0008"},
		{name: "ignores non-numeric numbers", numbers: []string{"0002", "0007", "abc"}, want: "0008"},
		{name: "gap after deleting the highest is not reused", numbers: []string{"0001", "0009"}, want: "0010"},
		{name: "grows past four digits at natural width", numbers: []string{"9999"}, want: "10000"},
		{name: "five digit numbers keep five digit width", numbers: []string{"10000"}, want: "10001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextEstimateNumber(docsWithNumbers(tt.numbers...)))
		})
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		want    string
	}{
		{name: "empty store starts at INV-0001", numbers: nil, want: "INV-0001"},
		{name: "increments the last record only", numbers: []string{"INV-0009"}, want: "INV-0010"},
		{
			name:    "ignores a higher number earlier in the sequence",
			numbers: []string{"INV-0042", "INV-0009"},
			want:    "INV-0010",
		},
		{name: "unparsable last number restarts at INV-0001", numbers: []string{"INV-draft"}, want: "INV-0001"},
		{name: "missing prefix still parses the digits", numbers: []string{"0007"}, want: "INV-0008"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextInvoiceNumber(docsWithNumbers(tt.numbers...)))
		})
	}
}

func TestNextNumberDispatch(t *testing.T) {
	docs := docsWithNumbers("0004")
	assert.Equal(t, "0005", NextNumber(KindEstimate, docs))

	docs = docsWithNumbers("INV-0004")
	assert.Equal(t, "INV-0005", NextNumber(KindInvoice, docs))
}
