package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/estlin/paperbill/internal/model"
)

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "yes word", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty defaults to no", input: "\n", want: false},
		{name: "garbage defaults to no", input: "maybe\n", want: false},
		{name: "eof defaults to no", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewPrompter(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Confirm("Proceed?"))
			assert.Contains(t, out.String(), "[y/N]")
		})
	}
}

func TestFormatDocumentList(t *testing.T) {
	assert.Contains(t, FormatDocumentList(nil, "Rs."), "No records found")

	docs := []model.Document{{
		Kind:      model.KindEstimate,
		Number:    "0001",
		IssueDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local),
		Client:    model.Party{Name: "Archer Build Co"},
	}}
	out := FormatDocumentList(docs, "Rs.")
	assert.Contains(t, out, "0001")
	assert.Contains(t, out, "Archer Build Co")
	assert.Contains(t, out, "2025-04-01")
}
