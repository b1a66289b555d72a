package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	store, err := storage.Open(context.Background(), kv, model.KindEstimate)
	require.NoError(t, err)

	issued := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	for _, rec := range []struct{ number, client string }{
		{"0001", "Archer Build Co"},
		{"0002", "Bowline Homes"},
	} {
		totals := model.Calculate([]model.RawItem{{Description: "work", Quantity: "1", Rate: "100"}}, "0", "0")
		_, err = store.Upsert(context.Background(), model.Document{
			Kind:      model.KindEstimate,
			Number:    rec.number,
			IssueDate: issued,
			Business:  model.Party{Name: "Patel Tiles"},
			Client:    model.Party{Name: rec.client},
			Items:     totals.Items,
			Subtotal:  totals.Subtotal,
			TaxAmount: totals.TaxAmount,
			Total:     totals.Total,
			CreatedAt: issued,
		})
		require.NoError(t, err)
	}
	return store
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestHistoryFiltersAsTyped(t *testing.T) {
	m := NewModel(newTestStore(t), "Rs.")
	require.Len(t, m.docs, 2)

	m = typeString(m, "bowline")
	require.Len(t, m.docs, 1)
	assert.Equal(t, "0002", m.docs[0].Number)

	view := m.View()
	assert.Contains(t, view, "Bowline Homes")
	assert.NotContains(t, view, "Archer Build Co")
}

func TestHistoryCursorAndDetail(t *testing.T) {
	m := NewModel(newTestStore(t), "Rs.")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	// Cursor clamps at the end of the list.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.True(t, m.detail)
	assert.Contains(t, m.View(), "Bowline Homes")

	// Filtering resets an out-of-range cursor.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	m = typeString(m, "archer")
	assert.Equal(t, 0, m.cursor)
}

func TestHistoryNoMatches(t *testing.T) {
	m := typeString(NewModel(newTestStore(t), "Rs."), "zzz")
	assert.Empty(t, m.docs)
	assert.Contains(t, m.View(), "No records found")
}
