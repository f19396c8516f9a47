package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-insight-api/internal/domain"
)

func TestResolveWindow_Explicit(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("Par de datas válido produz janela de dia inteiro", func(t *testing.T) {
		resolved, err := ResolveWindow(WindowParams{
			StartDate: "2025-03-01",
			EndDate:   "2025-03-31",
		}, now, time.UTC)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resolved.Window.Start)
		require.NotNil(t, resolved.Window.End)
		assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), *resolved.Window.End)
	})

	t.Run("Janela anterior tem mesma duração e termina 1ms antes do início", func(t *testing.T) {
		resolved, err := ResolveWindow(WindowParams{
			StartDate: "2025-03-11",
			EndDate:   "2025-03-20",
		}, now, time.UTC)

		require.NoError(t, err)
		require.NotNil(t, resolved.Previous)

		start := resolved.Window.Start
		duration := resolved.Window.End.Sub(start)

		assert.Equal(t, start.Add(-duration), resolved.Previous.Start)
		require.NotNil(t, resolved.Previous.End)
		assert.Equal(t, start.Add(-time.Millisecond), *resolved.Previous.End)
	})

	t.Run("Janela de um único dia é válida", func(t *testing.T) {
		resolved, err := ResolveWindow(WindowParams{
			StartDate: "2025-03-15",
			EndDate:   "2025-03-15",
		}, now, time.UTC)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), resolved.Window.Start)
	})

	tests := []struct {
		name      string
		startDate string
		endDate   string
	}{
		{"Data de início ausente", "", "2025-03-31"},
		{"Data de fim ausente", "2025-03-01", ""},
		{"Data de início malformada", "01/03/2025", "2025-03-31"},
		{"Data de fim malformada", "2025-03-01", "31-03-2025"},
		{"Intervalo invertido", "2025-03-31", "2025-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveWindow(WindowParams{
				StartDate: tt.startDate,
				EndDate:   tt.endDate,
			}, now, time.UTC)

			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestResolveWindow_Presets(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		preset        string
		expectedStart time.Time
		expectedName  string
	}{
		{"Preset semanal", domain.RangeWeek, now.AddDate(0, 0, -7), domain.RangeWeek},
		{"Preset mensal", domain.RangeMonth, now.AddDate(0, -1, 0), domain.RangeMonth},
		{"Preset trimestral", domain.RangeQuarter, now.AddDate(0, -3, 0), domain.RangeQuarter},
		{"Preset anual", domain.RangeYear, now.AddDate(-1, 0, 0), domain.RangeYear},
		{"Preset de tendência cobre 12 meses", domain.RangeTrend, now.AddDate(0, -12, 0), domain.RangeTrend},
		{"Preset vazio resolve para mensal", "", now.AddDate(0, -1, 0), domain.RangeMonth},
		{"Preset desconhecido resolve para mensal", "decade", now.AddDate(0, -1, 0), domain.RangeMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := ResolveWindow(WindowParams{Preset: tt.preset}, now, time.UTC)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, resolved.Window.Start)
			assert.Equal(t, tt.expectedName, resolved.Preset)
			assert.Nil(t, resolved.Window.End, "janela de preset é aberta")
			assert.Nil(t, resolved.Previous, "preset não produz janela anterior")
		})
	}
}

func TestResolveWindow_ExplicitHasPrecedenceOverPreset(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	resolved, err := ResolveWindow(WindowParams{
		Preset:    domain.RangeYear,
		StartDate: "2025-05-01",
		EndDate:   "2025-05-31",
	}, now, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), resolved.Window.Start)
	assert.Empty(t, resolved.Preset)
	assert.NotNil(t, resolved.Previous)
}
