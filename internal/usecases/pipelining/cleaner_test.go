package pipelining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-pipeline-api/internal/domain"
)

func TestClean_ShadowColumns(t *testing.T) {
	tests := []struct {
		name     string
		frame    domain.Frame
		validate func(t *testing.T, out domain.Frame, stats domain.CleanStats)
	}{
		{
			name: "Coluna sombra idêntica à base deve ser removida",
			frame: domain.Frame{
				Columns: []string{"id", "mark_spent", "mark_spent.1"},
				Rows: []domain.Row{
					{"id": int64(1), "mark_spent": 10.0, "mark_spent.1": 10.0},
					{"id": int64(2), "mark_spent": 5.5, "mark_spent.1": 5.5},
				},
			},
			validate: func(t *testing.T, out domain.Frame, stats domain.CleanStats) {
				assert.Equal(t, []string{"id", "mark_spent"}, out.Columns)
				assert.Equal(t, 1, stats.ShadowColumnsDropped)
			},
		},
		{
			name: "Coluna sombra divergente em qualquer linha deve ser mantida",
			frame: domain.Frame{
				Columns: []string{"id", "mark_spent", "mark_spent.1"},
				Rows: []domain.Row{
					{"id": int64(1), "mark_spent": 10.0, "mark_spent.1": 10.0},
					{"id": int64(2), "mark_spent": 5.5, "mark_spent.1": 7.0},
				},
			},
			validate: func(t *testing.T, out domain.Frame, stats domain.CleanStats) {
				assert.Contains(t, out.Columns, "mark_spent.1")
				assert.Equal(t, 0, stats.ShadowColumnsDropped)
			},
		},
		{
			name: "Sombra sem coluna base é mantida como coluna comum",
			frame: domain.Frame{
				Columns: []string{"id", "extra.1"},
				Rows: []domain.Row{
					{"id": int64(1), "extra.1": "x"},
				},
			},
			validate: func(t *testing.T, out domain.Frame, stats domain.CleanStats) {
				assert.Contains(t, out.Columns, "extra.1")
				assert.Equal(t, 0, stats.ShadowColumnsDropped)
			},
		},
		{
			name: "Sombra numérica equivalente em representações diferentes é removida",
			frame: domain.Frame{
				Columns: []string{"id", "clicks", "clicks.1"},
				Rows: []domain.Row{
					{"id": int64(1), "clicks": int64(30), "clicks.1": 30.0},
				},
			},
			validate: func(t *testing.T, out domain.Frame, stats domain.CleanStats) {
				assert.Equal(t, []string{"id", "clicks"}, out.Columns)
				assert.Equal(t, 1, stats.ShadowColumnsDropped)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats := Clean(tt.frame)
			tt.validate(t, out, stats)
		})
	}
}

func TestClean_DuplicateRows(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner", "impressions": int64(300), "clicks": int64(30), "mark_spent": 15.0, "revenue": 60.0},
			{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner", "impressions": int64(300), "clicks": int64(30), "mark_spent": 15.0, "revenue": 60.0},
			{"id": int64(2), "c_date": "2024-01-06", "campaign_name": "banner", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
		},
	}

	out, stats := Clean(frame)

	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 1, stats.DuplicateRows)
}

func TestClean_MissingRequired(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner", "impressions": int64(300), "clicks": int64(30), "mark_spent": 15.0, "revenue": 60.0},
			{"id": int64(2), "c_date": "2024-01-06", "campaign_name": nil, "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
			{"id": int64(3), "c_date": "2024-01-07", "campaign_name": "search", "impressions": int64(100), "clicks": int64(10), "mark_spent": nil, "revenue": 20.0},
			{"id": int64(4), "c_date": "2024-01-08", "campaign_name": "   ", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
		},
	}

	out, stats := Clean(frame)

	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 3, stats.MissingRequired)
	assert.Equal(t, int64(1), out.Rows[0]["id"])
}

func TestClean_MissingRequiredIgnoresAbsentColumns(t *testing.T) {
	// Campos obrigatórios fora do schema não podem derrubar todas as linhas
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name"},
		Rows: []domain.Row{
			{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner"},
		},
	}

	out, _ := Clean(frame)

	assert.Equal(t, 1, out.Len())
}

func TestClean_NonPositiveImpressions(t *testing.T) {
	tests := []struct {
		name        string
		impressions interface{}
		kept        bool
	}{
		{name: "Impressões positivas mantêm a linha", impressions: int64(300), kept: true},
		{name: "Impressões zero descartam a linha", impressions: int64(0), kept: false},
		{name: "Impressões negativas descartam a linha", impressions: int64(-5), kept: false},
		{name: "Impressões não numéricas descartam a linha", impressions: "n/a", kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := domain.Frame{
				Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
				Rows: []domain.Row{
					{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner", "impressions": tt.impressions, "clicks": int64(30), "mark_spent": 15.0, "revenue": 60.0},
				},
			}

			out, _ := Clean(frame)

			if tt.kept {
				assert.Equal(t, 1, out.Len())
			} else {
				assert.Equal(t, 0, out.Len())
			}
		})
	}
}

func TestClean_NegativeCounters(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": int64(1), "c_date": "2024-01-05", "campaign_name": "banner", "impressions": int64(300), "clicks": int64(-30), "mark_spent": 15.0, "revenue": 60.0},
			{"id": int64(2), "c_date": "2024-01-06", "campaign_name": "banner", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": -20.0},
			{"id": int64(3), "c_date": "2024-01-07", "campaign_name": "banner", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
		},
	}

	out, stats := Clean(frame)

	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 2, stats.NegativeValues)
	assert.Equal(t, int64(3), out.Rows[0]["id"])
}

func TestClean_NormalizeDates(t *testing.T) {
	tests := []struct {
		name     string
		date     interface{}
		expected string
		kept     bool
	}{
		{name: "Data canônica passa sem alteração", date: "2024-01-05", expected: "2024-01-05", kept: true},
		{name: "Data com barras é normalizada", date: "2024/01/05", expected: "2024-01-05", kept: true},
		{name: "Data com hora é normalizada", date: "2024-01-05 10:30:00", expected: "2024-01-05", kept: true},
		{name: "Data irreconhecível descarta a linha", date: "quinta-feira", kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := domain.Frame{
				Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
				Rows: []domain.Row{
					{"id": int64(1), "c_date": tt.date, "campaign_name": "banner", "impressions": int64(300), "clicks": int64(30), "mark_spent": 15.0, "revenue": 60.0},
				},
			}

			out, stats := Clean(frame)

			if tt.kept {
				assert.Equal(t, 1, out.Len())
				assert.Equal(t, tt.expected, out.Rows[0]["c_date"])
			} else {
				assert.Equal(t, 0, out.Len())
				assert.Equal(t, 1, stats.UnparseableDates)
			}
		})
	}
}

func TestClean_DedupeByID(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": int64(7), "c_date": "2024-01-10", "campaign_name": "antiga", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
			{"id": int64(7), "c_date": "2024-02-15", "campaign_name": "recente", "impressions": int64(200), "clicks": int64(20), "mark_spent": 10.0, "revenue": 40.0},
			{"id": int64(8), "c_date": "2024-01-10", "campaign_name": "única", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
		},
	}

	out, stats := Clean(frame)

	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 1, stats.DuplicatedIDs)

	// Para o id 7 deve sobreviver o registro de data mais recente
	for _, row := range out.Rows {
		if row["id"] == int64(7) {
			assert.Equal(t, "recente", row["campaign_name"])
		}
	}
}

func TestClean_DedupeByID_NilIDsAreKept(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": nil, "c_date": "2024-01-10", "campaign_name": "sem id a", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
			{"id": nil, "c_date": "2024-01-11", "campaign_name": "sem id b", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
		},
	}

	out, stats := Clean(frame)

	// Linhas sem id não participam do dedup por id; o filtro de campos
	// obrigatórios também não exige id
	assert.Equal(t, 2, out.Len())
	assert.Equal(t, 0, stats.DuplicatedIDs)
}

func TestClean_DedupeByID_NumericAndTextIDsMatch(t *testing.T) {
	frame := domain.Frame{
		Columns: []string{"id", "c_date", "campaign_name", "impressions", "clicks", "mark_spent", "revenue"},
		Rows: []domain.Row{
			{"id": int64(7), "c_date": "2024-01-10", "campaign_name": "antiga", "impressions": int64(100), "clicks": int64(10), "mark_spent": 5.0, "revenue": 20.0},
			{"id": "7", "c_date": "2024-02-15", "campaign_name": "recente", "impressions": int64(200), "clicks": int64(20), "mark_spent": 10.0, "revenue": 40.0},
		},
	}

	out, stats := Clean(frame)

	assert.Equal(t, 1, out.Len())
	assert.Equal(t, 1, stats.DuplicatedIDs)
	assert.Equal(t, "recente", out.Rows[0]["campaign_name"])
}

func TestClean_EmptyInput(t *testing.T) {
	out, stats := Clean(domain.Frame{})

	assert.Equal(t, 0, out.Len())
	assert.Equal(t, domain.CleanStats{}, stats)
}
