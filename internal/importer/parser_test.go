package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/vitrine/internal/apperr"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	"github.com/MrJamesThe3rd/vitrine/internal/importer"
)

func TestParser_Parse(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantLen int
		verify  func(t *testing.T, rows []catalog.ImportRow)
		wantErr error
	}

	tests := []testCase{
		{
			name: "FullLayout",
			csv: `Nome;Preço;Estoque;Categoria;Descrição
Bolo de cenoura;1.234,56;3;Doces;Com cobertura
Pão de queijo;R$ 4,50;30;;
`,
			wantLen: 2,
			verify: func(t *testing.T, rows []catalog.ImportRow) {
				assert.Equal(t, 2, rows[0].Line)
				assert.Equal(t, "Bolo de cenoura", rows[0].Params.Name)
				assert.True(t, decimal.RequireFromString("1234.56").Equal(rows[0].Params.Price))
				assert.Equal(t, 3, rows[0].Params.Stock)
				assert.Equal(t, "Doces", rows[0].CategoryName)
				assert.Equal(t, "Com cobertura", rows[0].Params.Description)

				assert.Equal(t, 3, rows[1].Line)
				assert.True(t, decimal.RequireFromString("4.5").Equal(rows[1].Params.Price))
				assert.Empty(t, rows[1].CategoryName)
			},
		},
		{
			name: "AlternateHeaderWithPreamble",
			csv: `Exportado em;10/10/2026

Valor;Produto;Quantidade
10,00;Brigadeiro;100
`,
			wantLen: 1,
			verify: func(t *testing.T, rows []catalog.ImportRow) {
				assert.Equal(t, 4, rows[0].Line)
				assert.Equal(t, "Brigadeiro", rows[0].Params.Name)
				assert.Equal(t, 100, rows[0].Params.Stock)
			},
		},
		{
			name:    "BlankRowsSkipped",
			csv:     "nome;preço;estoque\n\n;;\nTorta;5,00;1\n",
			wantLen: 1,
		},
		{
			name:    "HeaderOnly",
			csv:     "Nome;Preço;Estoque\n",
			wantLen: 0,
		},
		{
			name:    "UnknownHeader",
			csv:     "Data mov.;Descrição;Montante\n",
			wantErr: importer.ErrUnknownLayout,
		},
		{
			name:    "BadPrice",
			csv:     "Nome;Preço;Estoque\nBolo;dez reais;1\n",
			wantErr: apperr.ErrInvalidInput,
		},
		{
			name:    "BadStock",
			csv:     "Nome;Preço;Estoque\nBolo;10,00;muitos\n",
			wantErr: apperr.ErrInvalidInput,
		},
		{
			name:    "MissingName",
			csv:     "Nome;Preço;Estoque\n;10,00;1\n",
			wantErr: apperr.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := importer.NewParser().Parse(strings.NewReader(tt.csv))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, rows, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, rows)
			}
		})
	}
}

func TestParser_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Nome;Preço;Estoque;Descrição\nAçaí;12,00;8;Tigela média\n")
	require.NoError(t, err)

	rows, err := importer.NewParser().Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Açaí", rows[0].Params.Name)
	assert.Equal(t, "Tigela média", rows[0].Params.Description)
}

type catalogFunc func(ctx context.Context, userID int64, rows []catalog.ImportRow) ([]*catalog.Product, error)

func (f catalogFunc) Import(ctx context.Context, userID int64, rows []catalog.ImportRow) ([]*catalog.Product, error) {
	return f(ctx, userID, rows)
}

func TestService_Import(t *testing.T) {
	var gotRows []catalog.ImportRow

	svc := importer.NewService(catalogFunc(func(_ context.Context, userID int64, rows []catalog.ImportRow) ([]*catalog.Product, error) {
		assert.Equal(t, int64(7), userID)
		gotRows = rows

		return []*catalog.Product{{ID: 1}}, nil
	}))

	products, err := svc.Import(context.Background(), 7, strings.NewReader("Produto;Valor;Quantidade\nBolo;10,00;2\n"))
	require.NoError(t, err)
	assert.Len(t, products, 1)
	require.Len(t, gotRows, 1)
	assert.Equal(t, "Bolo", gotRows[0].Params.Name)

	_, err = svc.Import(context.Background(), 7, strings.NewReader("foo;bar\n"))
	assert.ErrorIs(t, err, importer.ErrUnknownLayout)
}
