package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/branch-analytics-api/internal/domain"
)

func TestSelection_BranchChangeResetsProduct(t *testing.T) {
	sel := NewSelection()
	assert.Equal(t, StateNoBranch, sel.View().State)

	view := sel.SelectBranch("A")
	assert.Equal(t, StateBranchSelected, view.State)

	view, err := sel.SelectProduct("Nasi Goreng")
	require.NoError(t, err)
	assert.Equal(t, StateProductSelected, view.State)

	// Trocar de filial descarta o produto: cardápios não são compartilhados
	view = sel.SelectBranch("B")
	assert.Equal(t, StateBranchSelected, view.State)
	assert.Empty(t, view.Product)
}

func TestSelection_EmptyBranchReturnsToNoBranch(t *testing.T) {
	sel := NewSelection()
	sel.SelectBranch("A")
	_, err := sel.SelectProduct("X")
	require.NoError(t, err)

	view := sel.SelectBranch("")
	assert.Equal(t, StateNoBranch, view.State)
	assert.Empty(t, view.Branch)
	assert.Empty(t, view.Product)
}

func TestSelection_ProductRequiresBranch(t *testing.T) {
	sel := NewSelection()
	_, err := sel.SelectProduct("X")
	assert.ErrorIs(t, err, ErrNoBranchSelected)
}

func TestSelection_EmptyProductReturnsToBranchSelected(t *testing.T) {
	sel := NewSelection()
	sel.SelectBranch("A")
	_, err := sel.SelectProduct("X")
	require.NoError(t, err)

	view, err := sel.SelectProduct("")
	require.NoError(t, err)
	assert.Equal(t, StateBranchSelected, view.State)
}

func TestSelection_SetSorting(t *testing.T) {
	sel := NewSelection()

	// Sem filial, ajustar ordenação não tem efeito
	_, err := sel.SetSorting(domain.SortByQuantity, 5)
	assert.ErrorIs(t, err, ErrNoBranchSelected)

	sel.SelectBranch("A")
	_, err = sel.SelectProduct("X")
	require.NoError(t, err)

	// Transição nula: muda os parâmetros sem mudar o estado
	view, err := sel.SetSorting(domain.SortByQuantity, 5)
	require.NoError(t, err)
	assert.Equal(t, StateProductSelected, view.State)
	assert.Equal(t, domain.SortByQuantity, view.SortKey)
	assert.Equal(t, 5, view.Limit)

	_, err = sel.SetSorting("profit", 5)
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestSelection_Reset(t *testing.T) {
	sel := NewSelection()
	sel.SelectBranch("A")
	sel.Reset()

	view := sel.View()
	assert.Equal(t, StateNoBranch, view.State)
	assert.Empty(t, view.Branch)
}
