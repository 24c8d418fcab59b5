package analyzing

import (
	"sync"

	"github.com/vfg2006/branch-analytics-api/internal/domain"
)

// SelectionState é o estado do contrato de seleção do dashboard
type SelectionState string

const (
	StateNoBranch        SelectionState = "no_branch"
	StateBranchSelected  SelectionState = "branch_selected"
	StateProductSelected SelectionState = "product_selected"
)

// Selection mantém a seleção ativa do dashboard (filial, produto, chave de
// ordenação e limite). Trocar de filial sempre descarta o produto
// selecionado: os cardápios são específicos de cada filial, então a
// identidade do produto não sobrevive à troca.
type Selection struct {
	mu      sync.Mutex
	state   SelectionState
	branch  string
	product string
	sortKey string
	limit   int
}

// SelectionView é uma leitura consistente da seleção ativa
type SelectionView struct {
	State   SelectionState `json:"state"`
	Branch  string         `json:"branch,omitempty"`
	Product string         `json:"product,omitempty"`
	SortKey string         `json:"sort_key"`
	Limit   int            `json:"limit"`
}

func NewSelection() *Selection {
	return &Selection{
		state:   StateNoBranch,
		sortKey: domain.SortByRevenue,
		limit:   10,
	}
}

// SelectBranch muda a filial ativa. Seleção vazia volta ao estado NoBranch a
// partir de qualquer estado; qualquer mudança de filial zera o produto.
func (s *Selection) SelectBranch(branch string) SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.product = ""
	if branch == "" {
		s.branch = ""
		s.state = StateNoBranch
	} else {
		s.branch = branch
		s.state = StateBranchSelected
	}

	return s.view()
}

// SelectProduct marca um produto da filial ativa. Exige uma filial
// selecionada; seleção vazia apenas volta para BranchSelected.
func (s *Selection) SelectProduct(product string) (SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNoBranch {
		return s.view(), ErrNoBranchSelected
	}

	s.product = product
	if product == "" {
		s.state = StateBranchSelected
	} else {
		s.state = StateProductSelected
	}

	return s.view(), nil
}

// SetSorting ajusta a chave de ordenação e o limite. É uma transição nula:
// não muda o estado, só os parâmetros do próximo recálculo, e só tem efeito
// com uma filial já selecionada.
func (s *Selection) SetSorting(sortKey string, limit int) (SelectionView, error) {
	if _, err := sortKeyValue(sortKey); err != nil {
		return SelectionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateNoBranch {
		return s.view(), ErrNoBranchSelected
	}

	s.sortKey = sortKey
	s.limit = limit

	return s.view(), nil
}

// View retorna a seleção atual
func (s *Selection) View() SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// Reset volta ao estado inicial (usado quando o dataset é substituído)
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateNoBranch
	s.branch = ""
	s.product = ""
}

func (s *Selection) view() SelectionView {
	return SelectionView{
		State:   s.state,
		Branch:  s.branch,
		Product: s.product,
		SortKey: s.sortKey,
		Limit:   s.limit,
	}
}
