package analyzing

import "errors"

// Erros específicos do pipeline de análise de produtos
var (
	// ErrNoBranchSelected indica que a pré-condição de filial selecionada não
	// foi atendida; nenhum estágio do pipeline deve rodar
	ErrNoBranchSelected = errors.New("no branch selected")

	// ErrNoDataForSelection indica que o filtro de filial (ou filial+produto)
	// não encontrou nenhum registro
	ErrNoDataForSelection = errors.New("no data for the current selection")

	// ErrInvalidBreakdown indica que a decomposição do produto ficou sem
	// componentes positivos após o filtro
	ErrInvalidBreakdown = errors.New("product breakdown has no positive components")

	// ErrInvalidSortKey indica uma chave de ordenação desconhecida. É um erro
	// de integração, não de usuário: falha alto em vez de assumir um padrão
	ErrInvalidSortKey = errors.New("invalid sort key")
)
