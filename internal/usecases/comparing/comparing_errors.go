package comparing

import "errors"

// ErrNoData indica que não existe dataset carregado para comparar
var ErrNoData = errors.New("no dataset loaded")
