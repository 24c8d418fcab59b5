package domain

// Tipos de série aceitos pelo colaborador de renderização
const (
	ChartBar  = "bar"
	ChartPie  = "pie"
	ChartLine = "line"
)

// ChartSeries é uma série pronta para o colaborador de gráficos: rótulos,
// valores numéricos e, quando fizer sentido, o texto já formatado de cada
// ponto. A biblioteca de renderização fica fora deste núcleo.
type ChartSeries struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   string    `json:"kind"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Text   []string  `json:"text,omitempty"`
}
