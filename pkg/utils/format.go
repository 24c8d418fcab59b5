package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency formata um valor monetário com prefixo de símbolo,
// arredondado para inteiro e com separador de milhar (ex.: "Rp 12,500")
func FormatCurrency(symbol string, v float64) string {
	return fmt.Sprintf("%s %s", symbol, humanize.Comma(int64(math.Round(v))))
}

// FormatNumber formata um número inteiro com separador de milhar
func FormatNumber(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// FormatPercentage formata um percentual com uma casa decimal (ex.: "23.5%")
func FormatPercentage(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// TruncateLabel corta um rótulo em maxLen caracteres e adiciona reticências.
// Cada ponto de exibição (tabela, resumo, dropdown) tem o seu próprio limite.
func TruncateLabel(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
