// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// SalesRecord é uma linha da planilha de vendas já limpa e validada pelo
// loader. Imutável depois de carregada; o Record Store é o dono do ciclo de
// vida até o próximo upload substituir o dataset.
type SalesRecord struct {
	Branch         string    `json:"branch"`
	SalesNumber    string    `json:"sales_number"`
	SoldAt         time.Time `json:"sold_at"`
	Menu           string    `json:"menu"`
	Qty            float64   `json:"qty"`
	Price          float64   `json:"price"`
	Total          float64   `json:"total"`
	DiscountTotal  float64   `json:"discount_total"`
	COGSTotal      float64   `json:"cogs_total"`
	COGSPercentage float64   `json:"cogs_percentage"`
	Margin         float64   `json:"margin"`
}

// BranchFile registra a origem dos dados de uma filial (arquivo processado)
type BranchFile struct {
	Filename string `json:"filename"`
	Records  int    `json:"records"`
}

// DatasetInfo descreve o dataset atualmente carregado em memória
type DatasetInfo struct {
	Version      string                `json:"version"`
	TotalRecords int                   `json:"total_records"`
	Branches     []string              `json:"branches"`
	MinDate      time.Time             `json:"min_date"`
	MaxDate      time.Time             `json:"max_date"`
	Files        map[string]BranchFile `json:"files_processed"`
	LoadedAt     time.Time             `json:"loaded_at"`
}
