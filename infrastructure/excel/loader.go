// Package excel carrega as planilhas de vendas enviadas por upload.
//
// O layout esperado segue o relatório exportado pelo POS das filiais:
// o nome da filial fica na célula A2, o cabeçalho na linha 14 e os dados
// começam na linha 15.
package excel

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/branch-analytics-api/internal/domain"
	"github.com/vfg2006/branch-analytics-api/pkg/log"
)

// ErrNoValidData indica que nenhum arquivo produziu registros válidos
var ErrNoValidData = errors.New("nenhum dado válido encontrado nos arquivos enviados")

const (
	branchNameCell = "A2"
	headerRow      = 14 // 1-based; dados a partir da linha 15
	maxParallel    = 4

	defaultBranchName = "Unknown Branch"
)

// Colunas obrigatórias do relatório
var requiredColumns = []string{
	"Sales Number",
	"Sales Date",
	"Menu",
	"Total",
	"COGS Total",
	"COGS Total (%)",
	"Margin",
}

// Upload é um arquivo enviado, já aberto para leitura
type Upload struct {
	Filename string
	Reader   io.Reader
}

// Result é o conjunto combinado de registros de todos os arquivos válidos
type Result struct {
	Records []domain.SalesRecord
	Files   map[string]domain.BranchFile
	Skipped []string
}

// Loader converte planilhas em registros de venda limpos
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadFiles processa os arquivos em paralelo e combina os resultados na ordem
// de envio. Arquivos inválidos são registrados e pulados, não abortam o lote;
// o erro só é retornado quando nenhum arquivo produz registros.
func (l *Loader) LoadFiles(ctx context.Context, uploads []Upload) (*Result, error) {
	type fileResult struct {
		branch  string
		records []domain.SalesRecord
		err     error
	}

	results := make([]fileResult, len(uploads))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	var mu sync.Mutex
	for i, up := range uploads {
		i, up := i, up
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			branch, records, err := l.loadSingleFile(up)

			mu.Lock()
			results[i] = fileResult{branch: branch, records: records, err: err}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "processamento de uploads interrompido")
	}

	combined := &Result{Files: make(map[string]domain.BranchFile)}
	for i, r := range results {
		if r.err != nil {
			log.L.WithError(r.err).WithField("filename", uploads[i].Filename).
				Warn("upload: arquivo ignorado")
			combined.Skipped = append(combined.Skipped, uploads[i].Filename)
			continue
		}

		combined.Records = append(combined.Records, r.records...)
		combined.Files[r.branch] = domain.BranchFile{
			Filename: uploads[i].Filename,
			Records:  len(r.records),
		}

		log.L.WithFields(log.Fields{
			"filename": uploads[i].Filename,
			"branch":   r.branch,
			"records":  len(r.records),
		}).Info("upload: arquivo carregado")
	}

	if len(combined.Records) == 0 {
		return nil, ErrNoValidData
	}

	return combined, nil
}

// loadSingleFile extrai a filial e os registros limpos de um arquivo
func (l *Loader) loadSingleFile(up Upload) (string, []domain.SalesRecord, error) {
	f, err := excelize.OpenReader(up.Reader)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao abrir a planilha")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", nil, errors.New("planilha sem abas")
	}

	branch := defaultBranchName
	if v, err := f.GetCellValue(sheet, branchNameCell); err == nil {
		if name := strings.TrimSpace(v); name != "" {
			branch = name
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, errors.Wrap(err, "erro ao ler as linhas da planilha")
	}
	if len(rows) < headerRow {
		return "", nil, errors.Errorf("planilha sem cabeçalho na linha %d", headerRow)
	}

	columns, missing := mapColumns(rows[headerRow-1])
	if len(missing) > 0 {
		return "", nil, errors.Errorf("colunas obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	var records []domain.SalesRecord
	for _, row := range rows[headerRow:] {
		record, ok := cleanRow(row, columns, branch)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return "", nil, errors.New("nenhuma linha válida após a limpeza")
	}

	return branch, records, nil
}

// mapColumns resolve o índice de cada coluna pelo nome exato do cabeçalho
func mapColumns(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}

	return columns, missing
}

// cleanRow aplica as regras de limpeza do relatório: linhas sem Menu, data ou
// valores-chave inválidos são descartadas; campos numéricos opcionais
// ausentes valem 0.
func cleanRow(row []string, columns map[string]int, branch string) (domain.SalesRecord, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	menu := cell("Menu")
	if menu == "" {
		return domain.SalesRecord{}, false
	}

	soldAt, ok := parseDate(cell("Sales Date"))
	if !ok {
		return domain.SalesRecord{}, false
	}

	total, ok := parseFloat(cell("Total"))
	if !ok || total <= 0 {
		return domain.SalesRecord{}, false
	}

	cogs, ok := parseFloat(cell("COGS Total"))
	if !ok || cogs < 0 {
		return domain.SalesRecord{}, false
	}

	cogsPct, ok := parseFloat(cell("COGS Total (%)"))
	if !ok || cogsPct < 0 || cogsPct > 100 {
		return domain.SalesRecord{}, false
	}

	margin, ok := parseFloat(cell("Margin"))
	if !ok {
		return domain.SalesRecord{}, false
	}

	return domain.SalesRecord{
		Branch:         branch,
		SalesNumber:    cell("Sales Number"),
		SoldAt:         soldAt,
		Menu:           menu,
		Qty:            parseFloatOrZero(cell("Qty")),
		Price:          parseFloatOrZero(cell("Price")),
		Total:          total,
		DiscountTotal:  parseFloatOrZero(cell("Discount Total")),
		COGSTotal:      cogs,
		COGSPercentage: cogsPct,
		Margin:         margin,
	}, true
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"01-02-06 15:04",
	time.RFC3339,
}

// parseDate aceita os formatos de data usuais do relatório e também o número
// serial do Excel
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

func parseFloatOrZero(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return v
}
