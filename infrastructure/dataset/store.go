// Package dataset implementa o Record Store em memória da aplicação.
//
// O dataset inteiro é substituído de forma atômica a cada upload: leitores em
// andamento continuam enxergando o snapshot antigo, nunca uma mistura de
// datasets.
package dataset

import (
	"sort"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
)

const versionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Store guarda a sequência ordenada de registros de venda e os metadados do
// dataset carregado
type Store struct {
	mu      sync.RWMutex
	records []domain.SalesRecord
	info    domain.DatasetInfo
	loaded  bool
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{}
}

// Replace substitui o dataset inteiro pelo novo conjunto de registros,
// recalculando os metadados e atribuindo uma nova versão
func (s *Store) Replace(records []domain.SalesRecord, files map[string]domain.BranchFile) domain.DatasetInfo {
	info := buildInfo(records, files)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.info = info
	s.loaded = true

	return info
}

// Clear descarta o dataset carregado
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.info = domain.DatasetInfo{}
	s.loaded = false
}

// Loaded informa se existe um dataset carregado
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Snapshot retorna a sequência de registros atual. O slice retornado nunca é
// mutado depois do Replace, então os chamadores podem iterar sem cópia.
func (s *Store) Snapshot() []domain.SalesRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records
}

// Info retorna os metadados do dataset atual
func (s *Store) Info() domain.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.info
}

func buildInfo(records []domain.SalesRecord, files map[string]domain.BranchFile) domain.DatasetInfo {
	version, err := gonanoid.Generate(versionAlphabet, 6)
	if err != nil {
		version = time.Now().Format("20060102150405")
	}

	info := domain.DatasetInfo{
		Version:      version,
		TotalRecords: len(records),
		Files:        files,
		LoadedAt:     time.Now(),
	}

	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Branch] {
			seen[r.Branch] = true
			info.Branches = append(info.Branches, r.Branch)
		}

		if info.MinDate.IsZero() || r.SoldAt.Before(info.MinDate) {
			info.MinDate = r.SoldAt
		}
		if info.MaxDate.IsZero() || r.SoldAt.After(info.MaxDate) {
			info.MaxDate = r.SoldAt
		}
	}

	sort.Strings(info.Branches)

	return info
}
