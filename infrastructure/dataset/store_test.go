package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/branch-analytics-api/internal/domain"
)

func record(branch, menu string, soldAt time.Time, total float64) domain.SalesRecord {
	return domain.SalesRecord{
		Branch: branch,
		Menu:   menu,
		SoldAt: soldAt,
		Total:  total,
	}
}

func TestStore_ReplaceBuildsInfo(t *testing.T) {
	store := NewStore()
	assert.False(t, store.Loaded())

	day1 := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 15, 19, 30, 0, 0, time.UTC)

	info := store.Replace([]domain.SalesRecord{
		record("Cabang B", "Nasi Goreng", day2, 100),
		record("Cabang A", "Es Teh", day1, 50),
		record("Cabang B", "Sate Ayam", day1, 75),
	}, map[string]domain.BranchFile{
		"Cabang A": {Filename: "a.xlsx", Records: 1},
		"Cabang B": {Filename: "b.xlsx", Records: 2},
	})

	assert.True(t, store.Loaded())
	assert.Equal(t, 3, info.TotalRecords)
	assert.Equal(t, []string{"Cabang A", "Cabang B"}, info.Branches)
	assert.Equal(t, day1, info.MinDate)
	assert.Equal(t, day2, info.MaxDate)
	assert.NotEmpty(t, info.Version)
	assert.Len(t, store.Snapshot(), 3)
}

func TestStore_ReplaceIsAtomicForSnapshots(t *testing.T) {
	store := NewStore()

	old := []domain.SalesRecord{record("A", "X", time.Now(), 10)}
	store.Replace(old, nil)

	snapshot := store.Snapshot()

	// Um novo upload não pode alterar o snapshot já obtido
	store.Replace([]domain.SalesRecord{
		record("B", "Y", time.Now(), 20),
		record("B", "Z", time.Now(), 30),
	}, nil)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, "A", snapshot[0].Branch)
	assert.Len(t, store.Snapshot(), 2)
}

func TestStore_VersionChangesOnReplace(t *testing.T) {
	store := NewStore()

	first := store.Replace([]domain.SalesRecord{record("A", "X", time.Now(), 10)}, nil)
	second := store.Replace([]domain.SalesRecord{record("A", "X", time.Now(), 10)}, nil)

	assert.NotEqual(t, first.Version, second.Version)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore()
	store.Replace([]domain.SalesRecord{record("A", "X", time.Now(), 10)}, nil)

	store.Clear()

	assert.False(t, store.Loaded())
	assert.Empty(t, store.Snapshot())
}
