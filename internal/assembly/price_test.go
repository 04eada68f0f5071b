package assembly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/assembly/internal/assembly"
	"storefront/assembly/internal/domain"
)

func TestPriceIndex_GetResolvesAndDefaults(t *testing.T) {
	index := assembly.BuildPriceIndex([]domain.PriceTable{
		{
			Type: "T",
			Values: []domain.PriceEntry{
				{AssemblyID: "G", ID: "I", Price: 500},
			},
		},
	})

	assert.Equal(t, 500, index.Get("T", "G", "I"))

	// Any missing key level resolves to zero.
	assert.Equal(t, 0, index.Get("T", "G", "other"))
	assert.Equal(t, 0, index.Get("T", "other", "I"))
	assert.Equal(t, 0, index.Get("other", "G", "I"))
}

func TestPriceIndex_LastWriteWinsOnDuplicates(t *testing.T) {
	index := assembly.BuildPriceIndex([]domain.PriceTable{
		{
			Type: "T",
			Values: []domain.PriceEntry{
				{AssemblyID: "G", ID: "I", Price: 100},
				{AssemblyID: "G", ID: "I", Price: 250},
			},
		},
		{
			Type: "T",
			Values: []domain.PriceEntry{
				{AssemblyID: "G", ID: "J", Price: 50},
			},
		},
	})

	assert.Equal(t, 250, index.Get("T", "G", "I"), "duplicate entry overwrites")
	assert.Equal(t, 50, index.Get("T", "G", "J"), "second table of the same type accumulates")
}

func TestPriceIndex_EmptyTable(t *testing.T) {
	index := assembly.BuildPriceIndex(nil)
	assert.Equal(t, 0, index.Get("T", "G", "I"))
}
