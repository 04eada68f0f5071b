package assembly

import (
	"storefront/assembly/internal/domain"
)

// PriceIndex resolves composition item prices, nested by price-table type,
// then owning assembly-group id, then item id.
type PriceIndex map[string]map[string]map[string]int

// BuildPriceIndex flattens the product's price tables into a PriceIndex.
// Duplicate (type, assemblyId, id) keys overwrite: last row wins.
func BuildPriceIndex(tables []domain.PriceTable) PriceIndex {
	index := make(PriceIndex, len(tables))
	for _, table := range tables {
		byGroup, ok := index[table.Type]
		if !ok {
			byGroup = make(map[string]map[string]int)
			index[table.Type] = byGroup
		}
		for _, entry := range table.Values {
			byItem, ok := byGroup[entry.AssemblyID]
			if !ok {
				byItem = make(map[string]int)
				byGroup[entry.AssemblyID] = byItem
			}
			byItem[entry.ID] = entry.Price
		}
	}
	return index
}

// Get resolves a price, defaulting to 0 when any key level is missing.
// Price resolution never fails: an unpriced item is a free item.
func (ix PriceIndex) Get(tableType, assemblyID, itemID string) int {
	return ix[tableType][assemblyID][itemID]
}
