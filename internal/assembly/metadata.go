package assembly

import (
	"storefront/assembly/internal/domain"
)

// MetadataIndex is a hash index of a product's item metadata by item id.
// The builder performs one lookup per composition item at every tree level,
// so the flat metadata list is indexed once up front.
type MetadataIndex struct {
	byID map[string]*domain.MetadataItem
}

func NewMetadataIndex(items []domain.MetadataItem) *MetadataIndex {
	index := &MetadataIndex{
		byID: make(map[string]*domain.MetadataItem, len(items)),
	}
	for i := range items {
		index.byID[items[i].ID] = &items[i]
	}
	return index
}

// Lookup returns the metadata for itemID, or ok=false when the catalog feed
// has no entry for it.
func (ix *MetadataIndex) Lookup(itemID string) (*domain.MetadataItem, bool) {
	item, ok := ix.byID[itemID]
	return item, ok
}
