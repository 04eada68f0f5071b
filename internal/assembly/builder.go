package assembly

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"storefront/assembly/internal/domain"
)

// Classifier maps a raw assembly option to the UI-facing group type tag.
// The builder stores the tag opaquely; presentation rules live with the
// caller.
type Classifier func(option *domain.AssemblyOption) domain.GroupType

// TreeBuilder expands raw assembly options into a normalized tree of option
// groups and items. It reads only from the metadata index and the price
// index, both fixed at construction, so a builder is safe to reuse across
// calls.
type TreeBuilder struct {
	metadata *MetadataIndex
	prices   PriceIndex
	classify Classifier
}

func NewTreeBuilder(metadata *MetadataIndex, prices PriceIndex, classify Classifier) *TreeBuilder {
	if classify == nil {
		classify = domain.ClassifyGroup
	}
	return &TreeBuilder{
		metadata: metadata,
		prices:   prices,
		classify: classify,
	}
}

// BuildGroups builds the option-group mapping for a root-level list of raw
// assembly options. Malformed input degrades instead of failing: groups
// with neither composition nor input values and items without metadata are
// dropped, missing prices resolve to zero.
func (b *TreeBuilder) BuildGroups(options []domain.AssemblyOption) map[string]*domain.OptionGroup {
	return b.buildGroups(options, NodeID{}, []domain.PathEntry{}, map[string]bool{})
}

func (b *TreeBuilder) buildGroups(
	options []domain.AssemblyOption,
	parent NodeID,
	path []domain.PathEntry,
	active map[string]bool,
) map[string]*domain.OptionGroup {
	groups := make(map[string]*domain.OptionGroup, len(options))

	for i := range options {
		option := &options[i]
		if option.Composition == nil && option.InputValues == nil {
			continue
		}

		var groupID NodeID
		if parent.IsZero() {
			groupID = RootID(option.ID)
		} else {
			groupID = parent.Child(option.ID)
		}

		group := &domain.OptionGroup{
			ID:          groupID.Key(),
			GroupName:   groupName(option.ID),
			TreePath:    path,
			Type:        b.classify(option),
			Required:    option.Required,
			InputValues: option.InputValues,
		}

		if comp := option.Composition; comp != nil {
			minQty, maxQty := comp.MinQuantity, comp.MaxQuantity
			group.MinQuantity = &minQty
			group.MaxQuantity = &maxQty
			if len(comp.Items) > 0 {
				group.Items = b.expandItems(comp.Items, groupID, path, active)
			}
		}

		groups[groupID.Key()] = group
	}

	return groups
}

func (b *TreeBuilder) expandItems(
	rawItems []domain.CompositionItem,
	groupID NodeID,
	path []domain.PathEntry,
	active map[string]bool,
) map[string]*domain.OptionItem {
	items := make(map[string]*domain.OptionItem, len(rawItems))

	for _, raw := range rawItems {
		meta, ok := b.metadata.Lookup(raw.ID)
		if !ok {
			// Incomplete catalog feed: the item is not renderable without
			// metadata, so it is excluded. Siblings are unaffected.
			log.Debugf("no metadata for composition item %q in group %q, skipping", raw.ID, groupID.Raw())
			continue
		}

		itemID := groupID.Child(raw.ID)

		var children map[string]*domain.OptionGroup
		if len(meta.AssemblyOptions) > 0 {
			if active[raw.ID] {
				log.Warnf("cyclic catalog reference via item %q under group %q, skipping", raw.ID, groupID.Raw())
				continue
			}
			childPath := make([]domain.PathEntry, len(path), len(path)+1)
			copy(childPath, path)
			childPath = append(childPath, domain.PathEntry{
				ItemID:  groupID.Raw(),
				GroupID: itemID.Key(),
			})

			active[raw.ID] = true
			children = b.buildGroups(meta.AssemblyOptions, itemID, childPath, active)
			delete(active, raw.ID)
		}

		items[itemID.Key()] = &domain.OptionItem{
			ID:              itemID.Key(),
			Name:            meta.Name,
			ImageURL:        meta.ImageURL,
			Price:           b.prices.Get(raw.PriceTable, groupID.Raw(), raw.ID),
			MinQuantity:     raw.MinQuantity,
			MaxQuantity:     raw.MaxQuantity,
			InitialQuantity: raw.InitialQuantity,
			Quantity:        raw.InitialQuantity,
			Seller:          raw.Seller,
			Children:        children,
		}
	}

	return items
}

// groupName derives the display name from the raw group id: everything
// after the last underscore, or the whole id when there is none.
func groupName(rawID string) string {
	if i := strings.LastIndex(rawID, "_"); i >= 0 {
		return rawID[i+1:]
	}
	return rawID
}
