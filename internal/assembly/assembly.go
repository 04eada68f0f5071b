// Package assembly turns a product's raw catalog metadata into a normalized,
// addressable tree of assembly option groups and option items, with unique
// composite identifiers, resolved prices, quantity constraints and ancestor
// paths. The build is a pure, synchronous computation; selection state and
// rendering live elsewhere and consume the tree read-only.
package assembly

import (
	"sync"

	"storefront/assembly/internal/domain"
)

// BuildTree builds the assembly tree for one SKU of a product. It returns
// nil when product or selected is nil, when the SKU has no metadata, or
// when its metadata lists no assembly options — absence of a tree is the
// only failure mode.
func BuildTree(product *domain.Product, selected *domain.SKU, classify Classifier) map[string]*domain.OptionGroup {
	if product == nil || selected == nil {
		return nil
	}

	metadata := NewMetadataIndex(product.ItemMetadata.Items)
	meta, ok := metadata.Lookup(selected.ItemID)
	if !ok || len(meta.AssemblyOptions) == 0 {
		return nil
	}

	prices := BuildPriceIndex(product.ItemMetadata.PriceTable)
	builder := NewTreeBuilder(metadata, prices, classify)
	return builder.BuildGroups(meta.AssemblyOptions)
}

// Assembler memoizes BuildTree on the identity of its inputs. Consumers
// re-reading the tree for the same product and SKU references get the same
// snapshot back without a rebuild; swapping either reference triggers one.
type Assembler struct {
	classify Classifier

	mu           sync.Mutex
	memoProduct  *domain.Product
	memoSelected *domain.SKU
	memoTree     map[string]*domain.OptionGroup
	memoSet      bool
}

func NewAssembler(classify Classifier) *Assembler {
	if classify == nil {
		classify = domain.ClassifyGroup
	}
	return &Assembler{classify: classify}
}

// TreeForSelection returns the assembly tree for the selected SKU, reusing
// the previous result when both references are unchanged.
func (a *Assembler) TreeForSelection(product *domain.Product, selected *domain.SKU) map[string]*domain.OptionGroup {
	if product == nil || selected == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.memoSet && a.memoProduct == product && a.memoSelected == selected {
		return a.memoTree
	}

	tree := BuildTree(product, selected, a.classify)
	a.memoProduct = product
	a.memoSelected = selected
	a.memoTree = tree
	a.memoSet = true
	return tree
}

// Invalidate drops the memoized tree. Call it when the underlying catalog
// data changed without the input references changing identity.
func (a *Assembler) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.memoProduct = nil
	a.memoSelected = nil
	a.memoTree = nil
	a.memoSet = false
}
