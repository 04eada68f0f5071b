package assembly_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/assembly/internal/assembly"
	"storefront/assembly/internal/domain"
)

func TestBuildTree_AbsenceCases(t *testing.T) {
	product := pizzaProduct()
	sku := &product.Items[0]

	assert.Nil(t, assembly.BuildTree(nil, sku, nil), "missing product")
	assert.Nil(t, assembly.BuildTree(product, nil, nil), "missing selection")

	assert.Nil(t, assembly.BuildTree(product, &domain.SKU{ItemID: "unknown"}, nil),
		"selected item without metadata")

	plain := pizzaProduct()
	plain.ItemMetadata.Items[0].AssemblyOptions = nil
	assert.Nil(t, assembly.BuildTree(plain, &plain.Items[0], nil),
		"selected item without assembly options")
}

func TestBuildTree_Idempotent(t *testing.T) {
	product := pizzaProduct()
	sku := &product.Items[0]

	first := assembly.BuildTree(product, sku, nil)
	second := assembly.BuildTree(product, sku, nil)
	require.NotNil(t, first)
	assert.Equal(t, first, second, "identical inputs produce deep-equal trees")
}

func mapPointer(m map[string]*domain.OptionGroup) uintptr {
	return reflect.ValueOf(m).Pointer()
}

func TestAssembler_MemoizesByIdentity(t *testing.T) {
	assembler := assembly.NewAssembler(nil)
	product := pizzaProduct()
	sku := &product.Items[0]

	first := assembler.TreeForSelection(product, sku)
	require.NotNil(t, first)

	second := assembler.TreeForSelection(product, sku)
	assert.Equal(t, mapPointer(first), mapPointer(second),
		"same references return the memoized snapshot")

	// A value-equal product under a different reference is a rebuild.
	other := pizzaProduct()
	third := assembler.TreeForSelection(other, &other.Items[0])
	assert.NotEqual(t, mapPointer(first), mapPointer(third))
	assert.Equal(t, first, third, "rebuild from equal inputs is deep-equal")
}

func TestAssembler_Invalidate(t *testing.T) {
	assembler := assembly.NewAssembler(nil)
	product := pizzaProduct()
	sku := &product.Items[0]

	first := assembler.TreeForSelection(product, sku)
	assembler.Invalidate()
	second := assembler.TreeForSelection(product, sku)

	assert.NotEqual(t, mapPointer(first), mapPointer(second), "invalidation forces a rebuild")
	assert.Equal(t, first, second)
}

func TestAssembler_NilInputs(t *testing.T) {
	assembler := assembly.NewAssembler(nil)
	product := pizzaProduct()

	assert.Nil(t, assembler.TreeForSelection(nil, &product.Items[0]))
	assert.Nil(t, assembler.TreeForSelection(product, nil))
}
