package assembly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/assembly/internal/assembly"
	"storefront/assembly/internal/domain"
)

func intPtr(v int) *int { return &v }

// pizzaProduct is a small configurable product: sku1 has one topping group
// with one item, and the topping item can itself be customized with a
// sauce group.
func pizzaProduct() *domain.Product {
	return &domain.Product{
		ID:    "prod1",
		Items: []domain.SKU{{ItemID: "sku1", Name: "Large"}},
		ItemMetadata: domain.ItemMetadata{
			Items: []domain.MetadataItem{
				{
					ID:       "sku1",
					Name:     "Large Pizza",
					ImageURL: "https://img.example.com/sku1.png",
					AssemblyOptions: []domain.AssemblyOption{
						{
							ID:       "pizza_toppings",
							Required: true,
							Composition: &domain.Composition{
								MinQuantity: 1,
								MaxQuantity: 1,
								Items: []domain.CompositionItem{
									{
										ID:              "i1",
										Seller:          "1",
										PriceTable:      "T",
										MinQuantity:     0,
										MaxQuantity:     3,
										InitialQuantity: 2,
									},
								},
							},
						},
					},
				},
				{
					ID:       "i1",
					Name:     "Pepperoni",
					ImageURL: "https://img.example.com/i1.png",
				},
			},
			PriceTable: []domain.PriceTable{
				{
					Type: "T",
					Values: []domain.PriceEntry{
						{AssemblyID: "pizza_toppings", ID: "i1", Price: 500},
					},
				},
			},
		},
	}
}

func buildFor(t *testing.T, product *domain.Product, skuID string) map[string]*domain.OptionGroup {
	t.Helper()
	metadata := assembly.NewMetadataIndex(product.ItemMetadata.Items)
	meta, ok := metadata.Lookup(skuID)
	require.True(t, ok)
	prices := assembly.BuildPriceIndex(product.ItemMetadata.PriceTable)
	builder := assembly.NewTreeBuilder(metadata, prices, nil)
	return builder.BuildGroups(meta.AssemblyOptions)
}

func onlyGroup(t *testing.T, groups map[string]*domain.OptionGroup) *domain.OptionGroup {
	t.Helper()
	require.Len(t, groups, 1)
	for key, group := range groups {
		require.Equal(t, key, group.ID)
		return group
	}
	return nil
}

func onlyItem(t *testing.T, group *domain.OptionGroup) *domain.OptionItem {
	t.Helper()
	require.Len(t, group.Items, 1)
	for key, item := range group.Items {
		require.Equal(t, key, item.ID)
		return item
	}
	return nil
}

func TestBuildGroups_SingleGroupSingleItem(t *testing.T) {
	groups := buildFor(t, pizzaProduct(), "sku1")

	group := onlyGroup(t, groups)
	assert.Equal(t, assembly.RootID("pizza_toppings").Key(), group.ID)
	assert.Equal(t, "toppings", group.GroupName)
	assert.Empty(t, group.TreePath)
	assert.True(t, group.Required)
	require.NotNil(t, group.MinQuantity)
	require.NotNil(t, group.MaxQuantity)
	assert.Equal(t, 1, *group.MinQuantity)
	assert.Equal(t, 1, *group.MaxQuantity)

	item := onlyItem(t, group)
	assert.Equal(t, "Pepperoni", item.Name)
	assert.Equal(t, "https://img.example.com/i1.png", item.ImageURL)
	assert.Equal(t, 500, item.Price)
	assert.Equal(t, "1", item.Seller)
	assert.Equal(t, 2, item.InitialQuantity)
	assert.Equal(t, 2, item.Quantity, "quantity starts at the initial quantity")
	assert.Nil(t, item.Children, "no nested options means children is nil")
}

func TestBuildGroups_NestedGroupAncestorPath(t *testing.T) {
	product := pizzaProduct()
	product.ItemMetadata.Items[1].AssemblyOptions = []domain.AssemblyOption{
		{
			ID: "sauce",
			InputValues: &domain.InputValues{
				Domain: []string{"mild", "hot"},
				Label:  "Sauce",
			},
		},
	}

	groups := buildFor(t, product, "sku1")
	item := onlyItem(t, onlyGroup(t, groups))

	require.NotNil(t, item.Children, "nested options mean children is a mapping")
	child := onlyGroup(t, item.Children)
	assert.Equal(t, "sauce", child.GroupName)
	assert.Nil(t, child.MinQuantity)
	assert.Nil(t, child.MaxQuantity)
	require.NotNil(t, child.InputValues)
	assert.Equal(t, []string{"mild", "hot"}, child.InputValues.Domain)

	require.Len(t, child.TreePath, 1)
	assert.Equal(t, "pizza_toppings", child.TreePath[0].ItemID)
	assert.Equal(t, item.ID, child.TreePath[0].GroupID)
}

func TestBuildGroups_SkipsGroupsWithNoContent(t *testing.T) {
	product := pizzaProduct()
	meta := &product.ItemMetadata.Items[0]
	meta.AssemblyOptions = append(meta.AssemblyOptions, domain.AssemblyOption{
		ID:       "empty_slot",
		Required: true,
	})

	groups := buildFor(t, product, "sku1")
	group := onlyGroup(t, groups)
	assert.Equal(t, "toppings", group.GroupName)
}

func TestBuildGroups_CompositionWithoutItemsKeepsQuantities(t *testing.T) {
	product := pizzaProduct()
	product.ItemMetadata.Items[0].AssemblyOptions = []domain.AssemblyOption{
		{
			ID: "extras",
			Composition: &domain.Composition{
				MinQuantity: 2,
				MaxQuantity: 5,
			},
		},
	}

	group := onlyGroup(t, buildFor(t, product, "sku1"))
	assert.Nil(t, group.Items, "empty composition yields no items mapping")
	assert.Equal(t, intPtr(2), group.MinQuantity)
	assert.Equal(t, intPtr(5), group.MaxQuantity)
}

func TestBuildGroups_DropsItemsWithoutMetadata(t *testing.T) {
	product := pizzaProduct()
	comp := product.ItemMetadata.Items[0].AssemblyOptions[0].Composition
	comp.Items = append(comp.Items, domain.CompositionItem{
		ID:         "ghost",
		Seller:     "1",
		PriceTable: "T",
	})

	group := onlyGroup(t, buildFor(t, product, "sku1"))
	item := onlyItem(t, group)
	assert.Equal(t, "Pepperoni", item.Name, "sibling of the dropped item is unaffected")
}

func TestBuildGroups_UniqueIDsAcrossSharedRawIDs(t *testing.T) {
	// Two sibling groups attach the same raw item, and that item nests a
	// group reusing a raw group id. Every composite id must still be
	// unique tree-wide.
	sharedItem := domain.CompositionItem{ID: "i1", Seller: "1", PriceTable: "T", MaxQuantity: 1}
	product := &domain.Product{
		Items: []domain.SKU{{ItemID: "sku1"}},
		ItemMetadata: domain.ItemMetadata{
			Items: []domain.MetadataItem{
				{
					ID: "sku1",
					AssemblyOptions: []domain.AssemblyOption{
						{ID: "left", Composition: &domain.Composition{MaxQuantity: 1, Items: []domain.CompositionItem{sharedItem}}},
						{ID: "right", Composition: &domain.Composition{MaxQuantity: 1, Items: []domain.CompositionItem{sharedItem}}},
					},
				},
				{
					ID:   "i1",
					Name: "Shared",
					AssemblyOptions: []domain.AssemblyOption{
						{ID: "left", InputValues: &domain.InputValues{Domain: []string{"a", "b"}, Label: "L"}},
					},
				},
			},
		},
	}

	groups := buildFor(t, product, "sku1")
	require.Len(t, groups, 2)

	seen := make(map[string]bool)
	var walk func(groups map[string]*domain.OptionGroup, depth int)
	walk = func(groups map[string]*domain.OptionGroup, depth int) {
		for _, group := range groups {
			assert.False(t, seen[group.ID], "duplicate composite id %q", group.ID)
			seen[group.ID] = true
			assert.Len(t, group.TreePath, depth, "ancestor path length equals depth for %q", group.ID)
			for _, item := range group.Items {
				assert.False(t, seen[item.ID], "duplicate composite id %q", item.ID)
				seen[item.ID] = true
				if item.Children != nil {
					walk(item.Children, depth+1)
				}
			}
		}
	}
	walk(groups, 0)

	// Roots "left" and "right", one item node under each, and the nested
	// "left" copy under both item nodes.
	assert.Len(t, seen, 6)
}

func TestBuildGroups_CyclicCatalogTerminates(t *testing.T) {
	// i1 lists itself as an attachable option. The revisit is dropped and
	// the build terminates.
	product := &domain.Product{
		Items: []domain.SKU{{ItemID: "sku1"}},
		ItemMetadata: domain.ItemMetadata{
			Items: []domain.MetadataItem{
				{
					ID: "sku1",
					AssemblyOptions: []domain.AssemblyOption{
						{ID: "g1", Composition: &domain.Composition{MaxQuantity: 1, Items: []domain.CompositionItem{{ID: "i1"}}}},
					},
				},
				{
					ID:   "i1",
					Name: "Recursive",
					AssemblyOptions: []domain.AssemblyOption{
						{ID: "g2", Composition: &domain.Composition{MaxQuantity: 1, Items: []domain.CompositionItem{{ID: "i1"}}}},
					},
				},
			},
		},
	}

	group := onlyGroup(t, buildFor(t, product, "sku1"))
	item := onlyItem(t, group)
	require.NotNil(t, item.Children)
	nested := onlyGroup(t, item.Children)
	assert.Empty(t, nested.Items, "revisited item is excluded")
}

func TestBuildGroups_GroupNameFromTrailingSegment(t *testing.T) {
	tests := []struct {
		rawID string
		want  string
	}{
		{"pizza_toppings", "toppings"},
		{"add_on_sauces", "sauces"},
		{"toppings", "toppings"},
	}

	for _, tt := range tests {
		product := pizzaProduct()
		product.ItemMetadata.Items[0].AssemblyOptions[0].ID = tt.rawID
		group := onlyGroup(t, buildFor(t, product, "sku1"))
		assert.Equal(t, tt.want, group.GroupName, "raw id %q", tt.rawID)
	}
}

func TestBuildGroups_ClassifierTagIsStoredOpaquely(t *testing.T) {
	product := pizzaProduct()
	metadata := assembly.NewMetadataIndex(product.ItemMetadata.Items)
	meta, ok := metadata.Lookup("sku1")
	require.True(t, ok)

	called := 0
	classify := func(option *domain.AssemblyOption) domain.GroupType {
		called++
		return domain.GroupType("CUSTOM_TAG")
	}

	builder := assembly.NewTreeBuilder(metadata, assembly.BuildPriceIndex(nil), classify)
	group := onlyGroup(t, builder.BuildGroups(meta.AssemblyOptions))
	assert.Equal(t, domain.GroupType("CUSTOM_TAG"), group.Type)
	assert.Equal(t, 1, called)
}
