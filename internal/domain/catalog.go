package domain

// Product is a configurable catalog product as returned by the commerce API.
// ItemMetadata carries customization metadata for every item reachable from
// this product, including items that only appear as composition options.
type Product struct {
	ID           string       `json:"productId"`
	Name         string       `json:"productName"`
	Items        []SKU        `json:"items"`
	ItemMetadata ItemMetadata `json:"itemMetadata"`
}

// SKU is one sellable variation of a product.
type SKU struct {
	ItemID string `json:"itemId"`
	Name   string `json:"name,omitempty"`
}

type ItemMetadata struct {
	Items      []MetadataItem `json:"items"`
	PriceTable []PriceTable   `json:"priceTable"`
}

// MetadataItem describes one catalog item. AssemblyOptions lists the item's
// own customizable slots; it is empty for items that cannot be customized
// any further.
type MetadataItem struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	ImageURL        string           `json:"imageUrl"`
	AssemblyOptions []AssemblyOption `json:"assemblyOptions"`
}

// AssemblyOption is a raw customizable slot on an item: either a composition
// of attachable sub-items or a free-form input-value selector. A slot with
// neither is meaningless and is dropped during tree building.
type AssemblyOption struct {
	ID          string       `json:"id"`
	Required    bool         `json:"required"`
	Composition *Composition `json:"composition,omitempty"`
	InputValues *InputValues `json:"inputValues,omitempty"`
}

type Composition struct {
	MinQuantity int               `json:"minQuantity"`
	MaxQuantity int               `json:"maxQuantity"`
	Items       []CompositionItem `json:"items"`
}

// CompositionItem references an attachable sub-item together with its
// quantity constraints. PriceTable names the price-table type whose rows
// apply to this item.
type CompositionItem struct {
	ID              string `json:"id"`
	Seller          string `json:"seller"`
	PriceTable      string `json:"priceTable"`
	MinQuantity     int    `json:"minQuantity"`
	MaxQuantity     int    `json:"maxQuantity"`
	InitialQuantity int    `json:"initialQuantity"`
}

type InputValues struct {
	Domain []string `json:"domain"`
	Label  string   `json:"label"`
}

// PriceTable groups price rows of one type. Prices are in cents.
type PriceTable struct {
	Type   string       `json:"type"`
	Values []PriceEntry `json:"values"`
}

type PriceEntry struct {
	AssemblyID string `json:"assemblyId"`
	ID         string `json:"id"`
	Price      int    `json:"price"`
}
