package domain

// PathEntry is one step of a node's ancestor path: the raw id of the group
// the containing item was attached under, and the composite id of that item.
type PathEntry struct {
	ItemID  string `json:"itemId"`
	GroupID string `json:"groupId"`
}

// OptionGroup is a normalized assembly slot in a built tree. ID is a
// composite key, unique across the whole tree. Min/MaxQuantity are set only
// for composition groups; Items is populated only when the raw composition
// actually listed items.
type OptionGroup struct {
	ID          string                 `json:"id"`
	GroupName   string                 `json:"groupName"`
	TreePath    []PathEntry            `json:"treePath"`
	Type        GroupType              `json:"type"`
	Required    bool                   `json:"required"`
	MinQuantity *int                   `json:"minQuantity,omitempty"`
	MaxQuantity *int                   `json:"maxQuantity,omitempty"`
	InputValues *InputValues           `json:"inputValues,omitempty"`
	Items       map[string]*OptionItem `json:"items,omitempty"`
}

// OptionItem is an attachable sub-item in a built tree. Quantity starts at
// InitialQuantity; the selection store mutates its own copy, never this one.
// Children is nil when the item's metadata lists no further assembly
// options, and a non-nil (possibly empty) map otherwise.
type OptionItem struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	ImageURL        string                  `json:"imageUrl"`
	Price           int                     `json:"price"`
	MinQuantity     int                     `json:"minQuantity"`
	MaxQuantity     int                     `json:"maxQuantity"`
	InitialQuantity int                     `json:"initialQuantity"`
	Quantity        int                     `json:"quantity"`
	Seller          string                  `json:"seller"`
	Children        map[string]*OptionGroup `json:"children"`
}
