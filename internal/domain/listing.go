package domain

// ListingPageItem is one product reference discovered on a category
// listing page.
type ListingPageItem struct {
	ProductID  string `json:"product_id"`
	ProductURL string `json:"product_url"`
}

// ListingPage is one page of a storefront category listing.
type ListingPage struct {
	Category     string            `json:"category"`
	PageNumber   int               `json:"page_number"`
	TotalPages   int               `json:"total_pages"`
	TotalItems   int               `json:"total_items"`
	ItemsPerPage int               `json:"items_per_page"`
	Items        []ListingPageItem `json:"items"`
}
