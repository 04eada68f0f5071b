package task

// ProductSyncTask asks a worker to fetch one product's catalog data and
// rebuild the assembly trees for its SKUs.
type ProductSyncTask struct {
	ProductID string `json:"product_id"`
	Category  string `json:"category"` // listing category the product was discovered in
}

func (t *ProductSyncTask) TaskType() string {
	return "ProductSyncTask"
}

func (t *ProductSyncTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
