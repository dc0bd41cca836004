package order

// QueryOrdersModel represents filter parameters for querying orders.
// Results are always returned newest-first by creation timestamp.
type QueryOrdersModel struct {
	HumanIds    []string `json:"ids,omitempty"`
	CustomerIds []int64  `json:"customerIds,omitempty"`
	Statuses    []Status `json:"statuses,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}
