package types

// SaveFormDesignRequest creates or updates a stored form design.
// ID zero means create.
type SaveFormDesignRequest struct {
	ID         uint   `json:"id"`
	Key        string `json:"key"`
	Name       string `json:"name"`
	WorkflowID string `json:"workflowId"`
	Body       string `json:"body"`
	Status     int    `json:"status"`
	Remark     string `json:"remark"`
}

// ListFormDesignsRequest filters the paginated design listing.
type ListFormDesignsRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Status   *int   `json:"status"`
}

// FormDesignInfo is the listing row for one stored design.
type FormDesignInfo struct {
	ID         uint   `json:"id"`
	Key        string `json:"key"`
	Name       string `json:"name"`
	WorkflowID string `json:"workflowId"`
	Version    int    `json:"version"`
	Status     int    `json:"status"`
	Remark     string `json:"remark"`
}
