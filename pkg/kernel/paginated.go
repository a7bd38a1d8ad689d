package kernel

// PaginationOptions is a requested page window
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"limit"`
}

// Page describes where a result slice sits in the full result set
type Page struct {
	Number int `json:"page"`
	Size   int `json:"limit"`
	Total  int `json:"total"`
	Pages  int `json:"totalPages"`
}

// Paginated is a page of items plus its position
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"pagination"`
}
