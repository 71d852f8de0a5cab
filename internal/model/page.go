package model

// DefaultPageSize is the fixed number of contacts per page.
const DefaultPageSize = 15

// Pagination carries page metadata alongside a listing. From and To are the
// 1-based indexes of the first and last item on the current page, nil when
// the page is empty.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	LastPage    int  `json:"last_page"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// ContactPage is a page of contacts plus its pagination metadata.
type ContactPage struct {
	Contacts   []Contact
	Pagination Pagination
}

// NewPagination computes consistent page metadata for a listing of total
// items at perPage items per page. LastPage is never below 1 so that an
// empty listing still reports page 1 of 1.
func NewPagination(page, perPage, total, itemsOnPage int) Pagination {
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	p := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}

	if itemsOnPage > 0 {
		from := (page-1)*perPage + 1
		to := from + itemsOnPage - 1
		p.From = &from
		p.To = &to
	}

	return p
}
