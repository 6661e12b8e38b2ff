// Package paginator splits ordered gorm queries into fixed size pages.
package paginator

import (
	"strconv"

	"gorm.io/gorm"
)

type Page[T any] struct {
	Items              []T   `json:"items"`
	Number             int   `json:"number"`
	NumPages           int   `json:"num_pages"`
	Count              int64 `json:"count"`
	PerPage            int   `json:"per_page"`
	HasNext            bool  `json:"has_next"`
	HasPrevious        bool  `json:"has_previous"`
	NextPageNumber     int   `json:"next_page_number,omitempty"`
	PreviousPageNumber int   `json:"previous_page_number,omitempty"`
	StartIndex         int64 `json:"start_index"` // 1-based, 0 for an empty page
	EndIndex           int64 `json:"end_index"`
}

// Len makes the page usable like a slice in templates
func (p *Page[T]) Len() int {
	return len(p.Items)
}

// Resolve picks the page to show for the requested page number:
//   - missing or non-numeric -> 1
//   - out of range (past the end or below 1) -> last page
//
// An empty collection still has one (empty) page.
func Resolve(count int64, perPage int, requested string) (number, numPages int) {
	if perPage < 1 {
		perPage = 1
	}
	numPages = int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	number, err := strconv.Atoi(requested)
	if err != nil {
		return 1, numPages
	}
	if number < 1 || number > numPages {
		return numPages, numPages
	}
	return number, numPages
}

// New builds the page metadata, Items are left for the caller to fill
func New[T any](count int64, perPage int, requested string) *Page[T] {
	if perPage < 1 {
		perPage = 1
	}
	number, numPages := Resolve(count, perPage, requested)
	p := &Page[T]{
		Items:       []T{},
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		PerPage:     perPage,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
	if p.HasNext {
		p.NextPageNumber = number + 1
	}
	if p.HasPrevious {
		p.PreviousPageNumber = number - 1
	}
	if count > 0 {
		p.StartIndex = p.Offset() + 1
		p.EndIndex = p.Offset() + int64(perPage)
		if p.EndIndex > count {
			p.EndIndex = count
		}
	}
	return p
}

func (p *Page[T]) Offset() int64 {
	return int64(p.Number-1) * int64(p.PerPage)
}

// Paginate counts the rows of tx and loads the requested page. tx must already be ordered.
// preloads are applied to the page query only.
func Paginate[T any](tx *gorm.DB, perPage int, requested string, preloads ...string) (*Page[T], error) {
	var count int64
	if err := tx.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}
	page := New[T](count, perPage, requested)
	if count == 0 {
		return page, nil
	}
	find := tx.Session(&gorm.Session{})
	for _, preload := range preloads {
		find = find.Preload(preload)
	}
	err := find.Offset(int(page.Offset())).Limit(page.PerPage).Find(&page.Items).Error
	if err != nil {
		return nil, err
	}
	return page, nil
}
