// Package paginator splits ordered listings into fixed-size pages.
package paginator

import (
	"strconv"
	"strings"
)

// DefaultPerPage is the listing page size used when none is configured.
const DefaultPerPage = 10

type Paginator struct {
	PerPage int
}

func New(perPage int) *Paginator {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Paginator{PerPage: perPage}
}

// Page describes one window of a listing of Count items.
type Page struct {
	Number   int
	NumPages int
	Count    int
	PerPage  int
}

// Page resolves the raw page query value against count items. Missing or
// malformed values select the first page; out-of-range numbers clamp to the
// nearest valid page. There is always at least one (possibly empty) page.
func (p *Paginator) Page(count int, raw string) Page {
	numPages := 1
	if count > p.PerPage {
		numPages = (count + p.PerPage - 1) / p.PerPage
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil:
		number = 1
	case number < 1:
		number = 1
	case number > numPages:
		number = numPages
	}

	return Page{Number: number, NumPages: numPages, Count: count, PerPage: p.PerPage}
}

func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }

func (p Page) Limit() int { return p.PerPage }

func (p Page) HasNext() bool { return p.Number < p.NumPages }

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) HasOtherPages() bool { return p.HasNext() || p.HasPrevious() }

func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p Page) PreviousNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}

// Range lists all page numbers, 1-based.
func (p Page) Range() []int {
	numbers := make([]int, p.NumPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

// Slice is a page together with its items.
type Slice[T any] struct {
	Page
	Items []T
}
