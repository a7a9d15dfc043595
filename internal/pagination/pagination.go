// Package pagination holds the fixed-size page arithmetic shared by the profile and search pages.
package pagination

// PageSize is the number of cards on every list page.
const PageSize = 10

// ItemsOnPage returns how many items page holds out of amount.
// Page 0 is read as the first page; negative pages hold nothing.
func ItemsOnPage(amount, page int) int {
	if page == 0 {
		page = 1
	}
	lower := PageSize * (page - 1)
	upper := PageSize * page
	if page <= 0 || amount <= lower {
		return 0
	}
	if amount < upper {
		return amount - lower
	}
	return PageSize
}

// TotalPages is ceil(amount / PageSize).
func TotalPages(amount int) int {
	if amount <= 0 {
		return 0
	}
	return (amount + PageSize - 1) / PageSize
}

// Offset is the row offset of page; pages below 1 start at zero.
func Offset(page int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * PageSize
}

// HasMore reports whether amount overflows a single page.
func HasMore(amount int) bool {
	return amount > PageSize
}
