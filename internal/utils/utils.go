package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumbers joins numbers as "1,2,3" (the storage format of number sets)
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// ParseNumbers reads a "1,2,3" list back into numbers. Empty items are ignored.
func ParseNumbers(s string) ([]int, error) {
	numbers := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// PadNumbers renders numbers with two digits, separated by spaces ("03 17 42")
func PadNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

// Paginate clamps page into [1, pages] and returns the page count and row offset.
// An empty result set still has one (empty) page.
func Paginate(total int64, page, perPage int) (pages, current, offset int) {
	if perPage <= 0 {
		perPage = 1
	}
	pages = int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	current = page
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}
	return pages, current, (current - 1) * perPage
}
