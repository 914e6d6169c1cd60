package domain

import "fmt"

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthIndex = func() map[string]int {
	m := make(map[string]int, len(months))
	for i, name := range months {
		m[name] = i + 1
	}
	return m
}()

// MapMonth returns the 1..12 ordinal of an English month name.
// Matching is exact; "march" or "Marchh" are not months.
func MapMonth(name string) (int, error) {
	if n, ok := monthIndex[name]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: month %q", ErrUnmappedCategory, name)
}

// MonthName is the inverse of MapMonth.
func MonthName(n int) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("%w: month number %d", ErrUnmappedCategory, n)
	}
	return months[n-1], nil
}
