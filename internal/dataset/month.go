package dataset

import (
	"fmt"

	"booking_insights/internal/domain"
)

// DeriveMonthNumber adds arrival_month_num next to arrival_date_month.
// Under PolicyExclude unknown names leave the cell missing and are counted;
// under PolicyFail the first unknown name aborts with ErrUnmappedCategory.
func DeriveMonthNumber(t *Table, policy domain.UnmappedPolicy) (unmapped int, err error) {
	names, err := t.Strings(domain.ColArrivalDateMonth)
	if err != nil {
		return 0, err
	}
	nums := make([]int, len(names))
	missing := make([]bool, len(names))
	for i, name := range names {
		n, err := domain.MapMonth(name)
		if err != nil {
			if policy == domain.PolicyFail {
				return 0, fmt.Errorf("row %d: %w", i+1, err)
			}
			missing[i] = true
			unmapped++
			continue
		}
		nums[i] = n
	}
	if err := t.AddIntColumn(domain.ColArrivalMonthNum, nums, missing); err != nil {
		return 0, err
	}
	return unmapped, nil
}
