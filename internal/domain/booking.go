package domain

// Columns of the processed bookings dataset that the analyses read.
const (
	ColHotel            = "hotel"
	ColIsCanceled       = "is_canceled"
	ColLeadTime         = "lead_time"
	ColADR              = "adr"
	ColCustomerType     = "customer_type"
	ColArrivalDateMonth = "arrival_date_month"
	ColMarketSegment    = "market_segment"

	// derived after load
	ColArrivalMonthNum = "arrival_month_num"
)

// Overview holds the headline numbers printed before the grouped tables.
type Overview struct {
	TotalBookings int
	CancelRate    float64
	AvgLeadTime   float64
	AvgADR        float64
}

// UnmappedPolicy decides what happens to rows whose month name is unknown.
type UnmappedPolicy string

const (
	// PolicyExclude marks the derived value missing; the row drops out of month grouping.
	PolicyExclude UnmappedPolicy = "exclude"
	// PolicyFail aborts on the first unknown name.
	PolicyFail UnmappedPolicy = "fail"
)
