package model

import "time"

// ReportRow is a single transaction line in a financial report, with the
// owning account and category names resolved (either may be absent).
type ReportRow struct {
	Date         time.Time
	Type         TransactionType
	AccountName  string
	CategoryName string
	Amount       Cents
}

// Report is the normalized report model handed to the document rendering
// collaborator. Totals are computed over the filtered transaction set only,
// never read from stored account balances.
type Report struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Title         string
	Rows          []ReportRow
	TotalIncome   Cents
	TotalExpenses Cents
	Balance       Cents
}
