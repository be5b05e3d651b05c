package records

// Storage keys, one per feature area. Each key holds a JSON array of
// that area's records; there are no cross-key transactions.
const (
	KeyTransactions    = "fintrack:transactions"
	KeyCategories      = "fintrack:categories"
	KeyIncomes         = "fintrack:income"
	KeySubscriptions   = "fintrack:subscriptions"
	KeyRecurring       = "fintrack:recurring_expenses"
	KeyBudgets         = "fintrack:budgets"
	KeyClassifications = "fintrack:classifications"
	KeyGoals           = "fintrack:goals"
	KeyProfiles        = "fintrack:profiles"
	KeyUPITransactions = "fintrack:upi_transactions"
	KeyMonthlyReports  = "fintrack:monthly_reports"
)
