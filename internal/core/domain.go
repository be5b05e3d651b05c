package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

const (
	Need         NeedWantLabel = "need"
	Want         NeedWantLabel = "want"
	Unclassified NeedWantLabel = "unclassified"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	TransactionType string

	NeedWantLabel string

	Frequency string

	// Date is a calendar date with no time zone. It marshals to and from
	// the ISO form YYYY-MM-DD, which is also the form used for period
	// matching (exact match for a day, prefix match for a month).
	Date struct {
		time.Time
	}

	Transaction struct {
		ID        string          `json:"id"`
		Title     string          `json:"title"`
		Amount    float64         `json:"amount"`
		Category  string          `json:"category"`
		Date      Date            `json:"date"`
		Note      string          `json:"note,omitempty"`
		Type      TransactionType `json:"type"`
		IsNeed    bool            `json:"isNeed"`
		ProfileID string          `json:"profileId,omitempty"`
		CreatedAt time.Time       `json:"createdAt"`
	}

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}

	// ClassifiedTransaction is the derived need/want record for a
	// transaction. It is created lazily the first time a transaction is
	// classified and overwritten on manual reclassification.
	ClassifiedTransaction struct {
		TransactionID  string        `json:"transactionId"`
		Label          NeedWantLabel `json:"label"`
		Confidence     float64       `json:"confidence"`
		UserOverridden bool          `json:"userOverridden"`
		ClassifiedAt   time.Time     `json:"classifiedAt"`
	}

	UserBudget struct {
		ID        string    `json:"id"`
		Category  string    `json:"category"`
		Amount    float64   `json:"amount"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// BudgetSuggestion is an ephemeral proposal. It either transitions to
	// accepted (converted into a UserBudget) or stays pending.
	BudgetSuggestion struct {
		Category        string  `json:"category"`
		SuggestedAmount float64 `json:"suggestedAmount"`
		Reasoning       string  `json:"reasoning"`
		Accepted        bool    `json:"accepted"`
	}

	SavingsGoal struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		TargetAmount  float64   `json:"targetAmount"`
		CurrentAmount float64   `json:"currentAmount"`
		Deadline      Date      `json:"deadline"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	IncomeRecord struct {
		ID        string    `json:"id"`
		Source    string    `json:"source"`
		Amount    float64   `json:"amount"`
		Date      Date      `json:"date"`
		Note      string    `json:"note,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Subscription struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Amount       float64   `json:"amount"`
		Category     string    `json:"category"`
		Every        Frequency `json:"every"`
		StartDate    Date      `json:"startDate"`
		LastExecuted time.Time `json:"lastExecuted,omitempty"`
	}

	RecurringExpense struct {
		ID           string    `json:"id"`
		Title        string    `json:"title"`
		Amount       float64   `json:"amount"`
		Category     string    `json:"category"`
		Every        Frequency `json:"every"`
		StartDate    Date      `json:"startDate"`
		EndDate      Date      `json:"endDate,omitempty"`
		LastExecuted time.Time `json:"lastExecuted,omitempty"`
	}

	// UPITransaction is a payment-app transaction surfaced by a
	// PaymentTransactionSource. The shipped source is a deterministic
	// mock; see the extract package.
	UPITransaction struct {
		ID       string  `json:"id"`
		App      string  `json:"app"`
		Merchant string  `json:"merchant"`
		Amount   float64 `json:"amount"`
		Date     Date    `json:"date"`
		RefID    string  `json:"refId"`
	}

	Profile struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		IsDefault bool      `json:"isDefault"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidType   = errors.New("invalid transaction type")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the ISO form used for period matching.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the YYYY-MM prefix identifying the date's month.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsEmpty reports whether the date is unset (for optional dates such as
// a recurring expense's end date).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	switch t.Type {
	case Expense, Income:
	default:
		return ErrInvalidType
	}
	return nil
}

func (i IncomeRecord) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(i.Source)) == 0 {
		return ErrEmptyTitle
	}
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (s Subscription) Validate() error {
	if len(strings.TrimSpace(s.Name)) == 0 {
		return ErrEmptyTitle
	}
	if s.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	switch s.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return errors.New("invalid frequency")
	}
	if strings.TrimSpace(s.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (re RecurringExpense) Validate() error {
	if len(strings.TrimSpace(re.Title)) == 0 {
		return ErrEmptyTitle
	}
	if re.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := re.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	if !re.EndDate.IsEmpty() && re.EndDate.Before(re.StartDate.Time) {
		return errors.New("end date must be after start date")
	}
	switch re.Every {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return errors.New("invalid frequency")
	}
	if strings.TrimSpace(re.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyTitle
	}
	if g.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount < 0 {
		return ErrInvalidAmount
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

// WeeklyTarget returns the amount to set aside per week to reach the
// goal by its deadline. Weeks remaining is floored at one.
func (g SavingsGoal) WeeklyTarget(now time.Time) float64 {
	remaining := g.TargetAmount - g.CurrentAmount
	if remaining <= 0 {
		return 0
	}
	weeks := g.Deadline.Sub(now).Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}
	return remaining / weeks
}

func (b UserBudget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// DefaultCategories is the five-entry category list a fresh install
// starts with. The list is user-editable afterwards.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-food", Name: "Food", Color: "#FF6B6B", Icon: "restaurant"},
		{ID: "cat-transport", Name: "Transport", Color: "#4ECDC4", Icon: "bus"},
		{ID: "cat-shopping", Name: "Shopping", Color: "#FFD93D", Icon: "cart"},
		{ID: "cat-bills", Name: "Bills", Color: "#6C5CE7", Icon: "receipt"},
		{ID: "cat-entertainment", Name: "Entertainment", Color: "#FF8FB1", Icon: "film"},
	}
}
