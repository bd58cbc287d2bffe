package models

// Expense is a single business expense
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // DD-MM-YYYY
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
}

func (e Expense) RecordID() string { return e.ID }
func (e Expense) RecordCreatedAt() string { return e.CreatedAt }

// Expense categories
const (
	CategoryOfficeSupplies       = "Office Supplies"
	CategoryTravel               = "Travel & Transport"
	CategoryUtilities            = "Utilities"
	CategoryMarketing            = "Marketing"
	CategoryEquipment            = "Equipment"
	CategorySoftware             = "Software & Subscriptions"
	CategoryProfessionalServices = "Professional Services"
	CategoryRent                 = "Rent & Facilities"
	CategoryFood                 = "Food & Entertainment"
	CategoryMiscellaneous        = "Miscellaneous"
)

// ExpenseCategories returns the fixed category labels
func ExpenseCategories() []string {
	return []string{
		CategoryOfficeSupplies,
		CategoryTravel,
		CategoryUtilities,
		CategoryMarketing,
		CategoryEquipment,
		CategorySoftware,
		CategoryProfessionalServices,
		CategoryRent,
		CategoryFood,
		CategoryMiscellaneous,
	}
}

// IsExpenseCategory reports whether c is one of the fixed labels
func IsExpenseCategory(c string) bool {
	for _, known := range ExpenseCategories() {
		if known == c {
			return true
		}
	}
	return false
}
