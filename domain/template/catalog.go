package template

// Definition is one entry in the report template catalog: a display name,
// the column-name keywords that signal it, and the minimum keyword matches
// required before it qualifies as a candidate.
type Definition struct {
	Name       string
	Keywords   []string
	MinMatches int
}

// DefaultTemplateName is the fallback when no template reaches its
// match threshold.
const DefaultTemplateName = "Comprehensive Student Academic Report"

// catalog is the static process-wide template table. Order matters: the
// classifier breaks match-count ties by registration order.
var catalog = []Definition{
	{
		Name:       "Employee Performance & Development Report",
		Keywords:   []string{"performance", "score", "review", "rating", "name", "department"},
		MinMatches: 4,
	},
	{
		Name:       "Payroll & Compensation Analysis",
		Keywords:   []string{"salary", "compensation", "bonus", "allowance", "net_pay", "deduction"},
		MinMatches: 3,
	},
	{
		Name:       "Employee Attendance & Leave Report",
		Keywords:   []string{"attendance", "present", "absent", "leave", "hours_worked"},
		MinMatches: 3,
	},
	{
		Name:       "Comprehensive Student Academic Report",
		Keywords:   []string{"student", "grade", "score", "gpa", "marks", "attendance"},
		MinMatches: 3,
	},
	{
		Name:       "Fee Management & Collection Report",
		Keywords:   []string{"fee", "paid", "balance", "student", "due", "payment"},
		MinMatches: 4,
	},
	{
		Name:       "Financial Statement & Revenue Analysis",
		Keywords:   []string{"amount", "category", "transaction", "income", "expense", "date"},
		MinMatches: 3,
	},
	{
		Name:       "Invoice & Payment Reconciliation Report",
		Keywords:   []string{"invoice", "amount", "paid", "balance", "status", "customer"},
		MinMatches: 4,
	},
	{
		Name:       "Sales Performance & Pipeline Report",
		Keywords:   []string{"sales", "target", "commission", "revenue", "pipeline"},
		MinMatches: 3,
	},
	{
		Name:       "Inventory & Stock Management Report",
		Keywords:   []string{"stock", "inventory", "quantity", "warehouse", "product"},
		MinMatches: 3,
	},
	{
		Name:       "Patient Treatment & Clinical Outcome Report",
		Keywords:   []string{"patient", "treatment", "diagnosis", "outcome", "doctor"},
		MinMatches: 3,
	},
}

// Catalog returns the registered template definitions in registration order
func Catalog() []Definition {
	return catalog
}

// Lookup returns the definition for a template name
func Lookup(name string) (Definition, bool) {
	for _, def := range catalog {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}
