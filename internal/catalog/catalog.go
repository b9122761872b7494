// Package catalog holds the institutional fee schedule. The schedule is
// fixed per academic year and shipped with the binary; payments reference
// entries by id and amounts are always recomputed from here.
package catalog

import (
	"fmt"

	"github.com/bec-billdesk/internal/models"
)

// FeeComponent is one line of a fee's breakdown.
type FeeComponent struct {
	Category string       `json:"category"`
	Amount   models.Money `json:"amount"`
}

// Fee is one payable item in the schedule.
type Fee struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Total     models.Money   `json:"total"`
	DueDate   string         `json:"due_date"`
	Breakdown []FeeComponent `json:"breakdown"`
}

// Fees is the academic-year schedule, in display order.
var Fees = []Fee{
	{
		ID:      "tuition",
		Name:    "Tuition Fee",
		Total:   models.NewMoney(75000),
		DueDate: "2025-01-30",
		Breakdown: []FeeComponent{
			{Category: "Course Fee", Amount: models.NewMoney(50000)},
			{Category: "Lab Fee", Amount: models.NewMoney(15000)},
			{Category: "Library Fee", Amount: models.NewMoney(5000)},
			{Category: "Sports Fee", Amount: models.NewMoney(5000)},
		},
	},
	{
		ID:      "development",
		Name:    "Development Fee",
		Total:   models.NewMoney(15000),
		DueDate: "2025-01-30",
		Breakdown: []FeeComponent{
			{Category: "Infrastructure", Amount: models.NewMoney(8000)},
			{Category: "Technology Upgrade", Amount: models.NewMoney(5000)},
			{Category: "Green Campus", Amount: models.NewMoney(2000)},
		},
	},
	{
		ID:      "hostel",
		Name:    "Hostel Fee",
		Total:   models.NewMoney(45000),
		DueDate: "2025-02-15",
		Breakdown: []FeeComponent{
			{Category: "Accommodation", Amount: models.NewMoney(25000)},
			{Category: "Mess Charges", Amount: models.NewMoney(15000)},
			{Category: "Maintenance", Amount: models.NewMoney(3000)},
			{Category: "Security Deposit", Amount: models.NewMoney(2000)},
		},
	},
	{
		ID:      "examination",
		Name:    "Examination Fee",
		Total:   models.NewMoney(5000),
		DueDate: "2025-02-28",
		Breakdown: []FeeComponent{
			{Category: "Registration", Amount: models.NewMoney(2000)},
			{Category: "Valuation", Amount: models.NewMoney(2000)},
			{Category: "Certificate", Amount: models.NewMoney(1000)},
		},
	},
}

// FeeByID looks up a fee by id.
func FeeByID(id string) (Fee, bool) {
	for _, f := range Fees {
		if f.ID == id {
			return f, true
		}
	}
	return Fee{}, false
}

// TotalFor sums the catalog totals for the given fee ids. Unknown ids
// fail the whole computation so a payment can never price an item the
// schedule does not carry.
func TotalFor(feeIDs []string) (models.Money, error) {
	total := models.NewMoney(0)
	for _, id := range feeIDs {
		fee, ok := FeeByID(id)
		if !ok {
			return models.Money{}, fmt.Errorf("unknown fee id: %s", id)
		}
		total = total.Add(fee.Total)
	}
	return total, nil
}

// Partition splits the schedule into pending and paid halves against a
// student's paid-fee ledger, keeping display order.
func Partition(paidFeeIDs models.StringList) (pending, paid []Fee) {
	for _, f := range Fees {
		if paidFeeIDs.Contains(f.ID) {
			paid = append(paid, f)
		} else {
			pending = append(pending, f)
		}
	}
	return pending, paid
}
