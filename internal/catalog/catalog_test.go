package catalog

import (
	"testing"

	"github.com/bec-billdesk/internal/models"
)

func TestTotalForSumsScheduleAmounts(t *testing.T) {
	total, err := TotalFor([]string{"tuition", "examination"})
	if err != nil {
		t.Fatalf("TotalFor failed: %v", err)
	}
	if got, want := total.Rupees(), int64(80000); got != want {
		t.Fatalf("total = %d, want %d", got, want)
	}
}

func TestTotalForRejectsUnknownID(t *testing.T) {
	if _, err := TotalFor([]string{"tuition", "parking"}); err == nil {
		t.Fatal("expected error for unknown fee id")
	}
}

func TestBreakdownSumsMatchTotals(t *testing.T) {
	for _, fee := range Fees {
		sum := models.NewMoney(0)
		for _, c := range fee.Breakdown {
			sum = sum.Add(c.Amount)
		}
		if !sum.Equal(fee.Total) {
			t.Fatalf("fee %s breakdown sums to %s, total is %s", fee.ID, sum, fee.Total)
		}
	}
}

func TestPartitionKeepsScheduleOrder(t *testing.T) {
	pending, paid := Partition(models.StringList{"hostel", "tuition"})
	if len(paid) != 2 || paid[0].ID != "tuition" || paid[1].ID != "hostel" {
		t.Fatalf("paid = %v", paid)
	}
	if len(pending) != 2 || pending[0].ID != "development" || pending[1].ID != "examination" {
		t.Fatalf("pending = %v", pending)
	}
}
