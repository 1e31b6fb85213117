package pricing

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestCalculateDefaults(t *testing.T) {
	s := DefaultCostSettings()
	f, _ := FindFilament(DefaultFilaments(), s.FilamentID)
	p, _ := FindPrinter(DefaultPrinters(), s.PrinterID)

	b := Calculate(100, s, f, p, 2)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"material", b.Material, 8},
		{"energy", b.Energy, 0.3},
		{"amortization", b.Amortization, 0.6},
		{"labor", b.Labor, 15},
		{"extras", b.Extras, 3},
		{"base", b.Base, 26.9},
		{"with failure", b.WithFailure, 29.59},
		{"total", b.Total, 29.59},
		{"suggested price", b.SuggestedPrice, 88.77},
		{"gross profit", b.GrossProfit, 59.18},
		{"fees", b.Fees, 18.6417},
		{"net profit", b.NetProfit, 40.5383},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > tol {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCalculateZeroLifetimeSkipsAmortization(t *testing.T) {
	p := Printer{PowerW: 100, Price: 1000, LifetimeHours: 0, EnergyTariffKwh: 1}
	b := Calculate(0, CostSettings{}, Filament{}, p, 3)
	if b.Amortization != 0 {
		t.Errorf("Amortization = %v, want 0", b.Amortization)
	}
	if math.IsInf(b.Total, 0) || math.IsNaN(b.Total) {
		t.Errorf("Total = %v, want finite", b.Total)
	}
	if math.Abs(b.Energy-0.3) > tol {
		t.Errorf("Energy = %v, want 0.3", b.Energy)
	}
}

func TestCalculateNoMarkupMeansNoProfit(t *testing.T) {
	s := DefaultCostSettings()
	s.MarkupPercent = 0
	s.TaxPercent, s.CardFeePercent, s.MarketplacePercent = 0, 0, 0
	b := Calculate(50, s, DefaultFilaments()[0], DefaultPrinters()[0], 1)
	if b.SuggestedPrice != b.Total {
		t.Errorf("SuggestedPrice = %v, want Total %v", b.SuggestedPrice, b.Total)
	}
	if b.GrossProfit != 0 || b.NetProfit != 0 || b.Fees != 0 {
		t.Errorf("profit/fees = %v/%v/%v, want zeros", b.GrossProfit, b.NetProfit, b.Fees)
	}
}

func TestSummarize(t *testing.T) {
	a := Breakdown{Total: 1, SuggestedPrice: 3, GrossProfit: 2, Fees: 0.5, NetProfit: 1.5}
	b := Breakdown{Total: 10, SuggestedPrice: 30, GrossProfit: 20, Fees: 5, NetProfit: 15}
	got := Summarize([]Breakdown{a, b})
	want := Totals{Total: 11, SuggestedPrice: 33, GrossProfit: 22, Fees: 5.5, NetProfit: 16.5}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if empty := Summarize(nil); empty != (Totals{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", empty)
	}
}

func TestFindFilament(t *testing.T) {
	list := DefaultFilaments()
	tests := []struct {
		name   string
		list   []Filament
		id     string
		wantID string
		wantOK bool
	}{
		{"exact", list, "petg", "petg", true},
		{"unknown falls back to first", list, "carbon", "pla", true},
		{"empty list", nil, "pla", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := FindFilament(tt.list, tt.id)
			if ok != tt.wantOK || f.ID != tt.wantID {
				t.Errorf("FindFilament(%q) = %q, %v; want %q, %v", tt.id, f.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestFindPrinter(t *testing.T) {
	list := DefaultPrinters()
	if p, ok := FindPrinter(list, "bambu_x1c"); !ok || p.Name != "Bambu Lab X1C" {
		t.Errorf("FindPrinter(bambu_x1c) = %+v, %v", p, ok)
	}
	if p, ok := FindPrinter(list, "nope"); !ok || p.ID != "ender3" {
		t.Errorf("FindPrinter(nope) = %+v, %v; want fallback to ender3", p, ok)
	}
	if _, ok := FindPrinter(nil, "ender3"); ok {
		t.Error("FindPrinter(nil) reported ok")
	}
}

func TestDefaultsAreFresh(t *testing.T) {
	a := DefaultFilaments()
	a[0].PricePerKg = 1
	if DefaultFilaments()[0].PricePerKg != 80 {
		t.Error("DefaultFilaments shares storage between calls")
	}
}
