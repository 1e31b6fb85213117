package pricing

// Calculate prices one print of weightGrams taking printHours on printer.
func Calculate(weightGrams float64, s CostSettings, f Filament, p Printer, printHours float64) Breakdown {
	var b Breakdown

	b.Material = weightGrams / 1000 * f.PricePerKg
	b.Energy = p.PowerW / 1000 * printHours * p.EnergyTariffKwh
	if p.LifetimeHours > 0 {
		b.Amortization = p.Price / p.LifetimeHours * printHours
	}
	b.Labor = s.LaborRate * s.LaborHours
	b.Extras = s.Packaging + s.Maintenance + s.Other

	b.Base = b.Material + b.Energy + b.Amortization + b.Labor + b.Extras
	b.WithFailure = b.Base * (1 + s.FailureRatePercent/100)
	b.Total = b.WithFailure

	b.SuggestedPrice = b.Total * (1 + s.MarkupPercent/100)
	b.GrossProfit = b.SuggestedPrice - b.Total

	b.Fees = b.SuggestedPrice * (s.TaxPercent + s.CardFeePercent + s.MarketplacePercent) / 100
	b.NetProfit = b.GrossProfit - b.Fees

	return b
}

// Summarize adds up the headline figures of each breakdown.
func Summarize(bs []Breakdown) Totals {
	var t Totals
	for _, b := range bs {
		t.Total += b.Total
		t.SuggestedPrice += b.SuggestedPrice
		t.GrossProfit += b.GrossProfit
		t.Fees += b.Fees
		t.NetProfit += b.NetProfit
	}
	return t
}

// FindFilament returns the filament with id, falling back to the first
// entry. ok is false when the list is empty.
func FindFilament(list []Filament, id string) (f Filament, ok bool) {
	if len(list) == 0 {
		return Filament{}, false
	}
	for _, f := range list {
		if f.ID == id {
			return f, true
		}
	}
	return list[0], true
}

// FindPrinter returns the printer with id, falling back to the first
// entry. ok is false when the list is empty.
func FindPrinter(list []Printer, id string) (p Printer, ok bool) {
	if len(list) == 0 {
		return Printer{}, false
	}
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return list[0], true
}
