// Package pricing turns an estimated part weight and print time into a
// cost breakdown, a suggested price and the profit left after fees.
// Everything here is straight-line arithmetic with no side effects.
package pricing

// Filament is a material spool.
type Filament struct {
	ID         string  `json:"id" toml:"id"`
	Name       string  `json:"name" toml:"name"`
	PricePerKg float64 `json:"pricePerKg" toml:"price_per_kg"`
	Density    float64 `json:"density" toml:"density"` // g/cm³
}

// Printer is a machine whose power draw and wear are billed per hour.
type Printer struct {
	ID              string  `json:"id" toml:"id"`
	Name            string  `json:"name" toml:"name"`
	PowerW          float64 `json:"powerW" toml:"power_w"`
	Price           float64 `json:"price" toml:"price"`
	LifetimeHours   float64 `json:"lifetimeHours" toml:"lifetime_hours"`
	EnergyTariffKwh float64 `json:"energyTariffKwh" toml:"energy_tariff_kwh"`
}

// CostSettings holds the job-independent cost parameters. Percentages
// are expressed as 0-100.
type CostSettings struct {
	FilamentID string `json:"filamentId" toml:"filament_id"`
	PrinterID  string `json:"printerId" toml:"printer_id"`

	LaborRate  float64 `json:"laborRate" toml:"labor_rate"` // per hour
	LaborHours float64 `json:"laborHours" toml:"labor_hours"`

	Packaging   float64 `json:"packaging" toml:"packaging"`
	Maintenance float64 `json:"maintenance" toml:"maintenance"`
	Other       float64 `json:"other" toml:"other"`

	FailureRatePercent float64 `json:"failureRatePercent" toml:"failure_rate_percent"`
	MarkupPercent      float64 `json:"markupPercent" toml:"markup_percent"`

	TaxPercent         float64 `json:"taxPercent" toml:"tax_percent"`
	CardFeePercent     float64 `json:"cardFeePercent" toml:"card_fee_percent"`
	MarketplacePercent float64 `json:"marketplacePercent" toml:"marketplace_percent"`
}

// Breakdown is the full result of Calculate.
type Breakdown struct {
	Material     float64 `json:"material"`
	Energy       float64 `json:"energy"`
	Amortization float64 `json:"amortization"`
	Labor        float64 `json:"labor"`
	Extras       float64 `json:"extras"`

	Base        float64 `json:"base"`
	WithFailure float64 `json:"withFailure"`
	Total       float64 `json:"total"`

	SuggestedPrice float64 `json:"suggestedPrice"`
	GrossProfit    float64 `json:"grossProfit"`
	Fees           float64 `json:"fees"`
	NetProfit      float64 `json:"netProfit"`
}

// Totals is the roll-up of several breakdowns.
type Totals struct {
	Total          float64 `json:"total"`
	SuggestedPrice float64 `json:"suggestedPrice"`
	GrossProfit    float64 `json:"grossProfit"`
	Fees           float64 `json:"fees"`
	NetProfit      float64 `json:"netProfit"`
}
