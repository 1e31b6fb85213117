package pricing

// DefaultFilaments returns the built-in filament list.
func DefaultFilaments() []Filament {
	return []Filament{
		{ID: "pla", Name: "PLA", PricePerKg: 80.0, Density: 1.24},
		{ID: "petg", Name: "PETG", PricePerKg: 95.0, Density: 1.27},
		{ID: "abs", Name: "ABS", PricePerKg: 85.0, Density: 1.04},
		{ID: "tpu", Name: "TPU", PricePerKg: 120.0, Density: 1.21},
		{ID: "nylon", Name: "Nylon", PricePerKg: 150.0, Density: 1.14},
	}
}

// DefaultPrinters returns the built-in printer list.
func DefaultPrinters() []Printer {
	return []Printer{
		{ID: "ender3", Name: "Ender 3", PowerW: 200, Price: 1500.0, LifetimeHours: 5000, EnergyTariffKwh: 0.75},
		{ID: "prusa_mk4", Name: "Prusa MK4", PowerW: 250, Price: 4000.0, LifetimeHours: 8000, EnergyTariffKwh: 0.75},
		{ID: "bambu_x1c", Name: "Bambu Lab X1C", PowerW: 350, Price: 6000.0, LifetimeHours: 10000, EnergyTariffKwh: 0.75},
	}
}

// DefaultCostSettings returns the built-in cost parameters.
func DefaultCostSettings() CostSettings {
	return CostSettings{
		FilamentID: "pla",
		PrinterID:  "ender3",

		LaborRate:  30.0,
		LaborHours: 0.5,

		Packaging:   2.0,
		Maintenance: 1.0,
		Other:       0.0,

		FailureRatePercent: 10,
		MarkupPercent:      200,

		TaxPercent:         6,
		CardFeePercent:     5,
		MarketplacePercent: 10,
	}
}
