package classify

// DefaultConfig returns the reference classification lists. The brand
// allowlist covers makes that only build sports/luxury vehicles; the
// keyword list catches performance trims of mixed brands.
func DefaultConfig() Config {
	return Config{
		Brands: []string{
			"Porsche", "Ferrari", "Lamborghini", "McLaren", "Aston Martin",
			"Bentley", "Bugatti", "Maserati", "Lotus", "Alfa Romeo",
			"Rolls-Royce", "Koenigsegg", "Pagani", "Alpine", "Ariel",
			"Spyker", "TVR", "Morgan", "Caterham", "Pininfarina",
			"Rimac", "W Motors", "Ultima",
		},
		ModelKeywords: []string{
			// BMW M models
			"M2", "M3", "M4", "M5", "M6", "M8", "X5 M", "X6 M", "X3 M", "X4 M", "i8",
			// Audi R/RS/S models
			"R8", "RS3", "RS4", "RS5", "RS6", "RS7", "TT RS", "S3", "S4", "S5", "S6", "S7", "S8",
			"RS e-tron GT",
			// Mercedes AMG
			"AMG GT", "C63", "E63", "S63", "G63", "GLE63", "GLS63", "CLA45", "A45", "SL63", "SL65",
			"C43", "E43", "GLE43", "GLC43", "SLS AMG",
			// Lexus performance
			"LC 500", "RC F", "GS F", "IS F",
			// Jaguar performance
			"F-Type", "F-PACE SVR", "XE SV", "XF R",
			// Cadillac V models
			"CTS-V", "ATS-V", "CT5-V", "CT4-V", "Blackwing",
			// Mainstream sports models
			"Corvette", "Mustang GT", "Mustang Shelby", "Mustang Mach 1", "GT350", "GT500",
			"Camaro SS", "Camaro ZL1", "Camaro Z28",
			"Challenger Hellcat", "Challenger SRT", "Charger Hellcat", "Charger SRT", "Viper",
			"GT-R", "370Z", "350Z", "400Z",
			"Supra", "GR Supra", "86",
			"Type R", "NSX",
			"WRX STI", "BRZ",
			"Veloster N",
			"Stinger GT",
		},
	}
}
