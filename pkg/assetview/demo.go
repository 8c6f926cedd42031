package assetview

// DemoAssets returns the seeded demo collection used when the remote store
// is unreachable on first load. Keeping the screen populated on outage is
// deliberate product behavior.
func DemoAssets() []Record {
	return []Record{
		{
			ID:           "1",
			AssetID:      "LPT-001",
			Owner:        "Sarah Johnson",
			Location:     "Building A, Floor 3",
			LastSeen:     "2024-01-15",
			Status:       StatusActive,
			Value:        1200,
			Category:     "Laptop",
			Model:        "Dell XPS 15",
			SerialNumber: "DL123456",
		},
		{
			ID:           "2",
			AssetID:      "LPT-002",
			Owner:        "Mike Chen",
			Location:     "Building B, Floor 1",
			LastSeen:     "2023-12-20",
			Status:       StatusMissing,
			Value:        1500,
			Category:     "Laptop",
			Model:        "MacBook Pro",
			SerialNumber: "MP789012",
		},
		{
			ID:           "3",
			AssetID:      "MON-001",
			Owner:        "Lisa Park",
			Location:     "Building A, Floor 2",
			LastSeen:     "2024-01-10",
			Status:       StatusRecovered,
			Value:        400,
			Category:     "Monitor",
			Model:        "Dell UltraSharp",
			SerialNumber: "US345678",
		},
	}
}
