package domain

// Address is a saved address from the profile service. The JSON field names
// follow the profile service's wire contract (camelCase). An address without
// an ID has not been created remotely yet.
type Address struct {
	ID             string `json:"id,omitempty"`
	Line1          string `json:"line1"`
	Line2          string `json:"line2,omitempty"`
	City           string `json:"city"`
	State          string `json:"state"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	PrimaryAddress bool   `json:"primaryAddress"`
}

// SelectAddress picks the address to preselect at checkout start: the first
// primary-flagged address with an ID wins, then the first address with an ID.
// Returns nil when no usable address exists (new-address mode).
func SelectAddress(addresses []Address) *Address {
	for i := range addresses {
		if addresses[i].PrimaryAddress && addresses[i].ID != "" {
			return &addresses[i]
		}
	}
	for i := range addresses {
		if addresses[i].ID != "" {
			return &addresses[i]
		}
	}
	return nil
}

// FindAddress returns the address with the given ID, or nil.
func FindAddress(addresses []Address, id string) *Address {
	for i := range addresses {
		if addresses[i].ID == id {
			return &addresses[i]
		}
	}
	return nil
}
