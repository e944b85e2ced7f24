package domain

// Location is a venue with a fixed seat ceiling shared by every event it
// hosts. Address and contact fields are descriptive only.
type Location struct {
	ID               int64
	Name             string
	Capacity         int
	Address          string
	City             string
	State            string
	Country          string
	PostalCode       string
	PrimaryContact   string
	SecondaryContact string
}

// ValidateLocation checks the venue invariants: a name and a positive
// capacity.
func ValidateLocation(l Location) error {
	if l.Name == "" {
		return ErrLocationNameRequired
	}
	if l.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
