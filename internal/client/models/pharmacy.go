package models

import "fmt"

type Pharmacy struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	Country    string  `json:"country,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKM float64 `json:"distanceKM,omitempty"`
}

func (p *Pharmacy) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("pharmacy: %w", err)
	}

	var out Pharmacy
	if out.ID, _, err = f.id("id"); err != nil {
		return fmt.Errorf("pharmacy: %w", err)
	}

	strs := []struct {
		dst  *string
		name string
	}{
		{&out.Name, "name"},
		{&out.Address, "address"},
		{&out.City, "city"},
		{&out.State, "state"},
		{&out.Country, "country"},
		{&out.Phone, "phone"},
	}
	for _, s := range strs {
		if *s.dst, err = f.str(s.name); err != nil {
			return fmt.Errorf("pharmacy: %w", err)
		}
	}

	if out.Latitude, err = f.float("latitude"); err != nil {
		return fmt.Errorf("pharmacy: %w", err)
	}
	if out.Longitude, err = f.float("longitude"); err != nil {
		return fmt.Errorf("pharmacy: %w", err)
	}
	if out.DistanceKM, err = f.float("distanceKM", "distanceKm"); err != nil {
		return fmt.Errorf("pharmacy: %w", err)
	}

	*p = out
	return nil
}

// PharmacyInput is the body of pharmacy create and update calls.
type PharmacyInput struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     string  `json:"phone"`
}
