package shared

import (
	"encoding/json"
	"fmt"
	"os"
)

// SeedHotel describes one hotel the seeder creates through the API.
type SeedHotel struct {
	Name      string     `json:"name"`
	BasePrice float64    `json:"base_price,omitempty"`
	Rooms     []SeedRoom `json:"rooms"`
	Bookings  []SeedStay `json:"bookings,omitempty"`
}

type SeedRoom struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type SeedStay struct {
	Room         string `json:"room"`
	Guest        string `json:"guest"`
	CheckIn      int    `json:"check_in"`
	CheckOut     int    `json:"check_out"`
	DiscountCode string `json:"discount_code,omitempty"`
}

type SeedPlan struct {
	Hotels []SeedHotel `json:"hotels"`
}

// DefaultSeed is a small demo ledger.
func DefaultSeed() SeedPlan {
	rooms := func(prefix string, n int, typ string) []SeedRoom {
		out := make([]SeedRoom, 0, n)
		for i := 1; i <= n; i++ {
			out = append(out, SeedRoom{Name: fmt.Sprintf("%s%02d", prefix, i), Type: typ})
		}
		return out
	}
	return SeedPlan{Hotels: []SeedHotel{
		{
			Name:  "Grand Budapest",
			Rooms: append(rooms("S", 10, "Standard"), rooms("E", 2, "Executive")...),
			Bookings: []SeedStay{
				{Room: "S01", Guest: "Gustave", CheckIn: 1, CheckOut: 7},
				{Room: "E01", Guest: "Zero", CheckIn: 15, CheckOut: 17, DiscountCode: "I_WORK_HERE"},
			},
		},
		{
			Name:      "Seaside Inn",
			BasePrice: 899,
			Rooms:     append(rooms("S", 6, "Standard"), rooms("D", 4, "Deluxe")...),
			Bookings: []SeedStay{
				{Room: "D01", Guest: "Marina", CheckIn: 8, CheckOut: 10},
			},
		},
	}}
}

// LoadSeed reads a JSON seed plan from path.
func LoadSeed(path string) (SeedPlan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SeedPlan{}, fmt.Errorf("read seed: %w", err)
	}
	var p SeedPlan
	if err := json.Unmarshal(b, &p); err != nil {
		return SeedPlan{}, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for i, h := range p.Hotels {
		if h.Name == "" {
			return SeedPlan{}, fmt.Errorf("parse seed %s: hotel %d has no name", path, i)
		}
	}
	return p, nil
}
