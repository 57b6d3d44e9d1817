package domain

import (
	"fmt"
	"strings"
)

type RoomType int

const (
	Standard RoomType = iota
	Deluxe
	Executive
)

var roomTypes = [...]struct {
	name       string
	multiplier float64
}{
	Standard:  {"Standard", 1.00},
	Deluxe:    {"Deluxe", 1.20},
	Executive: {"Executive", 1.35},
}

func (t RoomType) Name() string { return roomTypes[t].name }

func (t RoomType) Multiplier() float64 { return roomTypes[t].multiplier }

func (t RoomType) String() string { return t.Name() }

// ParseRoomType accepts a type name in any letter case.
func ParseRoomType(s string) (RoomType, error) {
	for i, rt := range roomTypes {
		if strings.EqualFold(rt.name, strings.TrimSpace(s)) {
			return RoomType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown room type %q", s)
}
