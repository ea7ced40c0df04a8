package device

import "strings"

// Classification is driven by ordered rule tables rather than branching
// code, so the keyword sets are independently testable and can be swapped
// without touching control flow. Matching is case-insensitive substring
// search against the switch's display name; the first matching rule wins.

// typeRule maps a keyword set to a device type.
type typeRule struct {
	keywords   []string
	deviceType DeviceType
}

// typeRules is checked in precedence order: fan → light → bulb → ac → tv.
// Anything unmatched defaults to a plain switch, so no device is ever left
// unclassified.
var typeRules = []typeRule{
	{[]string{"fan", "exhaust", "ceiling fan", "table fan"}, TypeFan},
	{[]string{"light", "lamp", "led", "tube light", "cfl"}, TypeLight},
	{[]string{"bulb", "chandelier"}, TypeBulb},
	{[]string{"ac", "air conditioner", "cooling", "hvac"}, TypeAC},
	{[]string{"tv", "television", "monitor"}, TypeTV},
}

// roomRule maps a keyword set to a room.
type roomRule struct {
	keywords []string
	room     Room
}

// roomRules is checked in order; the first matching rule wins and anything
// unmatched lands in RoomOther.
var roomRules = []roomRule{
	{[]string{"living", "hall", "drawing"}, RoomLiving},
	{[]string{"bedroom", "bed room", "master", "guest"}, RoomBedroom},
	{[]string{"kitchen", "dining"}, RoomKitchen},
	{[]string{"bathroom", "bath", "toilet", "washroom"}, RoomBathroom},
	{[]string{"balcony", "terrace", "porch"}, RoomBalcony},
	{[]string{"office", "study", "work"}, RoomOffice},
	{[]string{"garage", "parking"}, RoomGarage},
}

// ClassifyType derives a device type from a switch display name.
func ClassifyType(name string) DeviceType {
	lower := strings.ToLower(name)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.deviceType
			}
		}
	}
	return TypeSwitch
}

// ClassifyRoom derives a room from a switch display name.
func ClassifyRoom(name string) Room {
	lower := strings.ToLower(name)
	for _, rule := range roomRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.room
			}
		}
	}
	return RoomOther
}
