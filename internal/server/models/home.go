package models

// Defaults of a home nobody has touched yet.
const (
	DefaultTemperature  = 30 // Room temperature with the air conditioner off
	AirconOnTemperature = 20 // Room temperature with the air conditioner on
)

// HomeState is the state of one user's home.
type HomeState struct {
	AirconOn             bool     `json:"airconOn"`             // Air conditioner power
	LightOn              bool     `json:"lightOn"`              // Light power
	CurrentTemperature   int      `json:"currentTemperature"`   // Room temperature in degrees
	RefrigeratorContents []string `json:"refrigeratorContents"` // What is in the refrigerator, in order
}

// DefaultHomeState returns the state of a home on first access.
func DefaultHomeState() HomeState {
	return HomeState{
		AirconOn:             false,
		LightOn:              false,
		CurrentTemperature:   DefaultTemperature,
		RefrigeratorContents: []string{"beer", "sausage"},
	}
}

// Clone returns a copy that shares no memory with h.
func (h HomeState) Clone() HomeState {
	c := h
	if h.RefrigeratorContents != nil {
		c.RefrigeratorContents = make([]string, len(h.RefrigeratorContents))
		copy(c.RefrigeratorContents, h.RefrigeratorContents)
	}
	return c
}
