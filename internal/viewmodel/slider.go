package viewmodel

// DefaultSliderMax is the slider's upper bound when the backend gives no maximum credit limit.
const DefaultSliderMax = 100000

// Slider positions the recommended credit limit on a 0..Max scale.
type Slider struct {
	Min      float64
	Max      float64
	Value    float64
	Position float64 // 0.0 ~ 1.0
}

// NewSlider builds a slider for the given limit. Max is the maximum credit limit when
// present, otherwise DefaultSliderMax; it is widened to fit Value.
func NewSlider(value float64, maxLimit *float64) Slider {
	s := Slider{Min: 0, Max: DefaultSliderMax, Value: value}
	if maxLimit != nil && *maxLimit > 0 {
		s.Max = *maxLimit
	}
	if value > s.Max {
		s.Max = value
	}
	s.Position = position(value, s.Min, s.Max)
	return s
}

// position returns where v sits within [low, high], clamped to 0..1.
func position(v, low, high float64) float64 {
	if high <= low {
		return 0
	}
	pos := (v - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
