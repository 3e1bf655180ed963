package anim

import "math"

// Easing curves map [0,1] to an interpolation factor. Overshooting
// curves (elastic, back) transiently leave [0,1]; both are exact at
// the endpoints.

// EaseOutElastic overshoots then settles with a damped oscillation
func EaseOutElastic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	const p = 0.4
	return math.Pow(2, -10*t)*math.Sin((t-p/4)*(2*math.Pi)/p) + 1
}

// EaseOutQuad decelerates toward the end
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad accelerates from a standstill
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseInOutQuad accelerates then decelerates symmetrically
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutBack overshoots slightly past the target before settling
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}
