package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Lerp(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(10, 20, 30)

	mid := v1.Lerp(v2, 0.5)
	expected := NewVector3(5, 10, 15)
	if mid != expected {
		t.Errorf("Lerp failed: expected %v, got %v", expected, mid)
	}

	if v1.Lerp(v2, 0) != v1 {
		t.Errorf("Lerp at t=0 should return the start")
	}
	if v1.Lerp(v2, 1) != v2 {
		t.Errorf("Lerp at t=1 should return the end")
	}
}

func TestVector3Component(t *testing.T) {
	v := NewVector3(1, 2, 3)

	if v.Component(AxisX) != 1 || v.Component(AxisY) != 2 || v.Component(AxisZ) != 3 {
		t.Errorf("Component failed: got %v, %v, %v", v.Component(AxisX), v.Component(AxisY), v.Component(AxisZ))
	}

	result := v.WithComponent(AxisY, 9)
	expected := NewVector3(1, 9, 3)
	if result != expected {
		t.Errorf("WithComponent failed: expected %v, got %v", expected, result)
	}
}

func TestAxisVector(t *testing.T) {
	if AxisVector(AxisX) != NewVector3(1, 0, 0) {
		t.Errorf("AxisVector X failed")
	}
	if AxisVector(AxisZ) != NewVector3(0, 0, 1) {
		t.Errorf("AxisVector Z failed")
	}
}

func TestQuadraticBezier(t *testing.T) {
	start := NewVector3(0, 0, 0)
	control := NewVector3(5, 10, 0)
	end := NewVector3(10, 0, 0)

	if QuadraticBezier(start, control, end, 0) != start {
		t.Errorf("Bezier at t=0 should return the start")
	}
	if QuadraticBezier(start, control, end, 1) != end {
		t.Errorf("Bezier at t=1 should return the end")
	}

	// At t=0.5 the curve passes through the midpoint weighted toward
	// the control: 0.25*start + 0.5*control + 0.25*end
	mid := QuadraticBezier(start, control, end, 0.5)
	expected := NewVector3(5, 5, 0)
	if mid.Distance(expected) > 1e-10 {
		t.Errorf("Bezier at t=0.5 failed: expected %v, got %v", expected, mid)
	}
}
