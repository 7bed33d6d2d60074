package math

import (
	"math"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero scale elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{5, 3, 5}
	m := LookAt(eye, Vec3{6, 3, 6}, UnitY)

	got := m.TransformVec3(eye)
	if got.Length() > 1e-4 {
		t.Errorf("LookAt should map eye to origin, got %v", got)
	}

	ahead := m.TransformVec3(Vec3{7, 3, 7})
	if ahead.Z >= 0 {
		t.Errorf("point in front of camera should have negative view Z, got %v", ahead)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
