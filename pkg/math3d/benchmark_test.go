package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := LookAt(V3(1, 0.5, 2), V3(0, 0, 0), Up())

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(LookAt(V3(1, 0.5, 2), V3(0, 0, 0), Up()))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkNormalMatrix(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(LookAt(V3(1, 0.5, 2), V3(0, 0, 0), Up())).Mul(Scale(V3(2, 1, 2)))

	for b.Loop() {
		_ = m.NormalMatrix()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkViewProjection(b *testing.B) {
	// Same product the camera builds once per frame
	view := LookAt(V3(0, 0, 5), V3(0, 0, 0), Up())
	proj := Perspective(Radians(45), 1.333, 0.1, 1000.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
