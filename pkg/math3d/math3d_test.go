package math3d

import (
	"math"
	"testing"
)

func TestSineTable(t *testing.T) {
	tests := []struct {
		name string
		u    uint8
		want uint8
	}{
		{"zero", 0, 128},
		{"quarter", 64, 255},
		{"half", 128, 128},
		{"three quarters", 192, 0},
		{"last", 255, 124},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sine(tt.u); got != tt.want {
				t.Errorf("Sine(%d) = %d, want %d", tt.u, got, tt.want)
			}
		})
	}
}

func TestSineApproximatesSin(t *testing.T) {
	for u := range TableSize {
		want := 128 + 127*math.Sin(2*math.Pi*float64(u)/256)
		if d := math.Abs(float64(Sine(uint8(u))) - want); d > 2 {
			t.Errorf("Sine(%d) = %d, off by %.2f from %.2f", u, Sine(uint8(u)), d, want)
		}
	}
}

func TestCosineWrapsModulo256(t *testing.T) {
	tests := []struct {
		u    uint8
		want uint8
	}{
		{0, 255},   // Sine(64)
		{64, 128},  // Sine(0)
		{65, 124},  // Sine(255)
		{200, 152}, // Sine(120)
		{255, 255}, // Sine(65)
	}
	for _, tt := range tests {
		if got := Cosine(tt.u); got != tt.want {
			t.Errorf("Cosine(%d) = %d, want %d", tt.u, got, tt.want)
		}
	}

	for u := range TableSize {
		if Cosine(uint8(u)) != Sine(uint8(64-u)) {
			t.Fatalf("Cosine(%d) disagrees with the quarter-phase shift", u)
		}
	}
}

func TestSignedRange(t *testing.T) {
	for u := range TableSize {
		s, c := SinF(uint8(u)), CosF(uint8(u))
		if s < -1 || s >= 1 || c < -1 || c >= 1 {
			t.Fatalf("step %d out of range: sin=%v cos=%v", u, s, c)
		}
	}
	if got := Signed(0); got != -1 {
		t.Errorf("Signed(0) = %v, want -1", got)
	}
	if got := Signed(128); got != 0 {
		t.Errorf("Signed(128) = %v, want 0", got)
	}
}

func TestOrbitMatchesComposite(t *testing.T) {
	v := V3(0.5, -0.25, 0.75)
	for _, step := range []uint8{0, 1, 17, 64, 128, 200, 255} {
		st, ct := SinF(step), CosF(step)
		sp, cp := SinF(2*step), CosF(2*step)

		want := V3(
			cp*v.X-sp*v.Y,
			ct*sp*v.X+ct*cp*v.Y-st*v.Z,
			st*sp*v.Y+ct*v.Z,
		)
		got := Orbit(st, ct, sp, cp).MulVec3Dir(v)
		if !got.ApproxEqual(want, 1e-12) {
			t.Errorf("step %d: Orbit = %+v, want %+v", step, got, want)
		}
	}
}

func TestTranslateMulVec3(t *testing.T) {
	got := Translate(V3(0, 0, 2.5)).MulVec3(V3(-1, 1, -1))
	if want := V3(-1, 1, 1.5); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(ScaleUniform(2))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
	if got := m.Get(0, 3); got != 1 {
		t.Errorf("Get(0,3) = %v, want 1", got)
	}
}

func TestVec3(t *testing.T) {
	a := V3(1, 0, 0)
	b := V3(0, 1, 0)

	if got := a.Cross(b); got != V3(0, 0, 1) {
		t.Errorf("Cross = %+v, want +Z", got)
	}
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %+v, want zero", got)
	}
	if got := V3(1, 5, -2).Min(V3(0, 6, -3)); got != V3(0, 5, -3) {
		t.Errorf("Min = %+v", got)
	}
	if got := V3(1, 5, -2).Max(V3(0, 6, -3)); got != V3(1, 6, -2) {
		t.Errorf("Max = %+v", got)
	}
	if got := V3(1, 1, 1).Distance(V3(1, 1, 3)); got != 2 {
		t.Errorf("Distance = %v, want 2", got)
	}
}
