package volatile

import "testing"

func TestRegisterBits(t *testing.T) {
	tests := []struct {
		name string
		init uint32
		op   func(r *Register32)
		want uint32
	}{
		{"set", 0, func(r *Register32) { r.Set(0xdeadbeef) }, 0xdeadbeef},
		{"set bits", 0x10, func(r *Register32) { r.SetBits(0x03) }, 0x13},
		{"clear bits", 0xff, func(r *Register32) { r.ClearBits(0x0f) }, 0xf0},
		{"replace field", 0xffff, func(r *Register32) { r.ReplaceBits(0b010, 0b111, 4) }, 0xffaf},
		{"replace masks value", 0, func(r *Register32) { r.ReplaceBits(0xff, 0x3, 8) }, 0x300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Register32{Reg: tt.init}
			tt.op(&r)
			if got := r.Get(); got != tt.want {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestHasBits(t *testing.T) {
	r := Register32{Reg: 0b1010}
	if !r.HasBits(0b0010) {
		t.Error("HasBits(0b0010) = false")
	}
	if r.HasBits(0b0101) {
		t.Error("HasBits(0b0101) = true")
	}
}

func TestObserve(t *testing.T) {
	var a, b Register32
	var seen []uint32

	restore := Observe(func(reg *Register32, value uint32) {
		seen = append(seen, value)
		if reg == &a {
			// side effects written by the observer are not observed again
			b.Set(value << 1)
		}
	})

	a.Set(1)
	a.SetBits(4)
	restore()
	a.Set(9)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 5 {
		t.Fatalf("observed %v, want [1 5]", seen)
	}
	if b.Get() != 10 {
		t.Errorf("side effect register = %d, want 10", b.Get())
	}
	if a.Get() != 9 {
		t.Errorf("store after restore lost: %d", a.Get())
	}
}
