package conv

import (
	"math"
	"testing"
)

func TestIntToUint32(t *testing.T) {
	tests := []struct {
		in   int
		want uint32
	}{
		{0, 0},
		{1, 1},
		{65536, 65536},
		{math.MaxUint32, math.MaxUint32},
	}
	for _, tt := range tests {
		if got := IntToUint32(tt.in); got != tt.want {
			t.Errorf("IntToUint32(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIntToUint32_Panics(t *testing.T) {
	for _, n := range []int{-1, math.MaxUint32 + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("IntToUint32(%d) should panic", n)
				}
			}()
			IntToUint32(n)
		}()
	}
}
