package rng_test

import (
	"crypto/sha256"
	"testing"

	"github.com/bartonsun/D2RSG/pkg/rng"
)

func TestRandomValue_PickValueStaysInRange(t *testing.T) {
	hash := sha256.Sum256([]byte("zone:values"))
	r := rng.NewRNG(1, "stacks", hash[:])
	v := rng.RandomValue{Min: 100, Max: 500}
	for i := 0; i < 200; i++ {
		got := v.PickValue(r)
		if got < v.Min || got > v.Max {
			t.Fatalf("PickValue() = %d, out of [%d,%d]", got, v.Min, v.Max)
		}
	}
}

func TestRandomValue_DegenerateRangeAlwaysReturnsMin(t *testing.T) {
	hash := sha256.Sum256([]byte("zone:fixed"))
	r := rng.NewRNG(1, "stacks", hash[:])
	v := rng.RandomValue{Min: 42, Max: 42}
	if got := v.PickValue(r); got != 42 {
		t.Errorf("PickValue() = %d, want 42", got)
	}
}
