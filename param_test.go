package genalg

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestIntParamConstruction(t *testing.T) {
	p := IntParam(0, 10)
	if p.Min != 0 || p.Max != 10 {
		t.Errorf("Expected bounds [0, 10], got [%v, %v]", p.Min, p.Max)
	}
	if p.Kind != KindInt {
		t.Errorf("Expected KindInt, got %v", p.Kind)
	}
	if !p.Restrict {
		t.Error("Int parameters should be restricted by default")
	}
}

func TestFloatParamConstruction(t *testing.T) {
	p := FloatParam(-1.5, 2.5)
	if p.Kind != KindFloat {
		t.Errorf("Expected KindFloat, got %v", p.Kind)
	}
	if !p.Restrict {
		t.Error("Float parameters should be restricted by default")
	}
}

func TestParamValidation(t *testing.T) {
	cases := []struct {
		name  string
		param Param
	}{
		{"inverted bounds", FloatParam(10, 0)},
		{"unknown kind", Param{Min: 0, Max: 1}},
		{"fractional int bounds", Param{Min: 0.5, Max: 10, Kind: KindInt}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.param.validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.Is(err, ErrInvalidDomain) {
				t.Errorf("Expected ErrInvalidDomain, got %v", err)
			}
		})
	}

	if err := IntParam(0, 10).validate(); err != nil {
		t.Errorf("Valid int param rejected: %v", err)
	}
	if err := FloatParam(0, 0).validate(); err != nil {
		t.Errorf("Degenerate but valid bounds rejected: %v", err)
	}
}

func TestParamSampleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	fp := FloatParam(0, 10)
	for range 1000 {
		v := fp.sample(rng)
		if v < 0 || v > 10 {
			t.Fatalf("Float sample %v out of [0, 10]", v)
		}
	}

	ip := IntParam(0, 10)
	seen := make(map[float64]bool)
	for range 1000 {
		v := ip.sample(rng)
		if v < 0 || v > 10 {
			t.Fatalf("Int sample %v out of [0, 10]", v)
		}
		if v != math.Trunc(v) {
			t.Fatalf("Int sample %v is not integral", v)
		}
		seen[v] = true
	}
	// Inclusive range: both endpoints should show up over 1000 draws.
	if !seen[0] || !seen[10] {
		t.Errorf("Endpoints not sampled: saw 0=%v, 10=%v", seen[0], seen[10])
	}
}

func TestParamMutateRestricted(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := FloatParam(0, 10)

	v := 5.0
	for range 1000 {
		v = p.mutate(rng, v)
		if v < 0 || v > 10 {
			t.Fatalf("Restricted mutation escaped bounds: %v", v)
		}
	}
}

func TestParamMutateUnrestricted(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := FloatParam(0, 10)
	p.Restrict = false

	v := 5.0
	escaped := false
	for range 10000 {
		v = p.mutate(rng, v)
		if v < 0 || v > 10 {
			escaped = true
			break
		}
	}
	if !escaped {
		t.Error("Unrestricted mutation never left the domain")
	}
}

func TestParamMutateIntStaysIntegral(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := IntParam(0, 10)

	v := 5.0
	for range 1000 {
		v = p.mutate(rng, v)
		if v != math.Trunc(v) {
			t.Fatalf("Int mutation produced fractional value %v", v)
		}
	}
}
