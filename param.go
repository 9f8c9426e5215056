package genalg

import (
	"fmt"
	"math"
	"math/rand"
)

// Kind identifies the numeric domain of a parameter.
type Kind int

const (
	// KindInt restricts a parameter to whole numbers.
	KindInt Kind = iota + 1
	// KindFloat allows any real value.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Param describes the domain of one tunable scalar: its bounds, whether it
// holds integers or reals, and whether mutation is clamped into the bounds.
//
// Values of both kinds travel through the engine as float64; KindInt
// parameters keep their values integral through sampling and mutation.
type Param struct {
	Min, Max float64
	Kind     Kind

	// Restrict clamps mutated values into [Min, Max]. When false a mutation
	// may leave the domain, which models open-ended parameters.
	Restrict bool
}

// IntParam returns an integer parameter spanning [min, max] inclusive,
// with mutation clamped into the bounds.
func IntParam(min, max int) Param {
	return Param{Min: float64(min), Max: float64(max), Kind: KindInt, Restrict: true}
}

// FloatParam returns a continuous parameter spanning [min, max],
// with mutation clamped into the bounds.
func FloatParam(min, max float64) Param {
	return Param{Min: min, Max: max, Kind: KindFloat, Restrict: true}
}

// validate reports whether the parameter describes a usable domain.
func (p Param) validate() error {
	switch p.Kind {
	case KindInt:
		if p.Min != math.Trunc(p.Min) || p.Max != math.Trunc(p.Max) {
			return fmt.Errorf("%w: int parameter has fractional bounds [%v, %v]", ErrInvalidDomain, p.Min, p.Max)
		}
	case KindFloat:
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidDomain, p.Kind)
	}
	if p.Min > p.Max {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidDomain, p.Min, p.Max)
	}
	return nil
}

// sample draws a uniform value from [Min, Max]; integer parameters draw
// uniformly over the inclusive set of whole numbers.
func (p Param) sample(rng *rand.Rand) float64 {
	if p.Kind == KindInt {
		span := int(p.Max-p.Min) + 1
		return p.Min + float64(rng.Intn(span))
	}
	return p.Min + rng.Float64()*(p.Max-p.Min)
}

// mutate perturbs v by up to one full domain span in either direction:
//
//	v' = v ± (Max-Min) * u,  u uniform in [0, 1)
//
// The step is scaled by the span so mutation pressure is independent of the
// domain's resolution. Integer parameters truncate the step to keep values
// integral. If Restrict is set the result is clamped into [Min, Max].
func (p Param) mutate(rng *rand.Rand, v float64) float64 {
	delta := (p.Max - p.Min) * rng.Float64()
	if p.Kind == KindInt {
		delta = math.Trunc(delta)
	}
	if rng.Intn(2) == 0 {
		delta = -delta
	}
	v += delta

	if p.Restrict {
		if v > p.Max {
			v = p.Max
		} else if v < p.Min {
			v = p.Min
		}
	}
	return v
}
