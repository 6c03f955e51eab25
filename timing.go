package carousel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TimingFunc maps elapsed-time progress in [0, 1] to movement progress in
// [0, 1]. A nil TimingFunc means linear motion.
type TimingFunc func(progress float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return t
}

// CSS easing curves.
var (
	Ease         = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn       = CubicBezier(0.42, 0.0, 1.0, 1.0)
	EaseOut      = CubicBezier(0.0, 0.0, 0.58, 1.0)
	EaseInOutCSS = CubicBezier(0.42, 0.0, 0.58, 1.0)
)

// EaseInOut returns a symmetric ease-in-out curve x^f / (x^f + (1-x)^f).
// Larger factors give a steeper middle section; a factor of 1 is linear.
func EaseInOut(factor float64) TimingFunc {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		a := math.Pow(x, factor)
		return a / (a + math.Pow(1-x, factor))
	}
}

// CubicBezier returns a curve matching CSS cubic-bezier(x1, y1, x2, y2).
func CubicBezier(x1, y1, x2, y2 float64) TimingFunc {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Solve x(u) = t with Newton-Raphson, then bisection if it stalls.
		u := t
		for range 8 {
			x := bezier(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezier(y1, y2, clampUnit(u))
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 20 {
			x := bezier(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) / 2
		}
		return bezier(y1, y2, u)
	}
}

func bezier(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}

// ParseTiming resolves a timing function by name. Accepted forms:
//
//	linear | ease | ease-in | ease-out | ease-in-out
//	ease-in-out(2.5)                 symmetric power curve, see EaseInOut
//	cubic-bezier(0.4, 0, 0.2, 1)
//
// The empty string yields nil (linear).
func ParseTiming(name string) (TimingFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return nil, nil
	case "linear":
		return Linear, nil
	case "ease":
		return Ease, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOutCSS, nil
	}

	fn, args, ok := splitCall(name)
	if !ok {
		return nil, fmt.Errorf("unknown timing function %q", name)
	}

	switch fn {
	case "ease-in-out":
		if len(args) != 1 {
			return nil, fmt.Errorf("ease-in-out takes 1 argument, got %d", len(args))
		}
		if args[0] <= 0 {
			return nil, fmt.Errorf("ease-in-out factor must be positive, got %v", args[0])
		}
		return EaseInOut(args[0]), nil

	case "cubic-bezier":
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier takes 4 arguments, got %d", len(args))
		}
		if args[0] < 0 || args[0] > 1 || args[2] < 0 || args[2] > 1 {
			return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1]")
		}
		return CubicBezier(args[0], args[1], args[2], args[3]), nil

	default:
		return nil, fmt.Errorf("unknown timing function %q", fn)
	}
}

// splitCall parses "name(a, b, ...)" into its name and numeric arguments.
// Non-finite arguments are rejected.
func splitCall(s string) (string, []float64, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]

	var args []float64
	for _, part := range strings.Split(body, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", nil, false
		}
		args = append(args, v)
	}
	return name, args, true
}
