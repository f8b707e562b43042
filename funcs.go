package shunt

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Precedence orders pending functions and operators on the parser's stack.
type Precedence int8

const (
	PrecLow Precedence = iota
	PrecMedium
	PrecHigh
)

func (p Precedence) String() string {
	switch p {
	case PrecLow:
		return "low"
	case PrecMedium:
		return "medium"
	case PrecHigh:
		return "high"
	default:
		return "Precedence(" + strconv.Itoa(int(p)) + ")"
	}
}

// Func is a function of one number: a sign or a named function applied
// prefix-style to the term that follows it.
type Func int8

const (
	funcNone Func = iota
	FuncPlus
	FuncNeg
	FuncFloor
	FuncCeil
	FuncRound
	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncToDeg
	FuncToRad
	FuncLog
	FuncLn
	FuncSqrt
	FuncCbrt
	FuncAbs
)

var funcnames = [...]string{
	funcNone:  "",
	FuncPlus:  "+",
	FuncNeg:   "-",
	FuncFloor: "floor",
	FuncCeil:  "ceil",
	FuncRound: "round",
	FuncSin:   "sin",
	FuncCos:   "cos",
	FuncTan:   "tan",
	FuncAsin:  "asin",
	FuncAcos:  "acos",
	FuncAtan:  "atan",
	FuncToDeg: "todeg",
	FuncToRad: "torad",
	FuncLog:   "log",
	FuncLn:    "ln",
	FuncSqrt:  "sqrt",
	FuncCbrt:  "cbrt",
	FuncAbs:   "abs",
}

// String returns the source spelling of the function.
func (f Func) String() string {
	if f <= funcNone || int(f) >= len(funcnames) {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	return funcnames[f]
}

// Precedence returns the precedence of the function. Signs are low, so -2^2
// is -(2^2); named functions are high, so sin x * 2 is (sin x) * 2.
func (f Func) Precedence() Precedence {
	switch f {
	case FuncPlus, FuncNeg:
		return PrecLow
	default:
		return PrecHigh
	}
}

// Call applies the function. Arguments outside the function's domain give
// NaN, as with package math.
func (f Func) Call(x float64) float64 {
	switch f {
	case FuncPlus:
		return x
	case FuncNeg:
		return -x
	case FuncFloor:
		return math.Floor(x)
	case FuncCeil:
		return math.Ceil(x)
	case FuncRound:
		return math.Round(x)
	case FuncSin:
		return math.Sin(x)
	case FuncCos:
		return math.Cos(x)
	case FuncTan:
		return math.Tan(x)
	case FuncAsin:
		return math.Asin(x)
	case FuncAcos:
		return math.Acos(x)
	case FuncAtan:
		return math.Atan(x)
	case FuncToDeg:
		return x * 180 / math.Pi
	case FuncToRad:
		return x * math.Pi / 180
	case FuncLog:
		return log10(x)
	case FuncLn:
		return ln(x)
	case FuncSqrt:
		return sqrt(x)
	case FuncCbrt:
		return math.Cbrt(x)
	case FuncAbs:
		return math.Abs(x)
	default:
		panic("shunt: invalid function " + f.String())
	}
}

// LookupFunc finds the named function of one argument with the given name.
// Signs are not named functions.
func LookupFunc(name string) (Func, bool) {
	for f := FuncFloor; int(f) < len(funcnames); f++ {
		if funcnames[f] == name {
			return f, true
		}
	}
	return funcNone, false
}

// unop gets the sign for an operator token. If there is no such sign, the
// result is funcNone.
func unop(text string) Func {
	switch text {
	case "+":
		return FuncPlus
	case "-":
		return FuncNeg
	default:
		return funcNone
	}
}

// BinaryFunc is an infix operator.
type BinaryFunc int8

const (
	binaryNone BinaryFunc = iota
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
)

// String returns the operator symbol.
func (f BinaryFunc) String() string {
	switch f {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryPow:
		return "^"
	default:
		return "BinaryFunc(" + strconv.Itoa(int(f)) + ")"
	}
}

// Precedence returns the precedence of the operator.
func (f BinaryFunc) Precedence() Precedence {
	switch f {
	case BinaryAdd, BinarySub:
		return PrecLow
	case BinaryMul, BinaryDiv:
		return PrecMedium
	default:
		return PrecHigh
	}
}

// RightAssoc reports whether the operator groups to the right. Only
// exponentiation does: 2^3^2 is 2^(3^2).
func (f BinaryFunc) RightAssoc() bool {
	return f == BinaryPow
}

// Call applies the operator.
func (f BinaryFunc) Call(l, r float64) float64 {
	switch f {
	case BinaryAdd:
		return l + r
	case BinarySub:
		return l - r
	case BinaryMul:
		return l * r
	case BinaryDiv:
		return l / r
	case BinaryPow:
		return pow(l, r)
	default:
		panic("shunt: invalid binary function " + f.String())
	}
}

// LookupBinary finds the binary operator for an operator token.
func LookupBinary(text string) (BinaryFunc, bool) {
	switch text {
	case "+":
		return BinaryAdd, true
	case "-":
		return BinarySub, true
	case "*":
		return BinaryMul, true
	case "/":
		return BinaryDiv, true
	case "^":
		return BinaryPow, true
	default:
		return binaryNone, false
	}
}

// VariedFunc is a function of any positive number of arguments. Calls to
// variadic functions always need brackets: max(1, 5, 3).
type VariedFunc int8

const (
	variedNone VariedFunc = iota
	VariedMin
	VariedMax
	VariedAvg
)

// String returns the function name.
func (f VariedFunc) String() string {
	switch f {
	case VariedMin:
		return "min"
	case VariedMax:
		return "max"
	case VariedAvg:
		return "avg"
	default:
		return "VariedFunc(" + strconv.Itoa(int(f)) + ")"
	}
}

// Call applies the function. With no arguments, min is +Inf, max is -Inf,
// and avg is NaN.
func (f VariedFunc) Call(args []float64) float64 {
	switch f {
	case VariedMin:
		r := math.Inf(1)
		for _, x := range args {
			r = math.Min(r, x)
		}
		return r
	case VariedMax:
		r := math.Inf(-1)
		for _, x := range args {
			r = math.Max(r, x)
		}
		return r
	case VariedAvg:
		if len(args) == 0 {
			return math.NaN()
		}
		var s float64
		for _, x := range args {
			s += x
		}
		return s / float64(len(args))
	default:
		panic("shunt: invalid varied function " + f.String())
	}
}

// LookupVaried finds the variadic function with the given name.
func LookupVaried(name string) (VariedFunc, bool) {
	switch name {
	case "min":
		return VariedMin, true
	case "max":
		return VariedMax, true
	case "avg":
		return VariedAvg, true
	default:
		return variedNone, false
	}
}

// constants are the names which always evaluate to a fixed number.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// workprec is the precision in bits of calculations done with big floats.
const workprec = 128

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(workprec).SetFloat64(x)
}

func f64(x *big.Float) float64 {
	r, _ := x.Float64()
	return r
}

// finitePos reports whether x is a positive finite number, i.e. in the domain
// where big float logarithms and roots are defined.
func finitePos(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

func ln(x float64) float64 {
	if !finitePos(x) {
		return math.Log(x)
	}
	return f64(bigfloat.Log(new(big.Float).SetPrec(workprec), bigf(x)))
}

func log10(x float64) float64 {
	if !finitePos(x) {
		return math.Log10(x)
	}
	r := bigfloat.Log(new(big.Float).SetPrec(workprec), bigf(x))
	ten := bigfloat.Log(new(big.Float).SetPrec(workprec), bigf(10))
	return f64(r.Quo(r, ten))
}

func sqrt(x float64) float64 {
	if !finitePos(x) {
		return math.Sqrt(x)
	}
	return f64(new(big.Float).SetPrec(workprec).Sqrt(bigf(x)))
}

// The big float exponential loses results near the ends of the float64
// range, so powers beyond these bounds stay with math.Pow.
const (
	powHuge = 1e300
	powTiny = 1e-300
)

// pow computes l^r. Big floats are used only where the result is a normal
// finite number well inside the float64 range and the base is positive;
// everything else, including negative bases with integer exponents, follows
// math.Pow.
func pow(l, r float64) float64 {
	p := math.Pow(l, r)
	switch {
	case !finitePos(l), l == 1, r == 0, math.IsNaN(r), math.IsInf(r, 0):
		return p
	case p == 0, math.IsInf(p, 0), math.IsNaN(p):
		return p
	case p > powHuge, p < powTiny:
		return p
	}
	z := bigf(l)
	bigfloat.Pow(z, z, bigf(r))
	q := f64(z)
	if math.Abs(q-p) > 1e-12*p {
		// math.Pow is within an ulp or so; anything further is the big
		// float path going wrong.
		return p
	}
	return q
}

// IsReserved reports whether name is a constant or a function, which Parse
// never treats as a variable.
func IsReserved(name string) bool {
	if _, ok := constants[name]; ok {
		return true
	}
	if _, ok := LookupFunc(name); ok {
		return true
	}
	_, ok := LookupVaried(name)
	return ok
}
