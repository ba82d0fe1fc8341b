package evaluator

import (
	"sort"

	"github.com/podhmo/minischeme/ast"
	"github.com/podhmo/minischeme/object"
)

var builtins = map[string]object.BuiltinFunction{
	"+": func(args []object.Object, site ast.Node) (object.Object, error) {
		nums, err := numbers(args, site)
		if err != nil {
			return nil, err
		}
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		return &object.Number{Value: sum}, nil
	},
	"-": func(args []object.Object, site ast.Node) (object.Object, error) {
		if len(args) == 0 {
			return nil, &object.ArityMismatchError{Expected: 1, Found: 0, AtLeast: true, Site: site}
		}
		nums, err := numbers(args, site)
		if err != nil {
			return nil, err
		}
		if len(nums) == 1 {
			return &object.Number{Value: -nums[0]}, nil
		}
		rest := 0.0
		for _, n := range nums[1:] {
			rest += n
		}
		return &object.Number{Value: nums[0] - rest}, nil
	},
	"*": func(args []object.Object, site ast.Node) (object.Object, error) {
		if len(args) < 2 {
			return nil, &object.ArityMismatchError{Expected: 2, Found: len(args), AtLeast: true, Site: site}
		}
		nums, err := numbers(args, site)
		if err != nil {
			return nil, err
		}
		product := 1.0
		for _, n := range nums {
			product *= n
		}
		return &object.Number{Value: product}, nil
	},
	"/": func(args []object.Object, site ast.Node) (object.Object, error) {
		if len(args) == 0 {
			return nil, &object.ArityMismatchError{Expected: 1, Found: 0, AtLeast: true, Site: site}
		}
		nums, err := numbers(args, site)
		if err != nil {
			return nil, err
		}
		if len(nums) == 1 {
			return &object.Number{Value: 1 / nums[0]}, nil
		}
		divisor := 1.0
		for _, n := range nums[1:] {
			divisor *= n
		}
		return &object.Number{Value: nums[0] / divisor}, nil
	},
	"<":  comparison(func(a, b float64) bool { return a < b }),
	"<=": comparison(func(a, b float64) bool { return a <= b }),
	">":  comparison(func(a, b float64) bool { return a > b }),
	">=": comparison(func(a, b float64) bool { return a >= b }),
	"=":  comparison(func(a, b float64) bool { return a == b }),
	"!=": comparison(func(a, b float64) bool { return a != b }),
}

func comparison(cmp func(a, b float64) bool) object.BuiltinFunction {
	return func(args []object.Object, site ast.Node) (object.Object, error) {
		if len(args) != 2 {
			return nil, &object.ArityMismatchError{Expected: 2, Found: len(args), Site: site}
		}
		nums, err := numbers(args, site)
		if err != nil {
			return nil, err
		}
		return object.NativeBoolToBooleanObject(cmp(nums[0], nums[1])), nil
	}
}

// numbers unwraps every argument as a number.
func numbers(args []object.Object, site ast.Node) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, ok := arg.(*object.Number)
		if !ok {
			return nil, &object.TypeError{Expected: string(object.NUMBER_OBJ), Found: arg, Site: site}
		}
		nums[i] = n.Value
	}
	return nums, nil
}

// Builtins returns the builtin procedures sorted by name.
func Builtins() []*object.Builtin {
	result := make([]*object.Builtin, 0, len(builtins))
	for name, fn := range builtins {
		result = append(result, &object.Builtin{Name: name, Fn: fn})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// InstallBuiltins installs the builtin procedures and the boolean literals
// into env as constants.
func InstallBuiltins(env *object.Environment) {
	for _, b := range Builtins() {
		env.SetConstant(b.Name, b)
	}
	env.SetConstant("true", object.TRUE)
	env.SetConstant("false", object.FALSE)
}

// NewRootEnvironment returns a fresh top-level environment with the builtins installed.
func NewRootEnvironment() *object.Environment {
	env := object.NewEnvironment()
	InstallBuiltins(env)
	return env
}
