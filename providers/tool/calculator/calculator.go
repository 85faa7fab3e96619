package calculator

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/reagent-ai/reagent/providers/tool"
)

const toolName = "calculator"

const toolDescription = "Evaluates a single arithmetic expression and returns its numeric value. " +
	"The input must be a plain expression such as (3 * 4) - 5. " +
	"Supported operators: + - * / ^ and parentheses. " +
	"Supported functions: sin, cos, tan, asin, acos, atan, log, log10, log2, sqrt, exp, abs, floor, ceil, round, pow. " +
	"Constants: pi, e."

// exprEnv is the complete set of identifiers an expression may reference.
// Everything else fails compilation, which is what keeps eval-style
// injection out of the tool.
var exprEnv = map[string]any{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"log":   math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"sqrt":  math.Sqrt,
	"exp":   math.Exp,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"pow":   math.Pow,
	"pi":    math.Pi,
	"e":     math.E,
}

// implicitMul matches "10 x 5" style multiplication that models sometimes
// emit. Only digit/parenthesis boundaries qualify, so function names keep
// their letters.
var implicitMul = regexp.MustCompile(`([0-9)])\s*[xX]\s*([0-9(])`)

// unicodeOps maps typographic operator variants to their ASCII forms.
var unicodeOps = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"–", "-",
)

// Tool evaluates arithmetic expressions. The zero value is not usable;
// construct with New.
type Tool struct{}

// New returns a calculator tool.
func New() *Tool {
	return &Tool{}
}

func (t *Tool) Name() string { return toolName }

func (t *Tool) Description() string { return toolDescription }

// Call evaluates the expression and returns the result as decimal text.
// Failures are classified so the control loop can surface a corrective
// observation instead of aborting the run.
func (t *Tool) Call(_ context.Context, input string) tool.Observation {
	expression := sanitize(input)
	if expression == "" {
		return tool.Failure(tool.ErrSyntaxInvalid, "empty expression")
	}

	program, err := expr.Compile(expression, expr.Env(exprEnv), expr.DisableAllBuiltins())
	if err != nil {
		if strings.Contains(err.Error(), "unknown name") {
			return tool.Failure(tool.ErrDisallowedToken, "expression references an identifier outside the arithmetic grammar: %v", err)
		}
		return tool.Failure(tool.ErrSyntaxInvalid, "expression does not parse: %v", err)
	}

	out, err := expr.Run(program, exprEnv)
	if err != nil {
		return tool.Failure(tool.ErrSyntaxInvalid, "expression failed to evaluate: %v", err)
	}

	switch v := out.(type) {
	case int:
		return tool.Success(strconv.Itoa(v))
	case int64:
		return tool.Success(strconv.FormatInt(v, 10))
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return tool.Failure(tool.ErrDisallowedToken, "expression evaluated to %T, not a number", out)
	}
}

func formatFloat(v float64) tool.Observation {
	if math.IsInf(v, 0) {
		return tool.Failure(tool.ErrDivisionByZero, "expression evaluated to an infinite value")
	}
	if math.IsNaN(v) {
		return tool.Failure(tool.ErrDomainError, "expression is outside the domain of its functions")
	}
	return tool.Success(strconv.FormatFloat(v, 'g', -1, 64))
}

// sanitize normalizes model-emitted expressions: typographic operators
// become ASCII, "10 x 5" becomes "10*5", and wrapping quotes, backticks
// and a trailing "=" are stripped.
func sanitize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.Trim(s, "`\"'")
	s = strings.TrimSuffix(strings.TrimSpace(s), "=")
	s = unicodeOps.Replace(s)
	s = implicitMul.ReplaceAllString(s, "$1*$2")
	return strings.TrimSpace(s)
}
