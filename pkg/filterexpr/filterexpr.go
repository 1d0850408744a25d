// Package filterexpr parses AIP-160 style list filters written as CEL
// expressions into typed predicates a repository can translate to SQL.
// Only conjunctions of atomic comparisons against whitelisted fields are
// accepted.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
)

// Field describes one filterable field and the operations it allows.
type Field struct {
	Kind ValueKind
	Ops  []Op
}

// Schema is the set of fields a resource exposes for filtering.
type Schema map[string]Field

// Predicate is one parsed atomic comparison. Value is string, float64 or
// time.Time depending on the field kind.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Parse validates the filter against the schema and returns its
// conjuncts. An empty filter yields no predicates.
func Parse(filter string, schema Schema) ([]Predicate, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(schema) == 0 {
		return nil, errors.New("filter schema has no fields defined")
	}

	env, err := buildEnv(schema)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert AST: %w", err)
	}

	conjuncts, err := extractConjuncts(parsed.GetExpr())
	if err != nil {
		return nil, err
	}

	predicates := make([]Predicate, 0, len(conjuncts))
	for _, expr := range conjuncts {
		pred, err := parseAtomicPredicate(expr)
		if err != nil {
			return nil, err
		}
		field, ok := schema[pred.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", pred.Field)
		}
		if !opAllowed(field.Ops, pred.Op) {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", string(pred.Op), pred.Field)
		}
		if err := validateLiteral(field.Kind, pred.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", pred.Field, err)
		}
		predicates = append(predicates, pred)
	}
	return predicates, nil
}

func opAllowed(ops []Op, op Op) bool {
	for _, candidate := range ops {
		if candidate == op {
			return true
		}
	}
	return false
}

func buildEnv(schema Schema) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(schema)+1)
	for name, field := range schema {
		celType, err := celTypeForKind(field.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind ValueKind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber:
		return cel.DoubleType, nil
	case KindTimestamp:
		return cel.TimestampType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}

// extractConjuncts flattens nested AND chains; any other logical operator
// is rejected.
func extractConjuncts(expr *exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		return []*exprpb.Expr{expr}, nil
	}
	switch call.Function {
	case "_&&_":
		if len(call.Args) < 2 || call.Target != nil {
			return nil, errors.New("logical AND must have at least two operands")
		}
		var result []*exprpb.Expr
		for _, arg := range call.Args {
			conjuncts, err := extractConjuncts(arg)
			if err != nil {
				return nil, err
			}
			result = append(result, conjuncts...)
		}
		return result, nil
	case "_||_", "_?_:_", "!":
		return nil, fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	default:
		return []*exprpb.Expr{expr}, nil
	}
}

func parseAtomicPredicate(expr *exprpb.Expr) (Predicate, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return Predicate{}, errors.New("unsupported expression; expected a comparison")
	}
	switch call.Function {
	case "_==_":
		return parseBinaryPredicate(call, OpEQ)
	case "_>=_":
		return parseBinaryPredicate(call, OpGTE)
	case "_<=_":
		return parseBinaryPredicate(call, OpLTE)
	case "startsWith":
		return parseStartsWith(call)
	default:
		return Predicate{}, fmt.Errorf("function %q is not supported", call.Function)
	}
}

func parseBinaryPredicate(call *exprpb.Expr_Call, op Op) (Predicate, error) {
	if call.Target != nil || len(call.Args) != 2 {
		return Predicate{}, fmt.Errorf("operator %q expects two operands", string(op))
	}
	fieldName, err := parseFieldIdent(call.Args[0])
	if err != nil {
		return Predicate{}, err
	}
	value, err := parseLiteral(call.Args[1])
	if err != nil {
		return Predicate{}, err
	}
	return Predicate{Field: fieldName, Op: op, Value: value}, nil
}

func parseStartsWith(call *exprpb.Expr_Call) (Predicate, error) {
	var fieldExpr, valueExpr *exprpb.Expr
	if call.Target != nil {
		if len(call.Args) != 1 {
			return Predicate{}, errors.New("startsWith with receiver must have exactly one argument")
		}
		fieldExpr = call.Target
		valueExpr = call.Args[0]
	} else {
		if len(call.Args) != 2 {
			return Predicate{}, errors.New("startsWith must have exactly two arguments")
		}
		fieldExpr = call.Args[0]
		valueExpr = call.Args[1]
	}

	fieldName, err := parseFieldIdent(fieldExpr)
	if err != nil {
		return Predicate{}, err
	}
	value, err := parseLiteral(valueExpr)
	if err != nil {
		return Predicate{}, err
	}
	if _, ok := value.(string); !ok {
		return Predicate{}, errors.New("startsWith requires a string literal argument")
	}
	return Predicate{Field: fieldName, Op: OpSW, Value: value}, nil
}

func parseFieldIdent(expr *exprpb.Expr) (string, error) {
	ident := expr.GetIdentExpr()
	if ident == nil {
		return "", errors.New("left-hand side must be an identifier")
	}
	return ident.GetName(), nil
}

func parseLiteral(expr *exprpb.Expr) (any, error) {
	if constant := expr.GetConstExpr(); constant != nil {
		switch constant.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return constant.GetStringValue(), nil
		case *exprpb.Constant_Int64Value:
			return float64(constant.GetInt64Value()), nil
		case *exprpb.Constant_Uint64Value:
			return float64(constant.GetUint64Value()), nil
		case *exprpb.Constant_DoubleValue:
			return constant.GetDoubleValue(), nil
		default:
			return nil, fmt.Errorf("literal type %T is not supported", constant.ConstantKind)
		}
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if call.Target != nil || len(call.Args) != 1 {
			return nil, errors.New("timestamp() expects a single string argument")
		}
		arg := call.Args[0].GetConstExpr()
		if arg == nil {
			return nil, errors.New("timestamp() argument must be a string literal")
		}
		str := arg.GetStringValue()
		if t, err := time.Parse(time.RFC3339Nano, str); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, str); err == nil {
			return t, nil
		}
		return nil, fmt.Errorf("timestamp literal %q is not RFC3339", str)
	}

	return nil, errors.New("right-hand side must be a literal or timestamp() call")
}

func validateLiteral(kind ValueKind, value any) error {
	switch kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindNumber:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	case KindTimestamp:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("expected %s literal", kind)
		}
	default:
		return fmt.Errorf("unsupported field kind %s", kind)
	}
	return nil
}
