package syntax

import (
	"encoding/json"
	"io"
	"math"
)

// FprintJSON writes a JSON representation of the statements to w.
func FprintJSON(w io.Writer, stmts []Stmt) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(stmts, toJSON))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *PrintStmt:
		return map[string]interface{}{
			"type": "PrintStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *VarDecl:
		m := map[string]interface{}{
			"type": "VarDecl",
			"pos":  n.pos.String(),
			"name": n.Name.Lexeme,
		}
		if n.Init != nil {
			m["init"] = toJSON(n.Init)
		}
		return m

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"pos":  n.pos.String(),
			"op":   n.Op.Kind.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Unary:
		return map[string]interface{}{
			"type": "Unary",
			"pos":  n.pos.String(),
			"op":   n.Op.Kind.String(),
			"x":    toJSON(n.X),
		}

	case *Grouping:
		return map[string]interface{}{
			"type": "Grouping",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *Literal:
		return map[string]interface{}{
			"type":  "Literal",
			"pos":   n.pos.String(),
			"value": jsonValue(n.Value),
		}

	case *Variable:
		return map[string]interface{}{
			"type": "Variable",
			"pos":  n.pos.String(),
			"name": n.Name.Lexeme,
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// jsonValue returns v, or its text form if JSON cannot represent it.
func jsonValue(v any) any {
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return literalString(f, false)
	}
	return v
}

func mapSlice[T Node](s []T, f func(Node) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
