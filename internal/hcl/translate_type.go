package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/moviegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// parseTypeExpr converts a property or pin type expression such as `string`,
// `list(number)` or `object({x = number, y = number})` into a cty.Type. A nil
// expression is `any`.
func parseTypeExpr(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	if expr == nil {
		return cty.DynamicPseudoType, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", name)
		}

	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, fmt.Errorf("type constructor %q requires exactly one argument, got %d", v.Name, len(v.Args))
		}
		if v.Name == "object" {
			return parseObjectType(ctx, v.Args[0])
		}

		elem, err := parseTypeExpr(ctx, v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if elem == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
		}
		ctxlog.FromContext(ctx).Debug("Parsed collection type.", "constructor", v.Name, "element", elem.FriendlyName())

		switch v.Name {
		case "list":
			return cty.List(elem), nil
		case "map":
			return cty.Map(elem), nil
		case "set":
			return cty.Set(elem), nil
		default:
			return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor %q", v.Name)
		}

	default:
		return cty.DynamicPseudoType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// parseObjectType reads the `{name = type, ...}` argument of object().
func parseObjectType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	cons, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.DynamicPseudoType, fmt.Errorf("object type requires an attribute map like {name = type}")
	}
	attrs := make(map[string]cty.Type, len(cons.Items))
	for _, item := range cons.Items {
		name := hcl.ExprAsKeyword(item.KeyExpr)
		if name == "" {
			return cty.DynamicPseudoType, fmt.Errorf("object type attribute names must be identifiers")
		}
		if _, dup := attrs[name]; dup {
			return cty.DynamicPseudoType, fmt.Errorf("object type attribute %q is declared twice", name)
		}
		ty, err := parseTypeExpr(ctx, item.ValueExpr)
		if err != nil {
			return cty.DynamicPseudoType, fmt.Errorf("object type attribute %q: %w", name, err)
		}
		if ty == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, fmt.Errorf("object type attribute %q cannot be type 'any'", name)
		}
		attrs[name] = ty
	}
	return cty.Object(attrs), nil
}
