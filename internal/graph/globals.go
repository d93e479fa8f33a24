package graph

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// GlobalKind identifies a built-in variable whose value is computed from the
// traversal context rather than stored on the graph.
type GlobalKind int

const (
	GlobalNone GlobalKind = iota
	GlobalSequenceName
	GlobalShotName
	GlobalShotIndex
	GlobalFrameNumber
	GlobalJobName
)

// AllGlobals lists every built-in variable kind in declaration order.
var AllGlobals = []GlobalKind{
	GlobalSequenceName,
	GlobalShotName,
	GlobalShotIndex,
	GlobalFrameNumber,
	GlobalJobName,
}

// Name is the fixed member name of the global variable.
func (k GlobalKind) Name() string {
	switch k {
	case GlobalSequenceName:
		return "$sequence_name"
	case GlobalShotName:
		return "$shot_name"
	case GlobalShotIndex:
		return "$shot_index"
	case GlobalFrameNumber:
		return "$frame_number"
	case GlobalJobName:
		return "$job_name"
	default:
		return ""
	}
}

// Type is the value type the global variable produces.
func (k GlobalKind) Type() cty.Type {
	switch k {
	case GlobalShotIndex, GlobalFrameNumber:
		return cty.Number
	default:
		return cty.String
	}
}

// ParseGlobalKind looks up a global variable by its member name.
func ParseGlobalKind(name string) (GlobalKind, error) {
	for _, k := range AllGlobals {
		if k.Name() == name {
			return k, nil
		}
	}
	return GlobalNone, fmt.Errorf("unknown global variable %q", name)
}

// TraversalContext identifies what a flatten call is evaluating for. It is
// only used to resolve variables.
type TraversalContext struct {
	SequenceName string
	ShotName     string
	ShotIndex    int
	FrameNumber  int
	JobName      string

	// Variables overrides user-declared variable defaults by member name.
	Variables map[string]cty.Value
}

// GlobalValue computes the value of a global variable for this context.
func (tc TraversalContext) GlobalValue(k GlobalKind) cty.Value {
	switch k {
	case GlobalSequenceName:
		return cty.StringVal(tc.SequenceName)
	case GlobalShotName:
		return cty.StringVal(tc.ShotName)
	case GlobalShotIndex:
		return cty.NumberIntVal(int64(tc.ShotIndex))
	case GlobalFrameNumber:
		return cty.NumberIntVal(int64(tc.FrameNumber))
	case GlobalJobName:
		return cty.StringVal(tc.JobName)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}
