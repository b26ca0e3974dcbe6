// Package preset reads HCL files describing the modules of a semester and
// turns them into a module list.
//
// A preset looks like:
//
//	module "Analyse 1" {
//	  coefficient = 5
//	  weight_exam = 60
//	}
//
// Every attribute is optional and may be a number or a string. Values go
// through the same normalization as user edits.
package preset

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/mind-engage/semester-gpa/internal/grading"
	"github.com/mind-engage/semester-gpa/internal/logging"
)

type hclFile struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name        string         `hcl:"name,label"`
	Coefficient hcl.Expression `hcl:"coefficient,optional"`
	WeightExam  hcl.Expression `hcl:"weight_exam,optional"`
	Exam        hcl.Expression `hcl:"exam,optional"`
	TD          hcl.Expression `hcl:"td,optional"`
}

// Load parses the preset at path.
func Load(ctx context.Context, path string) (grading.List, error) {
	logging.FromContext(ctx).Debug("loading preset", "path", path)
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, diags)
	}
	return decode(ctx, f, path)
}

// Parse is Load for in-memory source; filename is only used in diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (grading.List, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse preset %s: %w", filename, diags)
	}
	return decode(ctx, f, filename)
}

func decode(ctx context.Context, f *hcl.File, filename string) (grading.List, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode preset %s: %w", filename, diags)
	}
	if len(parsed.Modules) == 0 {
		logging.FromContext(ctx).Warn("preset has no modules, starting blank", "file", filename)
		return grading.NewList(), nil
	}

	l := grading.List{}
	for _, m := range parsed.Modules {
		l = grading.AddModule(l)
		i := len(l) - 1
		l = grading.Normalize(l, i, grading.FieldName, m.Name)
		for _, a := range []struct {
			field grading.Field
			expr  hcl.Expression
		}{
			{grading.FieldCoefficient, m.Coefficient},
			{grading.FieldWeightExam, m.WeightExam},
			{grading.FieldExam, m.Exam},
			{grading.FieldTD, m.TD},
		} {
			raw, diags := rawString(a.expr)
			if diags.HasErrors() {
				return nil, fmt.Errorf("module %q in %s: %w", m.Name, filename, diags)
			}
			l = grading.Normalize(l, i, a.field, raw)
		}
	}
	return l, nil
}

// rawString renders an attribute the way a user would have typed it. Absent
// and null attributes become "".
func rawString(expr hcl.Expression) (string, hcl.Diagnostics) {
	if expr == nil {
		return "", nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if v.IsNull() {
		return "", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || !s.IsKnown() {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported value",
			Detail:   "Expected a number or a string.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return s.AsString(), nil
}
