package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

func ParseConfig[T any](configString []byte, filename string, startPos hcl.Pos, target *T) error {
	// parse the config
	file, diags := hclsyntax.ParseConfig(configString, filename, startPos)
	if diags.HasErrors() {
		return diagsToError("failed to parse config", diags)
	}
	// create empty eval context
	evalCtx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: make(map[string]function.Function),
	}
	// decode the body into the target struct
	moreDiags := gohcl.DecodeBody(file.Body, evalCtx, target)
	diags = append(diags, moreDiags...)
	if diags.HasErrors() {
		return diagsToError("failed to parse config", diags)
	}
	return nil
}

// diagsToError converts the error diagnostics into a single error
func diagsToError(prefix string, diags hcl.Diagnostics) error {
	var msgs []string
	for _, d := range diags.Errs() {
		var diag *hcl.Diagnostic
		if asDiag, ok := d.(*hcl.Diagnostic); ok {
			diag = asDiag
		}
		if diag == nil {
			msgs = append(msgs, d.Error())
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg = fmt.Sprintf("%s: %s", msg, diag.Detail)
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%s (%s)", msg, diag.Subject.String())
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s: %s", prefix, strings.Join(msgs, "; "))
}
