// Package wire parses and runs JSL program documents (spec §6.1): either
// a bare JSON array of top-level forms, or an object
// {forms: [...], entrypoint?: <expr>, prelude_hash?: <string>}.
package wire

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
)

// Document is a parsed program document.
type Document struct {
	Forms         []value.Value
	Entrypoint    value.Value
	HasEntrypoint bool
	PreludeHash   string // advisory only (spec §6.2); empty if absent
}

// ParseDocument accepts either encoding named in spec §6.1.
func ParseDocument(text string) (*Document, error) {
	v, err := serialize.JSONToValue(text)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case value.List:
		return &Document{Forms: []value.Value(t)}, nil
	case *value.Map:
		doc := &Document{}
		formsV, ok := t.Get("forms")
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "program document object missing \"forms\"")
		}
		formsList, ok := formsV.(value.List)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "program document \"forms\" must be an array")
		}
		doc.Forms = []value.Value(formsList)
		if ep, ok := t.Get("entrypoint"); ok {
			doc.Entrypoint = ep
			doc.HasEntrypoint = true
		}
		if ph, ok := t.Get("prelude_hash"); ok {
			phStr, ok := ph.(value.String)
			if !ok {
				return nil, langerr.New(langerr.SyntaxError, "program document \"prelude_hash\" must be a string")
			}
			doc.PreludeHash = string(phStr)
		}
		return doc, nil
	default:
		return nil, langerr.New(langerr.SyntaxError, "program document must be a JSON array or object")
	}
}

// VerifyPreludeHash checks the document's advisory prelude_hash against
// the local prelude's own ID, failing with PreludeMismatch (spec §7's
// only-on-request check). A document with no prelude_hash always passes
// — the field is advisory, not required.
func (d *Document) VerifyPreludeHash(localPreludeID string) error {
	if d.PreludeHash == "" || d.PreludeHash == localPreludeID {
		return nil
	}
	return langerr.New(langerr.PreludeMismatch, "document prelude_hash %q does not match local prelude %q", d.PreludeHash, localPreludeID)
}

// Run evaluates a document's forms in order under evalFn (either
// treeeval.Eval or stackeval.EvalFunc — both share this signature),
// returning the entrypoint's value if present, else the last form's
// value, else null for an empty document (spec §6.1).
func Run(d *Document, env *value.Env, b *budget.Budget, evalFn treeeval.EvalFunc) (value.Value, error) {
	var last value.Value = value.NullValue
	for _, form := range d.Forms {
		v, err := evalFn(form, env, b)
		if err != nil {
			return nil, err
		}
		last = v
	}
	if d.HasEntrypoint {
		return evalFn(d.Entrypoint, env, b)
	}
	return last, nil
}
