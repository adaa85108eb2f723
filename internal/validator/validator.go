// Package validator checks decoded JSON documents against JSON schemas.
// It is the only package that talks to the underlying schema engine, so
// swapping engines or drafts stays a local change.
package validator

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Options configure a Validator.
type Options struct {
	// Draft is used when the schema has no $schema keyword.
	// One of 4, 6, 7, 2019, 2020. Zero means 2020.
	Draft int

	// AssertFormat enables format assertions.
	AssertFormat bool

	// AssertContent enables contentEncoding and contentMediaType
	// assertions.
	AssertContent bool

	// ECMARegex compiles pattern and patternProperties with ECMA-262
	// semantics instead of Go regexp.
	ECMARegex bool

	// SchemaURL is the url the schema is registered under; relative
	// $refs resolve against it. Empty means "schema.json".
	SchemaURL string

	// Loader resolves $ref targets outside the schema document itself.
	// Nil leaves the engine's default file loader in place.
	Loader jsonschema.URLLoader
}

// A Validator validates instances against a schema using a fixed set
// of options. It carries no state between calls.
type Validator struct {
	draft *jsonschema.Draft
	opts  Options
}

// New returns a Validator for the given options. It fails only on an
// unknown draft number.
func New(opts Options) (*Validator, error) {
	var draft *jsonschema.Draft
	switch opts.Draft {
	case 4:
		draft = jsonschema.Draft4
	case 6:
		draft = jsonschema.Draft6
	case 7:
		draft = jsonschema.Draft7
	case 2019:
		draft = jsonschema.Draft2019
	case 0, 2020:
		draft = jsonschema.Draft2020
	default:
		return nil, fmt.Errorf("draft must be 4, 6, 7, 2019 or 2020: got %d", opts.Draft)
	}
	return &Validator{draft: draft, opts: opts}, nil
}

// SchemaCompileError reports that the schema itself could not be
// compiled, as opposed to the instance failing validation.
type SchemaCompileError struct {
	Err error
}

func (e *SchemaCompileError) Error() string {
	return fmt.Sprintf("compiling schema: %v", e.Err)
}

func (e *SchemaCompileError) Unwrap() error {
	return e.Err
}

// Validate checks instance against schema. It returns nil when the
// instance conforms, a *jsonschema.ValidationError when it does not,
// and a *SchemaCompileError when the schema itself cannot be compiled.
func (v *Validator) Validate(instance, schema any) error {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(v.draft)
	if v.opts.AssertFormat {
		c.AssertFormat()
	}
	if v.opts.AssertContent {
		c.AssertContent()
	}
	if v.opts.ECMARegex {
		c.UseRegexpEngine(ecmaCompile)
	}
	if v.opts.Loader != nil {
		c.UseLoader(v.opts.Loader)
	}

	url := v.opts.SchemaURL
	if url == "" {
		url = "schema.json"
	}
	if err := c.AddResource(url, schema); err != nil {
		return &SchemaCompileError{Err: err}
	}
	sch, err := c.Compile(url)
	if err != nil {
		return &SchemaCompileError{Err: err}
	}
	return sch.Validate(instance)
}

var printer = message.NewPrinter(language.English)

// FirstMessage renders the first leaf violation of err as a one-line
// human-readable message, prefixed with the instance location when the
// violation is below the document root.
func FirstMessage(err *jsonschema.ValidationError) string {
	leaf := err
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	msg := leaf.ErrorKind.LocalizedString(printer)
	if len(leaf.InstanceLocation) == 0 {
		return msg
	}
	return fmt.Sprintf("at '%s': %s", jsonPointer(leaf.InstanceLocation), msg)
}

func jsonPointer(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~", "~0")
		tok = strings.ReplaceAll(tok, "/", "~1")
		sb.WriteByte('/')
		sb.WriteString(tok)
	}
	return sb.String()
}

// ecmaRegexp adapts dlclark/regexp2 to the engine's Regexp interface.
type ecmaRegexp regexp2.Regexp

func (re *ecmaRegexp) MatchString(s string) bool {
	matched, err := (*regexp2.Regexp)(re).MatchString(s)
	return err == nil && matched
}

func (re *ecmaRegexp) String() string {
	return (*regexp2.Regexp)(re).String()
}

func ecmaCompile(s string) (jsonschema.Regexp, error) {
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return (*ecmaRegexp)(re), nil
}
