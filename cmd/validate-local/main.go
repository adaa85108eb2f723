// Command validate-local validates a JSON document against a JSON
// Schema, both read from the local file system.
//
//	validate-local [flags] <json-file> <schema-file>
//
// Exit codes: 0 the document conforms, 1 it does not, 2 usage error,
// 3 the inputs could not be loaded or the schema could not be compiled.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	flag "github.com/spf13/pflag"

	"github.com/bcbshq/validate-local/internal/loader"
	"github.com/bcbshq/validate-local/internal/validator"
)

const usageLine = "Usage: validate-local <json-file> <schema-file>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fl := flag.NewFlagSet("validate-local", flag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fl.PrintDefaults()
	}
	draft := fl.IntP("draft", "d", 2020, "draft used when '$schema' is absent")
	assertFormat := fl.BoolP("assert-format", "f", false, "enable format assertions")
	assertContent := fl.BoolP("assert-content", "c", false, "enable content assertions")
	ecmaRegex := fl.Bool("ecma-regex", false, "match patterns with ECMA-262 semantics")
	output := fl.StringP("output", "o", "", "print `basic|detailed` engine output after the verdict")

	if err := fl.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	switch *output {
	case "", "basic", "detailed":
	default:
		fmt.Fprintf(stderr, "output must be basic or detailed: got %q\n", *output)
		return 2
	}
	if fl.NArg() < 2 {
		fmt.Fprintln(stdout, usageLine)
		return 2
	}
	docPath, schemaPath := fl.Arg(0), fl.Arg(1)

	instance, err := loader.Load(docPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	schema, err := loader.Load(schemaPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	schemaURL, err := loader.FileURL(schemaPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	v, err := validator.New(validator.Options{
		Draft:         *draft,
		AssertFormat:  *assertFormat,
		AssertContent: *assertContent,
		ECMARegex:     *ecmaRegex,
		SchemaURL:     schemaURL,
		Loader:        loader.NewURLLoader(),
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	err = v.Validate(instance, schema)
	if err == nil {
		fmt.Fprintln(stdout, "Validation OK")
		return 0
	}
	var cerr *validator.SchemaCompileError
	if errors.As(err, &cerr) {
		fmt.Fprintln(stderr, err)
		return 3
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintln(stderr, err)
		return 3
	}

	fmt.Fprintln(stdout, "Validation FAILED: "+validator.FirstMessage(verr))
	if *output != "" {
		var unit any
		switch *output {
		case "basic":
			unit = verr.BasicOutput()
		case "detailed":
			unit = verr.DetailedOutput()
		}
		b, err := json.MarshalIndent(unit, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
		} else {
			fmt.Fprintln(stdout, string(b))
		}
	}
	return 1
}
