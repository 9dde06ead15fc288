package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/validation"
	"github.com/goliatone/go-scheming/pkg/validators"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [schema files...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint scheming schemas for unknown validators and broken choice declarations.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	compiler := validators.NewCompiler(validators.NewRegistry())
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(compiler, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if report(os.Stderr, violations) > 0 {
		os.Exit(1)
	}
}

func lintFile(compiler *validators.Compiler, path string) ([]violation, error) {
	sch, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	result := validation.Lint(sch, compiler)
	out := make([]violation, 0, len(result.Issues))
	for _, issue := range result.Issues {
		out = append(out, violation{file: path, location: issue.Path, message: issue.Message})
	}
	return out, nil
}

func report(w io.Writer, violations []violation) int {
	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return len(violations)
}
