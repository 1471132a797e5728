package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	schemaPath := flag.String("schema", "", "Path to the type schema YAML")
	outputDir := flag.String("output", "", "Output directory for generated Go files")
	pkg := flag.String("package", "", "Package name of the generated files (overrides the schema)")
	flag.Parse()

	if *schemaPath == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: nodeproxy-gen -schema <path> -output <dir> [-package <name>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*schemaPath, *outputDir, *pkg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaPath, outputDir, pkg string) error {
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	if pkg != "" {
		schema.Package = pkg
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for i := range schema.Types {
		def := &schema.Types[i]
		code, err := GenerateType(def, schema)
		if err != nil {
			return fmt.Errorf("generating type %s: %w", def.Name, err)
		}

		outFileName := typeFileName(def.Name) + "_gen.go"
		outPath := filepath.Join(outputDir, outFileName)
		if err := writeFormatted(outPath, code); err != nil {
			return fmt.Errorf("writing %s: %w", outFileName, err)
		}
		fmt.Printf("  generated %s\n", outPath)
	}

	code, err := GenerateRegistry(schema)
	if err != nil {
		return fmt.Errorf("generating registry: %w", err)
	}
	outPath := filepath.Join(outputDir, "registry_gen.go")
	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing registry_gen.go: %w", err)
	}
	fmt.Printf("  generated %s\n", outPath)

	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
