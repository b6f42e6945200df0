package main

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"
)

//go:embed stubs/*.stub
var stubs embed.FS

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

type migrationStub struct {
	Name       string // 20260301000000_create_products_table
	StructName string // CreateProductsTable
}

// mayorista make:migration <name>
var makeMigrationCmd = &cobra.Command{
	Use:   "make:migration [name]",
	Short: "Create a timestamped migration in database/migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := newMigrationStub(args[0], time.Now().UTC())
		if data.StructName == "" {
			return fmt.Errorf("invalid migration name %q", args[0])
		}
		content, err := renderStub("migration", data)
		if err != nil {
			return err
		}
		path := filepath.Join("database", "migrations", data.Name+".go")
		if err := writeFile(path, content); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
		return nil
	},
}

func newMigrationStub(name string, now time.Time) migrationStub {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	var camel strings.Builder
	for _, part := range strings.Split(slug, "_") {
		if part == "" {
			continue
		}
		camel.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	structName := camel.String()
	if structName != "" && structName[0] >= '0' && structName[0] <= '9' {
		structName = "M" + structName
	}
	return migrationStub{Name: now.Format("20060102150405") + "_" + slug, StructName: structName}
}

// renderStub prefers a project override in .mayorista/stubs, then the
// embedded default.
func renderStub(name string, data any) (string, error) {
	raw, err := os.ReadFile(filepath.Join(".mayorista", "stubs", name+".stub"))
	if err != nil {
		if raw, err = stubs.ReadFile("stubs/" + name + ".stub"); err != nil {
			return "", fmt.Errorf("stub %s not found: %w", name, err)
		}
	}
	t, err := template.New(name).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse stub %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render stub %s: %w", name, err)
	}
	return buf.String(), nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
