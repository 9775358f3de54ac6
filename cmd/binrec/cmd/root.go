/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/binrec/pkg/di"
	"github.com/ssargent/binrec/pkg/schema"
	"github.com/ssargent/binrec/pkg/schemafile"
)

// container holds the application dependencies, injected by main
var container *di.Container

// SetContainer injects the dependency container into the cmd package
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "binrec",
	Short: "binrec - declarative fixed-layout binary records",
	Long: `binrec compiles declarative record descriptions into fixed binary
layouts and converts between packed little-endian buffers and
per-field values. Schemas are plain YAML documents; records can be
dumped from flat files, packed from value lists, stored in a local
record vault, or served over a REST API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global schema document flag
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Path to the YAML schema document")
}

// loadSchemas compiles the schema document named by the --schema flag
func loadSchemas(cmd *cobra.Command) (*schemafile.Set, error) {
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	set, err := schemafile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}
	return set, nil
}

// loadLayout compiles the schema document and resolves one record type from it
func loadLayout(cmd *cobra.Command) (*schemafile.Set, *schema.Layout, error) {
	set, err := loadSchemas(cmd)
	if err != nil {
		return nil, nil, err
	}
	typeName, _ := cmd.Flags().GetString("type")
	if typeName == "" {
		return nil, nil, fmt.Errorf("--type is required")
	}
	layout, err := set.Layout(typeName)
	if err != nil {
		return nil, nil, err
	}
	return set, layout, nil
}
