// Command optionsconfig generates documentation from an option schema
// file and validates schemas.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/optionsconfig/optionsconfig"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "optionsconfig",
		Short:         "Generate documentation and validate option schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to the schema file")

	build := &cobra.Command{
		Use:   "build",
		Short: "Generate documentation files",
	}
	build.AddCommand(
		&cobra.Command{
			Use:   "env",
			Short: "Generate the .env.example file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuildEnv()
			},
		},
		&cobra.Command{
			Use:   "readme",
			Short: "Update the README options section",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuildReadme()
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Generate all documentation files",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBuildAll()
			},
		},
	)

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate the option schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}

	var verbose bool
	info := &cobra.Command{
		Use:   "info",
		Short: "Display information about the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(verbose)
		},
	}
	info.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-option detail")

	root.AddCommand(build, validate, info)
	return root
}

// loadSchemaFile discovers and parses the schema file for a command.
func loadSchemaFile() (*optionsconfig.File, error) {
	path, err := optionsconfig.DiscoverFile(cfgFile)
	if err != nil {
		return nil, err
	}
	return optionsconfig.LoadFile(path)
}

func runBuildEnv() error {
	file, err := loadSchemaFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, red("✗ "+err.Error()))
		return err
	}

	fmt.Println("Building " + file.Output.EnvExample + "...")
	builder := optionsconfig.NewEnvBuilder(file.Schema, file.Output.EnvExample)
	if err := builder.Build(); err != nil {
		fmt.Fprintln(os.Stderr, red("✗ Error generating env example: "+err.Error()))
		return err
	}

	fmt.Println(green("✓ Successfully generated " + builder.Path()))
	return nil
}

func runBuildReadme() error {
	file, err := loadSchemaFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, red("✗ "+err.Error()))
		return err
	}

	fmt.Println("Building README options section...")
	builder := optionsconfig.NewReadmeBuilder(file.Schema, file.Output.Readme)
	if err := builder.Build(); err != nil {
		fmt.Fprintln(os.Stderr, red("✗ Error updating README: "+err.Error()))
		return err
	}

	fmt.Println(green("✓ Successfully updated " + builder.Path()))
	return nil
}

func runBuildAll() error {
	fmt.Println("Building all documentation...")
	fmt.Println()

	envErr := runBuildEnv()
	fmt.Println()
	readmeErr := runBuildReadme()
	fmt.Println()

	if envErr != nil || readmeErr != nil {
		fmt.Fprintln(os.Stderr, red("✗ Some documentation generation failed"))
		if envErr != nil {
			return envErr
		}
		return readmeErr
	}

	fmt.Println(green("✓ All documentation generated successfully!"))
	return nil
}

func runValidate() error {
	fmt.Println("Validating schema...")

	file, err := loadSchemaFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, red("✗ Schema validation failed:"))
		fmt.Fprintln(os.Stderr, "  "+err.Error())
		return err
	}

	schema := file.Schema
	fmt.Println(green(fmt.Sprintf("✓ Schema is valid (%d options)", schema.Len())))
	fmt.Printf("  Sections: %s\n", joinSorted(schema.Sections()))
	return nil
}

func runInfo(verbose bool) error {
	file, err := loadSchemaFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, red("✗ "+err.Error()))
		return err
	}
	schema := file.Schema

	fmt.Println("Schema Information")
	fmt.Println("==================================================")
	fmt.Printf("Total options: %d\n", schema.Len())

	sections := schema.Sections()
	fmt.Printf("\nSections (%d):\n", len(sections))
	for _, section := range sections {
		opts := schema.SectionOptions(section)
		fmt.Printf("  %s: %d option(s)\n", section, len(opts))
		if verbose {
			for _, opt := range opts {
				fmt.Printf("    - %s\n", opt.Name)
			}
		}
	}

	dependent := 0
	sensitive := 0
	for _, opt := range schema.Options() {
		if len(opt.DependsOn) > 0 {
			dependent++
		}
		if opt.Sensitive {
			sensitive++
		}
	}

	fmt.Println("\nDependencies:")
	fmt.Printf("  Root options: %d\n", len(schema.Roots()))
	fmt.Printf("  Dependent options: %d\n", dependent)

	if sensitive > 0 {
		fmt.Printf("\nSensitive options: %d\n", sensitive)
	}

	return nil
}

func joinSorted(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
