package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve"
	"github.com/aretw0/sieve/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a data document against a schema",
	Long:  `Loads a schema (YAML or JSON), validates the given data document against it, and prints the result as JSON. Exits non-zero when the data is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		schemaPath, _ := cmd.Flags().GetString("schema")
		dataPath, _ := cmd.Flags().GetString("data")

		if err := runValidate(schemaPath, dataPath); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("schema", "s", "", "Path to the schema document")
	validateCmd.Flags().StringP("data", "d", "", "Path to the data document")
	validateCmd.MarkFlagRequired("schema")
	validateCmd.MarkFlagRequired("data")
}

func runValidate(schemaPath, dataPath string) error {
	root, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}
	v, err := sieve.FromCompiled(root)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read data %s: %w", dataPath, err)
	}
	data, err := schema.ParseDocument(raw)
	if err != nil {
		return fmt.Errorf("data %s: %w", dataPath, err)
	}

	res, err := v.Validate(data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if !res.Success {
		return fmt.Errorf("%d field error(s)", len(res.Errors))
	}
	return nil
}
