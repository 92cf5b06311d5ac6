package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/healthtracker/internal/calculator"
	"github.com/mmynk/healthtracker/internal/models"
)

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <bmi|body_fat|calories> key=value...",
		Short: "Run a calculator and print the result",
		Long: `Run one of the calculators without the web interface.

EXAMPLES:

  $ healthtracker calc bmi weight=70 height=170
  $ healthtracker calc body_fat gender=male age=25 chest=95 abdomen=85 thigh=60
  $ healthtracker calc calories weight=70 height=170 age=30 gender=male activity_level=1.2

Weight is in kilograms, height in centimeters and skinfolds in millimeters.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			t := models.CalculatorType(args[0])
			result, err := calculator.Default().Calculate(t, fields)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %.2f\n", t.Label(), result)
			return nil
		},
	}
}

// parseAssignments turns key=value arguments into calculator fields.
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		fields[key] = value
	}
	return fields, nil
}
