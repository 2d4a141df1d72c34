package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aashish23092/inscription-verification/dto"
	"github.com/Aashish23092/inscription-verification/verification"
)

type checkOptions struct {
	bacFile    string
	cinFile    string
	claimsFile string
	rulesFile  string
	jsonOutput bool
}

// claimsFile is the YAML layout of --claims:
//
//	fields:
//	  - name: nom_fr
//	    value: Alami
//	    script: latin
type claimsFile struct {
	Fields []dto.ClaimedField `yaml:"fields"`
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify claimed fields against recognized text",
		Long: `Read the recognized text of both documents from plain text files and check
every claimed field from the claims YAML file against it.

The exit status is non-zero when the submission needs manual review.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runCheck(opts)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return fmt.Errorf("error encoding result: %w", err)
				}
			} else {
				printResult(cmd.OutOrStdout(), result)
			}

			if result.Status != dto.StatusAutoValidated {
				return fmt.Errorf("submission needs review")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.bacFile, "bac", "", "recognized text of the baccalaureate diploma")
	cmd.Flags().StringVar(&opts.cinFile, "cin", "", "recognized text of the identity card")
	cmd.Flags().StringVar(&opts.claimsFile, "claims", "", "YAML file with the claimed fields")
	cmd.Flags().StringVar(&opts.rulesFile, "rules", "", "YAML file overriding the matching rules")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("claims")

	return cmd
}

func runCheck(opts checkOptions) (dto.VerificationResult, error) {
	claims, err := loadClaims(opts.claimsFile)
	if err != nil {
		return dto.VerificationResult{}, err
	}

	bac, err := readOptional(opts.bacFile)
	if err != nil {
		return dto.VerificationResult{}, err
	}
	cin, err := readOptional(opts.cinFile)
	if err != nil {
		return dto.VerificationResult{}, err
	}

	rules := verification.DefaultRuleSet()
	if opts.rulesFile != "" {
		if rules, err = verification.LoadRules(opts.rulesFile); err != nil {
			return dto.VerificationResult{}, err
		}
	}

	v, err := verification.New(verification.WithRuleSet(rules))
	if err != nil {
		return dto.VerificationResult{}, err
	}

	return v.Verify(claims, []dto.RecognizedText{
		{Source: dto.DocTypeBac, Raw: bac},
		{Source: dto.DocTypeCIN, Raw: cin},
	}), nil
}

func loadClaims(path string) ([]dto.ClaimedField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading claims file: %w", err)
	}

	var f claimsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error parsing claims file: %w", err)
	}
	if len(f.Fields) == 0 {
		return nil, fmt.Errorf("claims file %s has no fields", path)
	}
	return f.Fields, nil
}

// readOptional reads a text file; an empty path stands for a document that
// could not be recognized.
func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return string(data), nil
}

func printResult(out io.Writer, result dto.VerificationResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.FgCyan)

	for _, v := range result.Verdicts {
		mark, c := "✓", green
		if !v.Matched {
			mark, c = "✗", red
		}
		c.Fprintf(out, "%s %-16s", mark, v.Field)
		dim.Fprintf(out, " %-12s %-9s", v.Strategy, v.View)
		fmt.Fprintf(out, " %.3f\n", v.BestScore)
	}

	fmt.Fprintln(out)
	if result.Status == dto.StatusAutoValidated {
		color.New(color.FgGreen, color.Bold).Fprintln(out, result.Status)
	} else {
		color.New(color.FgYellow, color.Bold).Fprintln(out, result.Status)
	}
}
