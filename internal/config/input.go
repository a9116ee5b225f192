// Package config loads and validates plan files. A plan file is YAML with a
// top-level "plans" list; each entry is one simulation run.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaeho-lee/pensim/internal/domain"
)

// PlanFile is the parsed form of an input file.
type PlanFile struct {
	Plans []domain.PlanInput `yaml:"plans"`
}

// InputParser handles parsing of plan configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan file, applies defaults, and validates every plan.
func (ip *InputParser) LoadFromFile(filename string) (*PlanFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses raw YAML into a validated PlanFile.
func (ip *InputParser) Parse(data []byte) (*PlanFile, error) {
	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidatePlanFile(&pf); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &pf, nil
}

// ValidatePlanFile applies defaults and validates each plan in place.
func (ip *InputParser) ValidatePlanFile(pf *PlanFile) error {
	if len(pf.Plans) == 0 {
		return fmt.Errorf("no plans provided")
	}
	seen := make(map[string]bool, len(pf.Plans))
	for i := range pf.Plans {
		plan := &pf.Plans[i]
		if plan.Name == "" {
			plan.Name = fmt.Sprintf("plan-%d", i+1)
		}
		if seen[plan.Name] {
			return fmt.Errorf("duplicate plan name %q", plan.Name)
		}
		seen[plan.Name] = true
		plan.ApplyDefaults()
		if err := plan.Validate(); err != nil {
			return fmt.Errorf("plan %d (%s): %w", i+1, plan.Name, err)
		}
	}
	return nil
}

// ExampleConfig returns a documented starter plan file.
func ExampleConfig() string {
	return `# pensim plan file. Amounts are KRW per year; rates are fractions.
plans:
  - name: base
    start_age: 30
    payout_start_age: 60
    payout_end_age: 90
    pre_payout_return: 0.06
    post_payout_return: 0.04
    inflation_rate: 0.03
    annual_contribution: 6000000
    # Portion of the annual contribution that earned no deduction credit.
    # It is returned tax-free during payout.
    non_deductible_contribution: 0
    other_tax_free_principal: 0
    # Other pension income counted against the 15,000,000 threshold.
    other_pension_income: 0
    # Taxable base of non-pension income, for the comprehensive comparison.
    other_comprehensive_income: 0
    contribution_timing: end-of-year    # or start-of-year
    withdrawal_limit_base: current-balance  # or initial-balance
    lump_sum_strategy: flat             # or service-year
`
}
