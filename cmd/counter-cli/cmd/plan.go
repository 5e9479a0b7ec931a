// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v2"

	"github.com/ava-labs/counter/codec"
	"github.com/ava-labs/counter/program"
)

// Plan is a sequence of invocations run against a fresh store.
type Plan struct {
	// The name of the plan.
	Name string `yaml:"name" json:"name"`
	// A description of the plan.
	Description string `yaml:"description" json:"description"`
	// Accounts created before the first step.
	Accounts []PlanAccount `yaml:"accounts" json:"accounts"`
	// Steps to perform during the run.
	Steps []Step `yaml:"steps" json:"steps"`
}

type PlanAccount struct {
	Name string `yaml:"name" json:"name"`
	// Data size in bytes. 0 allocates just the counter.
	Size int `yaml:"size" json:"size"`
}

type Step struct {
	// Description of the step.
	Description string `yaml:"description" json:"description"`
	// Names of the accounts passed to the program, counter account first.
	Accounts []string `yaml:"accounts" json:"accounts"`
	// One of increment, decrement, update or reset.
	Instruction string `yaml:"instruction" json:"instruction"`
	Value       uint32 `yaml:"value" json:"value"`
	// Hex encoded instruction data sent instead of [Instruction].
	Data string `yaml:"data,omitempty" json:"data,omitempty"`
	// Define required assertions against this step.
	Require *Require `yaml:"require,omitempty" json:"require,omitempty"`
}

type Require struct {
	Counter *uint32 `yaml:"counter,omitempty" json:"counter,omitempty"`
	// Substring of the expected error.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return &p, nil
}

// Verify checks the plan is well formed before anything runs.
func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	known := make(map[string]struct{}, len(p.Accounts))
	for _, a := range p.Accounts {
		if a.Name == "" {
			return fmt.Errorf("%w: account without name", ErrInvalidPlan)
		}
		if _, ok := known[a.Name]; ok {
			return fmt.Errorf("%w: duplicate account %q", ErrInvalidPlan, a.Name)
		}
		if _, err := parseAddress(a.Name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
		known[a.Name] = struct{}{}
	}
	for i, step := range p.Steps {
		for _, name := range step.Accounts {
			if _, ok := known[name]; !ok {
				return fmt.Errorf("%w %d: %w: %q", ErrInvalidStep, i, ErrUnknownAccount, name)
			}
		}
		if _, err := step.InstructionData(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

// InstructionData returns the raw bytes sent to the program for this step.
func (s *Step) InstructionData() ([]byte, error) {
	if s.Data != "" {
		return codec.LoadHex(s.Data, -1)
	}
	ix, err := program.ParseInstruction(s.Instruction, s.Value)
	if err != nil {
		return nil, err
	}
	return program.Pack(ix)
}

type Response struct {
	// The index of the step that generated this response.
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Instruction string `json:"instruction,omitempty"`
	Counter     uint32 `json:"counter"`
	// The error message if available.
	Error string `json:"error,omitempty"`
	// Set when a require assertion did not hold.
	RequireError string `json:"requireError,omitempty"`
}

func (r *Response) Print(w io.Writer) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
