package sync

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the YAML file configuring a priority-list run.
//
//	kind: SyncPlan
//	priority:
//	  - 근로기준법
//	  - 근로기준법 시행령
type Plan struct {
	Kind     string   `yaml:"kind"`
	Priority []string `yaml:"priority"`
}

func LoadPlan(r io.Reader) (*Plan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sync plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse sync plan: %w", err)
	}
	if plan.Kind != "SyncPlan" {
		return nil, fmt.Errorf("unexpected kind %q, want SyncPlan", plan.Kind)
	}
	if len(plan.Priority) == 0 {
		return nil, fmt.Errorf("sync plan has no priority statutes")
	}
	return &plan, nil
}
