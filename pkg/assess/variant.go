package assess

import (
	"fmt"
	"math"
	"sort"
)

// ConfigError is a startup-time configuration failure: broken variant
// weights or a misconfigured gate-only dimension. It corrupts every
// downstream score, so it is never tolerated or masked per-assessment.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string { return "configuration error: " + e.Detail }

func configErrorf(format string, args ...any) error {
	return &ConfigError{Detail: fmt.Sprintf(format, args...)}
}

// Variant is a named assessment configuration: which roles participate,
// how their scores are weighted, and whether the clarity index and the
// gate-only process dimension apply.
type Variant struct {
	Name          string           `json:"name" yaml:"name"`
	RoleWeights   map[Role]float64 `json:"role_weights" yaml:"role_weights"`
	ComputeIndex  bool             `json:"compute_index" yaml:"compute_index"`
	ProcessActive bool             `json:"process_active" yaml:"process_active"`
}

// ActiveRoles returns the variant's roles in stable order.
func (v Variant) ActiveRoles() []Role {
	roles := make([]Role, 0, len(v.RoleWeights))
	for r := range v.RoleWeights {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Validate checks the variant invariants. A failure here is a ConfigError:
// fatal at load time, never silently tolerated.
func (v Variant) Validate() error {
	if v.Name == "" {
		return configErrorf("variant has no name")
	}
	if len(v.RoleWeights) == 0 {
		return configErrorf("variant %s: no active roles", v.Name)
	}
	var sum float64
	for role, w := range v.RoleWeights {
		if w <= 0 {
			return configErrorf("variant %s: role %s has non-positive weight %v", v.Name, role, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return configErrorf("variant %s: role weights sum to %v, want 1.0", v.Name, sum)
	}
	if !v.ComputeIndex && !v.ProcessActive {
		return configErrorf("variant %s: gate-only variant requires the process dimension", v.Name)
	}
	return nil
}

// DefaultVariants returns the built-in assessment configurations.
func DefaultVariants() map[string]Variant {
	return map[string]Variant{
		"boardroom": {
			Name: "boardroom",
			RoleWeights: map[Role]float64{
				RoleExecutive:  0.25,
				RoleFinance:    0.20,
				RoleOperations: 0.20,
				RoleIT:         0.20,
				RoleWorkforce:  0.15,
			},
			ComputeIndex:  true,
			ProcessActive: true,
		},
		"express": {
			Name: "express",
			RoleWeights: map[Role]float64{
				RoleExecutive:  0.40,
				RoleOperations: 0.30,
				RoleIT:         0.30,
			},
			ComputeIndex:  true,
			ProcessActive: false,
		},
		"process_check": {
			Name: "process_check",
			RoleWeights: map[Role]float64{
				RoleOperations: 0.50,
				RoleIT:         0.50,
			},
			ComputeIndex:  false,
			ProcessActive: true,
		},
	}
}
