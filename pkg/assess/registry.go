package assess

import (
	"fmt"
	"sort"
)

// Role is one of the fixed stakeholder roles.
type Role string

const (
	RoleExecutive  Role = "executive"
	RoleFinance    Role = "finance"
	RoleOperations Role = "operations"
	RoleIT         Role = "it"
	RoleWorkforce  Role = "workforce"
)

// AllRoles returns the fixed role enumeration in stable order.
func AllRoles() []Role {
	return []Role{RoleExecutive, RoleFinance, RoleOperations, RoleIT, RoleWorkforce}
}

// Dimension is one of the fixed evaluation axes. DimensionProcess is
// gate-only: it never contributes to the clarity index.
type Dimension string

const (
	DimensionStrategy   Dimension = "strategy"
	DimensionValue      Dimension = "value"
	DimensionReadiness  Dimension = "readiness"
	DimensionRisk       Dimension = "risk"
	DimensionGovernance Dimension = "governance"
	DimensionProcess    Dimension = "process"
)

// IndexDimensions returns the scored dimensions in stable order,
// excluding the gate-only process dimension.
func IndexDimensions() []Dimension {
	return []Dimension{DimensionStrategy, DimensionValue, DimensionReadiness, DimensionRisk, DimensionGovernance}
}

// AllDimensions returns every dimension including the gate-only one.
func AllDimensions() []Dimension {
	return append(IndexDimensions(), DimensionProcess)
}

// AnswerType declares how a question is answered.
type AnswerType string

const (
	TypeLikert       AnswerType = "likert"
	TypeSingleSelect AnswerType = "single_select"
	TypeMultiSelect  AnswerType = "multi_select"
	TypeFreeText     AnswerType = "free_text"
)

// TriadPart names a question's position inside a claim/proof/consequence triad.
type TriadPart string

const (
	TriadClaim       TriadPart = "claim"
	TriadEvidence    TriadPart = "evidence"
	TriadConsequence TriadPart = "consequence"
)

// TradeOffSide marks which side of a forced trade-off a question probes.
type TradeOffSide string

const (
	TradeOffBusiness TradeOffSide = "business"
	TradeOffTech     TradeOffSide = "tech"
)

// TimePhase marks the survey position of a time-separated pair member.
type TimePhase string

const (
	TimeEarly TimePhase = "early"
	TimeLate  TimePhase = "late"
)

// AdoptionTag marks the designated questions feeding the adoption-risk gate.
type AdoptionTag string

const (
	AdoptionFriction  AdoptionTag = "friction"
	AdoptionReadiness AdoptionTag = "readiness"
)

// Answer sentinels recognized by the flag detectors.
const (
	OwnerUnclearSentinel    = "not_clearly_defined"
	NothingImpactedSentinel = "nothing_impacted"

	EvidenceTierVerified   = "verified_data"
	EvidenceTierPartial    = "partial_data"
	EvidenceTierAssumption = "assumption"
)

// QuestionDefinition describes one survey question. Immutable after load.
type QuestionDefinition struct {
	ID        string     `json:"id" yaml:"id"`
	Role      Role       `json:"role" yaml:"role"`
	Dimension Dimension  `json:"dimension" yaml:"dimension"`
	Type      AnswerType `json:"type" yaml:"type"`
	Reverse   bool       `json:"reverse,omitempty" yaml:"reverse,omitempty"`

	// Group tags. Empty means the question takes no part in that pattern.
	ReversePairID      string       `json:"reverse_pair_id,omitempty" yaml:"reverse_pair_id,omitempty"`
	TriadGroup         string       `json:"triad_group,omitempty" yaml:"triad_group,omitempty"`
	TriadPart          TriadPart    `json:"triad_part,omitempty" yaml:"triad_part,omitempty"`
	ConfidencePairID   string       `json:"confidence_pair_id,omitempty" yaml:"confidence_pair_id,omitempty"`
	ContradictionGroup string       `json:"contradiction_group,omitempty" yaml:"contradiction_group,omitempty"`
	OwnershipGroup     string       `json:"ownership_group,omitempty" yaml:"ownership_group,omitempty"`
	TradeOffGroup      string       `json:"trade_off_group,omitempty" yaml:"trade_off_group,omitempty"`
	TradeOffSide       TradeOffSide `json:"trade_off_side,omitempty" yaml:"trade_off_side,omitempty"`
	TimePairID         string       `json:"time_pair_id,omitempty" yaml:"time_pair_id,omitempty"`
	TimePhase          TimePhase    `json:"time_phase,omitempty" yaml:"time_phase,omitempty"`
	AdoptionTag        AdoptionTag  `json:"adoption_tag,omitempty" yaml:"adoption_tag,omitempty"`
	ProcessArea        string       `json:"process_area,omitempty" yaml:"process_area,omitempty"`
}

// Registry is the immutable question catalog with its group-membership
// indexes. Built once at startup and shared read-only across evaluations.
type Registry struct {
	questions map[string]*QuestionDefinition
	ordered   []*QuestionDefinition

	reversePairs        map[string][]*QuestionDefinition
	triadGroups         map[string][]*QuestionDefinition
	confidencePairs     map[string][]*QuestionDefinition
	contradictionGroups map[string][]*QuestionDefinition
	ownershipGroups     map[string][]*QuestionDefinition
	tradeOffGroups      map[string][]*QuestionDefinition
	timePairs           map[string][]*QuestionDefinition
	adoptionTags        map[AdoptionTag][]*QuestionDefinition
	processAreas        map[string][]*QuestionDefinition
}

// NewRegistry builds a Registry from question definitions. Definitions are
// copied; the caller's slice is not retained.
func NewRegistry(defs []QuestionDefinition) (*Registry, error) {
	r := &Registry{
		questions:           make(map[string]*QuestionDefinition, len(defs)),
		reversePairs:        map[string][]*QuestionDefinition{},
		triadGroups:         map[string][]*QuestionDefinition{},
		confidencePairs:     map[string][]*QuestionDefinition{},
		contradictionGroups: map[string][]*QuestionDefinition{},
		ownershipGroups:     map[string][]*QuestionDefinition{},
		tradeOffGroups:      map[string][]*QuestionDefinition{},
		timePairs:           map[string][]*QuestionDefinition{},
		adoptionTags:        map[AdoptionTag][]*QuestionDefinition{},
		processAreas:        map[string][]*QuestionDefinition{},
	}

	for i := range defs {
		d := defs[i] // copy
		if d.ID == "" {
			return nil, fmt.Errorf("question at position %d has no id", i)
		}
		if _, dup := r.questions[d.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", d.ID)
		}
		r.questions[d.ID] = &d
		r.ordered = append(r.ordered, &d)

		if d.ReversePairID != "" {
			r.reversePairs[d.ReversePairID] = append(r.reversePairs[d.ReversePairID], &d)
		}
		if d.TriadGroup != "" {
			r.triadGroups[d.TriadGroup] = append(r.triadGroups[d.TriadGroup], &d)
		}
		if d.ConfidencePairID != "" {
			r.confidencePairs[d.ConfidencePairID] = append(r.confidencePairs[d.ConfidencePairID], &d)
		}
		if d.ContradictionGroup != "" {
			r.contradictionGroups[d.ContradictionGroup] = append(r.contradictionGroups[d.ContradictionGroup], &d)
		}
		if d.OwnershipGroup != "" {
			r.ownershipGroups[d.OwnershipGroup] = append(r.ownershipGroups[d.OwnershipGroup], &d)
		}
		if d.TradeOffGroup != "" {
			r.tradeOffGroups[d.TradeOffGroup] = append(r.tradeOffGroups[d.TradeOffGroup], &d)
		}
		if d.TimePairID != "" {
			r.timePairs[d.TimePairID] = append(r.timePairs[d.TimePairID], &d)
		}
		if d.AdoptionTag != "" {
			r.adoptionTags[d.AdoptionTag] = append(r.adoptionTags[d.AdoptionTag], &d)
		}
		if d.Dimension == DimensionProcess && d.ProcessArea != "" {
			r.processAreas[d.ProcessArea] = append(r.processAreas[d.ProcessArea], &d)
		}
	}

	return r, nil
}

// Question looks up a definition by id.
func (r *Registry) Question(id string) (*QuestionDefinition, bool) {
	d, ok := r.questions[id]
	return d, ok
}

// Questions returns all definitions in catalog order.
func (r *Registry) Questions() []*QuestionDefinition {
	out := make([]*QuestionDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of questions in the catalog.
func (r *Registry) Len() int { return len(r.ordered) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReversePairIDs returns pair ids in stable order.
func (r *Registry) ReversePairIDs() []string { return sortedKeys(r.reversePairs) }

// ReversePair returns the members of one reverse-scored pair.
func (r *Registry) ReversePair(id string) []*QuestionDefinition { return r.reversePairs[id] }

// TriadGroupIDs returns triad group ids in stable order.
func (r *Registry) TriadGroupIDs() []string { return sortedKeys(r.triadGroups) }

// TriadGroup returns the members of one claim/proof/consequence triad.
func (r *Registry) TriadGroup(id string) []*QuestionDefinition { return r.triadGroups[id] }

// ConfidencePairIDs returns confidence pair ids in stable order.
func (r *Registry) ConfidencePairIDs() []string { return sortedKeys(r.confidencePairs) }

// ConfidencePair returns the members of one confidence/evidence pair.
func (r *Registry) ConfidencePair(id string) []*QuestionDefinition { return r.confidencePairs[id] }

// ContradictionGroupIDs returns cross-role group ids in stable order.
func (r *Registry) ContradictionGroupIDs() []string { return sortedKeys(r.contradictionGroups) }

// ContradictionGroup returns the members of one cross-role fact group.
func (r *Registry) ContradictionGroup(id string) []*QuestionDefinition {
	return r.contradictionGroups[id]
}

// OwnershipGroupIDs returns ownership group ids in stable order.
func (r *Registry) OwnershipGroupIDs() []string { return sortedKeys(r.ownershipGroups) }

// OwnershipGroup returns the members of one "who owns this" group.
func (r *Registry) OwnershipGroup(id string) []*QuestionDefinition { return r.ownershipGroups[id] }

// TradeOffGroupIDs returns trade-off group ids in stable order.
func (r *Registry) TradeOffGroupIDs() []string { return sortedKeys(r.tradeOffGroups) }

// TradeOffGroup returns the members of one forced trade-off group.
func (r *Registry) TradeOffGroup(id string) []*QuestionDefinition { return r.tradeOffGroups[id] }

// TimePairIDs returns time-separated pair ids in stable order.
func (r *Registry) TimePairIDs() []string { return sortedKeys(r.timePairs) }

// TimePair returns the members of one time-separated pair.
func (r *Registry) TimePair(id string) []*QuestionDefinition { return r.timePairs[id] }

// AdoptionQuestions returns the questions carrying the given adoption tag.
func (r *Registry) AdoptionQuestions(tag AdoptionTag) []*QuestionDefinition {
	return r.adoptionTags[tag]
}

// ProcessAreaIDs returns process area names in stable order.
func (r *Registry) ProcessAreaIDs() []string { return sortedKeys(r.processAreas) }

// ProcessArea returns the process-dimension questions of one area.
func (r *Registry) ProcessArea(id string) []*QuestionDefinition { return r.processAreas[id] }
