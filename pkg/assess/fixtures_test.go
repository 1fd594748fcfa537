package assess_test

import (
	"testing"

	"github.com/claritygate/claritygate/pkg/assess"
)

// testRegistry builds a small but complete question catalog exercising
// every group tag the detectors and gates read.
func testRegistry(t *testing.T) *assess.Registry {
	t.Helper()
	reg, err := assess.NewRegistry([]assess.QuestionDefinition{
		// Plain scored questions, one per index dimension.
		{ID: "exec_strat_1", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert},
		{ID: "fin_value_1", Role: assess.RoleFinance, Dimension: assess.DimensionValue, Type: assess.TypeLikert},
		{ID: "ops_read_1", Role: assess.RoleOperations, Dimension: assess.DimensionReadiness, Type: assess.TypeLikert},
		{ID: "it_risk_1", Role: assess.RoleIT, Dimension: assess.DimensionRisk, Type: assess.TypeLikert},
		{ID: "exec_gov_1", Role: assess.RoleExecutive, Dimension: assess.DimensionGovernance, Type: assess.TypeLikert},

		// Reverse-scored pair within the executive role.
		{ID: "exec_strat_2r", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert,
			Reverse: true, ReversePairID: "rp1"},
		{ID: "exec_strat_3", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert,
			ReversePairID: "rp1"},

		// Claim / proof / consequence triad.
		{ID: "exec_claim", Role: assess.RoleExecutive, Dimension: assess.DimensionValue, Type: assess.TypeLikert,
			TriadGroup: "tg1", TriadPart: assess.TriadClaim},
		{ID: "fin_proof", Role: assess.RoleFinance, Dimension: assess.DimensionValue, Type: assess.TypeLikert,
			TriadGroup: "tg1", TriadPart: assess.TriadEvidence},
		{ID: "exec_conseq", Role: assess.RoleExecutive, Dimension: assess.DimensionGovernance, Type: assess.TypeSingleSelect,
			TriadGroup: "tg1", TriadPart: assess.TriadConsequence},

		// Confidence vs evidence-basis pair.
		{ID: "exec_conf", Role: assess.RoleExecutive, Dimension: assess.DimensionValue, Type: assess.TypeLikert,
			ConfidencePairID: "cp1"},
		{ID: "exec_basis", Role: assess.RoleExecutive, Dimension: assess.DimensionValue, Type: assess.TypeSingleSelect,
			ConfidencePairID: "cp1"},

		// Cross-role contradiction group on data readiness.
		{ID: "it_data", Role: assess.RoleIT, Dimension: assess.DimensionReadiness, Type: assess.TypeLikert,
			ContradictionGroup: "data_readiness"},
		{ID: "ops_data", Role: assess.RoleOperations, Dimension: assess.DimensionReadiness, Type: assess.TypeLikert,
			ContradictionGroup: "data_readiness"},

		// Ownership group answered by two roles.
		{ID: "own_exec", Role: assess.RoleExecutive, Dimension: assess.DimensionGovernance, Type: assess.TypeSingleSelect,
			OwnershipGroup: "og1"},
		{ID: "own_ops", Role: assess.RoleOperations, Dimension: assess.DimensionGovernance, Type: assess.TypeSingleSelect,
			OwnershipGroup: "og1"},

		// Forced trade-off pair.
		{ID: "to_biz", Role: assess.RoleOperations, Dimension: assess.DimensionValue, Type: assess.TypeSingleSelect,
			TradeOffGroup: "to1", TradeOffSide: assess.TradeOffBusiness},
		{ID: "to_tech", Role: assess.RoleIT, Dimension: assess.DimensionRisk, Type: assess.TypeMultiSelect,
			TradeOffGroup: "to1", TradeOffSide: assess.TradeOffTech},

		// Time-separated pair.
		{ID: "tp_early", Role: assess.RoleExecutive, Dimension: assess.DimensionStrategy, Type: assess.TypeLikert,
			TimePairID: "tp1", TimePhase: assess.TimeEarly},
		{ID: "tp_late", Role: assess.RoleExecutive, Dimension: assess.DimensionRisk, Type: assess.TypeLikert,
			TimePairID: "tp1", TimePhase: assess.TimeLate},

		// Adoption-risk gate inputs.
		{ID: "wf_friction", Role: assess.RoleWorkforce, Dimension: assess.DimensionReadiness, Type: assess.TypeLikert,
			AdoptionTag: assess.AdoptionFriction},
		{ID: "exec_ready", Role: assess.RoleExecutive, Dimension: assess.DimensionReadiness, Type: assess.TypeLikert,
			AdoptionTag: assess.AdoptionReadiness},

		// Gate-only process dimension, two areas.
		{ID: "proc_ops_1", Role: assess.RoleOperations, Dimension: assess.DimensionProcess, Type: assess.TypeLikert,
			ProcessArea: "invoicing"},
		{ID: "proc_it_1", Role: assess.RoleIT, Dimension: assess.DimensionProcess, Type: assess.TypeLikert,
			ProcessArea: "reporting"},

		// Free text for blind-spot classification.
		{ID: "ft_1", Role: assess.RoleWorkforce, Dimension: assess.DimensionRisk, Type: assess.TypeFreeText},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func boardroomVariant() assess.Variant {
	return assess.DefaultVariants()["boardroom"]
}

func likert(questionID, participantID string, role assess.Role, n int) assess.Answer {
	return assess.Answer{QuestionID: questionID, ParticipantID: participantID, Role: role, Value: assess.LikertValue(n)}
}

func choice(questionID, participantID string, role assess.Role, c string) assess.Answer {
	return assess.Answer{QuestionID: questionID, ParticipantID: participantID, Role: role, Value: assess.ChoiceValue(c)}
}

// detect runs a single detector against the fixture registry.
func detect(t *testing.T, d assess.Detector, answers []assess.Answer) []assess.Flag {
	t.Helper()
	return d.Detect(assess.DetectionInput{
		Registry:   testRegistry(t),
		Answers:    assess.NewAnswerSet(answers),
		Thresholds: assess.DefaultThresholds(),
	})
}
