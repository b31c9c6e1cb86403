package workflow

// Validation rule names
const (
	RuleDraftFilesRequired         = "draft_files_required"
	RuleFinalDeliverablesRequired  = "final_deliverables_required"
	RuleFeedbackReceived           = "feedback_received"
	RuleModificationCountAvailable = "modification_count_available"
)

// ValidationContext holds the domain facts a transition's rules are checked
// against. The service layer builds it from the version and feedback ledgers
// and the quota tracker; it is never accepted from an API caller.
type ValidationContext struct {
	HasDraftFiles          bool
	HasFinalDeliverables   bool
	HasFeedback            bool
	RemainingModifications int
}

// EvaluateRules checks every declared rule and returns the names of all that
// failed, in declaration order. An empty result means the transition may
// proceed.
func EvaluateRules(rules []string, vctx ValidationContext) []string {
	var failed []string
	for _, rule := range rules {
		if !ruleSatisfied(rule, vctx) {
			failed = append(failed, rule)
		}
	}
	return failed
}

func ruleSatisfied(rule string, vctx ValidationContext) bool {
	switch rule {
	case RuleDraftFilesRequired:
		return vctx.HasDraftFiles
	case RuleFinalDeliverablesRequired:
		return vctx.HasFinalDeliverables
	case RuleFeedbackReceived:
		return vctx.HasFeedback
	case RuleModificationCountAvailable:
		return vctx.RemainingModifications > 0
	default:
		// Unknown rules fail closed so a typo in the table cannot silently
		// open a gate.
		return false
	}
}

// Authorize resolves and checks a transition without applying it: table
// lookup, role gate, then full rule evaluation. On success the matched
// transition is returned; the caller applies the status change.
func Authorize(from, to, actingRole string, vctx ValidationContext) (*Transition, error) {
	t := FindTransition(from, to)
	if t == nil {
		return nil, ErrInvalidTransition
	}
	if !t.RoleAllowed(actingRole) {
		return nil, ErrForbidden
	}
	if failed := EvaluateRules(t.ValidationRules, vctx); len(failed) > 0 {
		return nil, &ValidationError{FailedRules: failed}
	}
	return t, nil
}
