package errors

import (
	"slices"
	"strings"
)

// type tags recognized by the default rules
const (
	TagNotFound                    = "NotFoundError"
	TagEntityNotFound              = "EntityNotFoundError"
	TagSubtaskAlreadySubmitted     = "SubtaskAlreadySubmittedError"
	TagAlreadySubmittedSubtask     = "AlreadySubmittedSubtaskError"
	TagEntityAlreadyExist          = "EntityAlreadyExistError"
	TagMaximumGrabbedTasksExceeded = "MaximumNumberOfGrabbedTasksExceededError"
	TagJSONWebToken                = "JsonWebTokenError"
	TagLanguageRule                = "LanguageRuleError"
	TagPermissionDenied            = "PermissionDeniedError"
	TagQueryFailed                 = "QueryFailedError"
)

// substring of a storage error message that marks a uniqueness violation
const UniqueViolationMarker = "duplicate key value violates unique constraint"

// tags containing this are trusted to already be HTTP-facing
const exceptionMarker = "Exception"

// Rule maps a raised error to an outcome. Match reports false when the rule
// does not apply, letting the next rule run.
type Rule struct {
	Name  string
	Match func(r Raised) (Outcome, bool)
}

// builds a rule matching any of the given type tags exactly
func TagRule(name string, outcome Outcome, tags ...string) Rule {
	set := slices.Clone(tags)

	return Rule{
		Name: name,
		Match: func(r Raised) (Outcome, bool) {
			if slices.Contains(set, r.TypeTag) {
				return outcome, true
			}

			return 0, false
		},
	}
}

// storage-layer failures: unique violations are the caller's fault, anything
// else is ours
func QueryFailedRule() Rule {
	return Rule{
		Name: "query_failed",
		Match: func(r Raised) (Outcome, bool) {
			if r.TypeTag != TagQueryFailed {
				return 0, false
			}

			if strings.Contains(r.Message, UniqueViolationMarker) {
				return OutcomeConflict, true
			}

			return OutcomeInternalError, true
		},
	}
}

// returns the built-in rule list in priority order
func DefaultRules() []Rule {
	return defaultRules(nil)
}

func defaultRules(extra map[Outcome][]string) []Rule {
	return []Rule{
		TagRule("not_found", OutcomeNotFound,
			append([]string{TagNotFound, TagEntityNotFound}, extra[OutcomeNotFound]...)...),
		TagRule("bad_request", OutcomeBadRequest,
			append([]string{
				TagSubtaskAlreadySubmitted,
				TagAlreadySubmittedSubtask,
				TagEntityAlreadyExist,
				TagMaximumGrabbedTasksExceeded,
				TagJSONWebToken,
				TagLanguageRule,
			}, extra[OutcomeBadRequest]...)...),
		TagRule("forbidden", OutcomeForbidden,
			append([]string{TagPermissionDenied}, extra[OutcomeForbidden]...)...),
		TagRule("conflict", OutcomeConflict, extra[OutcomeConflict]...),
		QueryFailedRule(),
	}
}

// used when no rule matches
func fallback(r Raised) Outcome {
	if strings.Contains(r.TypeTag, exceptionMarker) {
		return OutcomePassthrough
	}

	return OutcomeInternalError
}

// Classifier walks an ordered rule list; the first match wins. The list is
// fixed at construction, so a Classifier is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

type ClassifierOption func(*classifierConfig)

type classifierConfig struct {
	extraTags map[Outcome][]string
	rules     []Rule
}

// adds type tags to the built-in rule for outcome. Passthrough and
// InternalError are not tag-addressable and are ignored.
func WithTags(outcome Outcome, tags ...string) ClassifierOption {
	return func(cfg *classifierConfig) {
		switch outcome {
		case OutcomeNotFound, OutcomeBadRequest, OutcomeForbidden, OutcomeConflict:
			cfg.extraTags[outcome] = append(cfg.extraTags[outcome], tags...)
		}
	}
}

// replaces the whole rule list; the fallback still applies afterwards
func WithRules(rules ...Rule) ClassifierOption {
	return func(cfg *classifierConfig) {
		cfg.rules = slices.Clone(rules)
	}
}

// creates a classifier with the default rules unless overridden
func NewClassifier(opts ...ClassifierOption) *Classifier {
	cfg := &classifierConfig{extraTags: map[Outcome][]string{}}
	for _, opt := range opts {
		opt(cfg)
	}

	rules := cfg.rules
	if rules == nil {
		rules = defaultRules(cfg.extraTags)
	}

	return &Classifier{rules: rules}
}

// returns the outcome for r; never fails
func (c *Classifier) Classify(r Raised) Outcome {
	for _, rule := range c.rules {
		if outcome, ok := rule.Match(r); ok {
			return outcome
		}
	}

	return fallback(r)
}

// returns the name of the rule that matched r, or "default"
func (c *Classifier) MatchedRule(r Raised) string {
	for _, rule := range c.rules {
		if _, ok := rule.Match(r); ok {
			return rule.Name
		}
	}

	return "default"
}
