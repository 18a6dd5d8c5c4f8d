package errors

// builds the response body for outcome under policy. ok is false for
// passthrough, in which case the original error goes to default handling.
func Build(outcome Outcome, r Raised, policy Policy) (env Envelope, ok bool) {
	if outcome == OutcomePassthrough {
		return Envelope{}, false
	}

	env = Envelope{
		StatusCode: outcome.StatusCode(),
		Error:      outcome.Label(),
	}

	if policy == PolicyVerbose {
		env.Message = r.Message
		env.Name = r.TypeTag
		env.Detailed = true
	}

	return env, true
}
