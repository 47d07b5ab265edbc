package resolve

// A rule rewrites a run of adjacent parts that matches its pattern. Rules are
// applied until none match, which lets later rules build on earlier rewrites
// (e.g. "3" "pm" becomes a clockTime before being attached to a date).
type rule struct {
	pattern []func(p part) bool
	merge   func(ps []part) ([]part, error)
}

func match(pattern ...func(p part) bool) []func(p part) bool {
	return pattern
}

func newRule(pattern []func(p part) bool, merge func(ps []part) ([]part, error)) *rule {
	return &rule{pattern, merge}
}

func (r *rule) matches(ps []part) bool {
	if len(ps) < len(r.pattern) {
		return false
	}
	for i, f := range r.pattern {
		if !f(ps[i]) {
			return false
		}
	}
	return true
}

// apply rewrites ps at idx if the rule matches there. The returned slice is
// always freshly allocated.
func (r *rule) apply(ps []part, idx int) ([]part, bool, error) {
	if !r.matches(ps[idx:]) {
		return ps, false, nil
	}
	n := len(r.pattern)
	merged, err := r.merge(ps[idx : idx+n])
	if err != nil {
		return nil, false, err
	}
	out := make([]part, 0, len(ps)-n+len(merged))
	out = append(out, ps[:idx]...)
	out = append(out, merged...)
	out = append(out, ps[idx+n:]...)
	return out, true, nil
}

// applyRules runs rules in priority order, restarting from the first rule
// after every rewrite.
func applyRules(ps []part, rules ...*rule) ([]part, error) {
restart:
	for {
		for _, r := range rules {
			for i := range ps {
				var matched bool
				var err error
				ps, matched, err = r.apply(ps, i)
				if err != nil {
					return nil, err
				}
				if matched {
					continue restart
				}
			}
		}
		return ps, nil
	}
}
