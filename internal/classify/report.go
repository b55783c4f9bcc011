package classify

// Skipped names an excluded entry and why it was excluded.
type Skipped struct {
	Name   string `yaml:"name"`
	Reason string `yaml:"reason"`
}

// Report is the outcome of ClassifyAll.
type Report struct {
	Accepted []string  `yaml:"accepted"`
	Skipped  []Skipped `yaml:"skipped"`
	Warnings []string  `yaml:"warnings,omitempty"`
}

// SkipReason returns the reason an entry was skipped, if it was.
func (r *Report) SkipReason(name string) (string, bool) {
	for _, s := range r.Skipped {
		if s.Name == name {
			return s.Reason, true
		}
	}
	return "", false
}
