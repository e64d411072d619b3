package cleaner

import (
	"strings"
)

// Stage is one pure text rewrite of the pipeline
type Stage struct {
	Name string
	Fn   func(string) string
}

// StageResult records what one stage produced, for tracing
type StageResult struct {
	Stage  string `json:"stage"`
	Output string `json:"output"`
	Failed bool   `json:"failed,omitempty"`
}

// apply runs one stage in isolation. A panicking stage is logged and counted,
// and the text it received passes through unchanged
func (c *Cleaner) apply(st Stage, in string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.failures.Add(1)
			c.log.Error().
				Str("stage", st.Name).
				Interface("panic", r).
				Int("input_len", len(in)).
				Msg("stage failed, passing text through")
			out, ok = in, false
		}
	}()
	return st.Fn(in), true
}

// run threads s through stages and stops as soon as the text is empty.
// observe, when set, sees every stage output
func (c *Cleaner) run(stages []Stage, s string, observe func(StageResult)) (string, []string) {
	var failed []string
	for _, st := range stages {
		out, ok := c.apply(st, s)
		if !ok {
			failed = append(failed, st.Name)
		}
		if observe != nil {
			observe(StageResult{Stage: st.Name, Output: out, Failed: !ok})
		}
		if strings.TrimSpace(out) == "" {
			return "", failed
		}
		s = out
	}
	return s, failed
}
