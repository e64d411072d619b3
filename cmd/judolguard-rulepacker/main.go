// Command judolguard-rulepacker assembles rules/<n>/*.json into the embedded rules.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// todo: share the raw types with rulepack once the schema settles
type coreFile struct {
	Version   int            `json:"version"`
	Meta      map[string]any `json:"meta"`
	Affixes   []string       `json:"affixes"`
	Stopwords []string       `json:"stopwords"`
	Important []string       `json:"important"`
}

type brand struct {
	Canonical       string   `json:"canonical"`
	PreserveNumbers bool     `json:"preserve_numbers"`
	Variants        []string `json:"variants,omitempty"`
	Patterns        []string `json:"patterns,omitempty"`
}

type fixup struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Replace string `json:"replace"`
}

type keyword struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Severity int    `json:"severity"`
}

type fragmentFile struct {
	Language     string            `json:"language"`
	Brands       []brand           `json:"brands,omitempty"`
	Domains      []string          `json:"domains,omitempty"`
	Vocabulary   []string          `json:"vocabulary,omitempty"`
	Leet         map[string]string `json:"leet,omitempty"`
	Combinations map[string]string `json:"combinations,omitempty"`
	Fixups       []fixup           `json:"fixups,omitempty"`
	Keywords     []keyword         `json:"keywords,omitempty"`
	Stopwords    []string          `json:"stopwords,omitempty"`
	Important    []string          `json:"important,omitempty"`
}

type outV1 struct {
	Version      int               `json:"version"`
	Meta         map[string]any    `json:"meta,omitempty"`
	Affixes      []string          `json:"affixes"`
	Stopwords    []string          `json:"stopwords"`
	Important    []string          `json:"important"`
	Brands       []brand           `json:"brands"`
	Domains      []string          `json:"domains"`
	Vocabulary   []string          `json:"vocabulary"`
	Leet         map[string]string `json:"leet"`
	Combinations map[string]string `json:"combinations"`
	Fixups       []fixup           `json:"fixups"`
	Keywords     []keyword         `json:"keywords"`
}

func readJSON[T any](path string, into *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func findFragmentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Base(path) == "core.json" && filepath.Dir(path) == root {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func hasCore(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "core.json"))
	return err == nil
}

func latestNumericSubdir(dir string) (string, bool) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var nums []int
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if hasCore(filepath.Join(dir, e.Name())) {
			nums = append(nums, n)
		}
	}
	if len(nums) == 0 {
		return "", false
	}
	sort.Ints(nums)
	return filepath.Join(dir, strconv.Itoa(nums[len(nums)-1])), true
}

// resolveRoot tries, in order: flag, env, common locations.
// A parent rules/ dir resolves to its latest numeric subdir holding core.json
func resolveRoot(flagRoot string) (string, []string, error) {
	var attempts []string
	try := func(p string) (string, bool) {
		if p == "" {
			return "", false
		}
		attempts = append(attempts, p)
		if hasCore(p) {
			return p, true
		}
		if sub, ok := latestNumericSubdir(p); ok {
			attempts = append(attempts, sub)
			return sub, true
		}
		return "", false
	}

	if root, ok := try(flagRoot); ok {
		return root, attempts, nil
	}
	if env := strings.TrimSpace(os.Getenv("JUDOLGUARD_RULES_ROOT")); env != "" {
		if root, ok := try(env); ok {
			return root, attempts, nil
		}
	}
	for _, c := range []string{"./rules", "/app/rules"} {
		if root, ok := try(c); ok {
			return root, attempts, nil
		}
	}
	return "", attempts, errors.New("core.json not found in any known location")
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// dedupeSorted lowercases, trims, de-dupes and sorts
func dedupeSorted(xs []string) []string {
	seen := make(map[string]struct{}, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = norm(x)
		if x == "" {
			continue
		}
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}

func assemble(root string) (outV1, error) {
	var core coreFile
	if err := readJSON(filepath.Join(root, "core.json"), &core); err != nil {
		return outV1{}, fmt.Errorf("read core.json: %w", err)
	}
	if core.Version != 1 {
		_, _ = fmt.Fprintf(os.Stderr, "warning: core.json version=%d (expected 1)\n", core.Version)
	}

	fragPaths, err := findFragmentFiles(root)
	if err != nil {
		return outV1{}, err
	}
	if len(fragPaths) == 0 {
		return outV1{}, errors.New("no fragment files found under " + root)
	}

	stop := append([]string(nil), core.Stopwords...)
	important := append([]string(nil), core.Important...)
	var domains, vocab []string
	leet := map[string]string{}
	combos := map[string]string{}
	brands := map[string]*brand{}
	var fixups []fixup
	var keywords []keyword

	for _, p := range fragPaths {
		var fr fragmentFile
		if err := readJSON(p, &fr); err != nil {
			return outV1{}, err
		}
		if fr.Language == "" {
			return outV1{}, fmt.Errorf("fragment missing language: %s", p)
		}
		stop = append(stop, fr.Stopwords...)
		important = append(important, fr.Important...)
		domains = append(domains, fr.Domains...)
		vocab = append(vocab, fr.Vocabulary...)
		maps.Copy(leet, fr.Leet)
		maps.Copy(combos, fr.Combinations)
		fixups = append(fixups, fr.Fixups...)
		keywords = append(keywords, fr.Keywords...)

		// merge brands by canonical spelling
		for _, b := range fr.Brands {
			c := norm(b.Canonical)
			if c == "" {
				continue
			}
			prev, ok := brands[c]
			if !ok {
				b.Canonical = c
				cp := b
				brands[c] = &cp
				continue
			}
			prev.PreserveNumbers = prev.PreserveNumbers || b.PreserveNumbers
			prev.Variants = append(prev.Variants, b.Variants...)
			prev.Patterns = append(prev.Patterns, b.Patterns...)
		}
	}

	bout := make([]brand, 0, len(brands))
	for _, b := range brands {
		if len(b.Variants) > 0 {
			b.Variants = dedupeSorted(b.Variants)
		}
		bout = append(bout, *b)
	}
	sort.Slice(bout, func(i, j int) bool { return bout[i].Canonical < bout[j].Canonical })

	// fixups de-duped by id, first wins
	seenFix := map[string]bool{}
	fout := make([]fixup, 0, len(fixups))
	for _, f := range fixups {
		id := strings.TrimSpace(f.ID)
		if id == "" || seenFix[id] {
			_, _ = fmt.Fprintf(os.Stderr, "warning: fixup %q skipped (empty or duplicate id)\n", id)
			continue
		}
		seenFix[id] = true
		fout = append(fout, f)
	}
	sort.Slice(fout, func(i, j int) bool { return fout[i].ID < fout[j].ID })

	seenKw := map[string]bool{}
	kout := make([]keyword, 0, len(keywords))
	for _, k := range keywords {
		t := norm(k.Term)
		if t == "" || seenKw[t] {
			continue
		}
		seenKw[t] = true
		k.Term = t
		kout = append(kout, k)
	}
	sort.Slice(kout, func(i, j int) bool { return kout[i].Term < kout[j].Term })

	return outV1{
		Version:      1,
		Meta:         core.Meta,
		Affixes:      dedupeSorted(core.Affixes),
		Stopwords:    dedupeSorted(stop),
		Important:    dedupeSorted(important),
		Brands:       bout,
		Domains:      dedupeSorted(domains),
		Vocabulary:   dedupeSorted(vocab),
		Leet:         leet,
		Combinations: combos,
		Fixups:       fout,
		Keywords:     kout,
	}, nil
}

func main() {
	var (
		flagRoot = flag.String("root", "", "path to rules version directory (e.g., ./rules/1 or ./rules). If empty, auto-discover") //nolint:lll
		out      = flag.String("out", "./internal/core/rulepack/rules.json", "output path or '-' for stdout")
		pretty   = flag.Bool("pretty", true, "pretty-print JSON")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	root, attempts, err := resolveRoot(strings.TrimSpace(*flagRoot))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to locate rules root (looked in):\n")
		for _, a := range attempts {
			_, _ = fmt.Fprintf(os.Stderr, "  - %s\n", a)
		}
		_, _ = fmt.Fprintf(os.Stderr, "hint: run from the repo root or set JUDOLGUARD_RULES_ROOT\n")
		must(err)
	}
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "using rules root: %s\n", root)
	}

	obj, err := assemble(root)
	must(err)

	var enc []byte
	if *pretty {
		enc, err = json.MarshalIndent(obj, "", "  ")
	} else {
		enc, err = json.Marshal(obj)
	}
	must(err)

	if *out == "-" {
		_, err := os.Stdout.Write(append(enc, '\n'))
		must(err)
		return
	}

	must(os.MkdirAll(filepath.Dir(*out), 0o755))
	must(os.WriteFile(*out, append(enc, '\n'), 0o644))
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", *out, len(enc))
	}
}
