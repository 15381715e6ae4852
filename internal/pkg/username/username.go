package username

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

// Config holds the synthesis tables. It is assembled once at startup and
// treated as immutable afterwards; the synthesizer only ever reads it.
type Config struct {
	// FieldPrefixes maps a normalized interest key to its candidate prefixes.
	FieldPrefixes map[string][]string
	// DefaultPrefix is used when no interest matches a known field.
	DefaultPrefix string
	Words         []string
	Years         []string
	Codes         []string
}

// DefaultConfig returns the research-field tables shipped with the platform.
func DefaultConfig() Config {
	return Config{
		FieldPrefixes: map[string][]string{
			"computer-science": {"TechInnovator", "AIResearcher", "CodeExplorer", "DataScientist"},
			"biology":          {"BioResearcher", "LifeScientist", "BioInnovator", "GeneExplorer"},
			"physics":          {"PhysicsExplorer", "QuantumResearcher", "PhysicsPhD", "ParticleExplorer"},
			"chemistry":        {"ChemInnovator", "MolecularExplorer", "ChemResearcher", "ReactionExpert"},
			"engineering":      {"EngInnovator", "TechEngineer", "SystemDesigner", "InnovationLead"},
			"medicine":         {"MedResearcher", "HealthInnovator", "ClinicalExplorer", "BioMedExpert"},
		},
		DefaultPrefix: "Researcher",
		Words:         []string{"Alpha", "Beta", "Nova", "Prime", "Pro", "Elite", "Max", "Plus"},
		Years:         []string{"2024", "2025"},
		Codes:         []string{"001", "247", "360", "365", "101", "202"},
	}
}

// Source is the randomness a Synthesizer consumes. *math/rand/v2.Rand
// satisfies it; tests inject a seeded instance for deterministic output.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Synthesizer derives human-readable handles from declared interests.
// Output is intentionally non-deterministic: uniqueness against existing
// handles is the caller's job (retry on collision against the store).
type Synthesizer struct {
	cfg Config
	rng Source
}

// New returns a Synthesizer over cfg. A nil rng falls back to the shared
// global source.
func New(cfg Config, rng Source) *Synthesizer {
	if rng == nil {
		rng = globalSource{}
	}
	return &Synthesizer{cfg: cfg, rng: rng}
}

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Synthesize builds a "{prefix}_{suffix}" handle. The prefix comes from the
// first interest that matches a known field (one of its candidates, chosen
// uniformly); the suffix is a weighted pick across the word, year and code
// lists. The result is never empty and contains exactly one underscore.
func (s *Synthesizer) Synthesize(interests []string, displayName string) string {
	// Retained as a future personalization input; the current scheme does
	// not fold the cleaned display name into the output.
	_ = nonAlnumRe.ReplaceAllString(displayName, "")

	prefix := s.cfg.DefaultPrefix
	for _, interest := range interests {
		key := whitespaceRe.ReplaceAllString(strings.ToLower(interest), "-")
		if candidates, ok := s.cfg.FieldPrefixes[key]; ok && len(candidates) > 0 {
			prefix = candidates[s.rng.IntN(len(candidates))]
			break
		}
	}

	// Nested coin flips: 40% themed word, then an even split between years
	// and numeric codes.
	var suffix string
	switch {
	case s.rng.Float64() > 0.6:
		suffix = s.cfg.Words[s.rng.IntN(len(s.cfg.Words))]
	case s.rng.Float64() > 0.5:
		suffix = s.cfg.Years[s.rng.IntN(len(s.cfg.Years))]
	default:
		suffix = s.cfg.Codes[s.rng.IntN(len(s.cfg.Codes))]
	}

	return fmt.Sprintf("%s_%s", prefix, suffix)
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }
