// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer holds the canned answer templates and matches a question to
// one of them by keyword.
package answer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// Template keys, in the order the matcher tests them.
const (
	KeyDefinition  = "definition"
	KeyBenefits    = "benefits"
	KeyCost        = "cost"
	KeyAccuracy    = "accuracy"
	KeyHIPAA       = "hipaa"
	KeyIntegration = "integration"
	KeySetup       = "setup"
)

// DefaultAnswer is returned when no rule matches a question.
const DefaultAnswer = "AI medical scribes use advanced natural language processing to convert clinical conversations into structured documentation, helping healthcare providers focus on patient care rather than paperwork."

// rule maps a set of lower-case substrings to a template key.
type rule struct {
	key     string
	needles []string
}

// rules is tested in order; the first rule with any needle in the question wins.
var rules = []rule{
	{KeyDefinition, []string{"what is", "definition"}},
	{KeyBenefits, []string{"benefit", "advantage", "why use"}},
	{KeyCost, []string{"cost", "price", "how much"}},
	{KeyAccuracy, []string{"accura", "reliable"}},
	{KeyHIPAA, []string{"hipaa", "secure", "privacy"}},
	{KeyIntegration, []string{"integrat", "ehr", "epic"}},
	{KeySetup, []string{"setup", "install", "how to start"}},
}

// builtin is the answer text shipped with the binary.
var builtin = []types.AnswerTemplate{
	{Key: KeyDefinition, Text: "A medical scribe is an AI-powered tool that automatically transcribes and structures doctor-patient conversations into clinical notes, saving healthcare providers significant documentation time."},
	{Key: KeyBenefits, Text: "Key benefits include: saving 2-3 hours daily on documentation, reducing physician burnout, improving patient interaction quality, ensuring comprehensive and consistent notes, and maintaining HIPAA compliance."},
	{Key: KeyCost, Text: "Medical scribe solutions typically range from $99-400 per month. Pricing depends on features like real-time transcription, EHR integration, and specialty-specific customization."},
	{Key: KeyAccuracy, Text: "Modern AI medical scribes achieve 95-98% accuracy with medical terminology. They use specialized healthcare language models and continuously improve through machine learning."},
	{Key: KeyHIPAA, Text: "Reputable medical scribe solutions are fully HIPAA compliant, using encryption, secure data handling, BAAs, and often include features like automatic PHI redaction."},
	{Key: KeyIntegration, Text: "Most AI scribes integrate with major EHRs including Epic, Cerner, AthenaHealth, and others through APIs or secure copy-paste workflows."},
	{Key: KeySetup, Text: "Setup typically takes 5-30 minutes. Cloud-based solutions require no installation, just account creation and EHR connection configuration."},
}

// Store is an immutable set of answer templates. The zero value is not
// usable; build one with Default, New, or Load.
type Store struct {
	texts    map[string]string
	fallback string
}

// templatesFile is the on-disk layout accepted by Load.
type templatesFile struct {
	Default   string                 `yaml:"default"`
	Templates []types.AnswerTemplate `yaml:"templates"`
}

// Default returns the built-in template store.
func Default() *Store {
	return New(builtin, DefaultAnswer)
}

// New builds a store from templates. Later entries with a repeated key
// replace earlier ones. An empty fallback selects DefaultAnswer.
func New(templates []types.AnswerTemplate, fallback string) *Store {
	if fallback == "" {
		fallback = DefaultAnswer
	}
	texts := make(map[string]string, len(templates))
	for _, t := range templates {
		texts[t.Key] = t.Text
	}
	return &Store{texts: texts, fallback: fallback}
}

// Load reads a YAML templates file. Keys present in the file replace the
// built-in text; keys absent from it keep the built-in text.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	var f templatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	for _, t := range f.Templates {
		if strings.TrimSpace(t.Key) == "" {
			return nil, fmt.Errorf("parsing templates: entry with empty key")
		}
	}
	merged := append(append([]types.AnswerTemplate{}, builtin...), f.Templates...)
	return New(merged, f.Default), nil
}

// Text returns the template text for key.
func (s *Store) Text(key string) (string, bool) {
	t, ok := s.texts[key]
	return t, ok
}

// Keys returns the template keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.texts))
	for k := range s.texts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fallback returns the text used when no rule matches.
func (s *Store) Fallback() string { return s.fallback }

// Match returns the answer text for question. It never fails: a question
// that matches no rule, or a rule whose key has no template, gets the
// fallback text.
func (s *Store) Match(question string) string {
	key, ok := MatchKey(question)
	if !ok {
		return s.fallback
	}
	if t, ok := s.texts[key]; ok {
		return t
	}
	return s.fallback
}

// MatchKey returns the template key of the first rule that matches
// question, or false when none does.
func MatchKey(question string) (string, bool) {
	lower := strings.ToLower(question)
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(lower, n) {
				return r.key, true
			}
		}
	}
	return "", false
}
