package support

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEachRuleKeyword(t *testing.T) {
	for i, rule := range Rules {
		for _, word := range rule.Keywords {
			// nothing from a higher-priority rule may appear in the probe
			probe := "so " + word + " today"
			for _, higher := range Rules[:i] {
				for _, hw := range higher.Keywords {
					require.NotContains(t, probe, hw, "probe for %q collides with %s", word, higher.Category)
				}
			}
			assert.Equal(t, rule.Category, Classify(probe), "keyword %q", word)
		}
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Anxiety, Classify("I'm feeling ANXIOUS"))
	assert.Equal(t, Lonely, Classify("So LoNeLy"))
	assert.Equal(t, Greeting, Classify("HELLO there"))
}

func TestClassifyPriorityBreaksTies(t *testing.T) {
	assert.Equal(t, Anxiety, Classify("anxious and can't sleep"))
	assert.Equal(t, Sleep, Classify("too tired to work"))
	// "stressed" belongs to overwhelmed, which outranks work_stress
	assert.Equal(t, Overwhelmed, Classify("I'm stressed about work"))
}

func TestClassifyMatchesInsideWords(t *testing.T) {
	assert.Equal(t, Greeting, Classify("this"))
	assert.Equal(t, Sleep, Classify("I am interested"))
}

func TestClassifyDefault(t *testing.T) {
	assert.Equal(t, Default, Classify("The weather is nice today"))
	assert.Equal(t, Default, Classify(""))
	assert.Equal(t, Default, Classify("   "))
}

func TestClassifyWithCustomRules(t *testing.T) {
	rules := []Rule{
		{Category: Sleep, Keywords: []string{"", "Nap"}},
		{Category: Anxiety, Keywords: []string{"nap"}},
	}
	assert.Equal(t, Sleep, ClassifyWith(rules, "need a nap"))
	assert.Equal(t, Default, ClassifyWith(nil, "need a nap"))
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{
		Anxiety, Sleep, Overwhelmed, Lonely, Motivation, WorkStress, Greeting, Default,
	}, Categories())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Work_Stress ")
	require.True(t, ok)
	assert.Equal(t, WorkStress, c)

	_, ok = ParseCategory("grief")
	assert.False(t, ok)
}

func TestDescribeFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Anxiety", Describe(Anxiety))
	assert.Equal(t, Describe(Default), Describe(Category("unknown")))
}
