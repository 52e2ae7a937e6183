package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInput(t *testing.T) {
	assert.Equal(t, "skoda octavia", normalizeInput("  Škoda Octavia "))
	assert.Equal(t, "citroen c4", normalizeInput("Citroën C4"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("golf", "golf"))
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Greater(t, calculateSimilarity("octavia", "octavla"), 0.7)
	assert.Less(t, calculateSimilarity("golf", "passat"), 0.5)
}

func TestParseCarType(t *testing.T) {
	carType, year := parseCarType("suv 2021 automatic")
	assert.Equal(t, "suv", carType)
	assert.Equal(t, 2021, year)

	carType, year = parseCarType("family sedan")
	assert.Equal(t, "sedan", carType)
	assert.Equal(t, -1, year)

	carType, _ = parseCarType("red paint job")
	assert.Equal(t, "", carType)
}

func TestExtractYearFromQuery(t *testing.T) {
	assert.Equal(t, 2019, extractYearFromQuery("vw golf 2019"))
	assert.Equal(t, -1, extractYearFromQuery("vw golf"))
	assert.Equal(t, -1, extractYearFromQuery("route 66"))
}
