package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"rentaj/config"
	"rentaj/models"
)

// ScoredCar pairs a car with its relevance score for a search query.
type ScoredCar struct {
	Car   models.Car
	Score int
}

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0
	}

	similarity := 1.0 - float64(distance)/maxLen
	return similarity
}

func extractYearFromQuery(query string) int {
	re := regexp.MustCompile(`\b(19|20)\d{2}\b`)
	match := re.FindString(query)
	if match == "" {
		return -1
	}

	yearInt, err := strconv.Atoi(match)
	if err != nil {
		return -1
	}
	return yearInt
}

// parseCarType maps free text onto a car type keyword plus an optional model year.
func parseCarType(query string) (string, int) {
	suvKeywords := []string{"suv", "crossover", "offroad", "4x4"}
	sedanKeywords := []string{"sedan", "limousine", "saloon"}
	combiKeywords := []string{"combi", "kombi", "estate", "wagon", "karavan"}
	hatchbackKeywords := []string{"hatchback", "compact", "city car"}
	vanKeywords := []string{"van", "minivan", "kombi bus", "transporter"}

	normalizedQuery := normalizeInput(query)
	year := extractYearFromQuery(normalizedQuery)

	suvMatcher := createMatcher(suvKeywords)
	sedanMatcher := createMatcher(sedanKeywords)
	combiMatcher := createMatcher(combiKeywords)
	hatchbackMatcher := createMatcher(hatchbackKeywords)
	vanMatcher := createMatcher(vanKeywords)

	suvMatch := suvMatcher.Closest(normalizedQuery)
	sedanMatch := sedanMatcher.Closest(normalizedQuery)
	combiMatch := combiMatcher.Closest(normalizedQuery)
	hatchbackMatch := hatchbackMatcher.Closest(normalizedQuery)
	vanMatch := vanMatcher.Closest(normalizedQuery)

	if suvMatch != "" && strings.Contains(normalizedQuery, suvMatch) {
		return "suv", year
	}
	if sedanMatch != "" && strings.Contains(normalizedQuery, sedanMatch) {
		return "sedan", year
	}
	if combiMatch != "" && strings.Contains(normalizedQuery, combiMatch) {
		return "combi", year
	}
	if hatchbackMatch != "" && strings.Contains(normalizedQuery, hatchbackMatch) {
		return "hatchback", year
	}
	if vanMatch != "" && strings.Contains(normalizedQuery, vanMatch) {
		return "van", year
	}

	return "", year
}

// prepareUniqueCarList builds the unique value list for a field so closestmatch
// can work against what is actually in the database.
func prepareUniqueCarList(cars []models.Car, field string) []string {
	uniqueValues := make(map[string]bool)

	for _, car := range cars {
		var value string
		switch field {
		case "make":
			value = car.Make
		case "location":
			value = car.PickupLocation
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func calculateCarScore(query string, car models.Car, cmMake, cmLocation *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	carType, year := parseCarType(normalizedQuery)
	score := 0

	if carType != "" && carType == normalizeInput(car.CarType) {
		score += 20
	}
	if year != -1 && car.Year == year {
		score += 15
	}
	if cmMake.Closest(normalizedQuery) == normalizeInput(car.Make) {
		score += 13
	}
	if cmLocation.Closest(normalizedQuery) == normalizeInput(car.PickupLocation) {
		score += 5
	}
	score += calculateModelScore(normalizedQuery, car)

	return score
}

func calculateModelScore(query string, car models.Car) int {
	score := 0

	normalizedModel := normalizeInput(car.Model)
	if normalizedModel != "" {
		similarity := calculateSimilarity(query, normalizedModel)
		if similarity > 0.7 || strings.Contains(query, normalizedModel) {
			score += 12
		}
	}

	normalizedTitle := normalizeInput(car.Title)
	if normalizedTitle != "" && strings.Contains(normalizedTitle, query) {
		score += 4
	}

	return score
}

func filterAndScoreCars(query string, cars []models.Car, cmMake, cmLocation *closestmatch.ClosestMatch) []ScoredCar {
	var filteredCars []ScoredCar
	scoreCh := make(chan ScoredCar, len(cars))
	var wg sync.WaitGroup

	for _, car := range cars {
		wg.Add(1)
		go func(car models.Car) {
			defer wg.Done()
			score := calculateCarScore(query, car, cmMake, cmLocation)
			if score > 0 {
				scoreCh <- ScoredCar{
					Car:   car,
					Score: score,
				}
			}
		}(car)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for scoredCar := range scoreCh {
		filteredCars = append(filteredCars, scoredCar)
	}

	sort.SliceStable(filteredCars, func(i, j int) bool {
		return filteredCars[i].Score > filteredCars[j].Score
	})
	return filteredCars
}

func loadCarsFromDB(allCars *[]models.Car) error {
	return config.DB.Model(&models.Car{}).
		Preload("Images").
		Preload("Dealer").
		Find(allCars).Error
}

// SearchCars scores the whole inventory against a free-text query and returns
// the matches ordered by relevance.
func SearchCars(query string) ([]ScoredCar, error) {
	var allCars []models.Car
	if err := loadCarsFromDB(&allCars); err != nil {
		return nil, err
	}

	cmMake := createMatcher(prepareUniqueCarList(allCars, "make"))
	cmLocation := createMatcher(prepareUniqueCarList(allCars, "location"))

	return filterAndScoreCars(query, allCars, cmMake, cmLocation), nil
}
