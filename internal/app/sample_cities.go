package app

import "globetrotter-service/internal/domain"

// baseCities is the packaged fallback set served when no city source is
// configured or the configured one fails.
var baseCities = []domain.City{
	{
		ID:      "sample-1",
		Name:    "Paris",
		Country: "France",
		Clues: []string{
			"This city is known as the 'City of Light'",
			"It has a famous iron tower that was built for a World's Fair",
			"It's divided by a river with many beautiful bridges",
		},
		FunFacts: domain.StringList{
			"This city has over 470 parks and gardens",
			"There is only one stop sign in the entire city",
			"The Eiffel Tower was originally meant to be a temporary structure",
		},
		SecondChanceClue: "This city is the capital of a country known for wine, cheese, and baguettes",
	},
	{
		ID:      "sample-2",
		Name:    "Tokyo",
		Country: "Japan",
		Clues: []string{
			"This city has the world's busiest pedestrian crossing",
			"It's the most populous metropolitan area in the world",
			"It hosts the largest fish market in the world",
		},
		FunFacts: domain.StringList{
			"This city has over 300 earthquake-resistant skyscrapers",
			"You can find over 12,000 vending machines throughout the city",
			"The subway system handles over 8 million passengers daily",
		},
		SecondChanceClue: "This city's name translates to 'Eastern Capital'",
	},
	{
		ID:      "sample-3",
		Name:    "New York City",
		Country: "USA",
		Clues: []string{
			"This city has a famous statue that was a gift from France",
			"It's known as the 'Big Apple'",
			"It has a famous park in the middle of the city",
		},
		FunFacts: domain.StringList{
			"More than 800 languages are spoken in this city",
			"The subway system has over 472 stations",
			"The first pizzeria in the United States opened here in 1905",
		},
		SecondChanceClue: "This city has five distinct boroughs",
	},
	{
		ID:      "sample-4",
		Name:    "London",
		Country: "UK",
		Clues: []string{
			"This city has a famous clock tower often mistakenly called by the name of its bell",
			"It has a royal residence that's still in use today",
			"It hosted the Olympic Games three times",
		},
		FunFacts: domain.StringList{
			"This city has six major airports",
			"The Underground system is the oldest in the world",
			"Over 300 languages are spoken here",
		},
		SecondChanceClue: "This city sits on the river Thames",
	},
}

// SampleCities returns count cities from the packaged set, cycling entries
// when count exceeds the base set.
func SampleCities(count int) []domain.City {
	if count <= 0 {
		count = DefaultCityCount
	}
	out := make([]domain.City, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, baseCities[i%len(baseCities)])
	}
	return out
}
