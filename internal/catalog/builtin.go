package catalog

import "trivia-service/internal/domain"

// Builtin returns the question set bundled with the service. It seeds the
// database and backs the in-memory loader when no database is configured.
func Builtin() []domain.Question {
	return []domain.Question{
		{
			ID:           "fr-001",
			Category:     domain.CategoryFacts,
			Prompt:       "How many seasons of Friends are there?",
			Options:      []string{"Eight", "Nine", "Ten", "Eleven"},
			CorrectIndex: 2,
			Season:       1,
			Difficulty:   domain.DifficultyEasy,
			Explanation:  "Friends ran for exactly 10 seasons from 1994 to 2004.",
		},
		{
			ID:           "fr-002",
			Category:     domain.CategoryFacts,
			Prompt:       "What year did Friends first premiere?",
			Options:      []string{"1992", "1993", "1994", "1995"},
			CorrectIndex: 2,
			Season:       1,
			Difficulty:   domain.DifficultyEasy,
			Explanation:  "Friends premiered in 1994 on NBC.",
		},
		{
			ID:           "fr-003",
			Category:     domain.CategoryCharacters,
			Prompt:       "What is the name of Ross' pet monkey?",
			Options:      []string{"Marcel", "George", "Jack", "Bob"},
			CorrectIndex: 0,
			Season:       1,
			Difficulty:   domain.DifficultyEasy,
			Explanation:  "Ross had a white-headed capuchin monkey named Marcel in season 1.",
		},
		{
			ID:           "fr-004",
			Category:     domain.CategoryCharacters,
			Prompt:       "What is Chandler Bing's middle name?",
			Options:      []string{"Muriel", "Francis", "Charles", "Matthew"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-005",
			Category:     domain.CategoryCharacters,
			Prompt:       "What are the names of Rachel's sisters?",
			Options:      []string{"Jill and Amy", "Amy and Julie", "Jill and Jessica", "Julie and Amy"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-006",
			Category:     domain.CategoryCharacters,
			Prompt:       "What is the name of Phoebe's alter ego?",
			Options:      []string{"Regina Phalange", "Princess Consuela", "Ursula Buffay", "Phoebe Princess"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-007",
			Category:     domain.CategoryRelationships,
			Prompt:       "How many times did Ross get divorced?",
			Options:      []string{"Two", "Three", "Four", "One"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-008",
			Category:     domain.CategoryRelationships,
			Prompt:       "Ross' first wife Carol leaves him for who?",
			Options:      []string{"Richard", "Susan Bunch", "Emily", "Elizabeth"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-009",
			Category:     domain.CategoryRelationships,
			Prompt:       "Who was married to a supposedly gay Canadian ice dancer named Duncan?",
			Options:      []string{"Rachel", "Monica", "Phoebe", "Carol"},
			CorrectIndex: 2,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-010",
			Category:     domain.CategoryEpisodes,
			Prompt:       "What ingredient did Rachel mistakingly put in her Thanksgiving trifle?",
			Options:      []string{"Chicken", "Beef", "Pork", "Turkey"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-011",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Who said, 'See, he's her lobster!'?",
			Options:      []string{"Monica", "Phoebe", "Rachel", "Joey"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-012",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Ross says whose name at the altar in London?",
			Options:      []string{"Emily", "Rachel", "Carol", "Monica"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-013",
			Category:     domain.CategoryLocations,
			Prompt:       "What store does Phoebe hate?",
			Options:      []string{"Pottery Barn", "Pier 1", "IKEA", "Crate & Barrel"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-014",
			Category:     domain.CategoryLocations,
			Prompt:       "Where did Ross and Rachel have their first date?",
			Options:      []string{"Central Perk", "The planetarium", "Monica's apartment", "The museum"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-015",
			Category:     domain.CategoryLocations,
			Prompt:       "Chandler told Janice he was moving where to avoid seeing her again?",
			Options:      []string{"Canada", "Yemen", "Mexico", "England"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-016",
			Category:     domain.CategoryCareer,
			Prompt:       "Joey played Dr. Drake Ramoray on which soap opera show?",
			Options:      []string{"General Hospital", "Days of Our Lives", "The Young and the Restless", "All My Children"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-017",
			Category:     domain.CategoryCareer,
			Prompt:       "What was Joey's nickname when he was working at Alessandro's?",
			Options:      []string{"Dragon", "Tiger", "Lion", "Bear"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-018",
			Category:     domain.CategoryCareer,
			Prompt:       "Monica worked as a waitress at what diner?",
			Options:      []string{"Moonlight Diner", "Moondance Diner", "Starlight Diner", "Sunshine Diner"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-019",
			Category:     domain.CategoryFacts,
			Prompt:       "How many pages was Rachel's letter to Ross?",
			Options:      []string{"16 pages", "18 pages (front and back)", "20 pages", "12 pages"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-020",
			Category:     domain.CategoryFacts,
			Prompt:       "How many categories does Monica have for her towels?",
			Options:      []string{"9", "10", "11", "12"},
			CorrectIndex: 2,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-021",
			Category:     domain.CategoryFacts,
			Prompt:       "How many roses did Ross send Emily?",
			Options:      []string{"72", "84", "96", "108"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-022",
			Category:     domain.CategoryPersonal,
			Prompt:       "What is Rachel's favorite flower?",
			Options:      []string{"Roses", "Lilies", "Tulips", "Daisies"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-023",
			Category:     domain.CategoryPersonal,
			Prompt:       "What fruit is Ross allergic to?",
			Options:      []string{"Strawberries", "Kiwi", "Pineapple", "Mango"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-024",
			Category:     domain.CategoryPersonal,
			Prompt:       "What is Joey's pin number?",
			Options:      []string{"5639", "5369", "6539", "3659"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-025",
			Category:     domain.CategoryQuotes,
			Prompt:       "Which character famously said, 'PIVOT!'?",
			Options:      []string{"Ross", "Chandler", "Joey", "Monica"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-026",
			Category:     domain.CategoryQuotes,
			Prompt:       "Joey doesn't share what?",
			Options:      []string{"Secrets", "Food", "Clothes", "Girls"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-027",
			Category:     domain.CategoryQuotes,
			Prompt:       "What does Phoebe legally change her name to after her wedding?",
			Options:      []string{"Princess Banana Hammock", "Princess Consuela Bananahammock", "Princess Consuela Banana Hammock", "Princess Phoebe Banana"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "fr-028",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Who had a pony and a boat at age 15?",
			Options:      []string{"Monica", "Rachel", "Phoebe", "Amy"},
			CorrectIndex: 1,
			Season:       4,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Rachel reveals she had both a pony and a boat when she was 15, highlighting her privileged upbringing.",
		},
		{
			ID:           "fr-029",
			Category:     domain.CategoryEpisodes,
			Prompt:       "What was Monica's nickname when she was a field hockey goalie?",
			Options:      []string{"Big Fat Goalie", "The Wall", "Mighty Mon", "The Blocker"},
			CorrectIndex: 0,
			Season:       3,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "Monica was nicknamed 'Big Fat Goalie' during her field hockey days.",
		},
		{
			ID:           "fr-030",
			Category:     domain.CategoryFacts,
			Prompt:       "What is actually Rachel's favorite movie?",
			Options:      []string{"Dangerous Liaisons", "Weekend at Bernie's", "Breakfast at Tiffany's", "Casablanca"},
			CorrectIndex: 1,
			Season:       7,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Despite trying to seem sophisticated, Rachel's actual favorite movie is Weekend at Bernie's.",
		},
		{
			ID:           "fr-031",
			Category:     domain.CategoryRelationships,
			Prompt:       "Who dated a college student named Elizabeth Stevens?",
			Options:      []string{"Joey", "Chandler", "Ross", "Richard"},
			CorrectIndex: 2,
			Season:       6,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Ross dated his student Elizabeth Stevens, which caused complications at his job.",
		},
		{
			ID:           "fr-032",
			Category:     domain.CategoryPersonal,
			Prompt:       "What was the name of Ross and Monica's dog when they were kids?",
			Options:      []string{"Rover", "Chi-Chi", "Pogo", "Spot"},
			CorrectIndex: 1,
			Season:       3,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "Ross and Monica had a dog named Chi-Chi when they were growing up.",
		},
		{
			ID:           "fr-033",
			Category:     domain.CategoryEpisodes,
			Prompt:       "What balloon got away during the Macy's Thanksgiving Day Parade in Season 1?",
			Options:      []string{"Underdog", "Snoopy", "Spider-Man", "Mickey Mouse"},
			CorrectIndex: 0,
			Season:       1,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "The Underdog balloon got away during the parade, which was mentioned in the first Thanksgiving episode.",
		},
		{
			ID:           "fr-034",
			Category:     domain.CategoryCareer,
			Prompt:       "Ross worked as a professor at what school?",
			Options:      []string{"Columbia University", "New York University", "City College", "Hunter College"},
			CorrectIndex: 1,
			Season:       5,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Ross worked as a professor at New York University (NYU).",
		},
		{
			ID:           "fr-035",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Who gave birth to Chandler and Monica's twins?",
			Options:      []string{"Phoebe", "Erica", "Rachel", "Jill"},
			CorrectIndex: 1,
			Season:       10,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Erica was the birth mother of Monica and Chandler's twins, Jack and Erica.",
		},
		{
			ID:           "fr-036",
			Category:     domain.CategoryRelationships,
			Prompt:       "Who gave Phoebe away at her wedding?",
			Options:      []string{"Joey", "Chandler", "Ross", "Her father"},
			CorrectIndex: 1,
			Season:       10,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Chandler walked Phoebe down the aisle at her wedding to Mike.",
		},
		{
			ID:           "fr-037",
			Category:     domain.CategoryEpisodes,
			Prompt:       "What caused the fire at Rachel and Phoebe's apartment?",
			Options:      []string{"Candle", "Hair straightener", "Toaster", "Curling iron"},
			CorrectIndex: 1,
			Season:       5,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Rachel's hair straightener caused the fire in their apartment.",
		},
		{
			ID:           "fr-038",
			Category:     domain.CategoryRelationships,
			Prompt:       "Phoebe is a surrogate for who?",
			Options:      []string{"Monica and Chandler", "Her brother Frank Jr. and Alice", "Ross and Rachel", "Joey's sister"},
			CorrectIndex: 1,
			Season:       4,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Phoebe acted as a surrogate mother for her half-brother Frank Jr. and his wife Alice.",
		},
		{
			ID:           "fr-039",
			Category:     domain.CategoryFacts,
			Prompt:       "How many sisters does Joey have?",
			Options:      []string{"Five", "Six", "Seven", "Eight"},
			CorrectIndex: 2,
			Season:       3,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "Joey has seven sisters.",
		},
		{
			ID:           "fr-040",
			Category:     domain.CategoryQuotes,
			Prompt:       "Joey doesn't share what?",
			Options:      []string{"Secrets", "Food", "Girls", "Clothes"},
			CorrectIndex: 1,
			Season:       5,
			Difficulty:   domain.DifficultyEasy,
			Explanation:  "JOEY DOESN'T SHARE FOOD! is one of Joey's most memorable quotes.",
		},
		{
			ID:           "fr-041",
			Category:     domain.CategoryEpisodes,
			Prompt:       "What do Monica and Chandler name their twins?",
			Options:      []string{"Jack and Judy", "Frank and Alice", "Erica and Jack", "Ross and Rachel"},
			CorrectIndex: 2,
			Season:       10,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "They name their twins Erica (after their birth mother) and Jack (after Monica's father).",
		},
		{
			ID:           "fr-042",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Phoebe attempts to teach Joey what language?",
			Options:      []string{"Spanish", "Italian", "French", "German"},
			CorrectIndex: 2,
			Season:       7,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Phoebe tries to teach Joey French for an audition, with hilarious results.",
		},
		{
			ID:           "fr-043",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Chick Jr. and Duck Jr. got stuck in what?",
			Options:      []string{"Cabinet", "Foosball table", "Oven", "Bathroom"},
			CorrectIndex: 1,
			Season:       10,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "The birds got stuck inside Joey and Chandler's foosball table.",
		},
		{
			ID:           "fr-044",
			Category:     domain.CategoryFacts,
			Prompt:       "Rachel was in which sorority?",
			Options:      []string{"Alpha Chi Omega", "Delta Delta Delta", "Kappa Kappa Delta", "Pi Beta Phi"},
			CorrectIndex: 2,
			Season:       6,
			Difficulty:   domain.DifficultyHard,
			Explanation:  "Rachel was a member of Kappa Kappa Delta during her college years.",
		},
		{
			ID:           "fr-045",
			Category:     domain.CategoryEpisodes,
			Prompt:       "Which character famously said, 'PIVOT!'?",
			Options:      []string{"Ross", "Chandler", "Joey", "Monica"},
			CorrectIndex: 0,
			Season:       5,
			Difficulty:   domain.DifficultyEasy,
			Explanation:  "Ross repeatedly yells 'PIVOT!' while trying to move a couch up the stairs.",
		},
	}
}
