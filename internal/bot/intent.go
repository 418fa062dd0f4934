package bot

import "strings"

// Intent is the question category a message was routed to.
type Intent int

const (
	IntentSummary Intent = iota
	IntentShowRows
	IntentRevenue
	IntentBayTime
	IntentCPD
	IntentGrowth
	IntentLeaderboard
)

func (i Intent) String() string {
	switch i {
	case IntentShowRows:
		return "show_rows"
	case IntentRevenue:
		return "revenue"
	case IntentBayTime:
		return "baytime"
	case IntentCPD:
		return "cpd"
	case IntentGrowth:
		return "growth"
	case IntentLeaderboard:
		return "leaderboard"
	default:
		return "summary"
	}
}

type phraseSet struct {
	intent  Intent
	phrases []string
}

// routes are checked in order; the first set with a matching phrase wins.
var routes = []phraseSet{
	{IntentShowRows, []string{
		"show me the first 5 rows",
		"show first 5 rows",
		"display first 5 rows",
		"show top 5 rows",
		"show first five rows",
		"show me top 5 rows",
		"show five rows",
	}},
	{IntentRevenue, []string{
		"highest average daily sales",
		"top sales",
		"most sales per day",
		"shop with highest sales",
		"best performing shop",
		"shop with best sales",
		"top revenue",
		"highest revenue",
	}},
	{IntentBayTime, []string{
		"lowest bay time",
		"least bay time",
		"bay time minimum",
		"minimum bay time",
		"shop with lowest bay time",
		"fastest bay time",
		"quickest bay time",
		"best bay time",
		"top bay time",
	}},
	{IntentCPD, []string{
		"highest cpd",
		"count per day",
		"cars per day",
		"car count",
		"top cpd",
	}},
	{IntentGrowth, []string{
		"highest growth",
		"yearly sales growth",
		"sales growth",
		"growth rate",
		"best growth",
		"top growth",
		"most growth",
	}},
	{IntentLeaderboard, []string{
		"leaderboard",
		"top shops",
		"top performers",
		"best shops",
		"shop rankings",
		"shop leaderboard",
		"show rankings",
		"top 5 shops",
		"top ranked shops",
	}},
}

// Normalize lower-cases and trims a message, then strips surrounding quotes.
func Normalize(msg string) string {
	s := strings.TrimSpace(strings.ToLower(msg))
	s = strings.Trim(s, `"`)
	return strings.Trim(s, `'`)
}

// Classify routes a message by substring match against the phrase sets.
func Classify(msg string) Intent {
	s := Normalize(msg)
	for _, r := range routes {
		for _, p := range r.phrases {
			if strings.Contains(s, p) {
				return r.intent
			}
		}
	}
	return IntentSummary
}
