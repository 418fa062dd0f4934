// Package bot answers operations questions by routing fixed phrases to the
// KPI aggregations.
package bot

import (
	"fmt"
	"log/slog"

	"github.com/Earthpatel/Business-Operations-Bot/internal/analysis"
	"github.com/Earthpatel/Business-Operations-Bot/internal/history"
	"github.com/Earthpatel/Business-Operations-Bot/internal/outwriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FailedToLoad is the answer given when the data file cannot be loaded or cleaned.
const FailedToLoad = "❌ Failed to load data."

// Source loads a fresh raw table for each question.
type Source func() (*analysis.Table, error)

// FileSource returns a Source that reads path with opt on every call.
func FileSource(path string, opt analysis.LoadOptions) Source {
	return func() (*analysis.Table, error) {
		return analysis.LoadTable(path, opt)
	}
}

// Bot answers questions and records each turn in a transcript store.
type Bot struct {
	Source          Source
	History         history.Store
	Logger          *slog.Logger
	HeadRows        int
	LeaderboardRows int
}

// New returns a bot with five head rows and five leaderboard rows.
func New(src Source, store history.Store, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{Source: src, History: store, Logger: logger, HeadRows: 5, LeaderboardRows: 5}
}

// Respond answers msg and appends the user message and the answer to the transcript.
// The answer is returned even when saving the transcript fails.
func (b *Bot) Respond(msg string) (string, error) {
	answer := b.Answer(msg)
	if b.History == nil {
		return answer, nil
	}
	if err := b.History.Append(
		history.NewMessage(history.RoleUser, msg),
		history.NewMessage(history.RoleAssistant, answer),
	); err != nil {
		return answer, fmt.Errorf("save history: %w", err)
	}
	return answer, nil
}

// Answer computes the reply to msg without touching the transcript.
func (b *Bot) Answer(msg string) string {
	intent := Classify(msg)
	b.Logger.Debug("classified message", "intent", intent.String())

	t, err := b.Load()
	if err != nil {
		b.Logger.Error("failed to load data", "err", err)
		return FailedToLoad
	}

	switch intent {
	case IntentShowRows:
		return fmt.Sprintf("Here are the first %d rows:\n%s", b.HeadRows, outwriter.FormatTableText(t.Head(b.HeadRows)))
	case IntentRevenue:
		return answerRevenue(analysis.AnalyzeHighestRevenue(t))
	case IntentBayTime:
		return answerLeader(analysis.AnalyzeLowestBayTime(t), func(e analysis.RankedEntry) string {
			return fmt.Sprintf("The shop with the lowest average bay time is **%s** with **%s minutes**.", e.Shop, analysis.FormatFloat(e.Value))
		})
	case IntentCPD:
		return answerLeader(analysis.AnalyzeHighestCPD(t), func(e analysis.RankedEntry) string {
			return fmt.Sprintf("**%s** has the highest average CPD at **%s**.", e.Shop, analysis.FormatFloat(e.Value))
		})
	case IntentGrowth:
		return answerLeader(analysis.AnalyzeHighestGrowth(t), func(e analysis.RankedEntry) string {
			return fmt.Sprintf("**%s** has the highest yearly sales growth at **%s**.", e.Shop, e.Label)
		})
	case IntentLeaderboard:
		s := analysis.Summarize(t)
		rows := s.Leaderboard.Head(b.LeaderboardRows)
		if len(rows) == 0 {
			return "No shops met the data quality filters for the leaderboard."
		}
		return "🏆 Top shops leaderboard:\n" + outwriter.FormatLeaderboardText(rows)
	default:
		return fmt.Sprintf("✅ Data loaded with %d rows and %d columns. Try asking about: 'highest average daily sales', 'lowest bay time', 'leaderboard', etc.", t.Len(), len(t.Columns))
	}
}

// Load reads and cleans a fresh table from the bot's source.
func (b *Bot) Load() (*analysis.Table, error) {
	if b.Source == nil {
		return nil, fmt.Errorf("no data source configured")
	}
	raw, err := b.Source()
	if err != nil {
		return nil, err
	}
	return analysis.CleanAndProcessKPI(raw)
}

func answerRevenue(res analysis.MetricResult) string {
	return answerLeader(res, func(e analysis.RankedEntry) string {
		return fmt.Sprintf("The shop with the highest average daily sales is **%s** with an average of **$%s** per day.", e.Shop, FormatMoney(e.Value.Decimal.InexactFloat64()))
	})
}

func answerLeader(res analysis.MetricResult, format func(analysis.RankedEntry) string) string {
	if !res.Available {
		return outwriter.UnavailableMessage(res.Metric)
	}
	top, ok := res.Leader()
	if !ok || !top.Value.Valid {
		return fmt.Sprintf("No shops met the data quality filters for %s.", res.Metric.Key)
	}
	return format(top)
}

var printer = message.NewPrinter(language.English)

// FormatMoney renders v with thousands grouping and two decimals, e.g. 1,234.50.
func FormatMoney(v float64) string {
	return printer.Sprint(number.Decimal(v, number.Scale(2)))
}
