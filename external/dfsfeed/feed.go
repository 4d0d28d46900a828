package dfsfeed

import (
	"strings"

	"github.com/riskibarqy/nfl-dfs-helper/internal/usecase"
)

type slatesEnvelope struct {
	Slates []slatePayload `json:"slates"`
}

type slatePayload struct {
	SlateID      string             `json:"slate_id"`
	URL          string             `json:"url"`
	SlateType    string             `json:"slate_type"`
	TeamCount    int                `json:"team_count"`
	GameCount    int                `json:"game_count"`
	StartHHMM    string             `json:"start_hhmm"`
	ShowdownFlag int                `json:"showdown_flag"`
	ShortDowName string             `json:"short_dow_name"`
	LongDowName  string             `json:"long_dow_name"`
	MonthDayNum  string             `json:"month_daynum"`
	SlateDates   []slateDatePayload `json:"slate_dates"`
}

type slateDatePayload struct {
	StartDate    string `json:"start_date"`
	ShortDowName string `json:"short_dow_name"`
	LongDowName  string `json:"long_dow_name"`
	MonthDayNum  string `json:"month_daynum"`
}

type playersEnvelope struct {
	Players []playerPayload `json:"players"`
}

type playerPayload struct {
	Name       string  `json:"name"`
	Position   string  `json:"pos"`
	Team       string  `json:"team"`
	Opponent   string  `json:"opp"`
	Salary     int     `json:"salary"`
	PPGProj    float64 `json:"ppg_proj"`
	ValueProj  float64 `json:"value_proj"`
	SeasonAvg  float64 `json:"szn_ppg_avg"`
	L5Avg      float64 `json:"l5_ppg_avg"`
	L10Avg     float64 `json:"l10_ppg_avg"`
	Week       int     `json:"week"`
	Spread     float64 `json:"spread"`
	OverUnder  float64 `json:"ou"`
	ProjScore  float64 `json:"proj_score"`
	OppRank    int     `json:"opp_rank"`
	InjStatus  string  `json:"inj"`
	GameDate   string  `json:"game_date"`
}

func (e slatesEnvelope) toExternal(date string) usecase.ExternalSlateBook {
	book := usecase.ExternalSlateBook{
		Date:   date,
		Slates: make([]usecase.ExternalSlate, 0, len(e.Slates)),
	}
	for _, item := range e.Slates {
		if strings.TrimSpace(item.SlateID) == "" {
			continue
		}

		slate := usecase.ExternalSlate{
			ID:        item.SlateID,
			URL:       item.URL,
			SlateType: item.SlateType,
			TeamCount: item.TeamCount,
			GameCount: item.GameCount,
			StartTime: item.StartHHMM,
			Weekday:   item.LongDowName,
			MonthDay:  item.MonthDayNum,
			Showdown:  item.ShowdownFlag != 0,
			Date:      date,
		}
		for _, sd := range item.SlateDates {
			slate.Dates = append(slate.Dates, usecase.ExternalSlateDate{
				StartDate:    sd.StartDate,
				ShortDayName: sd.ShortDowName,
				LongDayName:  sd.LongDowName,
				MonthDay:     sd.MonthDayNum,
			})
		}
		book.Slates = append(book.Slates, slate)
	}

	return book
}

func (e playersEnvelope) toExternal() []usecase.ExternalSalaryRow {
	out := make([]usecase.ExternalSalaryRow, 0, len(e.Players))
	for _, item := range e.Players {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		out = append(out, usecase.ExternalSalaryRow{
			Name:             item.Name,
			Position:         item.Position,
			Team:             item.Team,
			Opponent:         item.Opponent,
			Salary:           item.Salary,
			ProjectedPoints:  item.PPGProj,
			ValueProjection:  item.ValueProj,
			SeasonAverage:    item.SeasonAvg,
			LastFiveAverage:  item.L5Avg,
			LastTenAverage:   item.L10Avg,
			Week:             item.Week,
			Spread:           item.Spread,
			OverUnder:        item.OverUnder,
			ImpliedTeamScore: item.ProjScore,
			OpponentRank:     item.OppRank,
			InjuryStatus:     item.InjStatus,
			GameDate:         item.GameDate,
		})
	}

	return out
}
