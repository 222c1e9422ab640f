package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GridironDigest/internal/domain"
	"GridironDigest/internal/ports"
)

const regularSeason = 2

var whitespaceExpr = regexp.MustCompile(`\s+`)

// Client fetches the weekly scoreboard and per-game recap articles from the
// ESPN site API.
type Client struct {
	scoreboardURL string
	summaryURL    string
	http          *http.Client
}

var _ ports.Scoreboard = (*Client)(nil)
var _ ports.RecapSource = (*Client)(nil)

// NewClient wires the API endpoints; a nil http.Client gets a 10s timeout.
func NewClient(scoreboardURL, summaryURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		scoreboardURL: scoreboardURL,
		summaryURL:    summaryURL,
		http:          client,
	}
}

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Competitors []competitor `json:"competitors"`
	Venue       venue        `json:"venue"`
	Broadcasts  []broadcast  `json:"broadcasts"`
}

type competitor struct {
	Team    team     `json:"team"`
	Score   string   `json:"score"`
	Records []record `json:"records"`
}

type team struct {
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
}

type record struct {
	Summary string `json:"summary"`
}

type venue struct {
	FullName string `json:"fullName"`
}

type broadcast struct {
	Names []string `json:"names"`
}

type summaryResponse struct {
	Article struct {
		Story string `json:"story"`
	} `json:"article"`
}

// FetchWeek pulls every game scheduled for the requested week.
func (c *Client) FetchWeek(ctx context.Context, week, year int) ([]domain.FetchedGame, error) {
	params := url.Values{}
	params.Set("seasontype", strconv.Itoa(regularSeason))
	params.Set("week", strconv.Itoa(week))
	params.Set("year", strconv.Itoa(year))

	var scoreboard scoreboardResponse
	if err := c.getJSON(ctx, c.scoreboardURL+"?"+params.Encode(), &scoreboard); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	games := make([]domain.FetchedGame, 0, len(scoreboard.Events))
	for _, ev := range scoreboard.Events {
		game, err := parseEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}
		games = append(games, game)
	}
	return games, nil
}

// FetchRecap pulls the recap article for one game and strips its markup.
// A game with no article yields an empty string, not an error.
func (c *Client) FetchRecap(ctx context.Context, gameID string) (string, error) {
	params := url.Values{}
	params.Set("event", gameID)

	var summary summaryResponse
	if err := c.getJSON(ctx, c.summaryURL+"?"+params.Encode(), &summary); err != nil {
		return "", fmt.Errorf("fetch summary for %s: %w", gameID, err)
	}

	if summary.Article.Story == "" {
		return "", nil
	}
	return stripHTML(summary.Article.Story)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, value any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "GridironDigest/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("espn returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(value); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseEvent maps one scoreboard event onto a FetchedGame. ESPN lists the
// home competitor first, the away competitor second.
func parseEvent(ev event) (domain.FetchedGame, error) {
	if len(ev.Competitions) == 0 || len(ev.Competitions[0].Competitors) < 2 {
		return domain.FetchedGame{}, fmt.Errorf("event has no competitors")
	}
	comp := ev.Competitions[0]
	home, away := comp.Competitors[0], comp.Competitors[1]

	awayScore, err := strconv.Atoi(away.Score)
	if err != nil {
		return domain.FetchedGame{}, fmt.Errorf("away score %q: %w", away.Score, err)
	}
	homeScore, err := strconv.Atoi(home.Score)
	if err != nil {
		return domain.FetchedGame{}, fmt.Errorf("home score %q: %w", home.Score, err)
	}

	display, err := domain.FormatKickoff(ev.Date)
	if err != nil {
		return domain.FetchedGame{}, err
	}

	gameID := ev.ID
	recapURL := fmt.Sprintf("https://www.espn.com/nfl/recap?gameId=%s", gameID)
	if gameID == "" {
		gameID = domain.DeriveGameID(recapURL, away.Team.DisplayName, home.Team.DisplayName)
	}

	return domain.FetchedGame{
		GameID:         gameID,
		AwayTeam:       away.Team.DisplayName,
		AwayAbbr:       away.Team.Abbreviation,
		AwayScore:      awayScore,
		AwayRecord:     firstRecord(away.Records),
		HomeTeam:       home.Team.DisplayName,
		HomeAbbr:       home.Team.Abbreviation,
		HomeScore:      homeScore,
		HomeRecord:     firstRecord(home.Records),
		KickoffISO:     ev.Date,
		KickoffDisplay: display,
		Stadium:        orNA(comp.Venue.FullName),
		TVNetwork:      firstNetwork(comp.Broadcasts),
		RecapURL:       recapURL,
	}, nil
}

func firstRecord(records []record) string {
	if len(records) > 0 && records[0].Summary != "" {
		return records[0].Summary
	}
	return "N/A"
}

func firstNetwork(broadcasts []broadcast) string {
	if len(broadcasts) > 0 && len(broadcasts[0].Names) > 0 {
		return broadcasts[0].Names[0]
	}
	return "N/A"
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}

// stripHTML flattens recap article markup into plain text.
func stripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse article markup: %w", err)
	}
	text := doc.Text()
	return strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " ")), nil
}
