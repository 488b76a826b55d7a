package widgets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

const weatherBaseURL = "https://api.weatherapi.com/v1/forecast.json"

// WeatherWidget shows current conditions and today's range from
// weatherapi.com. Output layout: local time, color-coded temps
// (W current, B low, R high), condition summary, and a justified pressure
// row (current vs. next days).
type WeatherWidget struct {
	Location string
	APIKey   string
	Client   *http.Client
}

func (WeatherWidget) Name() string { return "weather" }

type weatherResponse struct {
	Location struct {
		Localtime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempF      float64 `json:"temp_f"`
		PressureIn float64 `json:"pressure_in"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Day struct {
				MaxtempF          float64 `json:"maxtemp_f"`
				MintempF          float64 `json:"mintemp_f"`
				TotalprecipIn     float64 `json:"totalprecip_in"`
				DailyChanceOfRain int     `json:"daily_chance_of_rain"`
			} `json:"day"`
			Hour []struct {
				PressureIn float64 `json:"pressure_in"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (w WeatherWidget) Generate(ctx context.Context, _ json.RawMessage) ([]string, error) {
	apiKey := strings.TrimSpace(w.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("WEATHER_API_KEY"))
	}
	if apiKey == "" {
		return nil, &WidgetError{Widget: "weather", Reason: "WEATHER_API_KEY not set"}
	}
	location := strings.TrimSpace(w.Location)
	if location == "" {
		location = "austin"
	}
	client := w.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("q", location)
	q.Set("days", "3")
	q.Set("aqi", "no")
	q.Set("alerts", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, weatherBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &WidgetError{Widget: "weather", Reason: "building request", Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &WidgetError{Widget: "weather", Reason: "requesting forecast", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &WidgetError{Widget: "weather", Reason: "reading response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		applog.Warnf("weather API status %d", resp.StatusCode)
		return nil, &WidgetError{
			Widget: "weather",
			Reason: fmt.Sprintf("weather API status %d", resp.StatusCode),
		}
	}

	var data weatherResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &WidgetError{Widget: "weather", Reason: "parsing forecast", Err: err}
	}
	if len(data.Forecast.Forecastday) == 0 {
		return nil, &WidgetError{Widget: "weather", Reason: "forecast missing daily data"}
	}
	return weatherRows(data), nil
}

func weatherRows(data weatherResponse) []string {
	today := data.Forecast.Forecastday[0].Day
	temps := fmt.Sprintf("W%.1fD B%.1fD R%.1fD",
		data.Current.TempF, today.MintempF, today.MaxtempF)

	summary := strings.ToLower(strings.ReplaceAll(data.Current.Condition.Text, `"`, ""))
	if today.DailyChanceOfRain > 0 {
		summary += fmt.Sprintf(" w/ %d%% chance", today.DailyChanceOfRain)
	}
	if today.TotalprecipIn > 0 {
		summary += fmt.Sprintf(` %g" of rain`, today.TotalprecipIn)
	}

	var future []string
	for i, day := range data.Forecast.Forecastday {
		if i == 0 || i > 2 || len(day.Hour) == 0 {
			continue
		}
		future = append(future, fmt.Sprintf("%.2f", day.Hour[0].PressureIn))
	}

	rows := []string{
		board.CenterLine(strings.ToLower(data.Location.Localtime)),
		board.CenterLine(temps),
	}
	summaryRows := board.Wrap(summary)
	if len(summaryRows) > 3 {
		summaryRows = summaryRows[:3]
	}
	for _, row := range summaryRows {
		rows = append(rows, board.CenterLine(row))
	}
	for len(rows) < board.Rows-1 {
		rows = append(rows, "")
	}
	pressure := board.FullJustify(
		fmt.Sprintf(" %g", data.Current.PressureIn),
		strings.Join(future, " ")+" ",
	)
	rows = append(rows, pressure)
	return rows
}
