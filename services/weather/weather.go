// Package weather reports trip-window conditions from the Open-Meteo
// forecast API, with a seasonal outlook beyond the forecast horizon and
// a small TTL cache in front of the upstream.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tripwise-project/tripwise-agent/config"
	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/resilience"
	"github.com/tripwise-project/tripwise-agent/types"
)

// ErrUnsupportedCity means the city has no coordinates configured.
type ErrUnsupportedCity struct{ City string }

func (e ErrUnsupportedCity) Error() string {
	return fmt.Sprintf("weather: no coordinates configured for %s", e.City)
}

var conditionByCode = map[int]string{
	0:  "Clear Sky",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Cloudy",
	45: "Fog",
	48: "Dense Fog",
	51: "Light Drizzle",
	61: "Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	80: "Rain Showers",
	95: "Thunderstorm",
}

// Service fetches and scores weather for a trip window.
type Service struct {
	cfg     config.WeatherConfig
	http    *http.Client
	breaker *resilience.CircuitBreaker
	retry   *resilience.RetryConfig
	log     *logger.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry

	// Now is injectable for horizon and confidence math in tests.
	Now func() time.Time
}

type cacheEntry struct {
	report  *types.WeatherReport
	expires time.Time
}

// New builds a weather service from config.
func New(cfg config.WeatherConfig) *Service {
	return &Service{
		cfg:     cfg,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: resilience.NewCircuitBreaker(3, 30*time.Second),
		retry:   resilience.DefaultRetryConfig(),
		log:     logger.GetLogger().WithField("component", "weather"),
		cache:   make(map[string]cacheEntry),
		Now:     time.Now,
	}
}

// Forecast reports conditions for the window. Trips starting beyond the
// forecast horizon get a seasonal outlook instead of a daily forecast.
func (s *Service) Forecast(ctx context.Context, city, startDate, endDate string) (*types.WeatherReport, error) {
	coords, ok := s.cfg.CityCoordinates[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return nil, ErrUnsupportedCity{City: city}
	}

	start, err := types.ParseISODate(startDate)
	if err != nil {
		return nil, fmt.Errorf("weather: bad start date %q: %w", startDate, err)
	}
	if _, err := types.ParseISODate(endDate); err != nil {
		return nil, fmt.Errorf("weather: bad end date %q: %w", endDate, err)
	}

	key := fmt.Sprintf("%s:%s:%s", strings.ToLower(city), startDate, endDate)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	now := s.Now()
	daysAhead := int(start.Sub(dateOnly(now)).Hours() / 24)

	var report *types.WeatherReport
	if daysAhead > s.cfg.MaxForecastDays {
		report = s.seasonal(city, start, startDate, endDate)
	} else {
		report, err = s.fetch(ctx, city, coords, startDate, endDate, daysAhead)
		if err != nil {
			return nil, err
		}
	}

	s.toCache(key, report)
	return report, nil
}

// seasonal builds the beyond-horizon outlook with conservative scores.
func (s *Service) seasonal(city string, start time.Time, startDate, endDate string) *types.WeatherReport {
	month := strings.ToLower(start.Month().String())
	outlook := s.cfg.SeasonalOutlooks[month]
	if outlook == "" {
		outlook = fmt.Sprintf("Typical %s conditions expected", start.Month().String())
	}

	return &types.WeatherReport{
		Supported:       true,
		City:            city,
		StartDate:       startDate,
		EndDate:         endDate,
		SeasonalOutlook: outlook,
		Confidence:      "Low",
		RiskScore:       25,
		RainProbability: 15,
		Note:            "Trip is beyond the reliable forecast window, outlook is seasonal",
	}
}

type openMeteoResponse struct {
	Daily struct {
		Time    []string  `json:"time"`
		TempMax []float64 `json:"temperature_2m_max"`
		TempMin []float64 `json:"temperature_2m_min"`
		Code    []int     `json:"weathercode"`
	} `json:"daily"`
}

// fetch calls Open-Meteo behind the breaker and retry policy.
func (s *Service) fetch(ctx context.Context, city string, coords config.Coordinates, startDate, endDate string, daysAhead int) (*types.WeatherReport, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", coords.Lat))
	q.Set("longitude", fmt.Sprintf("%.4f", coords.Lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("timezone", "auto")
	endpoint := s.cfg.BaseURL + "?" + q.Encode()

	var payload openMeteoResponse
	err := resilience.RetryWithConfig(ctx, s.retry, func() error {
		return s.breaker.Execute(func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			res, err := s.http.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			if err != nil {
				return err
			}
			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("weather upstream: %d %s", res.StatusCode, string(body))
			}
			return json.Unmarshal(body, &payload)
		})
	})
	if err != nil {
		s.log.Warnf("forecast fetch failed for %s: %v", city, err)
		return nil, err
	}

	if len(payload.Daily.Time) == 0 {
		return nil, fmt.Errorf("weather upstream: empty forecast for %s", city)
	}

	return score(city, startDate, endDate, daysAhead, payload), nil
}

// score turns raw daily values into the report the itinerary consumes.
func score(city, startDate, endDate string, daysAhead int, payload openMeteoResponse) *types.WeatherReport {
	daily := make([]types.DailyForecast, 0, len(payload.Daily.Time))
	rainSum := 0
	maxRisk := 0
	bestDay := ""
	bestComfort := -1

	for i, date := range payload.Daily.Time {
		tempMax := at(payload.Daily.TempMax, i)
		tempMin := at(payload.Daily.TempMin, i)
		code := 0
		if i < len(payload.Daily.Code) {
			code = payload.Daily.Code[i]
		}

		rain := rainProbability(code)
		risk := riskScore(tempMax, rain)
		comfort := comfortIndex(tempMax, rain)

		daily = append(daily, types.DailyForecast{
			Date:            date,
			TempMax:         tempMax,
			TempMin:         tempMin,
			Condition:       condition(code),
			RainProbability: rain,
			RiskScore:       risk,
			ComfortIndex:    comfort,
		})

		rainSum += rain
		if risk > maxRisk {
			maxRisk = risk
		}
		if comfort > bestComfort {
			bestComfort, bestDay = comfort, date
		}
	}

	return &types.WeatherReport{
		Supported:       true,
		City:            city,
		StartDate:       startDate,
		EndDate:         endDate,
		Summary:         summarize(daily),
		Confidence:      confidence(daysAhead),
		RiskScore:       maxRisk,
		RainProbability: rainSum / len(daily),
		BestDay:         bestDay,
		DailyForecast:   daily,
	}
}

func at(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

func condition(code int) string {
	if c, ok := conditionByCode[code]; ok {
		return c
	}
	return "Variable Weather"
}

func rainProbability(code int) int {
	switch code {
	case 61, 63, 65, 80:
		return 70
	case 51:
		return 40
	case 95:
		return 85
	default:
		return 10
	}
}

func riskScore(tempMax float64, rain int) int {
	risk := 0.0
	switch {
	case tempMax >= 38:
		risk += 35
	case tempMax >= 33:
		risk += 20
	case tempMax <= 10:
		risk += 25
	}
	risk += float64(rain) * 0.5
	if risk > 100 {
		risk = 100
	}
	return int(risk)
}

func comfortIndex(tempMax float64, rain int) int {
	comfort := 100 - math.Abs(tempMax-28)*2 - float64(rain)*0.4
	if comfort < 0 {
		comfort = 0
	}
	return int(comfort)
}

func confidence(daysAhead int) string {
	switch {
	case daysAhead <= 3:
		return "Very High"
	case daysAhead <= 7:
		return "High"
	case daysAhead <= 10:
		return "Medium"
	default:
		return "Low"
	}
}

func summarize(daily []types.DailyForecast) string {
	if len(daily) == 0 {
		return ""
	}
	counts := make(map[string]int)
	dominant := daily[0].Condition
	for _, d := range daily {
		counts[d.Condition]++
		if counts[d.Condition] > counts[dominant] {
			dominant = d.Condition
		}
	}
	return fmt.Sprintf("Mostly %s across %d day(s)", strings.ToLower(dominant), len(daily))
}

func (s *Service) fromCache(key string) *types.WeatherReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok || s.Now().After(entry.expires) {
		return nil
	}
	return entry.report
}

func (s *Service) toCache(key string, report *types.WeatherReport) {
	ttl := time.Duration(s.cfg.CacheTTLDays) * 24 * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cacheEntry{report: report, expires: s.Now().Add(ttl)}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
