package shared

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"booking_insights/internal/domain"
)

type Config struct {
	AppEnv   string
	LogLevel string

	Source       string // csv|mysql|sqlite
	CSVPath      string
	CSVDelimiter rune
	MySQLDSN     string
	SQLitePath   string
	Table        string

	UnmappedPolicy domain.UnmappedPolicy

	ChartDir      string
	ChartFormat   string
	ChartFont     string
	ChartWidthIn  float64
	ChartHeightIn float64

	MetricsTextfile string
}

func Load() Config {
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		Source:          strings.ToLower(env("BOOKINGS_SOURCE", "csv")),
		CSVPath:         env("BOOKINGS_CSV", "hotel_bookings_processed.csv"),
		CSVDelimiter:    delimiter(env("CSV_DELIMITER", ",")),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/bookings?charset=utf8mb4"),
		SQLitePath:      env("SQLITE_PATH", "hotel_bookings.db"),
		Table:           env("BOOKINGS_TABLE", "hotel_bookings"),
		UnmappedPolicy:  domain.UnmappedPolicy(strings.ToLower(env("UNMAPPED_MONTH_POLICY", string(domain.PolicyExclude)))),
		ChartDir:        env("CHART_DIR", "charts"),
		ChartFormat:     strings.ToLower(env("CHART_FORMAT", "png")),
		ChartFont:       env("CHART_FONT", "Sans"),
		ChartWidthIn:    atof("CHART_WIDTH_IN", 10),
		ChartHeightIn:   atof("CHART_HEIGHT_IN", 6),
		MetricsTextfile: env("METRICS_TEXTFILE", ""),
	}
	return c
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	switch c.Source {
	case "csv":
		if c.CSVPath == "" {
			problems = append(problems, "BOOKINGS_CSV is empty")
		}
		if c.CSVDelimiter == 0 {
			problems = append(problems, "CSV_DELIMITER must be a single character")
		}
	case "mysql":
		if c.MySQLDSN == "" {
			problems = append(problems, "MYSQL_DSN is empty")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("BOOKINGS_SOURCE %q: want csv, mysql or sqlite", c.Source))
	}

	switch c.UnmappedPolicy {
	case domain.PolicyExclude, domain.PolicyFail:
	default:
		problems = append(problems, fmt.Sprintf("UNMAPPED_MONTH_POLICY %q: want exclude or fail", c.UnmappedPolicy))
	}

	switch c.ChartFormat {
	case "png", "svg", "pdf":
	default:
		problems = append(problems, fmt.Sprintf("CHART_FORMAT %q: want png, svg or pdf", c.ChartFormat))
	}
	switch c.ChartFont {
	case "Sans", "Serif", "Mono":
	default:
		problems = append(problems, fmt.Sprintf("CHART_FONT %q: want Sans, Serif or Mono", c.ChartFont))
	}
	if c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0 {
		problems = append(problems, "chart width and height must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// delimiter accepts one character or the word "tab".
func delimiter(s string) rune {
	if strings.EqualFold(s, "tab") || s == `\t` {
		return '\t'
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
