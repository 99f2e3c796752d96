package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"volunteerhub/internal/config"
	"volunteerhub/internal/db"
	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/repository"
	"volunteerhub/internal/validation"
)

// SeedData is the document read by the seed command.
type SeedData struct {
	Users     []validation.UserCreateInput          `json:"users"`
	Locations []validation.EventLocationCreateInput `json:"locations"`
	Events    []SeedEvent                           `json:"events"`
}

// SeedEvent is an event whose location and organiser are given by name and
// email instead of ids.
type SeedEvent struct {
	validation.EventCreateInput
	Location  string `json:"location"`
	Organiser string `json:"organiser"`
}

// Report counts what a seed run created.
type Report struct {
	Users     int
	Locations int
	Events    int
	Skipped   int
}

type repositories struct {
	users     repository.UserRepository
	locations repository.EventLocationRepository
	events    repository.EventRepository
}

var source string

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Load users, locations and events into the database",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLogger(cfg.Logging)

		gormDB, err := db.Open(cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(gormDB, false); err != nil {
			return err
		}

		logger.Info().Str("source", source).Msg("reading seed data")
		data, err := load(source)
		if err != nil {
			return err
		}

		repos := repositories{
			users:     repository.NewUserRepository(gormDB),
			locations: repository.NewEventLocationRepository(gormDB),
			events:    repository.NewEventRepository(gormDB),
		}
		report, err := seed(cmd.Context(), repos, data, logger)
		if err != nil {
			return err
		}
		logger.Info().
			Int("users", report.Users).
			Int("locations", report.Locations).
			Int("events", report.Events).
			Int("skipped", report.Skipped).
			Msg("seed completed")
		return nil
	},
}

func main() {
	rootCmd.Flags().StringVar(&source, "source", "seed.json", "seed file path or http(s) URL")
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads seed data from a local file or an http(s) URL.
func load(src string) (*SeedData, error) {
	var r io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed data: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		r = f
	}
	defer r.Close()

	var data SeedData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// seed inserts what is missing. Users are matched by email, locations by
// name and events by name and organiser, so reruns do not duplicate rows.
func seed(ctx context.Context, repos repositories, data *SeedData, logger zerolog.Logger) (Report, error) {
	var report Report

	users := map[string]string{}
	for _, input := range data.Users {
		if err := validation.Check(input); err != nil {
			logger.Warn().Err(err).Str("email", input.Email).Msg("skipping user")
			report.Skipped++
			continue
		}
		email := validation.NormalizeEmail(input.Email)
		existing, err := repos.users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			users[email] = existing.ID
			continue
		case !apperrors.IsNotFound(err):
			return report, fmt.Errorf("error checking user %s: %w", email, err)
		}
		user := input.Model()
		user.Email = email
		if err := repos.users.Create(ctx, user); err != nil {
			return report, fmt.Errorf("error creating user %s: %w", email, err)
		}
		users[email] = user.ID
		report.Users++
	}

	locations := map[string]uint{}
	for _, input := range data.Locations {
		if err := validation.Check(input); err != nil {
			logger.Warn().Err(err).Str("location", input.Name).Msg("skipping location")
			report.Skipped++
			continue
		}
		found, err := repos.locations.FindMany(ctx, validation.EventLocationFindManyArgs{
			Where: &validation.EventLocationWhereInput{Name: validation.StrEq(input.Name)},
		})
		if err != nil {
			return report, fmt.Errorf("error checking location %s: %w", input.Name, err)
		}
		if len(found) > 0 {
			locations[input.Name] = found[0].ID
			continue
		}
		location := input.Model()
		if err := repos.locations.Create(ctx, location); err != nil {
			return report, fmt.Errorf("error creating location %s: %w", input.Name, err)
		}
		locations[input.Name] = location.ID
		report.Locations++
	}

	for _, item := range data.Events {
		organiser, ok := users[validation.NormalizeEmail(item.Organiser)]
		locationID, hasLocation := locations[item.Location]
		if !ok || !hasLocation {
			logger.Warn().Str("event", item.Name).Msg("skipping event with unknown organiser or location")
			report.Skipped++
			continue
		}
		input := item.EventCreateInput
		input.UserID = organiser
		input.EventLocationID = &locationID
		if err := validation.Check(input); err != nil {
			logger.Warn().Err(err).Str("event", item.Name).Msg("skipping event")
			report.Skipped++
			continue
		}

		existing, err := repos.events.List(ctx, &validation.EventWhereInput{
			Name:   validation.StrEq(input.Name),
			UserID: validation.StrEq(organiser),
		})
		if err != nil {
			return report, fmt.Errorf("error checking event %s: %w", input.Name, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := repos.events.Create(ctx, input.Model()); err != nil {
			return report, fmt.Errorf("error creating event %s: %w", input.Name, err)
		}
		report.Events++
	}

	return report, nil
}
