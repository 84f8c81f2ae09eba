package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/league-scheduler/external/jobqueue"
	"github.com/riskibarqy/league-scheduler/internal/config"
	"github.com/riskibarqy/league-scheduler/internal/domain/game"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/domain/team"
	"github.com/riskibarqy/league-scheduler/internal/domain/timeslot"
	"github.com/riskibarqy/league-scheduler/internal/domain/venue"
	cacherepo "github.com/riskibarqy/league-scheduler/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-scheduler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-scheduler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-scheduler/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-scheduler/internal/platform/cache"
	idgen "github.com/riskibarqy/league-scheduler/internal/platform/id"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
	"github.com/riskibarqy/league-scheduler/internal/platform/resilience"
	"github.com/riskibarqy/league-scheduler/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	seasons   season.Repository
	teams     team.Repository
	venues    venue.Repository
	timeSlots timeslot.Repository
	games     game.Repository
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	var gamesCache *cache.Store
	if cfg.CacheEnabled {
		gamesCache = cache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, gamesCache)
		repos.venues = cacherepo.NewVenueRepository(repos.venues, gamesCache)
		repos.timeSlots = cacherepo.NewTimeSlotRepository(repos.timeSlots, gamesCache)
	}

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	generationSvc := usecase.NewGenerationService(
		repos.seasons,
		repos.teams,
		repos.venues,
		repos.timeSlots,
		repos.games,
		gamesCache,
		idgen.NewRandomGenerator(),
		cfg.ScheduleWeekdays,
		logger,
	)
	seasonSvc := usecase.NewSeasonService(
		repos.seasons,
		repos.games,
		gamesCache,
		idgen.NewRandomGenerator(),
		generationSvc,
		logger,
	)
	ingestionSvc := usecase.NewIngestionService(repos.teams, repos.venues, repos.timeSlots, logger)
	regenSvc := usecase.NewRegenerationService(repos.seasons, generationSvc, queue, cfg.RegenMaxWorkers, logger)

	handler := httpapi.NewHandler(seasonSvc, generationSvc, ingestionSvc, regenSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			seasons:   memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:     memory.NewTeamRepository(memory.SeedTeams()),
			venues:    memory.NewVenueRepository(memory.SeedVenues()),
			timeSlots: memory.NewTimeSlotRepository(memory.SeedTimeSlots()),
			games:     memory.NewGameRepository(nil),
		}, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("postgres repositories ready", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		seasons:   postgres.NewSeasonRepository(db),
		teams:     postgres.NewTeamRepository(db),
		venues:    postgres.NewVenueRepository(db),
		timeSlots: postgres.NewTimeSlotRepository(db),
		games:     postgres.NewGameRepository(db),
	}, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
