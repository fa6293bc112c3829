package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-engine/internal/audit"
	"github.com/spec-kit/triage-engine/internal/classify"
	"github.com/spec-kit/triage-engine/internal/classify/model"
	"github.com/spec-kit/triage-engine/internal/config"
	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/events"
	"github.com/spec-kit/triage-engine/internal/observability"
	"github.com/spec-kit/triage-engine/internal/persistence"
	"github.com/spec-kit/triage-engine/internal/pii"
	"github.com/spec-kit/triage-engine/internal/repository"
	"github.com/spec-kit/triage-engine/internal/routing"
	"github.com/spec-kit/triage-engine/internal/rules"
	"github.com/spec-kit/triage-engine/internal/safety"
	"github.com/spec-kit/triage-engine/internal/service"
	"github.com/spec-kit/triage-engine/internal/worker"
)

// ticketInput is one JSONL input line.
type ticketInput struct {
	Body        string `json:"body"`
	Channel     string `json:"channel,omitempty"`
	SubmittedAt string `json:"submitted_at,omitempty"`
}

func main() {
	inputPath := flag.String("input", "-", "tickets as JSON lines ('-' for stdin)")
	text := flag.String("text", "", "process a single ticket body and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	categoryScorer, err := model.Load(cfg.Models.CategoryPath)
	if err != nil {
		logger.Fatal("failed to load category model", zap.Error(err))
	}
	sentimentScorer, err := model.Load(cfg.Models.SentimentPath)
	if err != nil {
		logger.Fatal("failed to load sentiment model", zap.Error(err))
	}
	adapter, err := classify.NewAdapter(categoryScorer, sentimentScorer)
	if err != nil {
		logger.Fatal("failed to build classification adapter", zap.Error(err))
	}

	keywords := safety.DefaultKeywords()
	table := routing.DefaultTable()
	if cfg.Rules.Path != "" {
		ruleFile, err := rules.Load(cfg.Rules.Path)
		if err != nil {
			logger.Fatal("failed to load rules file", zap.Error(err))
		}
		keywords = ruleFile.Keywords(keywords)
		table, err = ruleFile.RoutingTable(table)
		if err != nil {
			logger.Fatal("invalid routing rules", zap.Error(err))
		}
	}
	resolver, err := routing.NewResolver(table)
	if err != nil {
		logger.Fatal("invalid routing table", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	sinks, cleanup := buildSinks(ctx, cfg, logger)
	defer cleanup()
	audit.Register(dispatcher, logger, sinks...)

	metrics := observability.NewMetrics()
	engine, err := service.NewTriageService(cfg.Engine, service.TriageDependencies{
		Redactor:   pii.NewRedactor(),
		Classifier: adapter,
		Safety:     safety.NewEvaluator(keywords, cfg.Engine.SpamRepetitionLimit, cfg.Engine.MinContextWords),
		Resolver:   resolver,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to build triage service", zap.Error(err))
	}

	tickets, err := readTickets(*inputPath, *text)
	if err != nil {
		logger.Fatal("failed to read tickets", zap.Error(err))
	}
	if len(tickets) == 0 {
		logger.Warn("no tickets to process")
		return
	}

	processor := worker.NewBatchProcessor(engine, cfg.Engine.BatchWorkers, logger)
	results := processor.Run(ctx, tickets)

	encoder := json.NewEncoder(os.Stdout)
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		if err := encoder.Encode(result.Record); err != nil {
			logger.Error("failed to encode record", zap.Error(err))
		}
	}

	snap := metrics.Snapshot()
	logger.Info("batch complete",
		zap.Int("tickets", len(tickets)),
		zap.Int64("processed", snap.Processed),
		zap.Int("failed", failed),
		zap.Int64("overrides", snap.Overrides),
		zap.Int64("pii_findings", snap.PIIFindings),
		zap.Int64("review_flagged", snap.ReviewFlagged))

	if failed > 0 {
		os.Exit(1)
	}
}

// buildSinks wires every configured audit sink: the JSONL file always, plus
// postgres and redis when configured.
func buildSinks(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]audit.Sink, func()) {
	var sinks []audit.Sink
	var closers []func()

	if cfg.Audit.LogPath != "" {
		fileSink, err := audit.NewFileSink(cfg.Audit.LogPath)
		if err != nil {
			logger.Fatal("failed to open audit log", zap.Error(err))
		}
		sinks = append(sinks, fileSink)
		closers = append(closers, func() { _ = fileSink.Close() })
	}

	if cfg.Postgres.DSN != "" {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		sinks = append(sinks, audit.NewPostgresSink(repository.NewAuditRepository(pg.PoolHandle())))
		closers = append(closers, pg.Close)
	}

	if cfg.Redis.Addr != "" && cfg.Audit.RedisChannel != "" {
		redis := persistence.NewRedis(cfg.Redis, logger)
		sinks = append(sinks, audit.NewRedisSink(redis.Client, cfg.Audit.RedisChannel))
		closers = append(closers, redis.Close)
	}

	return sinks, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

func readTickets(inputPath, text string) ([]domain.RawTicket, error) {
	if text != "" {
		return []domain.RawTicket{{Body: text}}, nil
	}

	var reader io.Reader = os.Stdin
	if inputPath != "-" {
		file, err := os.Open(inputPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var tickets []domain.RawTicket
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var input ticketInput
		if err := json.Unmarshal(line, &input); err != nil {
			// Treat non-JSON lines as plain ticket bodies.
			tickets = append(tickets, domain.RawTicket{Body: string(line)})
			continue
		}
		tickets = append(tickets, input.toTicket())
	}
	return tickets, scanner.Err()
}

func (in ticketInput) toTicket() domain.RawTicket {
	ticket := domain.RawTicket{
		Body:    in.Body,
		Channel: domain.SubmissionChannel(in.Channel),
	}
	if in.SubmittedAt != "" {
		if ts, err := time.Parse(time.RFC3339, in.SubmittedAt); err == nil {
			ticket.SubmittedAt = ts
		}
	}
	return ticket
}
