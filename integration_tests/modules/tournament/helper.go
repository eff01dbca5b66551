package tournamentintegrationtests

import (
	"context"
	"log/slog"
	"testing"
	"time"

	tournamentservice "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/domain"
	tournamentevents "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/events"
	tournamentmetrics "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/metrics"
	tournamentdb "github.com/Black-And-White-Club/pingpong-bot/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/pingpong-bot/integration_tests/testutils"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

// testEnv is shared by every test in the package and set up once in TestMain.
var testEnv *testutils.TestEnvironment

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx     context.Context
	Repo    tournamentdb.Repository
	BunDB   *bun.DB
	Service *tournamentservice.TournamentService
	Gen     *testutils.TestDataGenerator
}

// testWriter routes slog output to t.Log.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// reverseShuffler reverses the slice so backfill draws are predictable.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func SetupTestTournamentService(t *testing.T) TestDeps {
	t.Helper()
	if testing.Short() || testEnv == nil {
		t.Skip("integration test requires docker")
	}

	ctx, cancel := context.WithTimeout(testEnv.Ctx, 2*time.Minute)
	t.Cleanup(cancel)

	if err := testEnv.Reset(ctx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	repo := testEnv.DBService.TournamentDB

	pubsub := tournamentevents.NewPubSub(logger)
	t.Cleanup(func() { _ = pubsub.Close() })

	service := tournamentservice.NewTournamentService(
		repo,
		logger,
		tournamentmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		testEnv.DB,
		tournamentevents.NewEventPublisher(pubsub, logger),
		tournamentservice.Config{
			RandomSource: func(*int64) tournamentdomain.Shuffler { return reverseShuffler{} },
		},
	)

	return TestDeps{
		Ctx:     ctx,
		Repo:    repo,
		BunDB:   testEnv.DB,
		Service: service,
		Gen:     testutils.NewTestDataGenerator(42),
	}
}
