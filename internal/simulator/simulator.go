package simulator

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/bankjack/internal/game"
	"github.com/lox/bankjack/internal/randutil"
	"github.com/lox/bankjack/internal/runid"
	"github.com/lox/bankjack/internal/statistics"
)

// PlayerSpec seats one player
type PlayerSpec struct {
	ID     int
	Policy game.DrawPolicy
}

// ProgressFunc receives the number of rounds completed across all workers.
// It may be called concurrently when Workers > 1.
type ProgressFunc func(completed, total int)

// Config holds configuration for running simulations
type Config struct {
	Rounds          int
	Seed            int64
	Workers         int
	StartingBalance int
	Bid             int
	Players         []PlayerSpec
	Tracked         []int // Players whose round wins are tallied
	Logger          *log.Logger
	Clock           quartz.Clock
	Progress        ProgressFunc
	ProgressEvery   int // Rounds between progress callbacks per worker
}

// DefaultPlayers returns the four player roster of the reference run
func DefaultPlayers() []PlayerSpec {
	players := make([]PlayerSpec, 0, 4)
	for id := 1; id <= 4; id++ {
		players = append(players, PlayerSpec{ID: id, Policy: game.DefaultPolicyFor(id)})
	}
	return players
}

// Result is the outcome of a simulation run
type Result struct {
	RunID   string
	Seed    int64
	Rounds  int
	Workers int
	Tally   *statistics.RoundTally
	Records *statistics.WinRecords
	Elapsed time.Duration
}

// RoundsPerSecond returns the simulation throughput
func (r *Result) RoundsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Rounds) / r.Elapsed.Seconds()
}

// Simulator runs rounds of the game and aggregates the outcomes
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration, filling in
// defaults for unset fields.
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.StartingBalance == 0 {
		config.StartingBalance = game.DefaultStartingBalance
	}
	if config.Bid == 0 {
		config.Bid = 1
	}
	if len(config.Players) == 0 {
		config.Players = DefaultPlayers()
	}
	if config.Tracked == nil {
		config.Tracked = []int{1, 2}
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = max(1, config.Rounds/200)
	}
	config.Seed = randutil.Seed(config.Seed)
	return &Simulator{config: config}
}

// Config returns the effective configuration
func (s *Simulator) Config() Config {
	return s.config
}

type shard struct {
	index   int
	rounds  int
	tally   *statistics.RoundTally
	records *statistics.WinRecords
}

// Run plays every round and returns the merged results. The context is
// checked between rounds; a round in progress always completes.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if err := checkTracked(cfg.Players, cfg.Tracked); err != nil {
		return nil, err
	}

	id := runid.New()
	logger := cfg.Logger.With("run", id)
	logger.Info("Starting simulation", "rounds", cfg.Rounds, "seed", cfg.Seed, "workers", cfg.Workers, "players", len(cfg.Players))

	start := cfg.Clock.Now()
	shards := s.plan()

	var completed atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	for _, sh := range shards {
		eg.Go(func() error {
			return s.runShard(ctx, sh, logger, &completed)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Fold later shards into the first one, releasing each as it is merged
	tally, records := shards[0].tally, shards[0].records
	for i, sh := range shards[1:] {
		if err := tally.Merge(sh.tally); err != nil {
			return nil, fmt.Errorf("merging shard %d: %w", sh.index, err)
		}
		records.Merge(sh.records)
		shards[i+1] = nil
	}
	if err := tally.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := &Result{
		RunID:   id,
		Seed:    cfg.Seed,
		Rounds:  tally.Rounds,
		Workers: cfg.Workers,
		Tally:   tally,
		Records: records,
		Elapsed: cfg.Clock.Since(start),
	}
	logger.Info("Simulation complete", "rounds", result.Rounds, "elapsed", result.Elapsed.Round(time.Millisecond),
		"wins", len(records.Wins()), "losses", len(records.Losses()))
	return result, nil
}

// checkTracked rejects tracked ids that are not seated, which would
// otherwise surface as a panic while recording the first round
func checkTracked(players []PlayerSpec, tracked []int) error {
	seated := make(map[int]bool, len(players))
	for _, p := range players {
		seated[p.ID] = true
	}
	for _, id := range tracked {
		if !seated[id] {
			return fmt.Errorf("tracked player %d is not seated", id)
		}
	}
	return nil
}

// plan splits the rounds across workers, giving the remainder to the first shards
func (s *Simulator) plan() []*shard {
	cfg := s.config
	workers := min(cfg.Workers, cfg.Rounds)
	base, extra := cfg.Rounds/workers, cfg.Rounds%workers

	shards := make([]*shard, workers)
	for i := range shards {
		n := base
		if i < extra {
			n++
		}
		shards[i] = &shard{
			index:   i,
			rounds:  n,
			tally:   statistics.NewRoundTally(cfg.StartingBalance, cfg.Tracked...),
			records: statistics.NewWinRecords(),
		}
	}
	return shards
}

func (s *Simulator) newGame(sh *shard, logger *log.Logger) (*game.Game, error) {
	cfg := s.config
	g := game.NewGame(randutil.New(randutil.Derive(cfg.Seed, sh.index)),
		game.WithLogger(logger),
		game.WithStartingBalance(cfg.StartingBalance),
		game.WithBidPolicy(game.FixedBid(cfg.Bid)),
		game.WithRecords(sh.records),
	)
	for _, p := range cfg.Players {
		if err := g.AddPlayer(p.ID, p.Policy); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (s *Simulator) runShard(ctx context.Context, sh *shard, logger *log.Logger, completed *atomic.Int64) error {
	cfg := s.config
	logger = logger.With("shard", sh.index)

	g, err := s.newGame(sh, logger)
	if err != nil {
		return err
	}
	logger.Debug("Shard starting", "rounds", sh.rounds)

	reported := 0
	for round := 0; round < sh.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("shard %d stopped after %d rounds: %w", sh.index, round, err)
		}

		result := g.PlayRound()
		sh.tally.Record(result.Balances)
		g.CleanUp()
		if err := g.VerifyReset(); err != nil {
			return fmt.Errorf("shard %d round %d: %w", sh.index, round+1, err)
		}

		played := round + 1
		if played%cfg.ProgressEvery == 0 || played == sh.rounds {
			done := completed.Add(int64(played - reported))
			reported = played
			if cfg.Progress != nil {
				cfg.Progress(int(done), cfg.Rounds)
			}
		}
	}
	logger.Debug("Shard finished", "rounds", sh.rounds, "bank_rounds", g.BankRoundsPlayed())
	return nil
}
