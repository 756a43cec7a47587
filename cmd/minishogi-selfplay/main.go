// Command minishogi-selfplay drives MCTS self-play games against a
// stand-in material evaluator, in place of the real policy/value network
// (an external collaborator this engine only ever consumes through the
// mcts.Evaluator interface).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/profile"

	"github.com/hailam/minishogi/internal/mcts"
	"github.com/hailam/minishogi/internal/shogi"
	"github.com/hailam/minishogi/internal/telemetry"
)

// Config is the self-play run's TOML-configurable parameters.
type Config struct {
	Games          int     `toml:"games"`
	Playouts       int     `toml:"playouts"`
	Parallelism    int     `toml:"parallelism"`
	ArenaGB        float64 `toml:"arena_gb"`
	ForcedPlayouts bool    `toml:"forced_playouts"`
	MaxPlies       int     `toml:"max_plies"`
	OutDir         string  `toml:"out_dir"`
}

func defaultConfig() Config {
	return Config{
		Games:          1,
		Playouts:       200,
		Parallelism:    4,
		ArenaGB:        0.25,
		ForcedPlayouts: true,
		MaxPlies:       200,
		OutDir:         ".",
	}
}

var (
	configPath = flag.String("config", "", "path to a TOML config file (defaults applied if omitted)")
	profileMode = flag.String("profile", "", "enable profiling: cpu, mem, or empty to disable")
)

func main() {
	flag.Parse()

	if *profileMode != "" {
		defer startProfile(*profileMode).Stop()
	}

	cfg := defaultConfig()
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			log.Fatalf("minishogi-selfplay: reading config %s: %v", *configPath, err)
		}
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatalf("minishogi-selfplay: creating output directory: %v", err)
	}

	for game := 0; game < cfg.Games; game++ {
		if err := playOneGame(game, cfg); err != nil {
			log.Fatalf("minishogi-selfplay: game %d: %v", game, err)
		}
	}
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."))
	default:
		log.Fatalf("minishogi-selfplay: unknown -profile mode %q", mode)
		return nil
	}
}

// playOneGame runs a single self-play game to completion (or cfg.MaxPlies),
// reusing the MCTS arena's surviving subtree across moves via AdvanceRoot.
func playOneGame(game int, cfg Config) error {
	logger := telemetry.Logger().WithValues("game", game)

	pos := shogi.NewPosition()
	arena := mcts.NewArena(cfg.ArenaGB)

	var history []string
	for ply := 0; ply < cfg.MaxPlies; ply++ {
		moves := pos.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		if rep, _ := pos.IsRepetition(); rep {
			break
		}

		err := mcts.ParallelSearch(context.Background(), arena, pos, materialEvaluator, mcts.SearchOptions{
			Playouts:       cfg.Playouts,
			Parallelism:    cfg.Parallelism,
			ForcedPlayouts: cfg.ForcedPlayouts,
		})
		if err != nil {
			return fmt.Errorf("search at ply %d: %w", ply, err)
		}

		best := mcts.BestMove(arena, arena.Root())
		move := arena.Node(best).Move
		if move.IsNull() {
			break
		}

		history = append(history, move.SFEN())
		pos.DoMove(move)
		arena.SetRoot(pos, true)

		logger.V(1).Info("played move", "ply", ply, "move", move.SFEN(), "sfen", pos.SFEN(false))
	}

	logger.Info("game finished", "plies", len(history), "final_sfen", pos.SFEN(false))

	if err := writeSVG(pos, filepath.Join(cfg.OutDir, fmt.Sprintf("game-%03d.svg", game))); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	dot := mcts.Visualize(arena, arena.Root(), 8)
	if err := os.WriteFile(filepath.Join(cfg.OutDir, fmt.Sprintf("game-%03d.dot", game)), []byte(dot), 0o644); err != nil {
		return fmt.Errorf("writing dot: %w", err)
	}
	return nil
}

func writeSVG(pos *shogi.Position, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pos.ToSVG(f)
}

// materialValue assigns a rough point value per piece type, mirroring the
// teacher engine's own material-table idiom (internal/engine/eval.go's
// pieceValues), scaled down for Minishogi's smaller piece set.
var materialValue = map[shogi.PieceType]int{
	shogi.Pawn:    1,
	shogi.Silver:  5,
	shogi.Gold:    6,
	shogi.Bishop:  8,
	shogi.Rook:    10,
	shogi.PawnX:   6,
	shogi.SilverX: 6,
	shogi.BishopX: 10,
	shogi.RookX:   12,
	shogi.King:    0,
}

// materialEvaluator stands in for the external neural network: a uniform
// policy over legal moves (renormalized by Evaluate) and a material-count
// value squashed into [0,1] from the side-to-move's perspective.
func materialEvaluator(pos *shogi.Position) ([]float32, float32) {
	policy := make([]float32, shogi.PolicyDim)
	for i := range policy {
		policy[i] = 1
	}

	mover := pos.SideToMove
	opponent := shogi.White
	if mover == shogi.White {
		opponent = shogi.Black
	}

	var diff int
	for sq := shogi.Square(0); sq < shogi.SquareNB; sq++ {
		pc := pos.Board[sq]
		if pc == shogi.NoPiece {
			continue
		}
		v := materialValue[pc.GetPieceType()]
		if pc.GetColor() == mover {
			diff += v
		} else {
			diff -= v
		}
	}
	for _, pt := range shogi.HandPieceTypes {
		diff += materialValue[pt] * pos.Hand[mover][pt.HandIndex()]
		diff -= materialValue[pt] * pos.Hand[opponent][pt.HandIndex()]
	}

	return policy, sigmoid(float64(diff) / 10)
}

func sigmoid(x float64) float32 {
	return float32(1 / (1 + math.Exp(-x)))
}
