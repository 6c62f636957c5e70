package main

import (
	"bufio"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/dkoval/minehunt-server/internal/game"
	"github.com/dkoval/minehunt-server/internal/layout"
	"github.com/dkoval/minehunt-server/internal/store"
)

var log = logrus.New()

// initLogging sends structured logs to a rotating file and keeps the
// terminal clean for the game itself.
func initLogging(dir string) {
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filepath.Join(dir, "minehunt.log"),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to set up log file: %v\n", err)
		return
	}
	log.SetLevel(logrus.DebugLevel)
	log.AddHook(hook)
	log.SetOutput(io.Discard)
}

func dataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	dir := filepath.Join(base, "minehunt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "."
	}
	return dir
}

func prompt(scanner *bufio.Scanner, text string) (string, bool) {
	fmt.Print(text)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// promptTestBoard keeps asking for a board file until one validates, the
// player gives up (falling back to a random board), or input ends.
func promptTestBoard(scanner *bufio.Scanner) ([][]int, bool) {
	for {
		path, ok := prompt(scanner, "path to board file (empty for a random board): ")
		if !ok || path == "" {
			return nil, ok
		}
		matrix, err := layout.ReadFile(path)
		if err != nil {
			fmt.Printf("board rejected: %v\n", err)
			log.WithError(err).WithField("path", path).Warn("board file rejected")
			continue
		}
		return matrix, true
	}
}

func promptDifficulty(scanner *bufio.Scanner) (game.Difficulty, bool) {
	for {
		answer, ok := prompt(scanner, "difficulty (beginner/intermediate/expert): ")
		if !ok {
			return "", false
		}
		if answer == "" {
			return game.Beginner, true
		}
		difficulty, err := game.ParseDifficulty(answer)
		if err != nil {
			fmt.Println(err)
			continue
		}
		return difficulty, true
	}
}

func setupEngine(scanner *bufio.Scanner, rnd *rand.Rand) (*game.Engine, bool) {
	answer, ok := prompt(scanner, "play a custom board from a file? (y/N): ")
	if !ok {
		return nil, false
	}
	if strings.EqualFold(answer, "y") {
		matrix, ok := promptTestBoard(scanner)
		if !ok {
			return nil, false
		}
		if matrix != nil {
			e, err := game.NewEngine(game.Beginner, rnd)
			if err != nil {
				log.WithError(err).Fatal("unable to create engine")
			}
			e.InitializeTestBoard(matrix)
			return e, true
		}
	}
	difficulty, ok := promptDifficulty(scanner)
	if !ok {
		return nil, false
	}
	e, err := game.NewEngine(difficulty, rnd)
	if err != nil {
		log.WithError(err).Fatal("unable to create engine")
	}
	e.InitializeBoard()
	return e, true
}

func printBoard(e *game.Engine, showAll bool) {
	var view game.GridView
	if showAll {
		view = e.RenderAll()
	} else {
		view = e.Render()
	}
	fmt.Print(view.ToString(e.Board.Cols))
	fmt.Printf("mines: %d, flags: %d, clicks: %d\n",
		e.MinesCount, e.FlagsCount, e.ClickedCount)
}

func parseXY(args []string) (int, int, error) {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not an integer", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not an integer", args[1])
	}
	return x, y, nil
}

func playtime(e *game.Engine) time.Duration {
	if e.StartTime == nil {
		return 0
	}
	return time.Since(*e.StartTime)
}

// play runs one game to completion. It reports the final outcome, or
// NoEffect if the player quit mid-game.
func play(scanner *bufio.Scanner, e *game.Engine) game.Outcome {
	fmt.Println(`commands: "r x y" reveal, "f x y" flag, "q" quit`)
	for {
		printBoard(e, false)
		line, ok := prompt(scanner, "> ")
		if !ok || line == "q" {
			return game.NoEffect
		}

		parts := strings.Fields(line)
		if len(parts) != 3 || (parts[0] != "r" && parts[0] != "f") {
			fmt.Println("unknown command")
			continue
		}
		x, y, err := parseXY(parts[1:])
		if err != nil {
			fmt.Println(err)
			continue
		}
		if !e.InBounds(x, y) {
			fmt.Printf("(%d, %d) is out of bounds\n", x, y)
			continue
		}

		if parts[0] == "f" {
			e.ToggleFlag(x, y)
			continue
		}

		outcome := e.RevealCell(x, y)
		cell := e.Board.At(x, y)
		if cell.IsRevealed && !cell.IsMine && !cell.HasTreasure && cell.AdjacentMines == 0 {
			e.RevealEmptyCells(x, y, nil)
			if !outcome.GameOver() && e.CheckWinCondition() {
				outcome = game.Win
			}
		}
		log.WithFields(logrus.Fields{
			"x": x, "y": y, "outcome": outcome.String(),
		}).Debug("reveal")

		switch outcome {
		case game.Loss:
			printBoard(e, true)
			fmt.Println("you hit a mine!")
			return outcome
		case game.Win:
			printBoard(e, true)
			fmt.Printf("you win! (%s)\n", playtime(e).Round(time.Millisecond))
			return outcome
		case game.WinTreasure:
			printBoard(e, true)
			fmt.Println("you found the treasure!")
			return outcome
		}
	}
}

func recordOutcome(records *store.Records, e *game.Engine, outcome game.Outcome) {
	var err error
	switch outcome {
	case game.Win, game.WinTreasure:
		err = records.AddWin(string(e.Difficulty), playtime(e), outcome == game.WinTreasure)
	case game.Loss:
		err = records.AddLoss(string(e.Difficulty))
	default:
		return
	}
	if err != nil {
		log.WithError(err).Error("unable to save records")
	}
}

func printRecords(records *store.Records) {
	all, err := records.All()
	if err != nil {
		log.WithError(err).Error("unable to load records")
		return
	}
	if len(all) == 0 {
		return
	}
	fmt.Println("your records:")
	for _, record := range all {
		fmt.Printf("  %s: %d played, %d won", record.Difficulty,
			record.GamesPlayed, record.GamesWon)
		if record.TreasureWins > 0 {
			fmt.Printf(", %d treasures", record.TreasureWins)
		}
		if record.BestTime > 0 {
			fmt.Printf(", best %s", record.BestTime.Round(time.Millisecond))
		}
		fmt.Println()
	}
}

func main() {
	dir := dataDir()
	initLogging(dir)

	s, err := store.Open(filepath.Join(dir, "records.db"))
	if err != nil {
		log.WithError(err).Fatal("unable to open records store")
	}
	defer s.Close()
	records := store.NewRecords(s)

	rnd := rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		e, ok := setupEngine(scanner, rnd)
		if !ok {
			return
		}
		outcome := play(scanner, e)
		recordOutcome(records, e, outcome)
		printRecords(records)

		answer, ok := prompt(scanner, "play again? (Y/n): ")
		if !ok || strings.EqualFold(answer, "n") {
			return
		}
	}
}
