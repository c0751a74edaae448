package config

import (
	"os"
	"strconv"
	"time"

	"github.com/battlesnakeio/classic/rules"
	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// feel of the game.
var (
	GridWidth      = getEnvInt("GRID_WIDTH", 20)
	GridHeight     = getEnvInt("GRID_HEIGHT", 20)
	StartSpeed     = getEnvMillis("START_SPEED_MS", 150)
	MinSpeed       = getEnvMillis("MIN_SPEED_MS", 50)
	SpeedStep      = getEnvMillis("SPEED_STEP_MS", 10)
	SpeedRamp      = getEnvMillis("SPEED_RAMP_MS", 30000)
	BonusSpawn     = getEnvMillis("BONUS_SPAWN_MS", 30000)
	BonusCountdown = getEnvInt("BONUS_COUNTDOWN", 6)
	BonusMinScore  = getEnvInt("BONUS_MIN_SCORE", 4)

	// FrameInterval is how often the worker advances the game clock and
	// publishes a snapshot.
	FrameInterval = getEnvMillis("FRAME_MS", 16)

	InputRate      = rate.Limit(getEnvInt("INPUT_RPS", 30))
	InputBurstRate = getEnvInt("INPUT_BURST", 10)

	// StoreURL is the default high score store, see highscore.Open.
	StoreURL = os.Getenv("SNAKE_STORE")
)

// Game returns the rules configuration built from the variables above. The start
// cell is the center of the board.
func Game() rules.Config {
	cfg := rules.DefaultConfig()
	cfg.Width = GridWidth
	cfg.Height = GridHeight
	cfg.Start = rules.Point{X: GridWidth / 2, Y: GridHeight / 2}
	cfg.StartSpeed = StartSpeed
	cfg.MinSpeed = MinSpeed
	cfg.SpeedStep = SpeedStep
	cfg.SpeedRamp = SpeedRamp
	cfg.BonusSpawn = BonusSpawn
	cfg.BonusCountdown = BonusCountdown
	cfg.BonusMinScore = BonusMinScore
	if cfg.MinSpeed > cfg.StartSpeed {
		cfg.MinSpeed = cfg.StartSpeed
	}
	return cfg
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil || intVal <= 0 {
		return defaults
	}
	return int(intVal)
}

func getEnvMillis(varName string, defaults int) time.Duration {
	return time.Duration(getEnvInt(varName, defaults)) * time.Millisecond
}
