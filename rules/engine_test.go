package rules

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/battlesnakeio/classic/clock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type memStore struct {
	values map[string]int
	sets   int
	err    error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]int{}}
}

func (m *memStore) Get(ctx context.Context, key string) (int, bool, error) {
	if m.err != nil {
		return 0, false, m.err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key string, value int) error {
	if m.err != nil {
		return m.err
	}
	m.sets++
	m.values[key] = value
	return nil
}

var epoch = time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC)

func testEngine(t *testing.T, store HighScoreStore, opts ...Option) (*Engine, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(epoch)
	opts = append([]Option{WithRand(rand.New(rand.NewSource(42)))}, opts...)
	e := New(context.Background(), DefaultConfig(), clk, store, opts...)
	e.Reset()
	return e, clk
}

// place puts the snake on the board moving in dir and parks the food out of the
// way so it is not eaten by accident.
func place(e *Engine, dir Point, body ...Point) {
	e.snake = Snake{Body: body}
	e.direction = dir
	e.committed = dir
	e.food = Point{X: 19, Y: 19}
}

func TestNewLoadsHighScore(t *testing.T) {
	store := newMemStore()
	store.values[HighScoreKey] = 17
	e, _ := testEngine(t, store)
	require.Equal(t, 17, e.Snapshot().HighScore)

	e, _ = testEngine(t, newMemStore())
	require.Equal(t, 0, e.Snapshot().HighScore)
}

func TestResetCanonicalState(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	place(e, DirectionRight, Point{X: 3, Y: 3}, Point{X: 2, Y: 3})
	e.score = 12
	e.speed = 70 * time.Millisecond
	e.spawnBigFood()
	require.True(t, e.bigFood.Visible)
	firstGame := e.gameID

	e.Reset()

	snap := e.Snapshot()
	require.Equal(t, []Point{{X: 10, Y: 10}}, snap.Snake)
	require.Equal(t, DirectionNone, snap.Direction)
	require.Equal(t, 0, snap.Score)
	require.Equal(t, int64(150), snap.SpeedMS)
	require.False(t, snap.BigFood.Visible)
	require.False(t, snap.GameOver)
	require.False(t, snap.Replaying)
	require.Equal(t, GameStatusRunning, snap.Status)
	require.NotEqual(t, firstGame, snap.GameID)
	require.True(t, snap.Food.X >= 0 && snap.Food.X < 20)
	require.True(t, snap.Food.Y >= 0 && snap.Food.Y < 20)

	// spawn, ramp and tick loop only: the bonus timers of the old game are gone
	require.Equal(t, 3, clk.Pending())
	require.Nil(t, e.timers.recolor)
	require.Nil(t, e.timers.countdown)
}

func TestResetTwiceDoesNotLeakTimers(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	for i := 0; i < 5; i++ {
		e.Reset()
	}
	require.Equal(t, 3, clk.Pending())
}

func TestTickMovesWithoutGrowing(t *testing.T) {
	e, _ := testEngine(t, newMemStore())
	place(e, DirectionRight, Point{X: 5, Y: 5}, Point{X: 4, Y: 5}, Point{X: 3, Y: 5})

	for i := 0; i < 4; i++ {
		e.Tick()
		require.Equal(t, 3, e.snake.Len())
	}
	require.Equal(t, []Point{{X: 9, Y: 5}, {X: 8, Y: 5}, {X: 7, Y: 5}}, e.snake.Body)
	require.Equal(t, 0, e.score)
}

func TestTickEatsFood(t *testing.T) {
	e, _ := testEngine(t, newMemStore())
	place(e, DirectionUp, Point{X: 5, Y: 5}, Point{X: 5, Y: 6})
	e.food = Point{X: 5, Y: 4}

	e.Tick()

	require.Equal(t, 1, e.score)
	require.Equal(t, []Point{{X: 5, Y: 4}, {X: 5, Y: 5}, {X: 5, Y: 6}}, e.snake.Body)
	require.True(t, e.food.X >= 0 && e.food.X < 20)
	require.True(t, e.food.Y >= 0 && e.food.Y < 20)
	require.Equal(t, GameStatusRunning, e.status)
}

func TestTickEatsBigFood(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	place(e, DirectionRight, Point{X: 4, Y: 5}, Point{X: 3, Y: 5})
	e.score = 4
	e.spawnBigFood()
	e.bigFood.Position = Point{X: 5, Y: 5}
	oldRamp := e.timers.ramp
	require.Equal(t, 5, clk.Pending())

	e.Tick()

	require.Equal(t, 9, e.score)
	require.False(t, e.bigFood.Visible)
	require.Nil(t, e.timers.recolor)
	require.Nil(t, e.timers.countdown)
	require.NotNil(t, e.timers.ramp)
	require.False(t, oldRamp == e.timers.ramp, "ramp timer should be restarted")
	require.Equal(t, 3, e.snake.Len())
	require.Equal(t, 3, clk.Pending())
}

func TestTouchingBigFood(t *testing.T) {
	bonus := Point{X: 5, Y: 5}
	// the bonus circle is centered on the corner shared by 4 cells
	for _, p := range []Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}} {
		require.True(t, touchingBigFood(p, bonus), "%v should touch", p)
	}
	for _, p := range []Point{{X: 4, Y: 5}, {X: 5, Y: 4}, {X: 3, Y: 5}, {X: 7, Y: 5}, {X: 5, Y: 3}, {X: 4, Y: 4}, {X: 8, Y: 8}} {
		require.False(t, touchingBigFood(p, bonus), "%v should not touch", p)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	store := newMemStore()
	e, clk := testEngine(t, store)
	// a hook: moving up from (5,5) runs into (5,4)
	place(e, DirectionUp,
		Point{X: 5, Y: 5}, Point{X: 6, Y: 5}, Point{X: 6, Y: 4},
		Point{X: 5, Y: 4}, Point{X: 4, Y: 4}, Point{X: 3, Y: 4})
	e.score = 3

	e.Tick()

	snap := e.Snapshot()
	require.True(t, snap.GameOver)
	require.True(t, snap.ReplayVisible)
	require.Equal(t, DeathCauseSnakeSelfCollision, snap.Death.Cause)
	require.Equal(t, 0, clk.Pending(), "all timers stop at game over")

	body := e.snake.clone()
	e.Tick()
	clk.Advance(time.Minute)
	require.Equal(t, body, e.snake.Body)
	require.Equal(t, 3, e.score)
	require.Equal(t, snap.Turn, e.turn)
}

func TestWallCollisionEndsGame(t *testing.T) {
	cases := []struct {
		dir  Point
		head Point
	}{
		{DirectionLeft, Point{X: 0, Y: 5}},
		{DirectionRight, Point{X: 19, Y: 5}},
		{DirectionUp, Point{X: 5, Y: 0}},
		{DirectionDown, Point{X: 5, Y: 19}},
	}
	for _, c := range cases {
		e, _ := testEngine(t, newMemStore())
		place(e, c.dir, c.head)
		e.Tick()
		require.Equal(t, GameStatusComplete, e.status)
		require.Equal(t, DeathCauseWallCollision, e.death.Cause)
	}
}

func TestHighScoreUpdatedOnlyWhenBeaten(t *testing.T) {
	store := newMemStore()
	store.values[HighScoreKey] = 10
	e, _ := testEngine(t, store)

	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.score = 7
	e.Tick()
	require.Equal(t, 10, e.Snapshot().HighScore)
	require.Equal(t, 0, store.sets)

	e.Reset()
	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.score = 10
	e.Tick()
	require.Equal(t, 10, e.Snapshot().HighScore)
	require.Equal(t, 0, store.sets)

	e.Reset()
	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.score = 11
	e.Tick()
	require.Equal(t, 11, e.Snapshot().HighScore)
	require.Equal(t, 1, store.sets)
	require.Equal(t, 11, store.values[HighScoreKey])
}

func TestStoreFailureKeepsSessionHighScore(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("store down")
	e, _ := testEngine(t, store)
	require.Equal(t, 0, e.Snapshot().HighScore)

	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.score = 6
	e.Tick()

	require.True(t, e.Snapshot().GameOver)
	require.Equal(t, 6, e.Snapshot().HighScore)
}

func TestSpeedRampFloor(t *testing.T) {
	e, clk := testEngine(t, newMemStore())

	clk.Advance(30 * time.Second)
	require.Equal(t, 140*time.Millisecond, e.Speed())

	clk.Advance(time.Hour)
	require.Equal(t, 50*time.Millisecond, e.Speed())

	for i := 0; i < 50; i++ {
		e.eatBigFood()
		clk.Advance(30 * time.Second)
		require.True(t, e.Speed() >= 50*time.Millisecond)
	}
}

func TestTickLoopUsesCurrentSpeed(t *testing.T) {
	e, clk := testEngine(t, newMemStore())

	clk.Advance(1500 * time.Millisecond)
	require.Equal(t, int64(10), e.turn)

	e.speed = 50 * time.Millisecond
	// the tick already scheduled keeps its 150ms deadline, the ones after use 50ms
	clk.Advance(150 * time.Millisecond)
	require.Equal(t, int64(11), e.turn)
	clk.Advance(500 * time.Millisecond)
	require.Equal(t, int64(21), e.turn)
}

func TestStationarySnakeWaitsForInput(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	e.food = e.cfg.Start

	clk.Advance(10 * time.Second)
	require.Equal(t, []Point{{X: 10, Y: 10}}, e.snake.Body)
	require.Equal(t, GameStatusRunning, e.status)
	require.Equal(t, 0, e.score)
}

func TestSetDirectionGuard(t *testing.T) {
	e, _ := testEngine(t, newMemStore())

	require.False(t, e.SetDirection("sideways"))
	require.Equal(t, DirectionNone, e.direction)

	require.True(t, e.SetDirection(MoveRight))
	e.Tick()
	require.Equal(t, Point{X: 11, Y: 10}, e.snake.Head())

	require.False(t, e.SetDirection(MoveLeft))
	require.False(t, e.SetDirection(MoveRight))
	require.Equal(t, DirectionRight, e.direction)

	// up then left before the next tick: left is still checked against the
	// direction the snake is moving, so it cannot fold back on itself
	require.True(t, e.SetDirection(MoveUp))
	require.False(t, e.SetDirection(MoveLeft))
	e.Tick()
	require.Equal(t, Point{X: 11, Y: 9}, e.snake.Head())

	require.True(t, e.SetDirection(MoveLeft))
	require.False(t, e.SetDirection(MoveDown))
}

func TestSetDirectionIgnoredAfterGameOver(t *testing.T) {
	e, _ := testEngine(t, newMemStore())
	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.Tick()
	require.False(t, e.SetDirection(MoveUp))
}

func TestBonusSpawnRequiresScore(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	e.score = 3
	clk.Advance(30 * time.Second)
	require.False(t, e.bigFood.Visible)

	e.score = 4
	clk.Advance(30 * time.Second)
	require.True(t, e.bigFood.Visible)
	require.Equal(t, 6, e.bigFood.Countdown)
	require.Equal(t, "gold", e.bigFood.Color)
	p := e.bigFood.Position
	require.True(t, p.X >= 0 && p.X < 20 && p.Y >= 0 && p.Y < 20)
}

func TestBonusDoesNotRespawnWhileVisible(t *testing.T) {
	e, _ := testEngine(t, newMemStore())
	e.score = 4
	e.spawnBigFood()
	e.bigFood.Countdown = 3
	recolor := e.timers.recolor

	e.spawnBigFood()
	require.Equal(t, 3, e.bigFood.Countdown)
	require.True(t, recolor == e.timers.recolor)
}

func TestBonusExpires(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	e.score = 4
	e.spawnBigFood()

	clk.Advance(500 * time.Millisecond)
	require.NotEqual(t, "gold", e.bigFood.Color)
	require.Regexp(t, "^#[0-9A-F]{6}$", e.bigFood.Color)

	clk.Advance(4500 * time.Millisecond)
	require.True(t, e.bigFood.Visible)
	require.Equal(t, 1, e.bigFood.Countdown)

	clk.Advance(time.Second)
	require.False(t, e.bigFood.Visible)
	require.Nil(t, e.timers.recolor)
	require.Nil(t, e.timers.countdown)
	require.Equal(t, 4, e.score)
}

func TestReplayingSignal(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	place(e, DirectionLeft, Point{X: 0, Y: 5})
	e.Tick()
	require.True(t, e.Snapshot().GameOver)

	e.Replay()
	snap := e.Snapshot()
	require.False(t, snap.GameOver)
	require.False(t, snap.ReplayVisible)
	require.True(t, snap.Replaying)

	clk.Advance(4 * time.Second)
	require.True(t, e.Snapshot().Replaying)
	clk.Advance(time.Second)
	require.False(t, e.Snapshot().Replaying)

	// a second replay cancels the first window
	e.Replay()
	clk.Advance(3 * time.Second)
	e.Replay()
	clk.Advance(3 * time.Second)
	require.True(t, e.Snapshot().Replaying)
}

func TestReplayingWindowOutlivesGameOver(t *testing.T) {
	e, clk := testEngine(t, newMemStore())
	e.Replay()
	place(e, DirectionLeft, Point{X: 0, Y: 5})
	clk.Advance(time.Second)

	snap := e.Snapshot()
	require.True(t, snap.GameOver)
	require.True(t, snap.Replaying)
	require.Equal(t, 1, clk.Pending(), "only the replaying window is left")

	clk.Advance(4 * time.Second)
	snap = e.Snapshot()
	require.False(t, snap.Replaying)
	require.True(t, snap.GameOver)
	require.Equal(t, 0, clk.Pending())
}

func TestListenerReceivesEvents(t *testing.T) {
	var kinds []EventKind
	e, _ := testEngine(t, newMemStore(), WithListener(func(ev Event) {
		kinds = append(kinds, ev.Kind)
	}))
	place(e, DirectionUp, Point{X: 5, Y: 1})
	e.food = Point{X: 5, Y: 0}
	e.Tick()
	e.Tick()

	require.Equal(t, []EventKind{EventReset, EventFoodEaten, EventTick, EventHighScore, EventGameOver}, kinds)
}

func TestBonusScenario(t *testing.T) {
	store := newMemStore()
	e, clk := testEngine(t, store)

	// the player reaches 4 points
	e.score = 4
	clk.Advance(30 * time.Second)
	require.True(t, e.bigFood.Visible)

	e.bigFood.Position = Point{X: 8, Y: 3}
	place(e, DirectionDown, Point{X: 8, Y: 2}, Point{X: 8, Y: 1})
	e.Tick()

	snap := e.Snapshot()
	require.Equal(t, 9, snap.Score)
	require.False(t, snap.BigFood.Visible)
	require.NotNil(t, e.timers.ramp)

	// park the snake so it survives until the ramp fires
	e.direction, e.committed = DirectionNone, DirectionNone
	speed := e.Speed()
	clk.Advance(30 * time.Second)
	require.Equal(t, speed-10*time.Millisecond, e.Speed())
}
