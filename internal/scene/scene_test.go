package scene

import (
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
)

func TestTimelineOrder(t *testing.T) {
	tl := NewTimeline()
	var got []string
	tl.After(300*time.Millisecond, func() { got = append(got, "c") })
	tl.After(100*time.Millisecond, func() { got = append(got, "a") })
	tl.After(100*time.Millisecond, func() { got = append(got, "b") })
	tl.After(100*time.Millisecond, func() {
		tl.After(50*time.Millisecond, func() { got = append(got, "nested") })
	})

	tl.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}
	tl.Advance(time.Second)
	want := []string{"a", "b", "nested", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if tl.Now() != 1099*time.Millisecond {
		t.Errorf("now=%v", tl.Now())
	}
}

func TestTimelineEveryPauseStop(t *testing.T) {
	tl := NewTimeline()
	n := 0
	tm := tl.Every(time.Second, func() { n++ })
	tl.Advance(2500 * time.Millisecond)
	if n != 2 {
		t.Fatalf("n=%d, want 2", n)
	}
	tm.Pause()
	tl.Advance(10 * time.Second)
	if n != 2 {
		t.Fatalf("paused timer fired: n=%d", n)
	}
	tm.Resume()
	tl.Advance(499 * time.Millisecond)
	if n != 2 {
		t.Fatalf("resumed timer lost remaining time: n=%d", n)
	}
	tl.Advance(time.Millisecond)
	if n != 3 {
		t.Fatalf("n=%d, want 3", n)
	}
	tm.Stop()
	tl.Advance(5 * time.Second)
	if n != 3 || tl.Pending() != 0 {
		t.Errorf("stopped timer fired: n=%d pending=%d", n, tl.Pending())
	}
}

func TestTimelineClear(t *testing.T) {
	tl := NewTimeline()
	fired := false
	tl.After(time.Second, func() { fired = true })
	tl.Clear()
	tl.Advance(2 * time.Second)
	if fired {
		t.Error("cleared timer fired")
	}
}

func newTestStage(t *testing.T, limit int) *Stage {
	t.Helper()
	b, err := core.NewBootstrapper(core.GameConfig{GameID: "test", TimerLimit: limit}, "game")
	if err != nil {
		t.Fatal(err)
	}
	b.AddLevel(core.NewLevel(core.Level{}))
	ctx, err := b.Init(core.SessionData{}, "")
	if err != nil {
		t.Fatal(err)
	}
	st, err := NewStage("game", ctx, core.SceneDeps{Rand: rand.New(rand.NewPCG(1, 2)), Log: zerolog.Nop()})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestStageCountdownAndClockExpiry(t *testing.T) {
	st := newTestStage(t, 10)
	began := false
	if err := st.Begin(func() {
		began = true
		st.SetState(StateRoundActive)
		st.StartClock()
	}); err != nil {
		t.Fatal(err)
	}
	if err := st.Begin(func() {}); err != ErrAlreadyBegun {
		t.Errorf("second Begin: %v", err)
	}
	if snap := st.Snapshot(nil); snap.Countdown != "3" || snap.State != string(StateCountdown) {
		t.Fatalf("snapshot %+v", snap)
	}
	st.Advance(3 * time.Second)
	if snap := st.Snapshot(nil); snap.Countdown != "GO!" || began {
		t.Fatalf("snapshot %+v began=%v", snap, began)
	}
	st.Advance(time.Second)
	if !began || !st.Accepting() {
		t.Fatal("onBegin not called")
	}

	st.Advance(10 * time.Second)
	if st.HUD.Clock.Remaining() != 0 || st.Finished() {
		t.Fatalf("remaining=%d finished=%v", st.HUD.Clock.Remaining(), st.Finished())
	}
	// 100 - 10*5
	if st.HUD.Scorer.RoundScore() != 50 {
		t.Errorf("round score %d", st.HUD.Scorer.RoundScore())
	}
	st.Advance(time.Second)
	if !st.Finished() {
		t.Fatal("clock expiry did not end the game")
	}
	if st.TL.Pending() != 0 {
		t.Errorf("%d timers left after game over", st.TL.Pending())
	}
}

func TestStagePauseClock(t *testing.T) {
	st := newTestStage(t, 10)
	st.StartClock()
	st.Advance(2 * time.Second)
	st.PauseClock()
	st.Advance(30 * time.Second)
	if st.HUD.Clock.Remaining() != 8 {
		t.Fatalf("remaining=%d", st.HUD.Clock.Remaining())
	}
	st.ResumeClock()
	st.Advance(time.Second)
	if st.HUD.Clock.Remaining() != 7 {
		t.Errorf("remaining=%d", st.HUD.Clock.Remaining())
	}
}

func TestStageHealthAndFeedback(t *testing.T) {
	st := newTestStage(t, 10)
	st.SetState(StateRoundActive)
	hooked := 0
	st.OnGameOver(func() { hooked++ })

	resumed := false
	st.Feedback(StateFailure, WrongOverlay, func() { resumed = true; st.SetState(StateRoundActive) })
	if st.Accepting() {
		t.Fatal("input open during failure window")
	}
	st.Advance(WrongOverlay)
	if !resumed || !st.Accepting() {
		t.Fatal("feedback did not resume")
	}

	st.LoseHeart()
	st.LoseHeart()
	if st.Finished() {
		t.Fatal("finished with a heart left")
	}
	st.Feedback(StateFailure, WrongOverlay, func() { t.Error("feedback ran after game over") })
	st.LoseHeart()
	st.Advance(time.Minute)
	if !st.Finished() || hooked != 1 {
		t.Errorf("finished=%v hooked=%d", st.Finished(), hooked)
	}
	st.SetState(StateRoundActive)
	if st.State() != StateGameOver {
		t.Error("game over is not terminal")
	}
}
