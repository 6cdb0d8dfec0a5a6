package core

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func threeLevels(t *testing.T) *Bootstrapper {
	t.Helper()
	b, err := NewBootstrapper(GameConfig{GameID: "anagram", TimerLimit: 45}, "game")
	if err != nil {
		t.Fatalf("NewBootstrapper: %v", err)
	}
	for i := 0; i < 3; i++ {
		// Source ordinals are ignored.
		b.AddLevel(NewLevel(Level{Value: 99}))
	}
	return b
}

func TestBootstrapperTimerLimit(t *testing.T) {
	cases := []struct {
		limit   int
		wantErr error
	}{
		{0, ErrTimerLimitUnset},
		{5, ErrTimerLimitTooShort},
		{9, ErrTimerLimitTooShort},
		{10, nil},
		{45, nil},
	}
	for _, c := range cases {
		_, err := NewBootstrapper(GameConfig{GameID: "x", TimerLimit: c.limit}, "game")
		if c.wantErr == nil && err != nil {
			t.Errorf("limit %d: unexpected error %v", c.limit, err)
		}
		if c.wantErr != nil && !errors.Is(err, c.wantErr) {
			t.Errorf("limit %d: got %v, want %v", c.limit, err, c.wantErr)
		}
	}
}

func TestAddLevelAssignsOrdinals(t *testing.T) {
	b := threeLevels(t)
	for i, l := range b.Context().Levels {
		if l.Value != i+1 {
			t.Errorf("level %d has value %d", i, l.Value)
		}
	}
}

func TestCurrentAndNextLevel(t *testing.T) {
	b := threeLevels(t)

	cases := []struct {
		session  int
		wantCur  int
		wantNext int
	}{
		{0, 1, 2},
		{1, 1, 2},
		{2, 2, 3},
		{3, 3, 3},
	}
	for _, c := range cases {
		ctx, err := b.Init(SessionData{GameID: "anagram", Level: c.session}, "")
		if err != nil {
			t.Fatalf("Init: %v", err)
		}
		cur, err := ctx.CurrentLevel()
		if err != nil {
			t.Fatalf("session %d: CurrentLevel: %v", c.session, err)
		}
		next, err := ctx.NextLevel()
		if err != nil {
			t.Fatalf("session %d: NextLevel: %v", c.session, err)
		}
		if cur.Value != c.wantCur || next.Value != c.wantNext {
			t.Errorf("session %d: got cur=%d next=%d, want %d/%d", c.session, cur.Value, next.Value, c.wantCur, c.wantNext)
		}
	}
}

func TestCurrentLevelErrors(t *testing.T) {
	b := threeLevels(t)
	ctx, _ := b.Init(SessionData{Level: 7}, "")
	if _, err := ctx.CurrentLevel(); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("got %v, want ErrUnknownLevel", err)
	}
	if _, err := ctx.NextLevel(); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("NextLevel: got %v, want ErrUnknownLevel", err)
	}

	empty, _ := NewBootstrapper(GameConfig{GameID: "x", TimerLimit: 45}, "game")
	if _, err := empty.Context().CurrentLevel(); !errors.Is(err, ErrNoLevels) {
		t.Errorf("got %v, want ErrNoLevels", err)
	}
	if _, err := empty.Init(SessionData{}, ""); !errors.Is(err, ErrNoLevels) {
		t.Errorf("Init: got %v, want ErrNoLevels", err)
	}
}

func TestInitIsolatesSessions(t *testing.T) {
	b := threeLevels(t)
	a, _ := b.Init(SessionData{PlayerID: "a", Level: 2}, "")
	c, _ := b.Init(SessionData{PlayerID: "c"}, "")
	if a.Session.PlayerID == c.Session.PlayerID {
		t.Fatal("sessions share state")
	}
	if b.Context().Session.PlayerID != "" {
		t.Error("Init mutated the registered context")
	}
}

func TestAddSceneKeepsFirst(t *testing.T) {
	b := threeLevels(t)
	first := func(*Context, SceneDeps) (Scene, error) { return nil, errors.New("first") }
	second := func(*Context, SceneDeps) (Scene, error) { return nil, errors.New("second") }
	b.AddScene("game", first)
	b.AddScene("game", second)

	_, err := b.Context().NewScene("game", SceneDeps{})
	if err == nil || err.Error() != "first" {
		t.Errorf("got %v, want first factory", err)
	}
	if _, err := b.Context().NewScene("menu", SceneDeps{}); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("got %v, want ErrUnknownScene", err)
	}
}

func TestLoadLevels(t *testing.T) {
	doc := `{"levels":[
		{"value":5,"awardPoints":150,"chargePoints":10,"minPoints":30,"nextLevelThreshold":400,"data":{"wordLength":4}},
		{"data":{"wordLength":5}}
	]}`
	levels, err := LoadLevels(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadLevels: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("got %d levels", len(levels))
	}
	if levels[0].Value != 0 || levels[0].AwardPoints != 150 || levels[0].NextLevelThreshold != 400 {
		t.Errorf("first level: %+v", levels[0])
	}
	d := levels[1]
	if d.AwardPoints != 100 || d.ChargePoints != 5 || d.MinPoints != 20 || d.NextLevelThreshold != 100 {
		t.Errorf("defaults not applied: %+v", d)
	}
	var data struct {
		WordLength int `json:"wordLength"`
	}
	if err := d.Decode(&data); err != nil || data.WordLength != 5 {
		t.Errorf("Decode: %v, %+v", err, data)
	}
	if err := (Level{}).Decode(&data); err == nil {
		t.Error("expected error decoding empty payload")
	}
	if _, err := LoadLevels(strings.NewReader("{")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseSession(t *testing.T) {
	q, _ := url.ParseQuery("gameId=memo&playerId=p1&sessionId=s1&rank=3&highscore=250&level=2&timestamp=1700000000&signature=abc")
	s, err := ParseSession(q)
	if err != nil {
		t.Fatalf("ParseSession: %v", err)
	}
	want := SessionData{GameID: "memo", PlayerID: "p1", SessionID: "s1", Rank: 3, Highscore: 250, Level: 2, Timestamp: 1700000000, Signature: "abc"}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}

	blank, err := ParseSession(url.Values{"gameId": {"memo"}})
	if err != nil || blank.Level != 0 || blank.Highscore != 0 {
		t.Errorf("blank fields: %+v, %v", blank, err)
	}
	if _, err := ParseSession(url.Values{"gameId": {"memo"}, "level": {"two"}}); err == nil {
		t.Error("expected error for non-numeric level")
	}
	if _, err := ParseSession(url.Values{}); err == nil {
		t.Error("expected error for missing gameId")
	}
}

func TestResults(t *testing.T) {
	b := threeLevels(t)

	ctx, _ := b.Init(SessionData{GameID: "anagram", PlayerID: "p", Highscore: 120, Level: 1}, "https://host.example/back?old=1")
	r, err := NewResults(ctx, 150)
	if err != nil {
		t.Fatalf("NewResults: %v", err)
	}
	if !r.NewRecord || !r.Unlocked || r.UnlockedLevel != 2 || r.Highscore != 150 {
		t.Errorf("unexpected results %+v", r)
	}
	u, err := url.Parse(r.RedirectURL)
	if err != nil {
		t.Fatalf("redirect: %v", err)
	}
	if u.Host != "host.example" || u.Query().Get("level") != "2" || u.Query().Get("highscore") != "150" || u.Query().Has("old") {
		t.Errorf("redirect %s", r.RedirectURL)
	}

	ctx, _ = b.Init(SessionData{Highscore: 500, Level: 1}, "")
	r, _ = NewResults(ctx, 40)
	if r.NewRecord || r.Unlocked || r.UnlockedLevel != 1 || r.Highscore != 500 {
		t.Errorf("unexpected results %+v", r)
	}
	if !strings.HasPrefix(r.RedirectURL, "?") {
		t.Errorf("relative redirect expected, got %s", r.RedirectURL)
	}

	// Last level never unlocks further.
	ctx, _ = b.Init(SessionData{Level: 3}, "")
	r, _ = NewResults(ctx, 10_000)
	if r.Unlocked || r.UnlockedLevel != 3 {
		t.Errorf("last level: %+v", r)
	}
}
