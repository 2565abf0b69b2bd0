package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"structcheck/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "structcheck.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "db.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestLoadSessionEmpty(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionRoundtrip(t *testing.T) {
	s := newTestStore(t)

	sess := session.New("01ARZ3NDEKTSV4RRFFQ69G5FAV", 10)
	sess.CurrentQuestion = 4
	sess.Answers[0] = 2
	sess.Answers[1] = 0
	sess.UserType = "overworked"
	sess.TrackerDay = 3
	sess.TrackerAnswers[0] = "short one"
	sess.TrackerAnswers[1] = "a considerably longer second answer"

	require.NoError(t, s.SaveSession(sess))

	loaded, err := s.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	if diff := cmp.Diff(sess, loaded); diff != "" {
		t.Fatalf("session roundtrip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveSessionOverwritesWholeValue(t *testing.T) {
	s := newTestStore(t)

	first := session.New("u", 3)
	first.Answers[0] = 1
	require.NoError(t, s.SaveSession(first))

	second := session.New("u", 3)
	require.NoError(t, s.SaveSession(second))

	loaded, err := s.LoadSession()
	require.NoError(t, err)
	assert.Zero(t, loaded.AnswerCount(), "older answers must not leak through")

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM session_state").Scan(&count))
	assert.Equal(t, 1, count, "session is a singleton row")
}

func TestLoadSessionFailsOpenOnMalformedPayload(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveSession(session.New("u", 3)))

	_, err := s.db.Exec("UPDATE session_state SET payload = '{not json' WHERE id = 'current'")
	require.NoError(t, err)

	sess, err := s.LoadSession()
	require.NoError(t, err, "malformed state is discarded, not surfaced")
	assert.Nil(t, sess)
}

func TestGetOrCreateUserIDStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.sqlite")
	s, err := Open(path)
	require.NoError(t, err)

	id1, err := s.GetOrCreateUserID()
	require.NoError(t, err)
	assert.Len(t, id1, 26, "ULID encoding")

	id2, err := s.GetOrCreateUserID()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	require.NoError(t, s.Close())

	// The identifier survives reopening the store.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	id3, err := s2.GetOrCreateUserID()
	require.NoError(t, err)
	assert.Equal(t, id1, id3)
}

func TestResetClearsSessionAndIdentityOnly(t *testing.T) {
	s := newTestStore(t)

	id, err := s.GetOrCreateUserID()
	require.NoError(t, err)
	require.NoError(t, s.SaveSession(session.New(id, 3)))
	require.NoError(t, s.UpsertSummary(testSummary(id)))

	require.NoError(t, s.Reset())

	sess, err := s.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, sess)

	newID, err := s.GetOrCreateUserID()
	require.NoError(t, err)
	assert.NotEqual(t, id, newID)

	sums, err := s.LoadSummaries()
	require.NoError(t, err)
	assert.Len(t, sums, 1, "visitor log survives reset")
}

func testSummary(userID string) session.Summary {
	return session.Summary{
		UserID:         userID,
		UserType:       "intuitive",
		Answers:        []int{0, 1, 2},
		TrackerDay:     4,
		TrackerAnswers: []string{"a", "bb", "ccc", "", "", "", ""},
		CompletionRate: 42.857,
		AnswerDensity:  "low",
		LastActivity:   time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		Status:         "potential",
	}
}

func TestUpsertSummaryInsertsAndUpdatesInPlace(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertSummary(testSummary("visitor-a")))
	require.NoError(t, s.UpsertSummary(testSummary("visitor-b")))

	// Update visitor-a; it must keep its position and not duplicate.
	updated := testSummary("visitor-a")
	updated.TrackerDay = 8
	updated.CompletionRate = 100
	updated.Status = "vip"
	require.NoError(t, s.UpsertSummary(updated))

	sums, err := s.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "visitor-a", sums[0].UserID)
	assert.Equal(t, "visitor-b", sums[1].UserID)
	assert.Equal(t, 8, sums[0].TrackerDay)
	assert.Equal(t, "vip", sums[0].Status)
	assert.Equal(t, []int{0, 1, 2}, sums[0].Answers)
	assert.Equal(t, testSummary("x").LastActivity.Unix(), sums[0].LastActivity.Unix())
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	st, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, VisitorStats{}, st)

	fresh := testSummary("v1")
	fresh.TrackerDay = 1
	inTracker := testSummary("v2")
	inTracker.TrackerDay = 5
	done := testSummary("v3")
	done.TrackerDay = 8
	for _, sum := range []session.Summary{fresh, inTracker, done} {
		require.NoError(t, s.UpsertSummary(sum))
	}

	st, err = s.Stats()
	require.NoError(t, err)
	assert.Equal(t, VisitorStats{Total: 3, InTracker: 2, Completed: 1}, st)
}

func TestActivityLog(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.RecordActivity("v1", "resumed", "intro"))
	require.NoError(t, s.RecordActivity("v1", "diagnosis_started", ""))
	require.NoError(t, s.RecordActivity("v1", "day_submitted", "day 1 (short)"))

	events, err := s.RecentActivity(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "day_submitted", events[0].Event)
	assert.Equal(t, "diagnosis_started", events[1].Event)
	for _, ev := range events {
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, "v1", ev.UserID)
	}
}

func TestMigrationsAddMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.sqlite")

	// Simulate a database created before the status/density columns.
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = raw.Exec(`CREATE TABLE visitors (
		user_id TEXT PRIMARY KEY,
		user_type TEXT NOT NULL DEFAULT '',
		answers TEXT NOT NULL DEFAULT '[]',
		tracker_day INTEGER NOT NULL DEFAULT 1,
		tracker_answers TEXT NOT NULL DEFAULT '[]',
		completion_rate REAL NOT NULL DEFAULT 0,
		last_activity DATETIME NOT NULL
	)`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, columnExists(s.db, "visitors", "answer_density"))
	assert.True(t, columnExists(s.db, "visitors", "status"))

	// The upgraded table accepts writes through the normal path.
	require.NoError(t, s.UpsertSummary(testSummary("upgraded")))
	sums, err := s.LoadSummaries()
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "potential", sums[0].Status)
}
