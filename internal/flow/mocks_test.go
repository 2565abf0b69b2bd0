package flow

import (
	"fmt"

	"structcheck/internal/classify"
	"structcheck/internal/session"
)

// memStore is an in-memory flow.Store for controller and orchestrator tests.
type memStore struct {
	sess      *session.Session
	userID    string
	summaries map[string]session.Summary
	order     []string
	activity  []string
	saves     int
}

func newMemStore() *memStore {
	return &memStore{summaries: make(map[string]session.Summary)}
}

func (m *memStore) LoadSession() (*session.Session, error) {
	if m.sess == nil {
		return nil, nil
	}
	return m.sess.Clone(), nil
}

func (m *memStore) SaveSession(s *session.Session) error {
	m.sess = s.Clone()
	m.saves++
	return nil
}

func (m *memStore) GetOrCreateUserID() (string, error) {
	if m.userID == "" {
		m.userID = "visitor-test"
	}
	return m.userID, nil
}

func (m *memStore) UpsertSummary(sum session.Summary) error {
	if _, ok := m.summaries[sum.UserID]; !ok {
		m.order = append(m.order, sum.UserID)
	}
	m.summaries[sum.UserID] = sum
	return nil
}

func (m *memStore) Reset() error {
	m.sess = nil
	m.userID = ""
	return nil
}

func (m *memStore) RecordActivity(userID, event, detail string) error {
	m.activity = append(m.activity, fmt.Sprintf("%s:%s", userID, event))
	return nil
}

func (m *memStore) lastSummary(userID string) (session.Summary, bool) {
	sum, ok := m.summaries[userID]
	return sum, ok
}

// stubContent is a minimal flow.Content with n questions of optN options
// each. Option j contributes weight 1 to owner type j mod len(OwnerTypes).
type stubContent struct {
	n    int
	optN int
}

func (c stubContent) QuestionCount() int { return c.n }

func (c stubContent) OptionCount(question int) int {
	if question < 0 || question >= c.n {
		return 0
	}
	return c.optN
}

// skewedContent reports one question count but scores with one fewer, the
// shape a bad catalog edit produces when the weights fall out of step with
// the question list.
type skewedContent struct{ stubContent }

func (c skewedContent) Scorer() *classify.Scorer {
	short := c.stubContent
	short.n--
	return short.Scorer()
}

func (c stubContent) Scorer() *classify.Scorer {
	weights := make([][]classify.OptionWeights, c.n)
	for i := range weights {
		weights[i] = make([]classify.OptionWeights, c.optN)
		for j := range weights[i] {
			label := classify.OwnerTypes[j%len(classify.OwnerTypes)]
			weights[i][j] = classify.OptionWeights{label: 1}
		}
	}
	return classify.NewScorer(weights)
}
