package metrics

import (
	"sync"
	"time"
)

// Metrics — счетчики работы бота, потокобезопасны
type Metrics struct {
	mu                 sync.RWMutex
	sessionsStarted    int64
	profilesGenerated  int64
	interviewsStarted  int64
	answersProcessed   int64
	reportsGenerated   int64
	apiCallsTotal      int64
	apiCallsSuccessful int64
	lastUpdateTime     time.Time
}

// Snapshot — копия значений счетчиков на момент чтения
type Snapshot struct {
	SessionsStarted    int64
	ProfilesGenerated  int64
	InterviewsStarted  int64
	AnswersProcessed   int64
	ReportsGenerated   int64
	APICallsTotal      int64
	APICallsSuccessful int64
	LastUpdateTime     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementSessionsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionsStarted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementProfilesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profilesGenerated++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interviewsStarted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersProcessed++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementReportsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportsGenerated++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAPICall(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiCallsTotal++
	if success {
		m.apiCallsSuccessful++
	}
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		SessionsStarted:    m.sessionsStarted,
		ProfilesGenerated:  m.profilesGenerated,
		InterviewsStarted:  m.interviewsStarted,
		AnswersProcessed:   m.answersProcessed,
		ReportsGenerated:   m.reportsGenerated,
		APICallsTotal:      m.apiCallsTotal,
		APICallsSuccessful: m.apiCallsSuccessful,
		LastUpdateTime:     m.lastUpdateTime,
	}
}
