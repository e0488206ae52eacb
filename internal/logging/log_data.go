package logging

import (
	"maps"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogData collects fields and timings over one request and emits them as a
// single entry. It is safe for concurrent use.
type LogData struct {
	mu        sync.Mutex
	timeItems map[string]int64
	dataItems logrus.Fields
	logger    *logrus.Logger
}

func NewLogData(logger *logrus.Logger) *LogData {
	return &LogData{
		timeItems: make(map[string]int64),
		dataItems: make(logrus.Fields),
		logger:    logger,
	}
}

// AddTiming starts a timer; calling the returned func records the elapsed
// milliseconds under entryName.
func (l *LogData) AddTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timeItems[entryName] = timeSince
	}
}

// AddToExistingTiming is AddTiming but accumulates.
func (l *LogData) AddToExistingTiming(entryName string) func() {
	startTime := time.Now()

	return func() {
		timeSince := time.Since(startTime).Milliseconds()
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timeItems[entryName] += timeSince
	}
}

func (l *LogData) AddData(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dataItems[key] = value
}

func (l *LogData) Log() *logrus.Entry {
	l.mu.Lock()
	fields := make(logrus.Fields, len(l.dataItems)+len(l.timeItems))
	maps.Copy(fields, l.dataItems)
	for key, value := range l.timeItems {
		fields[key] = value
	}
	l.mu.Unlock()

	return l.logger.WithFields(fields)
}
