package core

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DiagnosticLevel gates how much diagnostic-only information the host
// records; higher is more verbose. Diagnostic events ride WithFreeBudget and
// are never consensus-observable, unlike contract events.
type DiagnosticLevel uint8

const (
	DiagnosticNone DiagnosticLevel = iota
	DiagnosticErrors
	DiagnosticAll
)

// ContractEvent is appended to the externalized event buffer on every
// contract_event call; these ARE consensus-observable and are returned by
// finish().
type ContractEvent struct {
	ID         string
	Contract   Address
	Topics     []Val
	Data       Val
	InFrameIdx int
}

// DiagnosticEvent is a lower-volume, non-charged event distinct from
// ContractEvent: log lines, auth failures, and other debug-only context. It
// is kept in a separate buffer (go.uber.org/zap-backed) from contract events
// (sirupsen/logrus-backed elsewhere in the host), a mixed logrus/zap texture
// carried over from storage.go.
type DiagnosticEvent struct {
	ID      string
	Message string
	Args    []Val
}

// EventManager holds both buffers for the lifetime of one invocation: two
// in-memory buffers scoped to a single Host instance, since Storage is the
// only persistence boundary and events never outlive one invocation.
type EventManager struct {
	mu    sync.Mutex
	level DiagnosticLevel
	zlog  *zap.SugaredLogger

	contractEvents  []ContractEvent
	diagnosticEvents []DiagnosticEvent
}

func NewEventManager(level DiagnosticLevel, zlog *zap.SugaredLogger) *EventManager {
	if zlog == nil {
		logger, _ := zap.NewProduction()
		zlog = logger.Sugar()
	}
	return &EventManager{level: level, zlog: zlog}
}

// EmitContractEvent appends a consensus-observable event. It charges no
// budget itself; its caller (token.go's emitTokenEvent) is charged only for
// the objects it registers for the event's topic and data.
func (m *EventManager) EmitContractEvent(contract Address, topics []Val, data Val, frameIdx int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.contractEvents = append(m.contractEvents, ContractEvent{
		ID: id, Contract: contract, Topics: topics, Data: data, InFrameIdx: frameIdx,
	})
	return id
}

// EmitDiagnostic appends a diagnostic event only when the configured level
// permits it. Never charged, never consensus-observable.
func (m *EventManager) EmitDiagnostic(bud *Budget, level DiagnosticLevel, msg string, args ...Val) {
	if level > m.level {
		return
	}
	bud.WithFreeBudget(func() {
		m.mu.Lock()
		id := uuid.New().String()
		m.diagnosticEvents = append(m.diagnosticEvents, DiagnosticEvent{ID: id, Message: msg, Args: args})
		m.mu.Unlock()
		m.zlog.Debugw(msg, "id", id, "args", args)
	})
}

// ContractEvents returns the externalized contract event buffer; called by
// finish().
func (m *EventManager) ContractEvents() []ContractEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ContractEvent, len(m.contractEvents))
	copy(out, m.contractEvents)
	return out
}

func (m *EventManager) DiagnosticEvents() []DiagnosticEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DiagnosticEvent, len(m.diagnosticEvents))
	copy(out, m.diagnosticEvents)
	return out
}
