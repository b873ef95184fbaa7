package core

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// LedgerInfo is the network/ledger context the processor hands the host at
// construction time, exposed to the guest via the context host-function
// module (functions_context.go).
type LedgerInfo struct {
	ProtocolVersion               uint32
	SequenceNumber                uint32
	Timestamp                     uint64
	NetworkID                     [32]byte
	BaseReserve                   uint32
	MinTempEntryExpiration        uint32
	MinPersistentEntryExpiration  uint32
	MaxEntryExpiration            uint32
}

// HostFunctionCall names a single host-function invocation dispatched by
// InvokeFunction: the module-qualified name plus its Val arguments.
type HostFunctionCall struct {
	Name string
	Args []Val
}

// Host is the trusted, metered runtime a transaction processor constructs
// once per invocation. All shared state lives behind either a guard (for
// subsystems touched from nested/reentrant call paths) or the Host's own
// single-threaded method set.
type Host struct {
	budget   *Budget
	objects  *ObjectRegistry
	storage  *Storage
	auth     *AuthorizationManager
	frames   *FrameStack
	events   *EventManager
	vm       VM
	registry *ContractRegistry
	sandboxes *SandboxManager

	ledgerInfo    LedgerInfo
	sourceAccount Address
	diagLevel     DiagnosticLevel

	sandboxMemLimit, sandboxCPULimit uint64

	logger *logrus.Logger

	framesGuard  guard
	storageGuard guard
	authGuard    guard

	finished bool
}

// NewHost constructs a host with the caller-supplied Storage and Budget; all
// other state is set via the SetX methods below before the first
// InvokeFunction call, mirroring the processor's new(storage, budget) ->
// set_* -> invoke_function -> finish() lifecycle.
func NewHost(storage *Storage, budget *Budget, vm VM) *Host {
	logger := logrus.StandardLogger()
	zlog, _ := zap.NewProduction()
	h := &Host{
		budget:  budget,
		storage: storage,
		vm:      vm,
		logger:  logger,
		events:  NewEventManager(DiagnosticErrors, zlog.Sugar()),
		auth:    NewRecordingAuth(false),
	}
	h.objects = NewObjectRegistry(budget)
	h.frames = NewFrameStack(NewBasePRNG([32]byte{}))
	h.sandboxes = NewSandboxManager()
	return h
}

// SetSandboxLimits declares the memory/CPU limits the processor wants
// recorded for the next frame pushed by callNInternal; zero means unset.
func (h *Host) SetSandboxLimits(memLimit, cpuLimit uint64) {
	h.sandboxMemLimit, h.sandboxCPULimit = memLimit, cpuLimit
}

func (h *Host) SetSourceAccount(a Address) { h.sourceAccount = a }
func (h *Host) SetLedgerInfo(li LedgerInfo) { h.ledgerInfo = li }

// LedgerInfoValue returns the ledger context currently configured on h.
func (h *Host) LedgerInfoValue() LedgerInfo { return h.ledgerInfo }

func (h *Host) SetAuthorizationEntries(entries []*AuthEntry) {
	h.auth = NewEnforcingAuth(entries)
}

func (h *Host) SwitchToRecordingAuth(disableNonRoot bool) {
	h.auth = NewRecordingAuth(disableNonRoot)
}

func (h *Host) SetBasePRNGSeed(seed [32]byte) {
	h.frames = NewFrameStack(NewBasePRNG(seed))
}

func (h *Host) SetDiagnosticLevel(l DiagnosticLevel) { h.diagLevel = l }

func (h *Host) SetContractRegistry(r *ContractRegistry) { h.registry = r }

// Registry exposes the host's contract registry for processor-side
// inspection (listing deployed contracts, looking up code hashes).
func (h *Host) Registry() *ContractRegistry { return h.registry }

// Events exposes the host's event buffers for processor-side inspection
// before Finish is called.
func (h *Host) Events() *EventManager { return h.events }

// SandboxesActive returns every frame sandbox still marked active.
func (h *Host) SandboxesActive() []SandboxInfo { return h.sandboxes.Active() }

// StorageSnapshot exposes the durable key/value store for processor-side
// inspection outside the guest-declared footprint.
func (h *Host) StorageSnapshot() map[string]LedgerEntry { return h.storage.Snapshot() }

// StorageGetRaw bypasses the footprint to fetch a single entry by its class
// and opaque payload, for debug tooling only.
func (h *Host) StorageGetRaw(class StorageClass, payload []byte) (LedgerEntry, bool, error) {
	k := LedgerKey{Class: class, Payload: payload}
	h.storage.footprint.AllowRead(k)
	e, err := h.storage.Get(k)
	if err != nil {
		if he := asHostError(err); he.Code == ErrCodeMissingValue {
			return LedgerEntry{}, false, nil
		}
		return LedgerEntry{}, false, err
	}
	return e, true, nil
}

// CurrentContract returns the contract address of the frame nearest the top
// of the stack that actually represents a contract (skipping bookkeeping
// HostFunction frames), or the zero Address at the root.
func (h *Host) CurrentContract() Address {
	h.frames.mu.Lock()
	defer h.frames.mu.Unlock()
	for i := len(h.frames.frames) - 1; i >= 0; i-- {
		if f := h.frames.frames[i]; f.Kind != FrameHostFunction {
			return f.ContractID
		}
	}
	return zeroAddress
}

// InvokeFunction is the processor-facing entry point: it resolves and
// dispatches a single host-function call against the currently executing
// frame's context. Guest-originated calls reach this indirectly through the
// VM's import bindings (vm.go); this method is also the direct entry point
// used by the built-in token contract (token.go) and native test contracts.
func (h *Host) InvokeFunction(call HostFunctionCall) (v Val, err error) {
	err = h.framesGuard.borrow("frame stack", func() error {
		for _, a := range call.Args {
			if ierr := checkValIntegrity(h.objects, a); ierr != nil {
				return ierr
			}
		}
		res, derr := dispatchHostFunction(h, call)
		if derr != nil {
			return derr
		}
		v = res
		return nil
	})
	return v, err
}

// Invoke pushes a top-level frame for (contract, function, args), dispatches
// into the VM, and pops the frame on return — the processor's
// invoke(contract, function, args) call.
func (h *Host) Invoke(contract Address, function string, args []Val) (Val, error) {
	return h.callNInternal(contract, function, args, ReentryProhibited, h.frames.IsRoot())
}

// Finish recovers the mutated Storage and externalized events, requiring the
// frame stack be empty (the Go analogue of the original's unique-ownership
// requirement: nothing may still be borrowing the host).
func (h *Host) Finish() (map[string]LedgerEntry, []ContractEvent, error) {
	if h.frames.Depth() != 0 {
		return nil, nil, NewHostError(ErrContext, ErrCodeInternalError, "finish called with frames still active")
	}
	if h.finished {
		return nil, nil, NewHostError(ErrContext, ErrCodeInternalError, "host already finished")
	}
	h.finished = true
	return h.storage.Snapshot(), h.events.ContractEvents(), nil
}
