package core

import "testing"

func TestErrorTypeAndCodeString(t *testing.T) {
	if ErrContract.String() != "Contract" {
		t.Fatalf("unexpected ErrorType string: %s", ErrContract.String())
	}
	if ErrCodeExceededLimit.String() != "ExceededLimit" {
		t.Fatalf("unexpected ErrorCode string: %s", ErrCodeExceededLimit.String())
	}
	if ErrorType(255).String() != "Unknown" {
		t.Fatalf("expected an unrecognized ErrorType to stringify as Unknown")
	}
	if ErrorCode(255).String() != "Unknown" {
		t.Fatalf("expected an unrecognized ErrorCode to stringify as Unknown")
	}
}

func TestHostErrorMessage(t *testing.T) {
	withMsg := NewHostError(ErrValue, ErrCodeInvalidInput, "bad input")
	if withMsg.Error() != "Value/InvalidInput: bad input" {
		t.Fatalf("unexpected error string: %s", withMsg.Error())
	}
	bare := &HostError{Type: ErrValue, Code: ErrCodeInvalidInput}
	if bare.Error() != "Value/InvalidInput" {
		t.Fatalf("unexpected bare error string: %s", bare.Error())
	}
}

func TestHostErrorValRoundTrips(t *testing.T) {
	he := NewHostError(ErrContract, ErrCodeInvalidAction, "nope")
	v := he.Val()
	typ, code, ok := v.AsError()
	if !ok || typ != ErrContract || code != ErrCodeInvalidAction {
		t.Fatalf("unexpected round trip: typ=%v code=%v ok=%v", typ, code, ok)
	}
}

func TestHostErrorIsRecoverable(t *testing.T) {
	if (&HostError{Type: ErrBudget}).IsRecoverable() {
		t.Fatalf("expected a budget error to be non-recoverable")
	}
	if (&HostError{Type: ErrContract, Code: ErrCodeInternalError}).IsRecoverable() {
		t.Fatalf("expected an internal-error code to be non-recoverable regardless of type")
	}
	if !(&HostError{Type: ErrContract, Code: ErrCodeInvalidAction}).IsRecoverable() {
		t.Fatalf("expected a contract/invalid-action error to be recoverable")
	}
}

func TestAsHostErrorWrapsForeignErrors(t *testing.T) {
	if asHostError(nil) != nil {
		t.Fatalf("expected nil to pass through as nil")
	}
	native := NewHostError(ErrCrypto, ErrCodeInvalidInput, "native")
	if asHostError(native) != native {
		t.Fatalf("expected a *HostError to pass through unchanged")
	}
	wrapped := asHostError(errString("boom"))
	if wrapped.Type != ErrContext || wrapped.Code != ErrCodeInternalError {
		t.Fatalf("expected a foreign error to wrap as Context/InternalError, got %+v", wrapped)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
