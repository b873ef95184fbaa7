package core

import "testing"

func TestContractManagerOwnerOfDefaultsToZeroAddress(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	addr := addrFixture(1)
	if err := reg.Deploy(st, addr, []byte{1}, false); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	cm := NewContractManager(st, reg)

	got, err := cm.OwnerOf(addr)
	if err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if got != (Address{}) {
		t.Fatalf("expected zero owner before any transfer, got %v", got)
	}
}

func TestContractManagerTransferOwnershipRejectsUnknownContract(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	cm := NewContractManager(st, reg)
	if err := cm.TransferOwnership(addrFixture(9), addrFixture(2)); err == nil {
		t.Fatalf("expected transferring ownership of an undeployed contract to fail")
	}
}

func TestContractManagerUpgradeRejectsUnknownContract(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	cm := NewContractManager(st, reg)
	if err := cm.UpgradeContract(addrFixture(9), []byte{1}); err == nil {
		t.Fatalf("expected upgrading an undeployed contract to fail")
	}
}
