package core

import "testing"

func TestContractRegistryDeployAndLookup(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	addr := addrFixture(1)

	if err := reg.Deploy(st, addr, []byte{0x00, 0x61, 0x73, 0x6d}, false); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	sc, ok := reg.lookup(addr)
	if !ok {
		t.Fatalf("expected contract to be found after deploy")
	}
	if sc.IsBuiltinToken {
		t.Fatalf("expected non-token contract")
	}
}

func TestContractRegistryRejectsDuplicateDeploy(t *testing.T) {
	reg := NewContractRegistry()
	addr := addrFixture(2)
	if err := reg.Deploy(nil, addr, []byte{1}, false); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	if err := reg.Deploy(nil, addr, []byte{1}, false); err == nil {
		t.Fatalf("expected error deploying to an already-used address")
	}
}

func TestContractRegistryRejectsEmptyBytecodeUnlessToken(t *testing.T) {
	reg := NewContractRegistry()
	if err := reg.Deploy(nil, addrFixture(3), nil, false); err == nil {
		t.Fatalf("expected error deploying empty bytecode as a non-token contract")
	}
	if err := reg.Deploy(nil, addrFixture(4), nil, true); err != nil {
		t.Fatalf("expected token deploy with no bytecode to succeed: %v", err)
	}
}

func TestContractRegistryAll(t *testing.T) {
	reg := NewContractRegistry()
	_ = reg.Deploy(nil, addrFixture(1), []byte{1}, false)
	_ = reg.Deploy(nil, addrFixture(2), []byte{1}, false)
	all := reg.All()
	if len(all) != 2 {
		t.Fatalf("want 2 deployed contracts, got %d", len(all))
	}
}

func TestContractManagerOwnershipAndPause(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	addr := addrFixture(1)
	if err := reg.Deploy(st, addr, []byte{1}, false); err != nil {
		t.Fatalf("Deploy: %v", err)
	}
	cm := NewContractManager(st, reg)

	owner := addrFixture(9)
	if err := cm.TransferOwnership(addr, owner); err != nil {
		t.Fatalf("TransferOwnership: %v", err)
	}
	got, err := cm.OwnerOf(addr)
	if err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if got != owner {
		t.Fatalf("want owner %+v, got %+v", owner, got)
	}

	if cm.IsPaused(addr) {
		t.Fatalf("expected contract to start unpaused")
	}
	if err := cm.PauseContract(addr); err != nil {
		t.Fatalf("PauseContract: %v", err)
	}
	if !cm.IsPaused(addr) {
		t.Fatalf("expected contract to be paused")
	}
	if err := cm.ResumeContract(addr); err != nil {
		t.Fatalf("ResumeContract: %v", err)
	}
	if cm.IsPaused(addr) {
		t.Fatalf("expected contract to be resumed")
	}
}

func TestContractManagerUpgradeRejectsWhilePaused(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	addr := addrFixture(1)
	_ = reg.Deploy(st, addr, []byte{1}, false)
	cm := NewContractManager(st, reg)
	_ = cm.PauseContract(addr)

	if err := cm.UpgradeContract(addr, []byte{2}); err == nil {
		t.Fatalf("expected upgrade to be rejected while paused")
	}
}

func TestContractManagerUpgradeUpdatesBytecode(t *testing.T) {
	reg := NewContractRegistry()
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	addr := addrFixture(1)
	_ = reg.Deploy(st, addr, []byte{1}, false)
	cm := NewContractManager(st, reg)

	if err := cm.UpgradeContract(addr, []byte{9, 9}); err != nil {
		t.Fatalf("UpgradeContract: %v", err)
	}
	info, err := cm.Info(addr)
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(info.Bytecode) != 2 {
		t.Fatalf("expected updated bytecode to be recorded")
	}
}

func TestContractManagerInfoNotFound(t *testing.T) {
	reg := NewContractRegistry()
	cm := NewContractManager(nil, reg)
	if _, err := cm.Info(addrFixture(99)); err == nil {
		t.Fatalf("expected error for unknown contract")
	}
}
