package fsm

import "testing"

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusAccepted) {
		t.Fatal("expected pending -> accepted to be allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("expected pending -> rejected to be allowed")
	}
	if !CanTransition(StatusPending, StatusCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if !CanTransition(StatusAccepted, StatusCancelled) {
		t.Fatal("expected accepted -> cancelled to be allowed")
	}
	if CanTransition(StatusAccepted, StatusPending) {
		t.Fatal("unexpected transition allowed")
	}
	if CanTransition(StatusRejected, StatusAccepted) {
		t.Fatal("rejected is terminal")
	}
	if CanTransition(StatusCancelled, StatusAccepted) {
		t.Fatal("cancelled is terminal")
	}
	if CanTransition("unknown", StatusAccepted) {
		t.Fatal("unknown status must not transition")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) {
		t.Fatal("pending is not terminal")
	}
	if IsTerminal(StatusAccepted) {
		t.Fatal("accepted is not terminal")
	}
	if !IsTerminal(StatusRejected) {
		t.Fatal("rejected is terminal")
	}
	if !IsTerminal(StatusCancelled) {
		t.Fatal("cancelled is terminal")
	}
	if IsTerminal("unknown") {
		t.Fatal("unknown status is not tracked")
	}
}
