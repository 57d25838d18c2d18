package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanonicalSymbol_CollapsesAugurVariants(t *testing.T) {
	if got := CanonicalSymbol("REPv1"); got != "REP" {
		t.Errorf("expected REPv1 to collapse to REP, got %s", got)
	}
	if got := CanonicalSymbol("REPv2"); got != "REP" {
		t.Errorf("expected REPv2 to collapse to REP, got %s", got)
	}
}

func TestCanonicalSymbol_PassesThroughUnknown(t *testing.T) {
	if got := CanonicalSymbol("DAI"); got != "DAI" {
		t.Errorf("expected DAI unchanged, got %s", got)
	}
}

func TestNewTransfer_CanonicalizesAsset(t *testing.T) {
	transfer, err := NewTransfer(DirectionDeposit, "REPv2", decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("NewTransfer: %v", err)
	}
	if transfer.Asset != "REP" {
		t.Errorf("expected canonical asset REP, got %s", transfer.Asset)
	}
}

func TestNewTransfer_RejectsInvalidDirection(t *testing.T) {
	if _, err := NewTransfer(Direction("Sideways"), "DAI", decimal.NewFromInt(1)); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestNewTransfer_RejectsNegativeAmount(t *testing.T) {
	if _, err := NewTransfer(DirectionDeposit, "DAI", decimal.NewFromInt(-1)); err == nil {
		t.Error("expected error for negative amount")
	}
}
