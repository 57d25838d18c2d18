package reconcile

import (
	"errors"
	"fmt"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// Flatten collapses a transaction's transfers into exactly one deposit leg
// and one withdrawal leg.
//
// The withdrawal leg first ignores the native asset, since an ETH
// withdrawal alongside a token sale is the 0x protocol fee; if nothing is
// left the native asset itself was sold and the leg is recomputed with it.
//
// The deposit leg ignores the withdrawal asset, since deposits of the sold
// asset are dust refunds. If that leaves nothing usable, the smaller of the
// ETH/WETH deposits is presumed to be the protocol-fee refund and the leg
// is recomputed ignoring it as well.
//
// Pure and deterministic given its input transfers.
func Flatten(transfers []domain.Transfer) (deposit, withdrawal domain.FlattenedLeg, err error) {
	withdrawal, err = flattenLeg(transfers, domain.DirectionWithdrawal, domain.NativeAsset)
	if errors.Is(err, ErrMissingLeg) {
		withdrawal, err = flattenLeg(transfers, domain.DirectionWithdrawal)
	}
	if err != nil {
		return domain.FlattenedLeg{}, domain.FlattenedLeg{}, err
	}

	deposit, err = flattenLeg(transfers, domain.DirectionDeposit, withdrawal.Asset)
	if err != nil {
		feeAsset, ok := feeRefundAsset(transfers)
		if !ok {
			return domain.FlattenedLeg{}, domain.FlattenedLeg{},
				fmt.Errorf("no protocol-fee refund candidate: %w", ErrMissingLeg)
		}
		deposit, err = flattenLeg(transfers, domain.DirectionDeposit, feeAsset, withdrawal.Asset)
		if err != nil {
			return domain.FlattenedLeg{}, domain.FlattenedLeg{}, err
		}
	}

	return deposit, withdrawal, nil
}

// flattenLeg sums all transfers of one direction, excluding the ignored
// assets. Contributing transfers must share one asset.
func flattenLeg(transfers []domain.Transfer, dir domain.Direction, ignoreAssets ...string) (domain.FlattenedLeg, error) {
	ignore := make(map[string]struct{}, len(ignoreAssets))
	for _, asset := range ignoreAssets {
		ignore[asset] = struct{}{}
	}

	var leg domain.FlattenedLeg
	found := false
	for _, t := range transfers {
		if t.Direction != dir {
			continue
		}
		if _, skip := ignore[t.Asset]; skip {
			continue
		}
		if !found {
			leg.Asset = t.Asset
			found = true
		} else if t.Asset != leg.Asset {
			return domain.FlattenedLeg{},
				fmt.Errorf("%s leg spans %s and %s: %w", dir, leg.Asset, t.Asset, ErrMixedAssets)
		}
		leg.Amount = leg.Amount.Add(t.Amount)
	}

	if !found {
		return domain.FlattenedLeg{}, fmt.Errorf("no qualifying %s transfers: %w", dir, ErrMissingLeg)
	}
	return leg, nil
}

// feeRefundAsset picks the presumed protocol-fee-refund asset: the deposit
// of ETH or WETH with the smallest amount. Ties keep the earlier transfer.
func feeRefundAsset(transfers []domain.Transfer) (string, bool) {
	var best *domain.Transfer
	for i := range transfers {
		t := &transfers[i]
		if t.Direction != domain.DirectionDeposit {
			continue
		}
		if t.Asset != domain.NativeAsset && t.Asset != domain.WrappedNativeAsset {
			continue
		}
		if best == nil || t.Amount.LessThan(best.Amount) {
			best = t
		}
	}
	if best == nil {
		return "", false
	}
	return best.Asset, true
}
