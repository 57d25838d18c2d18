package domain

// Native and wrapped native asset symbols on Ethereum mainnet.
const (
	NativeAsset        = "ETH"
	WrappedNativeAsset = "WETH"
)

// NativeAssetDecimals is the precision of the native asset (wei per ETH).
const NativeAssetDecimals = 18

// symbolAliases maps historical token symbol variants to one canonical
// symbol. Tax tools do not match the variants across exchanges, so both
// Augur token generations are reported as REP.
var symbolAliases = map[string]string{
	"REPv1": "REP",
	"REPv2": "REP",
}

// CanonicalSymbol collapses known symbol aliases to their canonical form.
// Unknown symbols are returned unchanged.
func CanonicalSymbol(symbol string) string {
	if canonical, ok := symbolAliases[symbol]; ok {
		return canonical
	}
	return symbol
}
