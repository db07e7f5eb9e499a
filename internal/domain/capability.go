package domain

// Capabilities gate the restricted operations. They are granted per
// principal by an administrator and checked at the start of every
// mutating operation that needs one.
const (
	CapBoardManage  = "board:manage"
	CapDeedMint     = "deed:mint"
	CapBuildingMint = "building:mint"
	CapBankAdmin    = "bank:admin"
	CapWalletMint   = "wallet:mint"
	CapWalletPause  = "wallet:pause"
)

// Capabilities lists every known capability, in grant-screen order.
func Capabilities() []string {
	return []string{
		CapBoardManage,
		CapDeedMint,
		CapBuildingMint,
		CapBankAdmin,
		CapWalletMint,
		CapWalletPause,
	}
}
