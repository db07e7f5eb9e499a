package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeCapabilityRepo struct {
	grants map[uint]map[string]bool
}

func newFakeCapabilityRepo() *fakeCapabilityRepo {
	return &fakeCapabilityRepo{grants: make(map[uint]map[string]bool)}
}

func (f *fakeCapabilityRepo) Has(_ context.Context, principalID uint, name string) (bool, error) {
	return f.grants[principalID][name], nil
}

func (f *fakeCapabilityRepo) Grant(_ context.Context, principalID uint, name string, _ uint) error {
	if f.grants[principalID] == nil {
		f.grants[principalID] = make(map[string]bool)
	}
	f.grants[principalID][name] = true
	return nil
}

func (f *fakeCapabilityRepo) Revoke(_ context.Context, principalID uint, name string, _ uint) error {
	delete(f.grants[principalID], name)
	return nil
}

func (f *fakeCapabilityRepo) ListByPrincipal(_ context.Context, principalID uint) ([]string, error) {
	var names []string
	for _, name := range domain.Capabilities() {
		if f.grants[principalID][name] {
			names = append(names, name)
		}
	}
	return names, nil
}

type fakeBoardRepo struct {
	editions map[int]domain.Edition
}

func newFakeBoardRepo(editions ...domain.Edition) *fakeBoardRepo {
	f := &fakeBoardRepo{editions: make(map[int]domain.Edition)}
	for _, e := range editions {
		f.editions[e.Number] = e
	}
	return f
}

func (f *fakeBoardRepo) GetByNumber(_ context.Context, number int) (domain.Edition, error) {
	edition, ok := f.editions[number]
	if !ok {
		return domain.Edition{}, repository.ErrUnknownEdition
	}
	return edition, nil
}

func (f *fakeBoardRepo) MaxNumber(_ context.Context) (int, error) {
	max := 0
	for number := range f.editions {
		if number > max {
			max = number
		}
	}
	return max, nil
}

func (f *fakeBoardRepo) Create(_ context.Context, lands, rarityLevels, buildTypes int, buildableLands []int, _ uint) (domain.Edition, error) {
	next := len(f.editions)
	edition := domain.Edition{
		Number:         next,
		Lands:          lands,
		RarityLevels:   rarityLevels,
		BuildTypes:     buildTypes,
		BuildableLands: buildableLands,
	}
	f.editions[next] = edition
	return edition, nil
}

type fakeDeedRepo struct {
	deeds  map[int64]domain.Deed
	nextID int64
}

func newFakeDeedRepo() *fakeDeedRepo {
	return &fakeDeedRepo{deeds: make(map[int64]domain.Deed)}
}

func (f *fakeDeedRepo) Mint(_ context.Context, to uint, edition, land, rarity int, _ uint) (domain.Deed, error) {
	serial := 0
	for _, d := range f.deeds {
		if d.Edition == edition && d.Land == land && d.Rarity == rarity {
			serial++
		}
	}
	if int64(serial) >= domain.MaxDeedSupply(rarity) {
		return domain.Deed{}, repository.ErrSupplyExhausted
	}

	deed := domain.Deed{
		AssetID: f.nextID,
		Edition: edition,
		Land:    land,
		Rarity:  rarity,
		Serial:  serial,
		OwnerID: to,
	}
	f.deeds[deed.AssetID] = deed
	f.nextID++
	return deed, nil
}

func (f *fakeDeedRepo) GetByAssetID(_ context.Context, assetID int64) (domain.Deed, error) {
	deed, ok := f.deeds[assetID]
	if !ok {
		return domain.Deed{}, repository.ErrUnknownAsset
	}
	return deed, nil
}

func (f *fakeDeedRepo) Exists(_ context.Context, assetID int64) (bool, error) {
	_, ok := f.deeds[assetID]
	return ok, nil
}

func (f *fakeDeedRepo) CountOf(_ context.Context, edition, land, rarity int) (int64, error) {
	var count int64
	for _, d := range f.deeds {
		if d.Edition == edition && d.Land == land && d.Rarity == rarity {
			count++
		}
	}
	return count, nil
}

func (f *fakeDeedRepo) TotalSupply(_ context.Context) (int64, error) {
	return int64(len(f.deeds)), nil
}

func (f *fakeDeedRepo) GetByOwner(_ context.Context, ownerID uint) ([]domain.Deed, error) {
	var owned []domain.Deed
	for _, d := range f.deeds {
		if d.OwnerID == ownerID {
			owned = append(owned, d)
		}
	}
	return owned, nil
}

func (f *fakeDeedRepo) Transfer(_ context.Context, assetID int64, from, to uint) (domain.Deed, error) {
	deed, ok := f.deeds[assetID]
	if !ok {
		return domain.Deed{}, repository.ErrUnknownAsset
	}
	if deed.OwnerID != from {
		return domain.Deed{}, repository.ErrNotOwner
	}
	deed.OwnerID = to
	deed.ApprovedID = nil
	f.deeds[assetID] = deed
	return deed, nil
}

func (f *fakeDeedRepo) Approve(_ context.Context, assetID int64, owner, spender uint) error {
	deed, ok := f.deeds[assetID]
	if !ok {
		return repository.ErrUnknownAsset
	}
	if deed.OwnerID != owner {
		return repository.ErrNotOwner
	}
	deed.ApprovedID = &spender
	f.deeds[assetID] = deed
	return nil
}

type fakeWalletRepo struct {
	balances   map[uint]decimal.Decimal
	allowances map[[2]uint]decimal.Decimal
	paused     bool
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		balances:   make(map[uint]decimal.Decimal),
		allowances: make(map[[2]uint]decimal.Decimal),
	}
}

func (f *fakeWalletRepo) balance(userID uint) decimal.Decimal {
	if b, ok := f.balances[userID]; ok {
		return b
	}
	return decimal.Zero
}

func (f *fakeWalletRepo) Mint(_ context.Context, to uint, amount decimal.Decimal, _ uint) error {
	if f.paused {
		return repository.ErrLedgerPaused
	}
	f.balances[to] = f.balance(to).Add(amount)
	return nil
}

func (f *fakeWalletRepo) Burn(_ context.Context, from uint, amount decimal.Decimal) error {
	if f.paused {
		return repository.ErrLedgerPaused
	}
	if f.balance(from).LessThan(amount) {
		return repository.ErrInsufficientBalance
	}
	f.balances[from] = f.balance(from).Sub(amount)
	return nil
}

func (f *fakeWalletRepo) Transfer(_ context.Context, from, to uint, amount decimal.Decimal) error {
	if f.paused {
		return repository.ErrLedgerPaused
	}
	if f.balance(from).LessThan(amount) {
		return repository.ErrInsufficientBalance
	}
	f.balances[from] = f.balance(from).Sub(amount)
	f.balances[to] = f.balance(to).Add(amount)
	return nil
}

func (f *fakeWalletRepo) TransferFrom(ctx context.Context, spender, from, to uint, amount decimal.Decimal) error {
	key := [2]uint{from, spender}
	if f.allowances[key].LessThan(amount) {
		return repository.ErrInsufficientAllowance
	}
	if err := f.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	f.allowances[key] = f.allowances[key].Sub(amount)
	return nil
}

func (f *fakeWalletRepo) Approve(_ context.Context, owner, spender uint, amount decimal.Decimal) error {
	f.allowances[[2]uint{owner, spender}] = amount
	return nil
}

func (f *fakeWalletRepo) BalanceOf(_ context.Context, userID uint) (decimal.Decimal, error) {
	return f.balance(userID), nil
}

func (f *fakeWalletRepo) Allowance(_ context.Context, owner, spender uint) (decimal.Decimal, error) {
	if a, ok := f.allowances[[2]uint{owner, spender}]; ok {
		return a, nil
	}
	return decimal.Zero, nil
}

func (f *fakeWalletRepo) TotalSupply(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range f.balances {
		total = total.Add(b)
	}
	return total, nil
}

func (f *fakeWalletRepo) Paused(_ context.Context) (bool, error) {
	return f.paused, nil
}

func (f *fakeWalletRepo) SetPaused(_ context.Context, paused bool, _ uint) error {
	f.paused = paused
	return nil
}

// fakeBankRepo combines the deed and wallet fakes the way the real
// repository combines its DAOs inside one transaction.
type fakeBankRepo struct {
	deeds          *fakeDeedRepo
	wallet         *fakeWalletRepo
	deedPrices     map[[3]int]decimal.Decimal
	buildingPrices map[[3]int]decimal.Decimal
	units          map[uint]map[int64]int64
}

func newFakeBankRepo(deeds *fakeDeedRepo, wallet *fakeWalletRepo) *fakeBankRepo {
	return &fakeBankRepo{
		deeds:          deeds,
		wallet:         wallet,
		deedPrices:     make(map[[3]int]decimal.Decimal),
		buildingPrices: make(map[[3]int]decimal.Decimal),
		units:          make(map[uint]map[int64]int64),
	}
}

func (f *fakeBankRepo) DeedPrice(_ context.Context, edition, land, rarity int) (decimal.Decimal, error) {
	if p, ok := f.deedPrices[[3]int{edition, land, rarity}]; ok {
		return p, nil
	}
	return domain.DefaultDeedPrice(rarity), nil
}

func (f *fakeBankRepo) SetDeedPrice(_ context.Context, edition, land, rarity int, amount decimal.Decimal, _ uint) error {
	f.deedPrices[[3]int{edition, land, rarity}] = amount
	return nil
}

func (f *fakeBankRepo) BuildingPrice(_ context.Context, edition, land, buildType int) (decimal.Decimal, error) {
	if p, ok := f.buildingPrices[[3]int{edition, land, buildType}]; ok {
		return p, nil
	}
	return domain.DefaultBuildingPrice(), nil
}

func (f *fakeBankRepo) SetBuildingPrice(_ context.Context, edition, land, buildType int, amount decimal.Decimal, _ uint) error {
	f.buildingPrices[[3]int{edition, land, buildType}] = amount
	return nil
}

func (f *fakeBankRepo) ExecuteDeedPurchase(ctx context.Context, buyerID, bankID uint, edition, land, rarity int, price decimal.Decimal) (domain.Deed, error) {
	if err := f.wallet.TransferFrom(ctx, bankID, buyerID, bankID, price); err != nil {
		return domain.Deed{}, err
	}
	deed, err := f.deeds.Mint(ctx, buyerID, edition, land, rarity, bankID)
	if err != nil {
		// Roll the payment back, as the real transaction would.
		f.wallet.balances[buyerID] = f.wallet.balance(buyerID).Add(price)
		f.wallet.balances[bankID] = f.wallet.balance(bankID).Sub(price)
		return domain.Deed{}, err
	}
	return deed, nil
}

func (f *fakeBankRepo) ExecuteBuildingPurchase(ctx context.Context, buyerID, bankID uint, edition, land, buildType int, quantity int64, total decimal.Decimal) (int64, error) {
	if err := f.wallet.TransferFrom(ctx, bankID, buyerID, bankID, total); err != nil {
		return 0, err
	}
	classID := domain.PackClassID(edition, land, buildType)
	if f.units[buyerID] == nil {
		f.units[buyerID] = make(map[int64]int64)
	}
	f.units[buyerID][classID] += quantity
	return classID, nil
}

func (f *fakeBankRepo) ExecuteDeedSale(ctx context.Context, sellerID, bankID uint, assetID int64, price decimal.Decimal) (domain.Deed, error) {
	deed, err := f.deeds.GetByAssetID(ctx, assetID)
	if err != nil {
		return domain.Deed{}, err
	}
	if deed.OwnerID != sellerID {
		return domain.Deed{}, repository.ErrNotOwner
	}
	if !deed.IsApprovedFor(bankID) {
		return domain.Deed{}, repository.ErrNotApproved
	}
	if f.wallet.balance(bankID).LessThan(price) {
		return domain.Deed{}, repository.ErrInsufficientReserve
	}
	if _, err = f.deeds.Transfer(ctx, assetID, sellerID, bankID); err != nil {
		return domain.Deed{}, err
	}
	f.wallet.balances[bankID] = f.wallet.balance(bankID).Sub(price)
	f.wallet.balances[sellerID] = f.wallet.balance(sellerID).Add(price)
	return f.deeds.GetByAssetID(ctx, assetID)
}

func adminUser() domain.User {
	return domain.User{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}
}

func playerUser(id uint) domain.User {
	return domain.User{ID: id, Email: "player@example.com", Role: domain.RolePlayer}
}
