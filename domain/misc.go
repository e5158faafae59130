package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

type ChainId int32

const (
	ChainIdEthereum ChainId = 1
	ChainIdBase     ChainId = 8453
)

// SupportedChainIds are the only chains a wallet may connect from
var SupportedChainIds = map[ChainId]string{
	ChainIdEthereum: "ethereum",
	ChainIdBase:     "base",
}

func (c ChainId) IsSupported() bool {
	_, ok := SupportedChainIds[c]
	return ok
}

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type TokenId string

func (i TokenId) String() string {
	return string(i)
}

func (i TokenId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(i.String(), 10)
	if !ok {
		return nil, xerrors.Errorf("invalid id %s: %w", i, ErrInvalidNumberFormat)
	}
	return id, nil
}

type OrderHash string

func (h OrderHash) ToLower() OrderHash {
	return OrderHash(strings.ToLower(string(h)))
}

// Wallet is what the wallet connection provider reports for the current user
type Wallet struct {
	Address Address `json:"address" validate:"required,address"`
	ChainId ChainId `json:"chainId" validate:"required"`
}

func (w Wallet) Validate() error {
	if !common.IsHexAddress(string(w.Address)) {
		return ErrInvalidAddress
	}
	if !w.ChainId.IsSupported() {
		return ErrInvalidChainId
	}
	return nil
}
