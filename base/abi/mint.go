package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	MintToMethod        = "mintTo"
	MintWithTokenMethod = "mintWithToken"
)

var MintABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(MintABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	MintABI = _abi
}

func PackMintTo(recipient common.Address, quantity *big.Int) ([]byte, error) {
	return MintABI.Pack(MintToMethod, recipient, quantity)
}

func PackMintWithToken(recipient, token common.Address, amount *big.Int) ([]byte, error) {
	return MintABI.Pack(MintWithTokenMethod, recipient, token, amount)
}

// MethodABIJson returns a json array holding only the named function
func MethodABIJson(name string) string {
	switch name {
	case MintToMethod:
		return "[" + strings.TrimSpace(mintToFragment) + "]"
	case MintWithTokenMethod:
		return "[" + strings.TrimSpace(mintWithTokenFragment) + "]"
	case FulfillBasicOrderMethod:
		return FulfillBasicOrderABIJson
	}
	return ""
}

var MintABIJson = "[" + mintToFragment + "," + mintWithTokenFragment + "]"

var mintToFragment = `
  {
    "inputs": [
      { "internalType": "address", "name": "recipient", "type": "address" },
      { "internalType": "uint256", "name": "quantity", "type": "uint256" }
    ],
    "name": "mintTo",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  }
`

var mintWithTokenFragment = `
  {
    "inputs": [
      { "internalType": "address", "name": "recipient", "type": "address" },
      { "internalType": "address", "name": "token", "type": "address" },
      { "internalType": "uint256", "name": "amount", "type": "uint256" }
    ],
    "name": "mintWithToken",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
`
