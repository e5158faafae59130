package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const FulfillBasicOrderMethod = "fulfillBasicOrder"

var SeaportABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(SeaportABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	SeaportABI = _abi
}

type AdditionalRecipient struct {
	Amount    *big.Int
	Recipient common.Address
}

// BasicOrderParameters mirrors the seaport struct of the same name, field
// names must stay the camel case of the abi component names
type BasicOrderParameters struct {
	ConsiderationToken                common.Address
	ConsiderationIdentifier           *big.Int
	ConsiderationAmount               *big.Int
	Offerer                           common.Address
	Zone                              common.Address
	OfferToken                        common.Address
	OfferIdentifier                   *big.Int
	OfferAmount                       *big.Int
	BasicOrderType                    uint8
	StartTime                         *big.Int
	EndTime                           *big.Int
	ZoneHash                          [32]byte
	Salt                              *big.Int
	OffererConduitKey                 [32]byte
	FulfillerConduitKey               [32]byte
	TotalOriginalAdditionalRecipients *big.Int
	AdditionalRecipients              []AdditionalRecipient
	Signature                         []byte
}

// PackFulfillBasicOrder returns selector + encoded arguments
func PackFulfillBasicOrder(p BasicOrderParameters) ([]byte, error) {
	if p.AdditionalRecipients == nil {
		p.AdditionalRecipients = []AdditionalRecipient{}
	}
	return SeaportABI.Pack(FulfillBasicOrderMethod, p)
}

// FulfillBasicOrderABIJson is the single function fragment handed to the checkout widget
var FulfillBasicOrderABIJson = `[` + strings.TrimSpace(fulfillBasicOrderFragment) + `]`

var SeaportABIJson = FulfillBasicOrderABIJson

var fulfillBasicOrderFragment = `
  {
    "inputs": [
      {
        "components": [
          { "internalType": "address", "name": "considerationToken", "type": "address" },
          { "internalType": "uint256", "name": "considerationIdentifier", "type": "uint256" },
          { "internalType": "uint256", "name": "considerationAmount", "type": "uint256" },
          { "internalType": "address payable", "name": "offerer", "type": "address" },
          { "internalType": "address", "name": "zone", "type": "address" },
          { "internalType": "address", "name": "offerToken", "type": "address" },
          { "internalType": "uint256", "name": "offerIdentifier", "type": "uint256" },
          { "internalType": "uint256", "name": "offerAmount", "type": "uint256" },
          { "internalType": "enum BasicOrderType", "name": "basicOrderType", "type": "uint8" },
          { "internalType": "uint256", "name": "startTime", "type": "uint256" },
          { "internalType": "uint256", "name": "endTime", "type": "uint256" },
          { "internalType": "bytes32", "name": "zoneHash", "type": "bytes32" },
          { "internalType": "uint256", "name": "salt", "type": "uint256" },
          { "internalType": "bytes32", "name": "offererConduitKey", "type": "bytes32" },
          { "internalType": "bytes32", "name": "fulfillerConduitKey", "type": "bytes32" },
          { "internalType": "uint256", "name": "totalOriginalAdditionalRecipients", "type": "uint256" },
          {
            "components": [
              { "internalType": "uint256", "name": "amount", "type": "uint256" },
              { "internalType": "address payable", "name": "recipient", "type": "address" }
            ],
            "internalType": "struct AdditionalRecipient[]",
            "name": "additionalRecipients",
            "type": "tuple[]"
          },
          { "internalType": "bytes", "name": "signature", "type": "bytes" }
        ],
        "internalType": "struct BasicOrderParameters",
        "name": "parameters",
        "type": "tuple"
      }
    ],
    "name": "fulfillBasicOrder",
    "outputs": [
      { "internalType": "bool", "name": "fulfilled", "type": "bool" }
    ],
    "stateMutability": "payable",
    "type": "function"
  }
`
