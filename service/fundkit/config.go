package fundkit

import (
	"github.com/x-xyz/nftcheckout/domain"
	"github.com/x-xyz/nftcheckout/domain/purchase"
)

const (
	ModeExchange      = "Exchange"
	ModeOnRamp        = "OnRamp"
	ModeBridgeAndSwap = "BridgeAndSwap"
	ModeQrPay         = "QrPay"

	ThemeDark  = "dark"
	ThemeLight = "light"

	// DefaultDestinationChainId is arbitrum one
	DefaultDestinationChainId = 42161
)

type Module struct {
	Enabled          bool   `json:"enabled" mapstructure:"enabled"`
	ModuleName       string `json:"moduleName,omitempty" mapstructure:"moduleName"`
	QuoteRefreshTime int    `json:"quoteRefreshTime,omitempty" mapstructure:"quoteRefreshTime"`
	RefundAddress    string `json:"refundAddress,omitempty" mapstructure:"refundAddress"`
}

type Modules struct {
	Exchange      Module `json:"exchange" mapstructure:"exchange"`
	OnRamp        Module `json:"onRamp" mapstructure:"onRamp"`
	BridgeAndSwap Module `json:"bridgeAndSwap" mapstructure:"bridgeAndSwap"`
	QrPay         Module `json:"qrPay" mapstructure:"qrPay"`
}

type Destination struct {
	Contract      purchase.DestinationContract `json:"contract"`
	WalletAddress domain.Address               `json:"walletAddress"`
	ChainId       domain.ChainId               `json:"chainId"`
	TokenAddress  domain.Address               `json:"tokenAddress"`
}

type Appearance struct {
	Roundness int    `json:"roundness" mapstructure:"roundness"`
	Theme     string `json:"theme" mapstructure:"theme"`
}

// ApiKeys are publishable keys the browser sdk needs
type ApiKeys struct {
	AarcSDK string `json:"aarcSDK"`
}

// Config is the widget configuration the browser sdk is initialized with
type Config struct {
	AppName     string      `json:"appName"`
	DappId      string      `json:"dappId"`
	UserId      string      `json:"userId,omitempty"`
	HeaderText  string      `json:"headerText,omitempty"`
	DefaultMode string      `json:"defaultMode"`
	Module      Modules     `json:"module"`
	Destination Destination `json:"destination"`
	Appearance  Appearance  `json:"appearance"`
	ApiKeys     ApiKeys     `json:"apiKeys"`
}

// DefaultConfig funds a mint on the default minting contract
func DefaultConfig() Config {
	return Config{
		AppName:     "RampX x Aarc",
		DappId:      "rampx-nft-minting",
		HeaderText:  "Fund Your Wallet to Mint NFT",
		DefaultMode: ModeExchange,
		Module: Modules{
			Exchange:      Module{Enabled: true, ModuleName: "Exchange", QuoteRefreshTime: 60},
			OnRamp:        Module{Enabled: true, ModuleName: "OnRamp", QuoteRefreshTime: 60},
			BridgeAndSwap: Module{Enabled: true, ModuleName: "Bridge & Swap", QuoteRefreshTime: 60},
			QrPay: Module{
				Enabled:          true,
				ModuleName:       "QR Pay",
				QuoteRefreshTime: 20,
				RefundAddress:    string(domain.DefaultMintingContract),
			},
		},
		Destination: Destination{
			Contract: purchase.DestinationContract{
				ContractAddress:  domain.DefaultMintingContract,
				ContractName:     "RampX NFT",
				ContractLogoURI:  domain.DefaultLogoURI,
				ContractGasLimit: "300000",
			},
			WalletAddress: domain.DefaultMintingContract,
			ChainId:       DefaultDestinationChainId,
			TokenAddress:  domain.EmptyAddress,
		},
		Appearance: Appearance{
			Roundness: 42,
			Theme:     ThemeDark,
		},
	}
}
