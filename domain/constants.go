package domain

// compiled-in defaults, all overridable from config
const (
	// the-rbtz on ethereum
	DefaultCollectionSlug     = "the-rbtz"
	DefaultCollectionContract = Address("0x4db9e0d1631491a3edba3e2cc9e581cac1d29699")

	DefaultMintingContract = Address("0x45c0470ef627a30efe30c06b13d883669b8fd3a8")
	// seaport 1.5
	DefaultSeaportContract = Address("0x00000000000000adc04c56bf30ac9d3c0aaf14dc")

	DefaultListingLimit = 50
	DefaultMintPrice    = "0.0001"
	DefaultDisplayPrice = "0.0017"
	// 1 ETH = 71k BRETT
	DefaultEthToBrettRate = 71000

	DefaultLogoURI = "https://rampx.app/logo.png"
)
