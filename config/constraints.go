package config

const (
	// Token Related
	SecurityTokenPriceUSDX = 0.5       // fixed purchase and buyback price, USDX per MST
	TotalSecuritySupply    = 1_000_000 // 1 million MST
	TotalGovSupply         = 10_000_000

	// Revenue Split Defaults (percent, must sum to 100)
	DefaultHolderPct   = 70.0
	DefaultTreasuryPct = 20.0
	DefaultBuybackPct  = 10.0

	// Usage Related
	DefaultFeePerCall   = 1.0 // USDX per simulated model call
	DefaultModelVersion = "axon-v1"

	// Governance Related
	DefaultStakeBoost      = 2.0
	MinProposalDeadlineSec = 60 // shortest allowed voting window

	// Storage Related
	StateKeyCurrent   = "appstate-current"
	SnapshotKeyPrefix = "appstate-seq-"

	// Queue Sizes
	MessageBufferSize   = 1000
	NotificationBacklog = 100
)
