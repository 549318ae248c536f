package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Check    CheckCmd    `cmd:"" help:"Parse and validate a holdings file."`
	Balances BalancesCmd `cmd:"" help:"Show aggregated balances per account."`
	Format   FormatCmd   `cmd:"" help:"Normalize a holdings file and align inventories."`
}
