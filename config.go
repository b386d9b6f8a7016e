package guildledger

import "github.com/joho/godotenv"

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// BotConfig holds the chat transport settings.
type BotConfig struct {
	Token             string `env:"DISCORD_TOKEN,required"`
	RequestsChannelID string `env:"REQUESTS_CHANNEL_ID,required"`
}

// LedgerConfig holds the spreadsheet backend settings. Backend selects the
// SheetStore implementation: "sheets", "s3", or "file".
type LedgerConfig struct {
	Backend          string `env:"LEDGER_BACKEND,default=sheets"`
	InventorySheetID string `env:"SPREADSHEET_ID_INVENTORY,required"`
	RequestsSheetID  string `env:"SPREADSHEET_ID_REQUEST,required"`
	InventoryRange   string `env:"INVENTORY_RANGE,default=Sheet1!A:B"`
	RequestsRange    string `env:"REQUESTS_RANGE,default=Sheet1!A:F"`
	CredentialsPath  string `env:"SHEETS_CREDENTIALS_PATH,default=secrets/service-account.json"`
	FileDir          string `env:"LEDGER_FILE_DIR,default=artifacts/sheets"`
	S3Bucket         string `env:"LEDGER_S3_BUCKET,default="`
	S3Prefix         string `env:"LEDGER_S3_PREFIX,default=sheets/"`
}
