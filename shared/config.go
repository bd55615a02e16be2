package shared

import (
	"encoding/json"
	"github.com/tailscale/hujson"
	"log"
	"os"
)

const (
	configVarName  = "CONFIG"                      // If set, will load config.json from this path and not from devConfigPath
	secretsVarName = "SECRETS"                     // If set, will load secrets.json from this path and not from devSecretsPath
	devConfigPath  = "../../dev/config.dev.jsonc"  // Path to config.json in development environment
	devSecretsPath = "../../dev/secrets.dev.jsonc" // Path to config.json in development environment
)

type Config struct {
	Secrets             Secrets        `json:"-"`
	LogFile             string         `json:"log_file"`
	LogLevel            string         `json:"log_level"`
	ServicePort         uint           `json:"service_port"`
	DbFile              string         `json:"db_file"`
	PageSize            int            `json:"page_size"`
	TextLimit           int            `json:"text_limit"`
	UploaderService     string         `json:"uploader_service"`
	ShortenerService    string         `json:"shortener_service"`
	RefreshAfterPosting bool           `json:"refresh_after_posting"`
	AutoRefreshMentions bool           `json:"auto_refresh_mentions"`
	AutoRefreshMessages bool           `json:"auto_refresh_messages"`
	AutoRefreshMinutes  int            `json:"auto_refresh_minutes"`
	TrendsWoeId         int64          `json:"trends_woeid"`
	Accounts            []*AccountInfo `json:"accounts"`
}

// AccountInfo describes one signed-in account. Ids are remote-assigned and
// never reused; an account missing from this list has no resolvable client.
type AccountInfo struct {
	Id         int64  `json:"id"`
	ScreenName string `json:"screen_name"`
	ApiRoot    string `json:"api_root"`
	Active     bool   `json:"active"`
}

type Secrets struct {
	// Bearer tokens keyed by decimal account id
	Tokens      map[string]string `json:"tokens"`
	ApiKeys     []string          `json:"api_keys"`
	MetricsAuth string            `json:"metrics_auth"`
}

func LoadConfig() *Config {

	// Where are our config and secrets files?
	cfgPath := os.Getenv(configVarName)
	if len(cfgPath) == 0 {
		cfgPath = devConfigPath
	}
	secretsPath := os.Getenv(secretsVarName)
	if len(secretsPath) == 0 {
		secretsPath = devSecretsPath
	}

	// Read config file
	var config Config
	mustDeserializeFile(cfgPath, &config)
	// Read secrets member from secrets file
	mustDeserializeFile(secretsPath, &config.Secrets)
	return &config
}

func mustDeserializeFile[T any](fileName string, obj *T) {
	var err error
	var cfgJson []byte
	cfgJson, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}
	// JSONC => JSON
	cfgJson, err = standardizeJSON(cfgJson)
	if err != nil {
		log.Fatal(err)
	}
	// Parse
	if err := json.Unmarshal(cfgJson, obj); err != nil {
		log.Fatal(err)
	}
}

func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return b, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
