package dayforge

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	ClientID   string
	Authority  string
	APIScope   string
	LogLevel   string
	LogPath    string
	TimeFormat string
}

const (
	DefaultAPIBaseURL = "https://todoapi.azurewebsites.net"
	DefaultClientID   = "00000000-0000-0000-0000-000000000000"
	DefaultAuthority  = "https://login.microsoftonline.com/common"
	DefaultAPIScope   = "api://dayforge/Todos.ReadWrite"
	DefaultLogLevel   = "WARN"
	DefaultTimeFormat = "15:04"
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultLogPath = path.Join(userHome, ".dayforge", "dayforge.log")
)

// LoginScopes are always requested at sign-in; the API scope is added on top
// for resource access.
var LoginScopes = []string{"openid", "profile", "email"}

func LoadConfig() Config {
	confFromEnv := configFromEnv()

	if os.Getenv("DAYFORGE_DEV_MODE") != "" {
		fmt.Println("Dev mode is on!")
		confFromEnv.LogLevel = "DEBUG"
		confFromEnv.LogPath = path.Join(userHome, ".dayforge", "dev.log")
	}

	// load file
	cfgDir, _ := os.UserConfigDir()
	cfgDir = path.Join(cfgDir, "dayforge")
	confFile := path.Join(cfgDir, "dayforge.conf")
	if _, err := os.Stat(confFile); err != nil {
		log.Println("creating default conf file")
		if err := os.MkdirAll(cfgDir, 0o744); err != nil {
			panic(err)
		}
		f, err := os.Create(confFile)
		if err != nil {
			panic(err)
		}
		defaults := []string{
			"DAYFORGE_API_BASE_URL=" + DefaultAPIBaseURL,
			"DAYFORGE_CLIENT_ID=" + DefaultClientID,
			"DAYFORGE_AUTHORITY=" + DefaultAuthority,
			"DAYFORGE_API_SCOPE=" + DefaultAPIScope,
			"DAYFORGE_LOG_LEVEL=" + DefaultLogLevel,
			"DAYFORGE_LOG_PATH=" + DefaultLogPath,
			"DAYFORGE_TIME_FORMAT=" + DefaultTimeFormat,
		}
		for _, line := range defaults {
			if _, err := f.WriteString(line + "\n"); err != nil {
				panic(err)
			}
		}
		_ = f.Close()
	}
	if err := godotenv.Load(confFile); err != nil {
		panic(err)
	}
	confFromFile := configFromEnv()

	return Config{
		APIBaseURL: coalesce(confFromEnv.APIBaseURL, confFromFile.APIBaseURL, DefaultAPIBaseURL),
		ClientID:   coalesce(confFromEnv.ClientID, confFromFile.ClientID, DefaultClientID),
		Authority:  coalesce(confFromEnv.Authority, confFromFile.Authority, DefaultAuthority),
		APIScope:   coalesce(confFromEnv.APIScope, confFromFile.APIScope, DefaultAPIScope),
		LogLevel:   coalesce(confFromEnv.LogLevel, confFromFile.LogLevel, DefaultLogLevel),
		LogPath:    coalesce(confFromEnv.LogPath, confFromFile.LogPath, DefaultLogPath),
		TimeFormat: coalesce(confFromEnv.TimeFormat, confFromFile.TimeFormat, DefaultTimeFormat),
	}
}

func configFromEnv() Config {
	return Config{
		APIBaseURL: os.Getenv("DAYFORGE_API_BASE_URL"),
		ClientID:   os.Getenv("DAYFORGE_CLIENT_ID"),
		Authority:  os.Getenv("DAYFORGE_AUTHORITY"),
		APIScope:   os.Getenv("DAYFORGE_API_SCOPE"),
		LogLevel:   os.Getenv("DAYFORGE_LOG_LEVEL"),
		LogPath:    os.Getenv("DAYFORGE_LOG_PATH"),
		TimeFormat: os.Getenv("DAYFORGE_TIME_FORMAT"),
	}
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
