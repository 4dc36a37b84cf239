package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUser  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	// Azure OpenAI style text-generation settings. When endpoint or key is
	// empty the AI endpoints stay registered but always fail with a
	// configuration error.
	OpenAIEndpoint string `json:"openai_endpoint"`
	OpenAIKey      string `json:"openai_key"`
	OpenAIModel    string `json:"openai_model"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine; values may come from the process
		// environment (tests, containers).
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		openAIModel := os.Getenv("OPENAI_DEPLOYMENT")
		if openAIModel == "" {
			openAIModel = "gpt-4"
		}

		config = &Config{
			AppName: os.Getenv("APPNAME"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: os.Getenv("GINMODE"),
			DBHost:  os.Getenv("DBHOST"),
			DBPort:  uint16(dbPort),
			DBName:  os.Getenv("DBNAME"),
			DBUser:  os.Getenv("DBUSER"),
			DBPass:  os.Getenv("DBPASS"),

			OpenAIEndpoint: os.Getenv("OPENAI_ENDPOINT"),
			OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:    openAIModel,
		}
	})
	return config
}

// ResetForTesting clears the singleton so tests can reload configuration with
// a different environment.
func ResetForTesting() {
	config = nil
	once = sync.Once{}
}
