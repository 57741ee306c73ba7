package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Reddit   RedditConfig   `yaml:"reddit"`
	LLM      LLMConfig      `yaml:"llm"`
	Splitter SplitterConfig `yaml:"splitter"`
	Persona  PersonaConfig  `yaml:"persona"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	PersonasDir string `yaml:"personas_dir"`
	StaticDir   string `yaml:"static_dir"`
}

type RedditConfig struct {
	BaseURL   string `yaml:"base_url"`
	TokenURL  string `yaml:"token_url"`
	UserAgent string `yaml:"user_agent"`
	MaxItems  int    `yaml:"max_items"`

	// Credentials come from the environment, never from the config file.
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
}

type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`

	// Key comes from the environment, never from the config file.
	Key string `yaml:"-"`
}

type SplitterConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

type PersonaConfig struct {
	MaxChunks int `yaml:"max_chunks"`
	MaxChars  int `yaml:"max_chars"`
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        "127.0.0.1:8000",
			PersonasDir: "./personas",
			StaticDir:   "./static",
		},
		Reddit: RedditConfig{
			BaseURL:   "https://oauth.reddit.com",
			TokenURL:  "https://www.reddit.com/api/v1/access_token",
			UserAgent: "persona-script",
			MaxItems:  100,
		},
		LLM: LLMConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			Model:       "google/gemini-2.0-flash-001",
			Temperature: 0.7,
		},
		Splitter: SplitterConfig{
			ChunkSize:    1000,
			ChunkOverlap: 100,
		},
		Persona: PersonaConfig{
			MaxChunks: 50,
			MaxChars:  10000,
		},
	}
}

// LoadConfig reads the yaml config at path on top of the defaults. A missing
// file is not an error. Credentials are taken from the environment afterwards
// and are not validated here; a missing key surfaces on first use.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LLM.Key = os.Getenv("LLM_API_KEY")
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.Reddit.ClientID = os.Getenv("REDDIT_CLIENT_ID")
	c.Reddit.ClientSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	c.Reddit.UserAgent = getEnv("REDDIT_USER_AGENT", c.Reddit.UserAgent)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
