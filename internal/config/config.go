package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string

	// DiscordToken and DiscordChannelID enable pairing announcements
	// when both are set.
	DiscordToken     string
	DiscordChannelID string

	// IgnoreForfeits leaves wins by default and double losses out of
	// the rating computation.
	IgnoreForfeits bool
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{
		DBPath:     "goladder.db",
		ListenAddr: "127.0.0.1:8080",
	}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"GOLADDER_DB", &c.DBPath},
		{"GOLADDER_LISTEN", &c.ListenAddr},
		{"GOLADDER_DISCORD_TOKEN", &c.DiscordToken},
		{"GOLADDER_DISCORD_CHANNEL", &c.DiscordChannelID},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}

	if str := os.Getenv("GOLADDER_IGNORE_FORFEITS"); str != "" {
		c.IgnoreForfeits = str == "1" || str == "true"
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	defer c.expandFromEnv()

	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(c)
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "goladder")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o700)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
